package handlers

import (
	"net/http"

	"campusporter/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	NotificationSvc notification.NotificationService
	Logger          *zap.Logger
}

func NewNotificationHandler(svc notification.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{NotificationSvc: svc, Logger: logger}
}

// GetNotifications handles GET /api/notifications.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.NotificationSvc.Feed())
}

// MarkAllRead handles POST /api/notifications/read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	changed := h.NotificationSvc.MarkAllRead()
	h.Logger.Debug("notifications marked read", zap.Int("count", changed))
	c.JSON(http.StatusOK, gin.H{"marked": changed, "unreadCount": h.NotificationSvc.Feed().UnreadCount})
}
