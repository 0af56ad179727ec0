package handlers

import (
	"errors"
	"net/http"

	"campusporter/middleware"
	"campusporter/models"
	"campusporter/services/delivery"
	"campusporter/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DeliveryHandler serves the customer and porter dashboards.
type DeliveryHandler struct {
	DeliverySvc delivery.DeliveryService
	Logger      *zap.Logger
}

func NewDeliveryHandler(svc delivery.DeliveryService, logger *zap.Logger) *DeliveryHandler {
	utils.UseJSONFieldNames()
	return &DeliveryHandler{DeliverySvc: svc, Logger: logger}
}

// CreateRequest handles POST /api/requests.
func (h *DeliveryHandler) CreateRequest(c *gin.Context) {
	var in models.NewRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONBindError(c, h.Logger, err)
		return
	}

	req, err := h.DeliverySvc.CreateRequest(c.Request.Context(), middleware.ActorName(c), in)
	if err != nil {
		h.respondError(c, "CreateRequest", err)
		return
	}
	c.JSON(http.StatusCreated, delivery.ToResponse(*req))
}

// GetRequest handles GET /api/requests/:id.
func (h *DeliveryHandler) GetRequest(c *gin.Context) {
	req, err := h.DeliverySvc.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "GetRequest", err)
		return
	}
	c.JSON(http.StatusOK, delivery.ToResponse(*req))
}

// AcceptRequest handles POST /api/requests/:id/accept.
func (h *DeliveryHandler) AcceptRequest(c *gin.Context) {
	var in models.AcceptRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONBindError(c, h.Logger, err)
		return
	}

	req, err := h.DeliverySvc.AcceptRequest(c.Request.Context(), c.Param("id"), middleware.ActorName(c), in)
	if err != nil {
		h.respondError(c, "AcceptRequest", err)
		return
	}
	c.JSON(http.StatusOK, delivery.ToResponse(*req))
}

// UpdateStatus handles PUT /api/requests/:id/status.
func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	var in models.UpdateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONBindError(c, h.Logger, err)
		return
	}

	req, err := h.DeliverySvc.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.ActorName(c), in)
	if err != nil {
		h.respondError(c, "UpdateStatus", err)
		return
	}
	c.JSON(http.StatusOK, delivery.ToResponse(*req))
}

// DeclineRequest handles POST /api/requests/:id/decline.
func (h *DeliveryHandler) DeclineRequest(c *gin.Context) {
	req, err := h.DeliverySvc.DeclineRequest(c.Request.Context(), c.Param("id"), middleware.ActorName(c))
	if err != nil {
		h.respondError(c, "DeclineRequest", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Request Declined",
		"request": delivery.ToResponse(*req),
	})
}

// CancelRequest handles POST /api/requests/:id/cancel.
func (h *DeliveryHandler) CancelRequest(c *gin.Context) {
	req, err := h.DeliverySvc.CancelRequest(c.Request.Context(), c.Param("id"), middleware.ActorName(c))
	if err != nil {
		h.respondError(c, "CancelRequest", err)
		return
	}
	c.JSON(http.StatusOK, delivery.ToResponse(*req))
}

// ActiveForCustomer handles GET /api/customer/requests/active.
func (h *DeliveryHandler) ActiveForCustomer(c *gin.Context) {
	reqs, err := h.DeliverySvc.ActiveForCustomer(c.Request.Context(), middleware.ActorName(c))
	h.respondList(c, "ActiveForCustomer", reqs, err)
}

// HistoryForCustomer handles GET /api/customer/requests/history.
func (h *DeliveryHandler) HistoryForCustomer(c *gin.Context) {
	reqs, err := h.DeliverySvc.HistoryForCustomer(c.Request.Context(), middleware.ActorName(c))
	h.respondList(c, "HistoryForCustomer", reqs, err)
}

// ActiveForPorter handles GET /api/porter/requests/active.
func (h *DeliveryHandler) ActiveForPorter(c *gin.Context) {
	reqs, err := h.DeliverySvc.ActiveForPorter(c.Request.Context(), middleware.ActorName(c))
	h.respondList(c, "ActiveForPorter", reqs, err)
}

// AvailableForPorter handles GET /api/porter/requests/available.
func (h *DeliveryHandler) AvailableForPorter(c *gin.Context) {
	reqs, err := h.DeliverySvc.AvailableForPorter(c.Request.Context())
	h.respondList(c, "AvailableForPorter", reqs, err)
}

// GetLocations handles GET /api/locations.
func (h *DeliveryHandler) GetLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locations": h.DeliverySvc.Locations()})
}

// GetProfile handles GET /api/{customer,porter}/me.
func (h *DeliveryHandler) GetProfile(c *gin.Context) {
	role, _ := c.Get(utils.ActorRoleKey)
	userRole, _ := role.(models.UserRole)
	c.JSON(http.StatusOK, delivery.SeedUser(userRole, middleware.ActorName(c)))
}

func (h *DeliveryHandler) respondList(c *gin.Context, op string, reqs []models.DeliveryRequest, err error) {
	if err != nil {
		h.respondError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, delivery.ToResponses(reqs))
}

// respondError maps service errors onto status codes.
func (h *DeliveryHandler) respondError(c *gin.Context, op string, err error) {
	if !delivery.IsClientError(err) {
		h.Logger.Error(op+": unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "internal error", Message: err.Error()})
		return
	}

	var verr *delivery.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONFieldError(c, h.Logger, verr.Field, verr.Message)
	case errors.Is(err, delivery.ErrNotFound):
		utils.JSONError(c, h.Logger, http.StatusNotFound, "delivery request not found", err.Error())
	case errors.Is(err, delivery.ErrConflict):
		utils.JSONError(c, h.Logger, http.StatusConflict, "request was modified, reload and retry", err.Error())
	default:
		utils.JSONError(c, h.Logger, http.StatusConflict, "invalid status transition", err.Error())
	}
}
