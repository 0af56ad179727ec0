package notification

import (
	"context"
	"fmt"
	"time"

	"campusporter/models"
	"campusporter/services/events"

	"go.uber.org/zap"
)

// TextGenerator writes notification copy for a status change. Implementations may call
// out to a remote model and may fail; callers go through SmartNotification.
type TextGenerator interface {
	Generate(ctx context.Context, input models.NotificationInput) (models.NotificationContent, error)
}

// NotificationService turns request transitions into in-app notifications.
type NotificationService interface {
	SmartNotification(ctx context.Context, req models.DeliveryRequest, status models.DeliveryStatus, eta string) models.NotificationContent
	Notify(ctx context.Context, req models.DeliveryRequest, status models.DeliveryStatus, eta string) models.AppNotification
	Post(ctx context.Context, content models.NotificationContent) models.AppNotification
	Feed() models.NotificationFeed
	MarkAllRead() int
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	generator TextGenerator
	list      *List
	timeout   time.Duration
	events    events.Publisher
	logger    *zap.Logger
}

const defaultGenerationTimeout = 8 * time.Second

func NewDefaultNotificationService(
	generator TextGenerator,
	list *List,
	timeout time.Duration,
	publisher events.Publisher,
	logger *zap.Logger,
) (*DefaultNotificationService, error) {
	if generator == nil || list == nil {
		return nil, fmt.Errorf("notification service initialization error: generator or list is nil")
	}
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{
		generator: generator,
		list:      list,
		timeout:   timeout,
		events:    publisher,
		logger:    logger,
	}, nil
}

// Notify generates copy for the post-transition snapshot, appends it to the feed and
// broadcasts it. It never fails: generation problems fall back to the fixed copy.
func (s *DefaultNotificationService) Notify(
	ctx context.Context,
	req models.DeliveryRequest,
	status models.DeliveryStatus,
	eta string,
) models.AppNotification {
	return s.Post(ctx, s.SmartNotification(ctx, req, status, eta))
}

// Post appends ready-made content to the feed and broadcasts it.
func (s *DefaultNotificationService) Post(_ context.Context, content models.NotificationContent) models.AppNotification {
	n := s.list.Append(content)
	if s.events != nil {
		s.events.Publish(events.TypeNotification, n)
	}
	return n
}

func (s *DefaultNotificationService) Feed() models.NotificationFeed {
	return models.NotificationFeed{
		Notifications: s.list.All(),
		UnreadCount:   s.list.UnreadCount(),
	}
}

func (s *DefaultNotificationService) MarkAllRead() int {
	changed := s.list.MarkAllRead()
	if s.events != nil {
		s.events.Publish(events.TypeNotificationsRead, map[string]int{"marked": changed})
	}
	return changed
}
