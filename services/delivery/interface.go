package delivery

import (
	"context"
	"time"

	"campusporter/models"
	"campusporter/services/events"

	"go.uber.org/zap"
)

// DeliveryService runs the request lifecycle and its derived views.
type DeliveryService interface {
	CreateRequest(ctx context.Context, requesterName string, in models.NewRequestInput) (*models.DeliveryRequest, error)
	AcceptRequest(ctx context.Context, id, porterName string, in models.AcceptRequestInput) (*models.DeliveryRequest, error)
	UpdateStatus(ctx context.Context, id, porterName string, in models.UpdateStatusInput) (*models.DeliveryRequest, error)
	DeclineRequest(ctx context.Context, id, porterName string) (*models.DeliveryRequest, error)
	CancelRequest(ctx context.Context, id, requesterName string) (*models.DeliveryRequest, error)

	GetRequest(ctx context.Context, id string) (*models.DeliveryRequest, error)
	ActiveForCustomer(ctx context.Context, requesterName string) ([]models.DeliveryRequest, error)
	HistoryForCustomer(ctx context.Context, requesterName string) ([]models.DeliveryRequest, error)
	ActiveForPorter(ctx context.Context, porterName string) ([]models.DeliveryRequest, error)
	AvailableForPorter(ctx context.Context) ([]models.DeliveryRequest, error)
	Locations() []string
}

// Notifier is the notification side of a transition. It must not fail the caller.
type Notifier interface {
	Notify(ctx context.Context, req models.DeliveryRequest, status models.DeliveryStatus, eta string) models.AppNotification
}

// ReminderScheduler arranges a follow-up notification for when an accepted request's ETA elapses.
type ReminderScheduler interface {
	ScheduleArrivalReminder(ctx context.Context, requestID, eta string, fireAt time.Time) error
}

// DefaultDeliveryService implements DeliveryService.
type DefaultDeliveryService struct {
	store     RequestStore
	notifier  Notifier
	events    events.Publisher
	reminders ReminderScheduler
	locations []string
	logger    *zap.Logger
	now       func() time.Time
}

func NewDefaultDeliveryService(
	store RequestStore,
	notifier Notifier,
	publisher events.Publisher,
	locations []string,
	logger *zap.Logger,
) *DefaultDeliveryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultDeliveryService{
		store:     store,
		notifier:  notifier,
		events:    publisher,
		locations: append([]string(nil), locations...),
		logger:    logger,
		now:       time.Now,
	}
}

// SetReminderScheduler enables arrival reminders. Without one, accept schedules nothing.
func (s *DefaultDeliveryService) SetReminderScheduler(r ReminderScheduler) {
	s.reminders = r
}

// Locations returns the permitted delivery locations.
func (s *DefaultDeliveryService) Locations() []string {
	return append([]string(nil), s.locations...)
}
