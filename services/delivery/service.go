package delivery

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"campusporter/models"
	"campusporter/services/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRequest validates the customer form and stores a new pending request.
func (s *DefaultDeliveryService) CreateRequest(ctx context.Context, requesterName string, in models.NewRequestInput) (*models.DeliveryRequest, error) {
	in, err := s.normalizeNewRequest(requesterName, in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	req := models.DeliveryRequest{
		ID:                   "req-" + uuid.NewString(),
		RequesterName:        requesterName,
		PackageDetails:       in.PackageDetails,
		Location:             in.Location,
		DeliveryInstructions: in.DeliveryInstructions,
		Status:               models.StatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.store.Insert(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to store delivery request: %w", err)
	}

	s.logger.Info("delivery request created",
		zap.String("requestID", req.ID),
		zap.String("requester", requesterName),
		zap.String("location", req.Location),
	)
	s.afterTransition(ctx, events.TypeRequestCreated, req, "")
	return &req, nil
}

// AcceptRequest assigns porterName with the given ETA. Only pending requests can be accepted.
func (s *DefaultDeliveryService) AcceptRequest(ctx context.Context, id, porterName string, in models.AcceptRequestInput) (*models.DeliveryRequest, error) {
	if porterName == "" {
		return nil, newValidationError("porterName", "porter name is required")
	}
	eta, err := normalizeETA(in.ETA)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, func(r *models.DeliveryRequest) error {
		if err := checkExpected(r, in.ExpectedUpdatedAt); err != nil {
			return err
		}
		if r.Status != models.StatusPending || !r.Status.CanTransition(models.StatusAccepted) {
			return &TransitionError{RequestID: r.ID, Action: "accept", From: r.Status}
		}
		porter := porterName
		r.Status = models.StatusAccepted
		r.PorterName = &porter
		r.ETA = &eta
		r.UpdatedAt = s.nextUpdatedAt(r.UpdatedAt)
		return nil
	})
	if err != nil {
		s.logger.Warn("accept rejected", zap.String("requestID", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("delivery request accepted",
		zap.String("requestID", id),
		zap.String("porter", porterName),
		zap.String("eta", eta),
	)
	s.afterTransition(ctx, events.TypeRequestUpdated, updated, eta)
	s.scheduleArrival(ctx, updated, eta)
	return &updated, nil
}

// UpdateStatus moves an accepted or in-transit request to in_transit, delivered or cancelled.
// Only the porter the request is assigned to may move it.
func (s *DefaultDeliveryService) UpdateStatus(ctx context.Context, id, porterName string, in models.UpdateStatusInput) (*models.DeliveryRequest, error) {
	if !in.Status.IsStatusUpdateTarget() {
		return nil, newValidationError("status", "Status must be one of in_transit, delivered or cancelled.")
	}

	updated, err := s.store.Update(ctx, id, func(r *models.DeliveryRequest) error {
		if err := checkExpected(r, in.ExpectedUpdatedAt); err != nil {
			return err
		}
		if !r.Status.IsActive() || !r.Status.CanTransition(in.Status) {
			return &TransitionError{RequestID: r.ID, Action: "update", From: r.Status, To: in.Status}
		}
		if r.PorterName == nil || *r.PorterName != porterName {
			return &TransitionError{RequestID: r.ID, Action: "update", From: r.Status, To: in.Status, Reason: "it is not assigned to " + porterName}
		}
		r.Status = in.Status
		r.UpdatedAt = s.nextUpdatedAt(r.UpdatedAt)
		return nil
	})
	if err != nil {
		s.logger.Warn("status update rejected", zap.String("requestID", id), zap.String("target", in.Status.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("delivery status updated",
		zap.String("requestID", id),
		zap.String("porter", porterName),
		zap.String("status", in.Status.String()),
	)
	s.afterTransition(ctx, events.TypeRequestUpdated, updated, "")
	return &updated, nil
}

// DeclineRequest records that a porter passed on a pending request. The request stays
// pending and visible to every porter; nothing is written.
func (s *DefaultDeliveryService) DeclineRequest(ctx context.Context, id, porterName string) (*models.DeliveryRequest, error) {
	req, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusPending {
		return nil, &TransitionError{RequestID: id, Action: "decline", From: req.Status}
	}

	s.logger.Info("delivery request declined", zap.String("requestID", id), zap.String("porter", porterName))
	if s.events != nil {
		s.events.Publish(events.TypeRequestDeclined, map[string]string{"id": id, "porterName": porterName})
	}
	return &req, nil
}

// CancelRequest lets the requester withdraw a request no porter has accepted yet.
func (s *DefaultDeliveryService) CancelRequest(ctx context.Context, id, requesterName string) (*models.DeliveryRequest, error) {
	updated, err := s.store.Update(ctx, id, func(r *models.DeliveryRequest) error {
		if r.Status != models.StatusPending || !r.Status.CanTransition(models.StatusCancelled) {
			return &TransitionError{RequestID: r.ID, Action: "cancel", From: r.Status, To: models.StatusCancelled}
		}
		if r.RequesterName != requesterName {
			return &TransitionError{RequestID: r.ID, Action: "cancel", From: r.Status, To: models.StatusCancelled, Reason: "it was requested by someone else"}
		}
		r.Status = models.StatusCancelled
		r.UpdatedAt = s.nextUpdatedAt(r.UpdatedAt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("delivery request cancelled by requester", zap.String("requestID", id), zap.String("requester", requesterName))
	s.afterTransition(ctx, events.TypeRequestUpdated, updated, "")
	return &updated, nil
}

func (s *DefaultDeliveryService) GetRequest(ctx context.Context, id string) (*models.DeliveryRequest, error) {
	req, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// afterTransition broadcasts the new snapshot and appends its notification.
func (s *DefaultDeliveryService) afterTransition(ctx context.Context, eventType string, req models.DeliveryRequest, eta string) {
	if s.events != nil {
		s.events.Publish(eventType, ToResponse(req))
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, req, req.Status, eta)
	}
}

// scheduleArrival queues the arrival reminder. Failures are logged and never undo the accept.
func (s *DefaultDeliveryService) scheduleArrival(ctx context.Context, req models.DeliveryRequest, eta string) {
	if s.reminders == nil {
		return
	}
	minutes, err := strconv.Atoi(eta)
	if err != nil {
		return
	}
	fireAt := req.UpdatedAt.Add(time.Duration(minutes) * time.Minute)
	if err := s.reminders.ScheduleArrivalReminder(ctx, req.ID, eta, fireAt); err != nil {
		s.logger.Warn("failed to schedule arrival reminder", zap.String("requestID", req.ID), zap.Error(err))
	}
}

// nextUpdatedAt keeps updatedAt strictly increasing even when the clock has not moved.
func (s *DefaultDeliveryService) nextUpdatedAt(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func checkExpected(r *models.DeliveryRequest, expected *time.Time) error {
	if expected != nil && !r.UpdatedAt.Equal(*expected) {
		return fmt.Errorf("request %s: %w", r.ID, ErrConflict)
	}
	return nil
}

// IsClientError reports whether err was caused by the caller rather than the service.
func IsClientError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrConflict)
}
