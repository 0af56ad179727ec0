package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"campusporter/models"
	"campusporter/services/delivery"
	"campusporter/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type stubRequests map[string]models.DeliveryRequest

func (s stubRequests) GetRequest(_ context.Context, id string) (*models.DeliveryRequest, error) {
	req, ok := s[id]
	if !ok {
		return nil, delivery.ErrNotFound
	}
	return &req, nil
}

type recordingPoster struct {
	posted []models.NotificationContent
}

func (p *recordingPoster) Post(_ context.Context, content models.NotificationContent) models.AppNotification {
	p.posted = append(p.posted, content)
	return models.AppNotification{ID: "notif-1", Title: content.Title, Body: content.Body}
}

func reminderTask(t *testing.T, id string) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewArrivalReminderTask(tasks.ArrivalReminderPayload{RequestID: id, ETA: "10"}, time.Now())
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}
	return task
}

func TestHandleArrivalReminder(t *testing.T) {
	porter := "Porter Pete"
	requests := stubRequests{
		"req-active": {ID: "req-active", Location: "Hostel B", Status: models.StatusInTransit, PorterName: &porter},
		"req-done":   {ID: "req-done", Location: "Hostel B", Status: models.StatusDelivered, PorterName: &porter},
	}
	poster := &recordingPoster{}
	handler := HandleArrivalReminder(requests, poster, zap.NewNop())

	if err := handler(context.Background(), reminderTask(t, "req-active")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(poster.posted) != 1 {
		t.Fatalf("expected one reminder, got %d", len(poster.posted))
	}
	if !strings.Contains(poster.posted[0].Body, "Porter Pete") || !strings.Contains(poster.posted[0].Body, "Hostel B") {
		t.Errorf("unexpected reminder body %q", poster.posted[0].Body)
	}

	if err := handler(context.Background(), reminderTask(t, "req-done")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(poster.posted) != 1 {
		t.Errorf("delivered request must not get a reminder, got %d", len(poster.posted))
	}

	err := handler(context.Background(), reminderTask(t, "req-missing"))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("expected SkipRetry for unknown request, got %v", err)
	}
}
