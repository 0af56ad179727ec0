package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeArrivalReminder = "delivery:arrival_reminder"

// ArrivalReminderPayload identifies the request whose ETA elapses at the scheduled time.
type ArrivalReminderPayload struct {
	RequestID string `json:"requestId"`
	ETA       string `json:"eta"`
}

func NewArrivalReminderTask(payload ArrivalReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeArrivalReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("arrival:" + payload.RequestID),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// ParseArrivalReminder decodes a task payload. Malformed payloads are never retried.
func ParseArrivalReminder(task *asynq.Task) (ArrivalReminderPayload, error) {
	var p ArrivalReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid arrival reminder payload: %v: %w", err, asynq.SkipRetry)
	}
	if p.RequestID == "" {
		return p, fmt.Errorf("arrival reminder without request id: %w", asynq.SkipRetry)
	}
	return p, nil
}

// AsynqScheduler enqueues arrival reminders on the Redis-backed task queue.
type AsynqScheduler struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewAsynqScheduler(opt asynq.RedisClientOpt, logger *zap.Logger) *AsynqScheduler {
	return &AsynqScheduler{client: asynq.NewClient(opt), logger: logger}
}

// ScheduleArrivalReminder enqueues one reminder per request. A second call for the same
// request is a no-op.
func (s *AsynqScheduler) ScheduleArrivalReminder(ctx context.Context, requestID, eta string, fireAt time.Time) error {
	task, opts, err := NewArrivalReminderTask(ArrivalReminderPayload{RequestID: requestID, ETA: eta}, fireAt)
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue arrival reminder: %w", err)
	}
	s.logger.Debug("arrival reminder scheduled",
		zap.String("requestID", requestID),
		zap.String("taskID", info.ID),
		zap.Time("fireAt", fireAt),
	)
	return nil
}

func (s *AsynqScheduler) Close() error {
	return s.client.Close()
}
