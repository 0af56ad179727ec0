package cron

import (
	"context"
	"errors"
	"fmt"

	"campusporter/models"
	"campusporter/services/delivery"
	"campusporter/services/notification"
	"campusporter/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RequestGetter is the slice of the delivery service the reminder worker reads from.
type RequestGetter interface {
	GetRequest(ctx context.Context, id string) (*models.DeliveryRequest, error)
}

// Poster appends a notification to the in-app feed.
type Poster interface {
	Post(ctx context.Context, content models.NotificationContent) models.AppNotification
}

// InitReminderWorker starts the arrival reminder worker in the background. The caller
// stops it with Shutdown.
func InitReminderWorker(opt asynq.RedisClientOpt, requests RequestGetter, poster Poster, logger *zap.Logger) (*asynq.Server, error) {
	srv := asynq.NewServer(
		opt,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeArrivalReminder, HandleArrivalReminder(requests, poster, logger))

	logger.Info("[ReminderWorker] starting arrival reminder worker")
	if err := srv.Start(mux); err != nil {
		return nil, err
	}
	return srv, nil
}

// HandleArrivalReminder posts the arrival notification if the request is still on its way.
// Reminders for requests that have since been delivered or cancelled are dropped.
func HandleArrivalReminder(requests RequestGetter, poster Poster, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseArrivalReminder(task)
		if err != nil {
			logger.Warn("[ReminderHandler] dropping task", zap.Error(err))
			return err
		}

		req, err := requests.GetRequest(ctx, p.RequestID)
		if err != nil {
			logger.Warn("[ReminderHandler] request lookup failed", zap.String("requestID", p.RequestID), zap.Error(err))
			if errors.Is(err, delivery.ErrNotFound) {
				return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
			}
			return err
		}
		if !req.Status.IsActive() {
			logger.Debug("[ReminderHandler] request no longer active",
				zap.String("requestID", req.ID),
				zap.String("status", req.Status.String()),
			)
			return nil
		}

		n := poster.Post(ctx, notification.ArrivalReminder(*req))
		logger.Info("[ReminderHandler] arrival reminder posted",
			zap.String("requestID", req.ID),
			zap.String("notificationID", n.ID),
		)
		return nil
	}
}
