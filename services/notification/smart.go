package notification

import (
	"context"
	"fmt"
	"strings"

	"campusporter/models"

	"go.uber.org/zap"
)

// BuildInput assembles the generator context. A non-empty eta overrides the stored ETA,
// which is how acceptance passes the ETA it is setting in the same operation.
func BuildInput(req models.DeliveryRequest, status models.DeliveryStatus, eta string) models.NotificationInput {
	input := models.NotificationInput{
		RequestID:      req.ID,
		Status:         status,
		RequesterName:  req.RequesterName,
		PackageDetails: req.PackageDetails,
		Location:       req.Location,
		ETA:            eta,
	}
	if req.PorterName != nil {
		input.PorterName = *req.PorterName
	}
	if input.ETA == "" && req.ETA != nil {
		input.ETA = *req.ETA
	}
	return input
}

// Fallback is the fixed copy used whenever generation does not produce a usable result.
func Fallback(requestID string, status models.DeliveryStatus) models.NotificationContent {
	return models.NotificationContent{
		Title: fmt.Sprintf("Update for #%s", requestID),
		Body:  fmt.Sprintf("Your delivery status is now: %s.", status),
	}
}

type generation struct {
	content models.NotificationContent
	err     error
}

// SmartNotification asks the generator for copy, bounded by the service timeout. Errors,
// panics, timeouts and blank output all collapse into Fallback.
func (s *DefaultNotificationService) SmartNotification(
	ctx context.Context,
	req models.DeliveryRequest,
	status models.DeliveryStatus,
	eta string,
) models.NotificationContent {
	input := BuildInput(req.Clone(), status, eta)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan generation, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- generation{err: fmt.Errorf("generator panic: %v", r)}
			}
		}()
		content, err := s.generator.Generate(ctx, input)
		done <- generation{content: content, err: err}
	}()

	var res generation
	select {
	case res = <-done:
	case <-ctx.Done():
		res = generation{err: ctx.Err()}
	}

	if res.err == nil && (strings.TrimSpace(res.content.Title) == "" || strings.TrimSpace(res.content.Body) == "") {
		res.err = fmt.Errorf("generator returned empty title or body")
	}
	if res.err != nil {
		s.logger.Warn("Error generating smart notification, using fallback",
			zap.String("requestID", req.ID),
			zap.String("status", status.String()),
			zap.Error(res.err),
		)
		return Fallback(req.ID, status)
	}
	return res.content
}
