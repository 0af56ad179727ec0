package notification

import (
	"context"
	"fmt"
	"strings"

	"campusporter/models"
)

// TemplateGenerator writes notification copy locally. It is used when no Gemini key is
// configured and follows the same detail rules the model is prompted with.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func (g *TemplateGenerator) Generate(ctx context.Context, in models.NotificationInput) (models.NotificationContent, error) {
	if err := ctx.Err(); err != nil {
		return models.NotificationContent{}, err
	}
	if !in.Status.IsValid() {
		return models.NotificationContent{}, fmt.Errorf("unknown status %q", in.Status)
	}

	porter := in.PorterName
	if porter == "" {
		porter = "A porter"
	}
	pkg := "your package"
	if in.Status.IncludesPackageDetails() && in.PackageDetails != "" {
		pkg = fmt.Sprintf("your package (%s)", in.PackageDetails)
	}

	var title string
	var body []string
	switch in.Status {
	case models.StatusPending:
		title = fmt.Sprintf("Request #%s received", in.RequestID)
		body = append(body, fmt.Sprintf("Hi %s, your delivery to %s is waiting for a porter.", in.RequesterName, in.Location))
	case models.StatusAccepted:
		title = "Your request was accepted"
		body = append(body, fmt.Sprintf("%s accepted %s and will bring it to %s.", porter, pkg, in.Location))
	case models.StatusInTransit:
		title = "Your package is on the way"
		body = append(body, fmt.Sprintf("%s is carrying %s to %s.", porter, pkg, in.Location))
	case models.StatusDelivered:
		title = "Delivered!"
		body = append(body, fmt.Sprintf("Your package has been delivered to %s.", in.Location))
	case models.StatusCancelled:
		title = fmt.Sprintf("Request #%s cancelled", in.RequestID)
		body = append(body, fmt.Sprintf("The delivery of %s to %s was cancelled.", pkg, in.Location))
	}

	if in.ETA != "" {
		body = append(body, fmt.Sprintf("ETA: %s minutes.", in.ETA))
	}

	return models.NotificationContent{Title: title, Body: strings.Join(body, " ")}, nil
}

// ArrivalReminder is posted when an accepted request's ETA has elapsed.
func ArrivalReminder(req models.DeliveryRequest) models.NotificationContent {
	porter := "Your porter"
	if req.PorterName != nil && *req.PorterName != "" {
		porter = *req.PorterName
	}
	return models.NotificationContent{
		Title: fmt.Sprintf("Porter arriving for #%s", req.ID),
		Body:  fmt.Sprintf("%s should be at %s about now.", porter, req.Location),
	}
}
