package models

import "time"

// DeliveryRequest is a single campus delivery, created by a customer and fulfilled by a porter.
type DeliveryRequest struct {
	ID                   string         `json:"id"`
	RequesterName        string         `json:"requesterName"`
	PackageDetails       string         `json:"packageDetails"`
	Location             string         `json:"location"`
	DeliveryInstructions *string        `json:"deliveryInstructions,omitempty"`
	Status               DeliveryStatus `json:"status"`
	PorterName           *string        `json:"porterName,omitempty"` // set on accept, never cleared
	ETA                  *string        `json:"eta,omitempty"`        // minutes, set on accept
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// Clone returns a deep copy so callers never share the optional fields with the store.
func (r DeliveryRequest) Clone() DeliveryRequest {
	out := r
	out.DeliveryInstructions = cloneString(r.DeliveryInstructions)
	out.PorterName = cloneString(r.PorterName)
	out.ETA = cloneString(r.ETA)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// NewRequestInput is the customer form for a new delivery.
type NewRequestInput struct {
	PackageDetails       string  `json:"packageDetails" binding:"required,min=3,max=100"`
	Location             string  `json:"location" binding:"required"`
	DeliveryInstructions *string `json:"deliveryInstructions,omitempty"`
}

// AcceptRequestInput carries the porter's ETA in minutes.
type AcceptRequestInput struct {
	ETA               string     `json:"eta" binding:"required"`
	ExpectedUpdatedAt *time.Time `json:"expectedUpdatedAt,omitempty"`
}

// UpdateStatusInput moves an accepted request further along.
type UpdateStatusInput struct {
	Status            DeliveryStatus `json:"status" binding:"required,oneof=in_transit delivered cancelled"`
	ExpectedUpdatedAt *time.Time     `json:"expectedUpdatedAt,omitempty"`
}

// DeliveryRequestResponse is the API view of a request with its card decorations.
type DeliveryRequestResponse struct {
	DeliveryRequest
	StatusLabel string  `json:"statusLabel"`
	Progress    float64 `json:"progress"`
}
