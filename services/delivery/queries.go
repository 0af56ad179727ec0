package delivery

import (
	"context"
	"fmt"

	"campusporter/models"
)

// The views below are recomputed from the store on every call.

func (s *DefaultDeliveryService) ActiveForCustomer(ctx context.Context, requesterName string) ([]models.DeliveryRequest, error) {
	return s.filter(ctx, func(r models.DeliveryRequest) bool {
		return r.RequesterName == requesterName && r.Status.IsActive()
	})
}

func (s *DefaultDeliveryService) HistoryForCustomer(ctx context.Context, requesterName string) ([]models.DeliveryRequest, error) {
	return s.filter(ctx, func(r models.DeliveryRequest) bool {
		return r.RequesterName == requesterName && r.Status.IsTerminal()
	})
}

func (s *DefaultDeliveryService) ActiveForPorter(ctx context.Context, porterName string) ([]models.DeliveryRequest, error) {
	return s.filter(ctx, func(r models.DeliveryRequest) bool {
		return r.PorterName != nil && *r.PorterName == porterName && r.Status.IsActive()
	})
}

// AvailableForPorter lists every pending request; any porter may take one.
func (s *DefaultDeliveryService) AvailableForPorter(ctx context.Context) ([]models.DeliveryRequest, error) {
	return s.filter(ctx, func(r models.DeliveryRequest) bool {
		return r.Status == models.StatusPending
	})
}

func (s *DefaultDeliveryService) filter(ctx context.Context, keep func(models.DeliveryRequest) bool) ([]models.DeliveryRequest, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery requests: %w", err)
	}
	out := make([]models.DeliveryRequest, 0, len(all))
	for _, r := range all {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
