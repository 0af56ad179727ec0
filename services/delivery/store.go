package delivery

import (
	"context"
	"fmt"
	"sync"

	"campusporter/models"
)

// RequestStore holds delivery requests. Update applies mutate to a copy and only
// commits it when mutate returns nil, so a rejected change never leaves a partial write.
type RequestStore interface {
	Insert(ctx context.Context, req models.DeliveryRequest) error
	Get(ctx context.Context, id string) (models.DeliveryRequest, error)
	Update(ctx context.Context, id string, mutate func(*models.DeliveryRequest) error) (models.DeliveryRequest, error)
	List(ctx context.Context) ([]models.DeliveryRequest, error)
}

// MemoryStore is the process-local RequestStore. It is reset from seed data on every start.
type MemoryStore struct {
	mu       sync.RWMutex
	requests map[string]models.DeliveryRequest
	order    []string // newest first
}

// NewMemoryStore builds a store holding seed, listed in the order given. Seed ids must be
// unique; a duplicate panics.
func NewMemoryStore(seed ...models.DeliveryRequest) *MemoryStore {
	s := &MemoryStore{requests: make(map[string]models.DeliveryRequest, len(seed))}
	for i := len(seed) - 1; i >= 0; i-- {
		if err := s.Insert(context.Background(), seed[i]); err != nil {
			panic(fmt.Sprintf("delivery: invalid seed data: %v", err))
		}
	}
	return s
}

func (s *MemoryStore) Insert(_ context.Context, req models.DeliveryRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.requests[req.ID]; exists {
		return fmt.Errorf("insert %s: %w", req.ID, ErrDuplicateID)
	}
	s.requests[req.ID] = req.Clone()
	s.order = append([]string{req.ID}, s.order...)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.DeliveryRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[id]
	if !ok {
		return models.DeliveryRequest{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return req.Clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, mutate func(*models.DeliveryRequest) error) (models.DeliveryRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.requests[id]
	if !ok {
		return models.DeliveryRequest{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	next := current.Clone()
	if err := mutate(&next); err != nil {
		return models.DeliveryRequest{}, err
	}
	s.requests[id] = next
	return next.Clone(), nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.DeliveryRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DeliveryRequest, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.requests[id].Clone())
	}
	return out, nil
}
