// Package track retrieves and represents current order status.
package track

import (
	"context"
	"fmt"
	"sync"

	"vitrine/internal/domain"
)

// ErrStatusUnavailable marks a transport or backend fetch failure. It is
// deliberately distinct from an order whose business status is rejected.
var ErrStatusUnavailable = fmt.Errorf("order status unavailable")

// Fetcher is the slice of the backend client the service needs.
type Fetcher interface {
	GetOrder(ctx context.Context, id string) (domain.Order, error)
}

// Service is a pure read contract with a single most-recent-fetch cache.
type Service struct {
	api Fetcher

	mu   sync.Mutex
	last *domain.Order
}

func NewService(api Fetcher) *Service { return &Service{api: api} }

// GetStatus fetches the current order representation. Fetch failures are
// reported as status-unavailable, never conflated with a rejected order.
func (s *Service) GetStatus(ctx context.Context, orderID string) (domain.Order, error) {
	o, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: %v", ErrStatusUnavailable, err)
	}
	s.mu.Lock()
	s.last = &o
	s.mu.Unlock()
	return o, nil
}

// Last returns the most recently fetched order, if any.
func (s *Service) Last() (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return domain.Order{}, false
	}
	return *s.last, true
}
