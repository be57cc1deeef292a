package form

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
)

// Submitter sends a resolved form to the backend. Invalid forms never reach
// the network, and only one submission runs at a time.
type Submitter struct {
	api      ports.ServiceAPI
	inFlight atomic.Bool
}

func NewSubmitter(api ports.ServiceAPI) *Submitter {
	return &Submitter{api: api}
}

// Submitting reports whether a submission is currently running.
func (s *Submitter) Submitting() bool {
	return s.inFlight.Load()
}

// Submit validates the form and creates the service, or the recurring
// schedule for the recurring variant. Validation failures are returned as
// FieldErrors without calling the backend.
func (s *Submitter) Submit(ctx context.Context, r *Resolver) (*domain.Service, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer s.inFlight.Store(false)

	if r.Config().Variant == VariantRecurring {
		p, err := r.RecurringPayload()
		if err != nil {
			return nil, err
		}
		svc, err := s.api.CreateRecurringService(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("create recurring service: %w", err)
		}
		return svc, nil
	}

	p, err := r.Payload()
	if err != nil {
		return nil, err
	}
	svc, err := s.api.CreateService(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}
