// Package checkout drives the cart-to-order pipeline: snapshot the cart,
// submit the draft, and clear the cart only once the backend confirms.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"vitrine/internal/cart"
	"vitrine/internal/domain"
)

type State string

const (
	Idle       State = "idle"
	Submitting State = "submitting"
	Approved   State = "approved"
	Rejected   State = "rejected"
)

var (
	// ErrEmptyCart is a precondition failure; nothing is sent to the backend.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubmitInFlight means a submission is already running. At-most-one
	// in-flight submission is the caller's responsibility (disable the
	// submit control while Submitting); this error keeps a double-submit
	// loud instead of silently creating duplicate orders.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrTotalMismatch means the backend's recomputed total disagrees with
	// the client-computed one. Never silently corrected.
	ErrTotalMismatch = errors.New("order total mismatch")
)

// SubmissionError classifies network or backend-rejected failures, as
// opposed to precondition failures. The cart is left intact so the caller
// can resubmit.
type SubmissionError struct {
	Cause error
}

func (e *SubmissionError) Error() string { return fmt.Sprintf("order submission failed: %v", e.Cause) }
func (e *SubmissionError) Unwrap() error { return e.Cause }

// CustomerInfo carries the optional contact fields for the order draft.
type CustomerInfo struct {
	Name  string
	Phone string
	Email string
	Notes string
}

// Creator is the slice of the backend client the orchestrator needs.
type Creator interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (domain.Order, error)
}

// Orchestrator consumes the cart store and owns the Idle -> Submitting ->
// {Approved, Rejected} transition for one checkout attempt.
type Orchestrator struct {
	api  Creator
	cart *cart.Store

	mu    sync.Mutex
	state State
}

func NewOrchestrator(api Creator, c *cart.Store) *Orchestrator {
	return &Orchestrator{api: api, cart: c, state: Idle}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Reset returns the orchestrator to Idle after a terminal state, e.g. when
// the caller navigates back to the checkout form.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != Submitting {
		o.state = Idle
	}
}

// Submit snapshots the cart, posts the order draft and, on a confirmed
// success, clears the cart and returns the created order. On any failure
// the cart is untouched and the returned error classifies the cause.
func (o *Orchestrator) Submit(ctx context.Context, info CustomerInfo) (domain.Order, error) {
	o.mu.Lock()
	if o.state == Submitting {
		o.mu.Unlock()
		return domain.Order{}, ErrSubmitInFlight
	}

	// Snapshot under the state lock so the in-flight payload is immune to
	// later cart mutations.
	items := o.cart.Snapshot()
	if len(items) == 0 {
		o.mu.Unlock()
		return domain.Order{}, ErrEmptyCart
	}
	draft := domain.OrderDraft{
		CustomerName:  info.Name,
		CustomerPhone: info.Phone,
		CustomerEmail: info.Email,
		Notes:         info.Notes,
		Items:         items,
		TotalCents:    domain.SumItems(items),
	}
	o.state = Submitting
	o.mu.Unlock()

	ord, err := o.api.CreateOrder(ctx, draft)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state = Rejected
		return domain.Order{}, &SubmissionError{Cause: err}
	}
	if ord.TotalCents != draft.TotalCents {
		o.state = Rejected
		return domain.Order{}, fmt.Errorf("%w: sent %d, backend computed %d",
			ErrTotalMismatch, draft.TotalCents, ord.TotalCents)
	}
	o.state = Approved
	o.cart.Clear()
	return ord, nil
}
