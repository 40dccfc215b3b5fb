package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/internal/api"
	"vitrine/internal/cart"
	"vitrine/internal/checkout"
	"vitrine/internal/domain"
)

type fakeCreator struct {
	calls   int
	lastIn  domain.OrderDraft
	out     domain.Order
	err     error
	block   chan struct{} // when set, CreateOrder waits until closed
	started chan struct{}
}

func (f *fakeCreator) CreateOrder(_ context.Context, draft domain.OrderDraft) (domain.Order, error) {
	f.calls++
	f.lastIn = draft
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return domain.Order{}, f.err
	}
	out := f.out
	if out.TotalCents == 0 {
		out.TotalCents = draft.TotalCents
	}
	return out, nil
}

func seededCart() *cart.Store {
	c := cart.NewStore()
	c.AddItem(domain.Product{ID: "moka-3cup", Name: "Moka Pot 3-Cup", PriceCents: 2990}, 2)
	c.AddItem(domain.Product{ID: "cup-terra", Name: "Terracotta Cup", PriceCents: 1500}, 1)
	return c
}

func TestSubmit_EmptyCartIsPreconditionFailure(t *testing.T) {
	creator := &fakeCreator{}
	o := checkout.NewOrchestrator(creator, cart.NewStore())

	_, err := o.Submit(context.Background(), checkout.CustomerInfo{})
	require.ErrorIs(t, err, checkout.ErrEmptyCart)
	assert.Equal(t, 0, creator.calls, "empty cart must never reach the backend")
	assert.Equal(t, checkout.Idle, o.State())
}

func TestSubmit_SuccessClearsCart(t *testing.T) {
	creator := &fakeCreator{out: domain.Order{
		ID:          "ord-1",
		Status:      domain.StatusPending,
		PaymentCode: "VITRINE1|ord-1|74.80|TOKEN",
	}}
	c := seededCart()
	o := checkout.NewOrchestrator(creator, c)

	ord, err := o.Submit(context.Background(), checkout.CustomerInfo{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	assert.Equal(t, checkout.Approved, o.State())
	assert.Equal(t, domain.StatusPending, ord.Status)
	assert.NotEmpty(t, ord.PaymentCode)
	assert.Equal(t, 0, c.Len(), "cart cleared only after confirmed success")

	// Draft carried the snapshot and the client-computed total
	assert.Equal(t, int64(7480), creator.lastIn.TotalCents)
	require.Len(t, creator.lastIn.Items, 2)
	assert.Equal(t, "Ana", creator.lastIn.CustomerName)
}

func TestSubmit_BackendRejectionPreservesCart(t *testing.T) {
	creator := &fakeCreator{err: &api.StatusError{Code: 500, Body: "boom"}}
	c := seededCart()
	o := checkout.NewOrchestrator(creator, c)

	_, err := o.Submit(context.Background(), checkout.CustomerInfo{})
	require.Error(t, err)

	var subErr *checkout.SubmissionError
	require.ErrorAs(t, err, &subErr, "backend failure is a submission error, not a precondition")
	assert.NotErrorIs(t, err, checkout.ErrEmptyCart)
	assert.Equal(t, checkout.Rejected, o.State())
	assert.Equal(t, 2, c.Len(), "cart state preserved for resubmission")
	assert.Equal(t, int64(7480), c.TotalCents())
}

func TestSubmit_TotalMismatchIsRejected(t *testing.T) {
	creator := &fakeCreator{out: domain.Order{ID: "ord-2", Status: domain.StatusPending, TotalCents: 9999}}
	c := seededCart()
	o := checkout.NewOrchestrator(creator, c)

	_, err := o.Submit(context.Background(), checkout.CustomerInfo{})
	require.ErrorIs(t, err, checkout.ErrTotalMismatch)
	assert.Equal(t, checkout.Rejected, o.State())
	assert.Equal(t, 2, c.Len(), "mismatch must not clear the cart")
}

func TestSubmit_SnapshotImmuneToLaterCartMutation(t *testing.T) {
	creator := &fakeCreator{}
	c := seededCart()
	o := checkout.NewOrchestrator(creator, c)

	creator.block = make(chan struct{})
	creator.started = make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = o.Submit(context.Background(), checkout.CustomerInfo{})
	}()
	<-creator.started

	// Mutate the cart while the submission is in flight
	c.AddItem(domain.Product{ID: "beans-750", PriceCents: 4200}, 1)
	close(creator.block)
	<-done

	require.Len(t, creator.lastIn.Items, 2, "in-flight payload must not see later mutations")
	assert.Equal(t, int64(7480), creator.lastIn.TotalCents)
}

func TestSubmit_SecondSubmitWhileInFlightIsRejected(t *testing.T) {
	creator := &fakeCreator{block: make(chan struct{}), started: make(chan struct{})}
	o := checkout.NewOrchestrator(creator, seededCart())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = o.Submit(context.Background(), checkout.CustomerInfo{})
	}()
	<-creator.started
	assert.Equal(t, checkout.Submitting, o.State())

	_, err := o.Submit(context.Background(), checkout.CustomerInfo{})
	require.ErrorIs(t, err, checkout.ErrSubmitInFlight)

	close(creator.block)
	<-done
	assert.Equal(t, 1, creator.calls)
}

func TestReset_ReturnsToIdleFromTerminalStates(t *testing.T) {
	creator := &fakeCreator{err: errors.New("down")}
	o := checkout.NewOrchestrator(creator, seededCart())

	_, _ = o.Submit(context.Background(), checkout.CustomerInfo{})
	require.Equal(t, checkout.Rejected, o.State())

	o.Reset()
	assert.Equal(t, checkout.Idle, o.State())
}
