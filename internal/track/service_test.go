package track_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/internal/domain"
	"vitrine/internal/track"
)

type fakeFetcher struct {
	out domain.Order
	err error
}

func (f *fakeFetcher) GetOrder(_ context.Context, _ string) (domain.Order, error) {
	return f.out, f.err
}

func TestGetStatus_ReturnsOrderAndCachesLast(t *testing.T) {
	svc := track.NewService(&fakeFetcher{out: domain.Order{ID: "ord-1", Status: domain.StatusApproved}})

	_, ok := svc.Last()
	assert.False(t, ok, "no cache before first fetch")

	o, err := svc.GetStatus(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, o.Status)

	last, ok := svc.Last()
	require.True(t, ok)
	assert.Equal(t, "ord-1", last.ID)
}

func TestGetStatus_FetchFailureIsUnavailableNotRejected(t *testing.T) {
	svc := track.NewService(&fakeFetcher{err: errors.New("connection reset")})

	_, err := svc.GetStatus(context.Background(), "ord-1")
	require.ErrorIs(t, err, track.ErrStatusUnavailable)

	_, ok := svc.Last()
	assert.False(t, ok, "failed fetch must not populate the cache")
}

func TestGetStatus_RejectedOrderIsNotAnError(t *testing.T) {
	svc := track.NewService(&fakeFetcher{out: domain.Order{ID: "ord-2", Status: domain.StatusRejected}})

	o, err := svc.GetStatus(context.Background(), "ord-2")
	require.NoError(t, err, "a business-rejected order is a legitimate status")
	assert.Equal(t, domain.StatusRejected, o.Status)
}
