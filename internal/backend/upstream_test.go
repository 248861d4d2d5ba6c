package backend_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakbayan/tourism-portal/internal/backend"
	"github.com/lakbayan/tourism-portal/internal/domain"
	"github.com/lakbayan/tourism-portal/internal/testutil"
)

// These tests run the real client against the fake upstream, covering the
// whole request path: routing, auth headers, JSON codec, error envelope.

func newUpstreamClient(t *testing.T) (*testutil.Upstream, *backend.Client) {
	t.Helper()
	upstream := testutil.NewUpstream()
	t.Cleanup(upstream.Close)

	client, err := backend.New(upstream.URL(), "")
	require.NoError(t, err)
	return upstream, client
}

func TestUpstream_DestinationRoundTrip(t *testing.T) {
	upstream, client := newUpstreamClient(t)
	ctx := context.Background()

	seeded := upstream.SeedDestination()

	listed, err := backend.List[domain.Destination](ctx, client, domain.KindDestinations)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, seeded.ID, listed[0].ID)
	assert.Equal(t, seeded.Name, listed[0].Name)

	fetched, err := backend.Get[domain.Destination](ctx, client, domain.KindDestinations, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Name, fetched.Name)
	require.NotNil(t, fetched.Latitude)
	assert.InDelta(t, *seeded.Latitude, *fetched.Latitude, 0.000001)

	fetched.Name = "Renamed Cove"
	updated, err := backend.Update(ctx, client, domain.KindDestinations, seeded.ID, fetched)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Cove", updated.Name)
	assert.NotNil(t, updated.UpdatedAt)

	require.NoError(t, backend.Remove(ctx, client, domain.KindDestinations, seeded.ID))

	_, err = backend.Get[domain.Destination](ctx, client, domain.KindDestinations, seeded.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpstream_TransportationSoftDelete(t *testing.T) {
	upstream, client := newUpstreamClient(t)
	ctx := context.Background()

	seeded := upstream.SeedTransportation(domain.KindWaterTransportations)
	require.NoError(t, backend.Remove(ctx, client, domain.KindWaterTransportations, seeded.ID))

	// Soft delete: the record still lists, flagged instead of gone.
	listed, err := backend.List[domain.Transportation](ctx, client, domain.KindWaterTransportations)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Deleted())
}

func TestUpstream_RatingDisplayToggle(t *testing.T) {
	upstream, client := newUpstreamClient(t)
	ctx := context.Background()

	destination := upstream.SeedDestination()
	rating := upstream.SeedRating(destination.ID)
	require.True(t, rating.Display)

	hidden, err := client.SetRatingDisplay(ctx, rating.ID, false)
	require.NoError(t, err)
	assert.False(t, hidden.Display)

	fetched, err := backend.Get[domain.Rating](ctx, client, domain.KindRatings, rating.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Display)
}

func TestUpstream_AuthFlow(t *testing.T) {
	_, client := newUpstreamClient(t)
	ctx := context.Background()

	_, err := client.Login(ctx, backend.Credentials{Email: testutil.StaffEmail, Password: "wrong"})
	require.Error(t, err)
	var statusErr *backend.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 401, statusErr.Code)

	result, err := client.Login(ctx, backend.Credentials{Email: testutil.StaffEmail, Password: testutil.StaffPassword})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, testutil.StaffEmail, result.User.Email)

	authed := client.WithToken(result.Token)
	me, err := authed.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, me.ID)

	require.NoError(t, authed.ChangePassword(ctx, testutil.StaffPassword, "rotated"))

	_, err = client.Login(ctx, backend.Credentials{Email: testutil.StaffEmail, Password: testutil.StaffPassword})
	require.Error(t, err, "old password must stop working")

	_, err = client.Login(ctx, backend.Credentials{Email: testutil.StaffEmail, Password: "rotated"})
	require.NoError(t, err)
}

func TestUpstream_WaitReady(t *testing.T) {
	_, client := newUpstreamClient(t)

	require.NoError(t, client.WaitReady(context.Background(), 2*time.Second))
}
