package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakbayan/tourism-portal/internal/backend"
	"github.com/lakbayan/tourism-portal/internal/domain"
)

// newClient wires a Client against an httptest server.
func newClient(t *testing.T, handler http.Handler) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := backend.New(srv.URL, "portal-token")
	require.NoError(t, err)
	return c
}

func TestList_DecodesAndSendsBearer(t *testing.T) {
	var gotAuth string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/destinations", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Destination{{ID: "1", Name: "Falls"}})
	}))

	got, err := backend.List[domain.Destination](context.Background(), c, domain.KindDestinations)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Falls", got[0].Name)
	assert.Equal(t, "Bearer portal-token", gotAuth)
}

func TestList_NullBodyYieldsEmptySlice(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("null"))
	}))

	got, err := backend.List[domain.Destination](context.Background(), c, domain.KindDestinations)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGet_404IsNotFound(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "{}", http.StatusNotFound)
	}))

	_, err := backend.Get[domain.Destination](context.Background(), c, domain.KindDestinations, "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_EmptyBodyIsNotFound(t *testing.T) {
	// The upstream answers missing detail records with 200 and an empty
	// body; the portal must show its not-found branch, not an error page.
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	_, err := backend.Get[domain.Destination](context.Background(), c, domain.KindDestinations, "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_PostsPayloadAndReturnsCreated(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/water-transportations", r.URL.Path)

		var in domain.Transportation
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.ID = "w-1"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(in)
	}))

	fee := 100.0
	payload := domain.Transportation{
		Name:          "Test Ferry",
		ExpectedFee:   &fee,
		DepartureDays: []string{"Monday", "Wednesday"},
		DepartureTime: "08:00 AM",
	}

	created, err := backend.Create(context.Background(), c, domain.KindWaterTransportations, payload)

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"Monday", "Wednesday"}, created.DepartureDays)
}

func TestUpdate_PatchesDetailPath(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/water-transportations/w-1", r.URL.Path)

		var in domain.Transportation
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.ID = "w-1"
		json.NewEncoder(w).Encode(in)
	}))

	fee := 150.0
	updated, err := backend.Update(context.Background(), c, domain.KindWaterTransportations, "w-1",
		domain.Transportation{Name: "Test Ferry", ExpectedFee: &fee, DepartureDays: []string{"Monday"}})

	require.NoError(t, err)
	require.NotNil(t, updated.ExpectedFee)
	assert.Equal(t, 150.0, *updated.ExpectedFee)
}

func TestRemove_IssuesDelete(t *testing.T) {
	var method, path string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, backend.Remove(context.Background(), c, domain.KindRestaurants, "r-9"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/restaurants/r-9", path)
}

func Test422_BecomesFieldErrors(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"code":"validation_error","message":"invalid","fields":{"name":"name is required"}}}`))
	}))

	_, err := backend.Create(context.Background(), c, domain.KindDestinations, domain.Destination{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var fieldErrs domain.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "name is required", fieldErrs["name"])
}

func TestServerError_BecomesStatusError(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))

	_, err := backend.List[domain.Destination](context.Background(), c, domain.KindDestinations)

	var statusErr *backend.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestCancelledContext_AbortsRequest(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := backend.List[domain.Destination](ctx, c, domain.KindDestinations)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetRatingDisplay(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/ratings/rt-3/display", r.URL.Path)

		var body struct {
			Display bool `json:"display"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(domain.Rating{ID: "rt-3", DestinationID: "d-1", Stars: 4, Display: body.Display})
	}))

	rating, err := c.SetRatingDisplay(context.Background(), "rt-3", false)

	require.NoError(t, err)
	assert.False(t, rating.Display)
}

func TestLogin_AndAuthMessages(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)

		var creds backend.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "correct" {
			http.Error(w, "{}", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(backend.LoginResult{
			Token: "user-token",
			User:  domain.User{ID: "u-1", Name: "Admin", Email: "admin@town.gov", Role: "admin"},
		})
	}))

	_, err := c.Login(context.Background(), backend.Credentials{Email: "admin@town.gov", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "Incorrect email or password.", backend.AuthMessage(err))

	result, err := c.Login(context.Background(), backend.Credentials{Email: "admin@town.gov", Password: "correct"})
	require.NoError(t, err)
	assert.Equal(t, "user-token", result.Token)
	assert.Equal(t, "Admin", result.User.Name)
}

func TestAuthMessage_StatusTable(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          "The request could not be processed. Check your input and try again.",
		http.StatusUnauthorized:        "Incorrect email or password.",
		http.StatusTooManyRequests:     "Too many attempts. Please wait a moment and try again.",
		http.StatusInternalServerError: "The server is unavailable right now. Please try again later.",
		http.StatusServiceUnavailable:  "The server is unavailable right now. Please try again later.",
	}
	for code, want := range cases {
		err := &backend.StatusError{Code: code}
		assert.Equal(t, want, backend.AuthMessage(err), "status %d", code)
	}
	assert.Equal(t, "Please fill in every field correctly.",
		backend.AuthMessage(domain.FieldErrors{"email": "email is required"}))
}

func TestWaitReady_RetriesUntilHealthy(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		if calls.Add(1) < 3 {
			http.Error(w, "starting", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	err := c.WaitReady(context.Background(), 10*time.Second)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}
