package portal_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakbayan/tourism-portal/internal/auth"
	"github.com/lakbayan/tourism-portal/internal/backend"
	"github.com/lakbayan/tourism-portal/internal/cache"
	"github.com/lakbayan/tourism-portal/internal/catalog"
	"github.com/lakbayan/tourism-portal/internal/domain"
	"github.com/lakbayan/tourism-portal/internal/portal"
)

// stubBackend is an in-memory catalog.Backend double.
type stubBackend[T domain.Record[T]] struct {
	records map[string]T
	order   []string
	err     error

	created []T
	removed []string
}

func newStubBackend[T domain.Record[T]](records ...T) *stubBackend[T] {
	b := &stubBackend[T]{records: make(map[string]T)}
	for _, r := range records {
		b.records[r.RecordID()] = r
		b.order = append(b.order, r.RecordID())
	}
	return b
}

func (b *stubBackend[T]) List(_ context.Context) ([]T, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make([]T, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.records[id])
	}
	return out, nil
}

func (b *stubBackend[T]) Get(_ context.Context, id string) (T, error) {
	var zero T
	if b.err != nil {
		return zero, b.err
	}
	record, ok := b.records[id]
	if !ok {
		return zero, domain.ErrNotFound
	}
	return record, nil
}

func (b *stubBackend[T]) Create(_ context.Context, payload T) (T, error) {
	var zero T
	if b.err != nil {
		return zero, b.err
	}
	b.created = append(b.created, payload)
	return payload, nil
}

func (b *stubBackend[T]) Update(_ context.Context, id string, payload T) (T, error) {
	var zero T
	if b.err != nil {
		return zero, b.err
	}
	if _, ok := b.records[id]; !ok {
		return zero, domain.ErrNotFound
	}
	b.records[id] = payload
	return payload, nil
}

func (b *stubBackend[T]) Remove(_ context.Context, id string) error {
	if b.err != nil {
		return b.err
	}
	if _, ok := b.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(b.records, id)
	b.removed = append(b.removed, id)
	return nil
}

// stubModerator records display toggles.
type stubModerator struct {
	id      string
	display bool
	err     error
}

func (m *stubModerator) SetRatingDisplay(_ context.Context, id string, display bool) (domain.Rating, error) {
	m.id, m.display = id, display
	return domain.Rating{ID: id, Display: display}, m.err
}

// fixture bundles the handler under test with the doubles behind it.
type fixture struct {
	handler      http.Handler
	destinations *stubBackend[domain.Destination]
	water        *stubBackend[domain.Transportation]
	ratings      *stubBackend[domain.Rating]
	moderator    *stubModerator
	upstream     *httptest.Server
}

func ptr[V any](v V) *V { return &v }

// newFixture builds a full portal over stub backends and a fake auth
// upstream that accepts staff@town.gov / secret.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var creds backend.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Email != "staff@town.gov" || creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"bad credentials"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(backend.LoginResult{
			Token: "staff-token",
			User:  domain.User{ID: "u-1", Name: "Town Staff", Email: creds.Email, Role: "staff"},
		})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.User{ID: "u-1", Name: "Town Staff", Email: "staff@town.gov", Role: "staff"})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	upstream := httptest.NewServer(mux)
	t.Cleanup(upstream.Close)

	client, err := backend.New(upstream.URL, "")
	require.NoError(t, err)
	provider := auth.NewProvider(client)

	f := &fixture{
		destinations: newStubBackend(
			domain.Destination{
				ID: "d-1", Name: "Hidden Falls", Description: "A waterfall at the end of the river trail.",
				Latitude: ptr(10.3), Longitude: ptr(123.9),
				ImageURL2: "https://img.example/falls-wide.jpg",
				ImageURL4: "https://img.example/falls-pool.jpg",
			},
		),
		water: newStubBackend(
			domain.Transportation{
				ID: "w-1", Name: "Morning Ferry", Description: "Daily crossing to the island.",
				DepartureDays: []string{"Monday"}, DepartureTime: "06:00 AM",
			},
			domain.Transportation{
				ID: "w-2", Name: "Retired Pumpboat", Description: "No longer sailing.",
				DepartureDays: []string{"Sunday"}, DeletedAt: ptr(time.Now()),
			},
		),
		ratings: newStubBackend(
			domain.Rating{ID: "rt-1", DestinationID: "d-1", Author: "Ana", Comment: "Lovely spot", Stars: 5, Display: true},
		),
		moderator: &stubModerator{},
		upstream:  upstream,
	}

	services := portal.Services{
		Destinations:         service(t, domain.KindDestinations, f.destinations, log),
		Accommodations:       service(t, domain.KindAccommodations, newStubBackend[domain.Accommodation](), log),
		Restaurants:          service(t, domain.KindRestaurants, newStubBackend[domain.Restaurant](), log),
		LandTransportations:  service(t, domain.KindLandTransportations, newStubBackend[domain.Transportation](), log),
		WaterTransportations: service(t, domain.KindWaterTransportations, f.water, log),
		Histories:            service(t, domain.KindHistories, newStubBackend[domain.History](), log),
		Users:                service(t, domain.KindUsers, newStubBackend[domain.User](), log),
		Ratings:              service(t, domain.KindRatings, f.ratings, log),
	}

	server, err := portal.New(log, provider, services, f.moderator, []string{"http://localhost:5173"})
	require.NoError(t, err)
	f.handler = server.Handler()
	return f
}

func service[T domain.Record[T]](t *testing.T, kind domain.Kind, api catalog.Backend[T], log *slog.Logger) *catalog.Service[T] {
	t.Helper()
	channel := cache.NewChannel[T](kind, cache.NewMemoryStore(), time.Minute, log)
	return catalog.New(kind, api, channel, portal.Notifier{}, log)
}

func (f *fixture) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// login signs the fixture's staff user in and returns the session cookie.
func (f *fixture) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := f.postForm("/login", url.Values{
		"email":    {"staff@town.gov"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.get("/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGuestList_RendersRecords(t *testing.T) {
	f := newFixture(t)
	rec := f.get("/destinations")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hidden Falls")
	assert.Contains(t, rec.Body.String(), "https://img.example/falls-wide.jpg")
}

func TestGuestList_FiltersSoftDeleted(t *testing.T) {
	f := newFixture(t)
	rec := f.get("/water-transportations")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Morning Ferry")
	assert.NotContains(t, rec.Body.String(), "Retired Pumpboat")
}

func TestGuestDetail_RendersGalleryAndFields(t *testing.T) {
	f := newFixture(t)
	rec := f.get("/destinations/d-1")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Hidden Falls")
	// Slot order survives even with gaps between populated slots.
	assert.Contains(t, body, "https://img.example/falls-wide.jpg")
	assert.Contains(t, body, "https://img.example/falls-pool.jpg")
}

func TestGuestDetail_DistanceFromVisitor(t *testing.T) {
	f := newFixture(t)
	rec := f.get("/destinations/d-1?lat=10.3&lng=123.9")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "km away")
}

func TestGuestDetail_IgnoresMalformedCoordinates(t *testing.T) {
	f := newFixture(t)
	rec := f.get("/destinations/d-1?lat=abc&lng=123.9")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "km away")
}

func TestGuestDetail_NotFound(t *testing.T) {
	f := newFixture(t)
	rec := f.get("/destinations/no-such-id")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")
}

func TestGuestDetail_SoftDeletedIsNotFound(t *testing.T) {
	f := newFixture(t)
	rec := f.get("/water-transportations/w-2")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGuestList_UpstreamErrorShowsRetryPage(t *testing.T) {
	f := newFixture(t)
	f.destinations.err = &backend.StatusError{Code: http.StatusBadGateway}

	rec := f.get("/destinations")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Try again")
}

func TestAdmin_RequiresLogin(t *testing.T) {
	f := newFixture(t)
	rec := f.get("/admin/destinations")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLogin_BadPassword(t *testing.T) {
	f := newFixture(t)
	rec := f.postForm("/login", url.Values{
		"email":    {"staff@town.gov"},
		"password": {"wrong"},
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Incorrect email or password.")
	// The email survives the failed attempt.
	assert.Contains(t, rec.Body.String(), "staff@town.gov")
}

func TestLogin_SuccessOpensSession(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t)

	rec := f.get("/admin/settings", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Town Staff")
}

func TestAdminCreate_InvalidInputRendersFieldErrors(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t)

	rec := f.postForm("/admin/destinations", url.Values{
		"name":        {""},
		"description": {"Missing its name"},
	}, cookie)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
	// Submitted values survive the re-render.
	assert.Contains(t, rec.Body.String(), "Missing its name")
	assert.Empty(t, f.destinations.created, "invalid input must not reach the upstream")
}

func TestAdminCreate_Success(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t)

	rec := f.postForm("/admin/destinations", url.Values{
		"name":        {"New Boardwalk"},
		"description": {"Sunset viewing deck by the port."},
	}, cookie)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/destinations", rec.Header().Get("Location"))
	require.Len(t, f.destinations.created, 1)
	assert.Equal(t, "New Boardwalk", f.destinations.created[0].Name)

	// The outcome toast travels on a cookie across the redirect.
	var flash *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "portal_flash" {
			flash = c
		}
	}
	require.NotNil(t, flash, "successful create must set the toast cookie")
}

func TestAdminDelete_Success(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t)

	rec := f.postForm("/admin/water-transportations/w-1/delete", url.Values{}, cookie)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"w-1"}, f.water.removed)
}

func TestAdminRatings_NoDeleteRoute(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t)

	rec := f.postForm("/admin/ratings/rt-1/delete", url.Values{}, cookie)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRatings_ToggleDisplay(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t)

	rec := f.postForm("/admin/ratings/rt-1/display", url.Values{"display": {"false"}}, cookie)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/ratings", rec.Header().Get("Location"))
	assert.Equal(t, "rt-1", f.moderator.id)
	assert.False(t, f.moderator.display)
}

func TestLogout_ClearsSession(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t)

	rec := f.postForm("/logout", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// The session is gone; the dashboard bounces back to login.
	after := f.get("/admin", cookie)
	assert.Equal(t, http.StatusSeeOther, after.Code)
}
