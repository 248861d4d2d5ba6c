// Package testutil provides a fake tourism REST upstream for tests: the
// full collection CRUD surface, the auth endpoints, and seed helpers with
// generated content. Everything lives in memory; nothing survives Close.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lakbayan/tourism-portal/internal/domain"
)

// Default credentials the fake upstream accepts.
const (
	StaffEmail    = "staff@town.gov"
	StaffPassword = "portal-dev"
)

// Upstream is an in-memory stand-in for the tourism API. Records are kept
// as decoded JSON objects so one store serves every kind.
type Upstream struct {
	Server *httptest.Server

	mu       sync.Mutex
	data     map[domain.Kind]map[string]map[string]any
	order    map[domain.Kind][]string
	sessions map[string]bool
	password string
}

// NewUpstream starts the fake upstream. Callers own Server.Close; tests
// usually defer it or register it with t.Cleanup.
func NewUpstream() *Upstream {
	u := &Upstream{
		data:     make(map[domain.Kind]map[string]map[string]any),
		order:    make(map[domain.Kind][]string),
		sessions: make(map[string]bool),
		password: StaffPassword,
	}
	u.Server = httptest.NewServer(u.router())
	return u
}

// Close shuts the fake upstream down.
func (u *Upstream) Close() { u.Server.Close() }

// URL returns the upstream's base URL.
func (u *Upstream) URL() string { return u.Server.URL }

func (u *Upstream) router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/login", u.handleLogin)
	r.Post("/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/auth/me", u.handleMe)
	r.Patch("/auth/change-password", u.handleChangePassword)

	r.Patch("/ratings/{id}/display", u.handleRatingDisplay)

	kinds := []domain.Kind{
		domain.KindDestinations, domain.KindAccommodations, domain.KindRestaurants,
		domain.KindLandTransportations, domain.KindWaterTransportations,
		domain.KindHistories, domain.KindUsers, domain.KindRatings,
	}
	for _, kind := range kinds {
		kind := kind
		r.Route(kind.Path(), func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) { u.handleList(w, r, kind) })
			r.Post("/", func(w http.ResponseWriter, r *http.Request) { u.handleCreate(w, r, kind) })
			r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) { u.handleGet(w, r, kind) })
			r.Patch("/{id}", func(w http.ResponseWriter, r *http.Request) { u.handleUpdate(w, r, kind) })
			r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) { u.handleDelete(w, r, kind) })
		})
	}
	return r
}

// ---- collection handlers ----------------------------------------------------

func (u *Upstream) handleList(w http.ResponseWriter, _ *http.Request, kind domain.Kind) {
	u.mu.Lock()
	records := make([]map[string]any, 0, len(u.order[kind]))
	for _, id := range u.order[kind] {
		if record, ok := u.data[kind][id]; ok {
			records = append(records, record)
		}
	}
	u.mu.Unlock()
	writeJSON(w, http.StatusOK, records)
}

func (u *Upstream) handleGet(w http.ResponseWriter, r *http.Request, kind domain.Kind) {
	u.mu.Lock()
	record, ok := u.data[kind][chi.URLParam(r, "id")]
	u.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, kind.Singular()+" not found")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (u *Upstream) handleCreate(w http.ResponseWriter, r *http.Request, kind domain.Kind) {
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	id := uuid.NewString()
	record["id"] = id
	record["createdAt"] = time.Now().UTC().Format(time.RFC3339)

	u.mu.Lock()
	if u.data[kind] == nil {
		u.data[kind] = make(map[string]map[string]any)
	}
	u.data[kind][id] = record
	u.order[kind] = append(u.order[kind], id)
	u.mu.Unlock()

	writeJSON(w, http.StatusCreated, record)
}

func (u *Upstream) handleUpdate(w http.ResponseWriter, r *http.Request, kind domain.Kind) {
	id := chi.URLParam(r, "id")
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	u.mu.Lock()
	existing, ok := u.data[kind][id]
	if ok {
		record["id"] = id
		record["createdAt"] = existing["createdAt"]
		record["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
		u.data[kind][id] = record
	}
	u.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, kind.Singular()+" not found")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleDelete removes the record, except for transportations, which are
// soft-deleted the way the real upstream does it.
func (u *Upstream) handleDelete(w http.ResponseWriter, r *http.Request, kind domain.Kind) {
	id := chi.URLParam(r, "id")

	u.mu.Lock()
	record, ok := u.data[kind][id]
	if ok {
		if kind == domain.KindLandTransportations || kind == domain.KindWaterTransportations {
			record["deletedAt"] = time.Now().UTC().Format(time.RFC3339)
		} else {
			delete(u.data[kind], id)
		}
	}
	u.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, kind.Singular()+" not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (u *Upstream) handleRatingDisplay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Display bool `json:"display"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	u.mu.Lock()
	record, ok := u.data[domain.KindRatings][id]
	if ok {
		record["display"] = body.Display
	}
	u.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "rating not found")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// ---- auth handlers -----------------------------------------------------------

func (u *Upstream) staffUser() domain.User {
	return domain.User{ID: "user-staff", Name: "Town Staff", Email: StaffEmail, Role: "staff"}
}

func (u *Upstream) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	u.mu.Lock()
	ok := creds.Email == StaffEmail && creds.Password == u.password
	var token string
	if ok {
		token = uuid.NewString()
		u.sessions[token] = true
	}
	u.mu.Unlock()

	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": u.staffUser()})
}

func (u *Upstream) handleMe(w http.ResponseWriter, r *http.Request) {
	if !u.authorized(r) {
		writeError(w, http.StatusUnauthorized, "missing or unknown token")
		return
	}
	writeJSON(w, http.StatusOK, u.staffUser())
}

func (u *Upstream) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if !u.authorized(r) {
		writeError(w, http.StatusUnauthorized, "missing or unknown token")
		return
	}
	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	u.mu.Lock()
	ok := body.CurrentPassword == u.password
	if ok {
		u.password = body.NewPassword
	}
	u.mu.Unlock()

	if !ok {
		writeError(w, http.StatusUnauthorized, "current password is wrong")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (u *Upstream) authorized(r *http.Request) bool {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) <= len(prefix) {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.sessions[header[len(prefix):]]
}

// ---- seeding -----------------------------------------------------------------

// Insert stores record under kind, assigning it a fresh id, and returns
// that id. The record is marshaled through JSON, so domain structs work
// directly.
func (u *Upstream) Insert(kind domain.Kind, record any) string {
	raw, err := json.Marshal(record)
	if err != nil {
		panic("testutil: unmarshalable seed record: " + err.Error())
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		panic("testutil: seed record is not an object: " + err.Error())
	}

	id := uuid.NewString()
	decoded["id"] = id
	decoded["createdAt"] = time.Now().UTC().Format(time.RFC3339)

	u.mu.Lock()
	if u.data[kind] == nil {
		u.data[kind] = make(map[string]map[string]any)
	}
	u.data[kind][id] = decoded
	u.order[kind] = append(u.order[kind], id)
	u.mu.Unlock()
	return id
}

// SeedDestination inserts a generated destination and returns it with its
// assigned id.
func (u *Upstream) SeedDestination() domain.Destination {
	d := domain.Destination{
		Name:        gofakeit.City(),
		Description: gofakeit.Sentence(12),
		Address:     gofakeit.Address().Address,
		Latitude:    ptr(gofakeit.Latitude()),
		Longitude:   ptr(gofakeit.Longitude()),
		EntranceFee: ptr(float64(gofakeit.Number(0, 200))),
		ImageURL1:   gofakeit.URL(),
		ImageURL2:   gofakeit.URL(),
	}
	d.ID = u.Insert(domain.KindDestinations, d)
	return d
}

// SeedTransportation inserts a generated route under kind, which must be
// one of the two transportation kinds.
func (u *Upstream) SeedTransportation(kind domain.Kind) domain.Transportation {
	t := domain.Transportation{
		Name:          gofakeit.Company() + " Line",
		Description:   gofakeit.Sentence(10),
		Route:         gofakeit.City() + " to " + gofakeit.City(),
		DepartureDays: []string{"Monday", "Wednesday", "Friday"},
		DepartureTime: "07:30 AM",
		ExpectedFee:   ptr(float64(gofakeit.Number(10, 500))),
	}
	t.ID = u.Insert(kind, t)
	return t
}

// SeedRating inserts a generated rating for the destination.
func (u *Upstream) SeedRating(destinationID string) domain.Rating {
	rt := domain.Rating{
		DestinationID: destinationID,
		Author:        gofakeit.Name(),
		Comment:       gofakeit.Sentence(8),
		Stars:         gofakeit.Number(1, 5),
		Display:       true,
	}
	rt.ID = u.Insert(domain.KindRatings, rt)
	return rt
}

func ptr[V any](v V) *V { return &v }

// ---- response helpers ----------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError answers with the upstream's error envelope, the shape the
// portal client parses.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    http.StatusText(status),
			"message": message,
		},
	})
}
