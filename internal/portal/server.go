// Package portal is the HTTP surface of the tourism site: the public pages
// guests browse and the admin dashboard staff manage content through. It
// renders server-side templates over the catalog services and owns no
// domain logic of its own.
package portal

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/lakbayan/tourism-portal/internal/auth"
	"github.com/lakbayan/tourism-portal/internal/catalog"
	"github.com/lakbayan/tourism-portal/internal/domain"
)

// RatingModerator toggles a rating's guest-site visibility upstream.
// Satisfied by *backend.Client; portal tests inject a fake.
type RatingModerator interface {
	SetRatingDisplay(ctx context.Context, id string, display bool) (domain.Rating, error)
}

// Services bundles the per-kind catalog services the portal renders.
type Services struct {
	Destinations         *catalog.Service[domain.Destination]
	Accommodations       *catalog.Service[domain.Accommodation]
	Restaurants          *catalog.Service[domain.Restaurant]
	LandTransportations  *catalog.Service[domain.Transportation]
	WaterTransportations *catalog.Service[domain.Transportation]
	Histories            *catalog.Service[domain.History]
	Users                *catalog.Service[domain.User]
	Ratings              *catalog.Service[domain.Rating]
}

// Server holds everything the handlers need. Construct with New, mount
// with Handler.
type Server struct {
	log         *slog.Logger
	auth        *auth.Provider
	services    Services
	moderator   RatingModerator
	corsOrigins []string
	tmpl        *template.Template
}

// New builds the portal server. Template parsing happens here, so a broken
// template fails at startup rather than on first render.
func New(log *slog.Logger, provider *auth.Provider, services Services, moderator RatingModerator, corsOrigins []string) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Server{
		log:         log,
		auth:        provider,
		services:    services,
		moderator:   moderator,
		corsOrigins: corsOrigins,
		tmpl:        tmpl,
	}, nil
}

// handleHealth reports portal liveness for the container orchestrator.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
