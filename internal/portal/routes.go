package portal

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lakbayan/tourism-portal/internal/auth"
	"github.com/lakbayan/tourism-portal/internal/middleware"
)

// maxBodyBytes caps form submissions; image URLs and text fields never
// come close to this.
const maxBodyBytes = 1 << 20

// Handler assembles the portal's routes and middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	// LoadSession runs before the logger so the request line can carry
	// the signed-in user.
	r.Use(s.auth.LoadSession)
	r.Use(middleware.NewSlogLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(s.corsOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Use(s.flashContext)

	r.Get("/health", s.handleHealth)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// Guest site.
	r.Get("/", s.handleHome)
	r.Get("/destinations", guestList(s, s.services.Destinations, "Destinations"))
	r.Get("/destinations/{id}", guestDetail(s, s.services.Destinations))
	r.Get("/accommodations", guestList(s, s.services.Accommodations, "Places to stay"))
	r.Get("/accommodations/{id}", guestDetail(s, s.services.Accommodations))
	r.Get("/restaurants", guestList(s, s.services.Restaurants, "Where to eat"))
	r.Get("/restaurants/{id}", guestDetail(s, s.services.Restaurants))
	r.Get("/land-transportations", guestList(s, s.services.LandTransportations, "Getting around by land"))
	r.Get("/land-transportations/{id}", guestDetail(s, s.services.LandTransportations))
	r.Get("/water-transportations", guestList(s, s.services.WaterTransportations, "Getting around by water"))
	r.Get("/water-transportations/{id}", guestDetail(s, s.services.WaterTransportations))
	r.Get("/histories", guestList(s, s.services.Histories, "Heritage and history"))
	r.Get("/histories/{id}", guestDetail(s, s.services.Histories))

	// Sign-in.
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	// Staff dashboard.
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireUser)

		r.Get("/", s.handleDashboard)
		r.Get("/settings", s.handleSettings)
		r.Post("/settings/password", s.handleChangePassword)

		mountResource(r, s, s.services.Destinations)
		mountResource(r, s, s.services.Accommodations)
		mountResource(r, s, s.services.Restaurants)
		mountResource(r, s, s.services.LandTransportations)
		mountResource(r, s, s.services.WaterTransportations)
		mountResource(r, s, s.services.Histories)
		mountResource(r, s, s.services.Users)

		r.Get("/ratings", s.handleRatings)
		r.Post("/ratings/{id}/display", s.handleRatingDisplay)
	})

	return r
}

// handleDashboard renders the admin landing page with the section links.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "admin_home", "Dashboard", nil)
}
