package portal

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lakbayan/tourism-portal/internal/catalog"
	"github.com/lakbayan/tourism-portal/internal/domain"
	"github.com/lakbayan/tourism-portal/internal/gallery"
	"github.com/lakbayan/tourism-portal/internal/geo"
)

// handleHome renders the landing page with the destination highlights.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	destinations, err := s.services.Destinations.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	cards := make([]card, 0, len(destinations))
	for _, d := range destinations {
		cards = append(cards, cardOf(d.RecordID(), d))
	}
	s.render(w, r, http.StatusOK, "home", "Discover the town", map[string]any{
		"Cards": cards,
	})
}

// listView is the data every guest list page renders.
type listView struct {
	Heading string
	Kind    string
	Cards   []card
}

// guestList serves the public collection page for one kind. Soft-deleted
// records never reach the page.
func guestList[T domain.Record[T]](s *Server, svc *catalog.Service[T], heading string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.List(r.Context())
		if err != nil {
			s.renderError(w, r, err)
			return
		}

		cards := make([]card, 0, len(records))
		for _, record := range records {
			if gone, ok := any(record).(retired); ok && gone.Deleted() {
				continue
			}
			cards = append(cards, cardOf(record.RecordID(), record))
		}

		s.render(w, r, http.StatusOK, "list", heading, listView{
			Heading: heading,
			Kind:    string(svc.Kind()),
			Cards:   cards,
		})
	}
}

// detailView is the data the guest detail page renders.
type detailView struct {
	Kind     string
	Card     card
	Fields   []fieldRow
	Gallery  gallery.Preview
	Distance string
	BackPath string
}

// guestDetail serves the public detail page for one record: the gallery
// over its image slots, its remaining fields, and the
// distance-from-visitor figure when the browser shared coordinates.
func guestDetail[T domain.Record[T]](s *Server, svc *catalog.Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		record, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.renderNotFound(w, r, svc.Kind())
				return
			}
			s.renderError(w, r, err)
			return
		}
		if gone, ok := any(record).(retired); ok && gone.Deleted() {
			s.renderNotFound(w, r, svc.Kind())
			return
		}

		view := detailView{
			Kind:     string(svc.Kind()),
			Card:     cardOf(id, record),
			Fields:   fieldRows(record),
			BackPath: svc.Kind().Path(),
		}
		if ill, ok := any(record).(illustrated); ok {
			view.Gallery = gallery.New(ill.ImageSlots()).Select(atoiDefault(r.URL.Query().Get("image"), 0))
		}
		view.Distance = distanceFrom(r, record)

		s.render(w, r, http.StatusOK, "detail", view.Card.Name, view)
	}
}

// distanceFrom computes the visitor-to-record distance when the record is
// geotagged and the request carries valid lat/lng query parameters.
// Anything missing or malformed yields an empty string, never an error page.
func distanceFrom(r *http.Request, record any) string {
	pos, ok := record.(positioned)
	if !ok {
		return ""
	}
	lat, lng := pos.Position()
	if lat == nil || lng == nil {
		return ""
	}

	q := r.URL.Query()
	visitorLat, err1 := strconv.ParseFloat(q.Get("lat"), 64)
	visitorLng, err2 := strconv.ParseFloat(q.Get("lng"), 64)
	if err1 != nil || err2 != nil {
		return ""
	}
	if geo.ParseCoordinates(visitorLat, visitorLng) != nil {
		return ""
	}

	return fmt.Sprintf("%.1f km away", geo.DistanceKm(visitorLat, visitorLng, *lat, *lng))
}
