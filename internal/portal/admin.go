package portal

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lakbayan/tourism-portal/internal/catalog"
	"github.com/lakbayan/tourism-portal/internal/domain"
	"github.com/lakbayan/tourism-portal/internal/forms"
)

// resource bundles the admin CRUD handlers for one kind. Mounted under
// /admin/{kind} by mountResource; ratings get their own moderation
// handlers instead.
type resource[T domain.Record[T]] struct {
	s   *Server
	svc *catalog.Service[T]
}

// mountResource wires the admin pages for one kind onto the router.
func mountResource[T domain.Record[T]](r chi.Router, s *Server, svc *catalog.Service[T]) {
	res := resource[T]{s: s, svc: svc}
	r.Route("/"+string(svc.Kind()), func(r chi.Router) {
		r.Get("/", res.list)
		r.Get("/new", res.newForm)
		r.Post("/", res.create)
		r.Get("/{id}/edit", res.editForm)
		r.Post("/{id}", res.update)
		if svc.Kind().CanDelete() {
			r.Post("/{id}/delete", res.remove)
		}
	})
}

// adminListView is the data behind every admin table page.
type adminListView struct {
	Heading   string
	Kind      string
	Cards     []card
	CanDelete bool
}

// formView is the data behind the admin create/edit form page.
type formView struct {
	Heading  string
	Kind     string
	Action   string
	Controls []Control
}

func (res resource[T]) basePath() string {
	return "/admin/" + string(res.svc.Kind())
}

func (res resource[T]) list(w http.ResponseWriter, r *http.Request) {
	records, err := res.svc.List(r.Context())
	if err != nil {
		res.s.renderError(w, r, err)
		return
	}

	cards := make([]card, 0, len(records))
	for _, record := range records {
		if gone, ok := any(record).(retired); ok && gone.Deleted() {
			continue
		}
		cards = append(cards, cardOf(record.RecordID(), record))
	}

	heading := "Manage " + string(res.svc.Kind())
	res.s.render(w, r, http.StatusOK, "admin_list", heading, adminListView{
		Heading:   heading,
		Kind:      string(res.svc.Kind()),
		Cards:     cards,
		CanDelete: res.svc.Kind().CanDelete(),
	})
}

func (res resource[T]) newForm(w http.ResponseWriter, r *http.Request) {
	var blank T
	res.renderForm(w, r, http.StatusOK, "New "+res.svc.Kind().Singular(), res.basePath(), blank.Normalized(), nil)
}

func (res resource[T]) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	record, err := forms.BindRecord[T](r.PostForm)
	if err != nil {
		res.renderInvalid(w, r, "New "+res.svc.Kind().Singular(), res.basePath(), record, err)
		return
	}

	if _, err := res.svc.Create(r.Context(), record); err != nil {
		// The service already recorded the failure toast; send the user
		// back to the form to see it.
		http.Redirect(w, r, res.basePath()+"/new", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, res.basePath(), http.StatusSeeOther)
}

func (res resource[T]) editForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := res.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			res.s.renderNotFound(w, r, res.svc.Kind())
			return
		}
		res.s.renderError(w, r, err)
		return
	}
	res.renderForm(w, r, http.StatusOK, "Edit "+res.svc.Kind().Singular(), res.basePath()+"/"+id, record, nil)
}

func (res resource[T]) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	record, err := forms.BindRecord[T](r.PostForm)
	if err != nil {
		res.renderInvalid(w, r, "Edit "+res.svc.Kind().Singular(), res.basePath()+"/"+id, record, err)
		return
	}

	if _, err := res.svc.Update(r.Context(), id, record); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			res.s.renderNotFound(w, r, res.svc.Kind())
			return
		}
		http.Redirect(w, r, res.basePath()+"/"+id+"/edit", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, res.basePath(), http.StatusSeeOther)
}

func (res resource[T]) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := res.svc.Delete(r.Context(), id)
	if errors.Is(err, catalog.ErrDeleteInFlight) {
		setFlash(r.Context(), "error", "That delete is already in progress.")
	}
	// Every other outcome, not-found included, already has its toast
	// from the service.
	http.Redirect(w, r, res.basePath(), http.StatusSeeOther)
}

// renderForm shows the create/edit page for a record.
func (res resource[T]) renderForm(w http.ResponseWriter, r *http.Request, status int, heading, action string, record T, errs domain.FieldErrors) {
	res.s.render(w, r, status, "admin_form", heading, formView{
		Heading:  heading,
		Kind:     string(res.svc.Kind()),
		Action:   action,
		Controls: controlsFor(record, errs),
	})
}

// renderInvalid re-renders the form after a failed bind or validation,
// keeping the submitted values and placing each message by its field.
func (res resource[T]) renderInvalid(w http.ResponseWriter, r *http.Request, heading, action string, record T, err error) {
	var fields domain.FieldErrors
	if !errors.As(err, &fields) {
		res.s.renderError(w, r, err)
		return
	}
	res.renderForm(w, r, http.StatusUnprocessableEntity, heading, action, record, fields)
}

// ---- ratings moderation ----------------------------------------------------

// ratingRow is one line of the moderation table.
type ratingRow struct {
	Rating     domain.Rating
	TogglePath string
}

// handleRatings lists every rating, shown and hidden alike, with its
// visibility toggle.
func (s *Server) handleRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := s.services.Ratings.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	rows := make([]ratingRow, 0, len(ratings))
	for _, rating := range ratings {
		rows = append(rows, ratingRow{
			Rating:     rating,
			TogglePath: "/admin/ratings/" + rating.ID + "/display",
		})
	}
	s.render(w, r, http.StatusOK, "admin_ratings", "Moderate ratings", map[string]any{
		"Rows": rows,
	})
}

// handleRatingDisplay flips a rating's guest-site visibility. Ratings are
// never edited or deleted; this toggle is the whole moderation surface.
func (s *Server) handleRatingDisplay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	display := r.PostFormValue("display") == "true"

	if _, err := s.moderator.SetRatingDisplay(r.Context(), id, display); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.renderNotFound(w, r, domain.KindRatings)
			return
		}
		setFlash(r.Context(), "error", "Failed to update the rating. Please try again.")
		http.Redirect(w, r, "/admin/ratings", http.StatusSeeOther)
		return
	}

	// The toggle bypasses the catalog service, so invalidate its caches here.
	channel := s.services.Ratings.Channel()
	channel.InvalidateList(r.Context())
	channel.InvalidateDetail(r.Context(), id)

	if display {
		setFlash(r.Context(), "success", "Rating is now visible to guests.")
	} else {
		setFlash(r.Context(), "success", "Rating hidden from guests.")
	}
	http.Redirect(w, r, "/admin/ratings", http.StatusSeeOther)
}
