package portal

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/lakbayan/tourism-portal/internal/auth"
	"github.com/lakbayan/tourism-portal/internal/domain"
	"github.com/lakbayan/tourism-portal/internal/gallery"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// parseTemplates loads every page template from the embedded set.
func parseTemplates() (*template.Template, error) {
	return template.New("portal").ParseFS(templateFS, "templates/*.html")
}

// page is the view model every template receives.
type page struct {
	Title string
	User  *domain.User
	Flash *Flash
	Data  any
}

// render executes the named template into a buffer first, so a template
// failure becomes a clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	p := page{Title: title, Data: data, Flash: popFlash(w, r)}
	if user, ok := auth.CurrentUser(r.Context()); ok {
		p.User = &user
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, p); err != nil {
		s.log.Error("template render failed", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError is the page shown when an upstream fetch fails. It carries a
// retry affordance (the link back to the same URL) rather than retrying
// server-side.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("page fetch failed", "path", r.URL.Path, "error", err)
	s.render(w, r, http.StatusBadGateway, "error", "Something went wrong", map[string]string{
		"RetryPath": r.URL.RequestURI(),
	})
}

// renderNotFound is the page shown when a record genuinely does not exist.
// Distinct from renderError: there is nothing to retry.
func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request, kind domain.Kind) {
	s.render(w, r, http.StatusNotFound, "notfound", "Not found", map[string]string{
		"Singular": kind.Singular(),
	})
}

// ---- view models ---------------------------------------------------------

// illustrated is satisfied by every kind that declares image slots.
type illustrated interface{ ImageSlots() []string }

// positioned is satisfied by geotagged kinds.
type positioned interface{ Position() (lat, lng *float64) }

// retired is satisfied by soft-deleted kinds.
type retired interface{ Deleted() bool }

// card is the list-page summary of one record.
type card struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
}

// cardOf summarizes any record into a card. Name and Description are read
// structurally so one template serves every kind.
func cardOf(id string, record any) card {
	c := card{ID: id, ImageURL: gallery.FallbackURL}
	v := reflect.ValueOf(record)
	if f := v.FieldByName("Name"); f.IsValid() && f.Kind() == reflect.String {
		c.Name = f.String()
	}
	if f := v.FieldByName("Description"); f.IsValid() && f.Kind() == reflect.String {
		c.Description = f.String()
	}
	if ill, ok := record.(illustrated); ok {
		if preview := gallery.New(ill.ImageSlots()); !preview.Empty() {
			c.ImageURL = preview.Images[0].URL
		}
	}
	return c
}

// fieldRow is one label/value line on a detail page.
type fieldRow struct {
	Label string
	Value string
}

// fieldRows extracts the remaining form-tagged fields of a record for the
// detail page, skipping the ones the page renders specially (name,
// description, image slots) and everything left empty.
func fieldRows(record any) []fieldRow {
	v := reflect.ValueOf(record)
	t := v.Type()

	var rows []fieldRow
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("form")
		if tag == "" || tag == "-" || tag == "name" || tag == "description" || strings.HasPrefix(tag, "image_url") {
			continue
		}
		value := formatValue(v.Field(i))
		if value == "" {
			continue
		}
		rows = append(rows, fieldRow{Label: labelFor(tag), Value: value})
	}
	return rows
}

// labelFor turns a form field name into its display label
// ("expected_fee" -> "Expected fee").
func labelFor(tag string) string {
	label := strings.ReplaceAll(tag, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// formatValue renders one struct field for display. Nil pointers and empty
// values render as "" and are dropped by the caller.
func formatValue(field reflect.Value) string {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return ""
		}
		field = field.Elem()
	}
	switch field.Kind() {
	case reflect.String:
		return field.String()
	case reflect.Bool:
		if field.Bool() {
			return "Yes"
		}
		return "No"
	case reflect.Int:
		return strconv.FormatInt(field.Int(), 10)
	case reflect.Float64:
		return strconv.FormatFloat(field.Float(), 'f', -1, 64)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := make([]string, field.Len())
			for i := 0; i < field.Len(); i++ {
				parts[i] = field.Index(i).String()
			}
			return strings.Join(parts, ", ")
		}
	}
	return ""
}
