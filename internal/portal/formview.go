package portal

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/lakbayan/tourism-portal/internal/domain"
)

// Control is one rendered form input on an admin create/edit page. The
// form template switches on Kind; everything else is presentation data.
type Control struct {
	Name    string
	Label   string
	Kind    string // text, textarea, number, checkbox, select, checkboxes
	Value   string
	Values  []string // checked values when Kind is "checkboxes"
	Options []string
	Error   string
}

// selectOptions maps form fields rendered as a select to their closed
// option sets.
var selectOptions = map[string][]string{
	"type": domain.AccommodationTypes,
	"role": domain.UserRoles,
}

// checkboxOptions maps multi-value form fields to their option sets.
var checkboxOptions = map[string][]string{
	"departure_days": domain.Weekdays,
}

// textareaFields are long-text fields rendered as a textarea.
var textareaFields = map[string]bool{
	"description": true,
	"comment":     true,
}

// controlsFor builds the form controls for a record from its `form:` tags,
// pre-filled with the record's current values and annotated with the field
// errors from the last submit.
func controlsFor(record any, errs domain.FieldErrors) []Control {
	v := reflect.ValueOf(record)
	t := v.Type()

	var controls []Control
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("form")
		if name == "" || name == "-" {
			continue
		}

		ctl := Control{Name: name, Label: labelFor(name), Error: errs[name]}
		field := v.Field(i)

		switch {
		case checkboxOptions[name] != nil:
			ctl.Kind = "checkboxes"
			ctl.Options = checkboxOptions[name]
			ctl.Values = stringSlice(field)
		case selectOptions[name] != nil:
			ctl.Kind = "select"
			ctl.Options = selectOptions[name]
			ctl.Value = field.String()
		case field.Kind() == reflect.Bool:
			ctl.Kind = "checkbox"
			if field.Bool() {
				ctl.Value = "true"
			}
		case textareaFields[name]:
			ctl.Kind = "textarea"
			ctl.Value = field.String()
		case isNumeric(field):
			ctl.Kind = "number"
			ctl.Value = formatValue(field)
		default:
			ctl.Kind = "text"
			ctl.Value = field.String()
		}

		controls = append(controls, ctl)
	}
	return controls
}

// Checked reports whether option is among the control's checked values.
// Called from the form template.
func (c Control) Checked(option string) bool {
	for _, v := range c.Values {
		if v == option {
			return true
		}
	}
	return false
}

func stringSlice(field reflect.Value) []string {
	if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.String {
		return nil
	}
	out := make([]string, field.Len())
	for i := range out {
		out[i] = field.Index(i).String()
	}
	return out
}

func isNumeric(field reflect.Value) bool {
	kind := field.Kind()
	if kind == reflect.Pointer {
		kind = field.Type().Elem().Kind()
	}
	return kind == reflect.Int || kind == reflect.Float64
}

// atoiDefault parses a query-parameter integer, falling back when absent
// or malformed.
func atoiDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
