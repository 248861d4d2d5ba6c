// Package forms binds submitted url.Values onto resource structs using
// their `form:` tags. Binding is the first half of the submit flow; the
// second half is the struct's own Validate. Both halves report
// domain.FieldErrors keyed by form field name, so a handler can merge
// them and render every message next to its control.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/lakbayan/tourism-portal/internal/domain"
)

// Bind populates target, a pointer to a struct with `form:` tags, from
// input. Numeric coercion treats an empty string as the zero value for
// value fields and as nil for pointer fields; malformed digits become a
// field error. Unknown input keys are ignored.
//
// Bind never issues any network call; a non-nil return means the submit
// must be aborted and the form re-rendered.
func Bind(input url.Values, target any) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Pointer || val.IsNil() || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("forms.Bind: target must be a non-nil struct pointer, got %T", target)
	}

	errs := domain.FieldErrors{}
	v := val.Elem()
	vType := v.Type()

	for i := 0; i < v.NumField(); i++ {
		name := vType.Field(i).Tag.Get("form")
		if name == "" || name == "-" {
			continue
		}
		values, exists := input[name]
		if !exists {
			continue
		}
		bindField(name, values, v.Field(i), errs)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// bindField coerces the submitted values onto one struct field.
func bindField(name string, values []string, field reflect.Value, errs domain.FieldErrors) {
	// Multi-value fields (weekday checkboxes) take every submitted value;
	// everything else takes the first.
	if field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String {
		kept := make([]string, 0, len(values))
		for _, v := range values {
			if s := strings.TrimSpace(v); s != "" {
				kept = append(kept, s)
			}
		}
		field.Set(reflect.ValueOf(kept))
		return
	}

	raw := strings.TrimSpace(values[0])

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Bool:
		// Checkboxes submit "on"; selects submit "true"/"false".
		field.SetBool(raw == "true" || raw == "on" || raw == "1")

	case reflect.Int:
		if raw == "" {
			field.SetInt(0)
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs[name] = "must be a whole number"
			return
		}
		field.SetInt(int64(n))

	case reflect.Float64:
		if raw == "" {
			field.SetFloat(0)
			return
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs[name] = "must be a number"
			return
		}
		field.SetFloat(f)

	case reflect.Pointer:
		bindPointer(name, raw, field, errs)
	}
}

// bindPointer handles optional numeric fields: empty input means null,
// anything else must parse.
func bindPointer(name, raw string, field reflect.Value, errs domain.FieldErrors) {
	if raw == "" {
		field.SetZero()
		return
	}
	switch field.Type().Elem().Kind() {
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs[name] = "must be a number"
			return
		}
		field.Set(reflect.ValueOf(&f))
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs[name] = "must be a whole number"
			return
		}
		field.Set(reflect.ValueOf(&n))
	}
}

// BindRecord binds input onto a fresh record of type T, normalizes it,
// and validates it. This is the whole client-side half of a create or
// edit submit: on any error the caller re-renders with the partially
// bound record so no entered data is lost.
func BindRecord[T domain.Record[T]](input url.Values) (T, error) {
	var record T
	bindErr := Bind(input, &record)
	record = record.Normalized()

	if bindErr != nil {
		// Merge coercion errors with whatever validation finds on the
		// fields that did bind.
		merged := domain.FieldErrors{}
		var bindFields domain.FieldErrors
		if errors.As(bindErr, &bindFields) {
			for k, v := range bindFields {
				merged[k] = v
			}
		}
		if valErr := record.Validate(); valErr != nil {
			var valFields domain.FieldErrors
			if errors.As(valErr, &valFields) {
				for k, v := range valFields {
					if _, taken := merged[k]; !taken {
						merged[k] = v
					}
				}
			}
		}
		return record, merged
	}

	if err := record.Validate(); err != nil {
		return record, err
	}
	return record, nil
}
