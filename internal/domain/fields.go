package domain

import (
	"net/mail"
	"net/url"
	"strings"
)

// Weekdays is the closed set of canonical weekday names, in week order.
// Departure-day fields must always be a de-duplicated subset of this set.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// NormalizeDays de-duplicates days while preserving their input order and
// drops anything outside the canonical weekday set. A nil input yields an
// empty, non-nil slice so the result always binds cleanly to checkboxes.
func NormalizeDays(days []string) []string {
	out := make([]string, 0, len(days))
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		if !IsWeekday(d) || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// IsWeekday reports whether s is one of the seven canonical weekday names.
func IsWeekday(s string) bool {
	for _, d := range Weekdays {
		if d == s {
			return true
		}
	}
	return false
}

// Record is the contract every resource struct satisfies. The type
// parameter is the struct itself, so Normalized can return a copy of the
// concrete type rather than an interface.
type Record[T any] interface {
	// RecordID returns the backend-assigned identifier, empty for a
	// record that has not been created yet.
	RecordID() string

	// Normalized returns a copy with every optional field set to its
	// schema default (empty string, empty slice) instead of absent, so
	// the copy binds to controlled form fields without nil checks.
	Normalized() T

	// Validate checks the record against its schema. It returns nil or
	// a FieldErrors keyed by form field name.
	Validate() error
}

// requireName is the shared rule for the one field every kind requires.
func requireName(name string, errs FieldErrors) {
	if strings.TrimSpace(name) == "" {
		errs["name"] = "name is required"
	}
}

// checkEmail validates an optional email field. Empty is fine; a non-empty
// value must parse as an address.
func checkEmail(field, value string, errs FieldErrors) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		errs[field] = "must be a valid email address"
	}
}

// checkURL validates an optional URL field. Empty is fine; a non-empty
// value must be an absolute http(s) URL.
func checkURL(field, value string, errs FieldErrors) {
	if value == "" {
		return
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs[field] = "must be a valid http or https URL"
	}
}

// checkCoordinates enforces the all-or-nothing rule for an optional
// latitude/longitude pair and the valid geographic ranges.
func checkCoordinates(lat, lng *float64, errs FieldErrors) {
	if lat == nil && lng == nil {
		return
	}
	if lat == nil {
		errs["latitude"] = "latitude is required when longitude is set"
		return
	}
	if lng == nil {
		errs["longitude"] = "longitude is required when latitude is set"
		return
	}
	if *lat < -90 || *lat > 90 {
		errs["latitude"] = "latitude must be between -90 and 90"
	}
	if *lng < -180 || *lng > 180 {
		errs["longitude"] = "longitude must be between -180 and 180"
	}
}

// checkFee rejects negative values for an optional non-negative numeric field.
func checkFee(field string, fee *float64, errs FieldErrors) {
	if fee != nil && *fee < 0 {
		errs[field] = "must not be negative"
	}
}

// checkDays enforces that days is a subset of the canonical weekdays with
// no duplicates, and non-empty when required.
func checkDays(days []string, required bool, errs FieldErrors) {
	if required && len(days) == 0 {
		errs["departure_days"] = "at least one departure day is required"
		return
	}
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		if !IsWeekday(d) {
			errs["departure_days"] = d + " is not a weekday"
			return
		}
		if seen[d] {
			errs["departure_days"] = d + " is listed more than once"
			return
		}
		seen[d] = true
	}
}
