package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned by the backend client and catalog services when
// the requested record does not exist upstream.
// The portal maps this to its dedicated not-found page, never to the
// generic error page.
var ErrNotFound = errors.New("not found")

// ErrValidation is the sentinel all schema validation failures wrap.
// Handlers should re-render the form with inline messages instead of
// issuing any network call.
var ErrValidation = errors.New("validation error")

// FieldErrors maps a field name to a human-readable validation message.
// It satisfies error and matches ErrValidation under errors.Is, so callers
// can branch on the sentinel without losing per-field detail.
type FieldErrors map[string]string

// Error joins the messages in field order for logs and plain-text output.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(e))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Is reports a match against ErrValidation so errors.Is works on wrapped
// FieldErrors values.
func (e FieldErrors) Is(target error) bool {
	return target == ErrValidation
}
