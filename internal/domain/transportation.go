package domain

import "time"

// Transportation is a scheduled land or water route (jeepney line, ferry,
// boat crossing). Land and water transportation share one shape; they are
// distinct kinds upstream and in the cache.
//
// Transportation is the only soft-deleted kind: DeletedAt is set instead
// of removing the row, and guest-facing lists filter deleted records out.
type Transportation struct {
	ID          string `json:"id"`
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Route       string `json:"route" form:"route"`

	// DepartureDays is always a de-duplicated subset of Weekdays and must
	// never be empty: a route without a scheduled day is not a route.
	DepartureDays []string `json:"departure_days" form:"departure_days"`

	// DepartureTime is free text as entered by staff ("08:00 AM", "on demand").
	DepartureTime   string   `json:"departure_time" form:"departure_time"`
	DurationMinutes *int     `json:"duration_minutes" form:"duration_minutes"`
	ExpectedFee     *float64 `json:"expected_fee" form:"expected_fee"`

	ImageURL1 string `json:"image_url_1" form:"image_url_1"`
	ImageURL2 string `json:"image_url_2" form:"image_url_2"`
	ImageURL3 string `json:"image_url_3" form:"image_url_3"`

	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// RecordID returns the backend-assigned identifier.
func (t Transportation) RecordID() string { return t.ID }

// ImageSlots returns the image URL fields in declared order.
func (t Transportation) ImageSlots() []string {
	return []string{t.ImageURL1, t.ImageURL2, t.ImageURL3}
}

// Deleted reports whether the record has been soft-deleted upstream.
func (t Transportation) Deleted() bool { return t.DeletedAt != nil }

// Normalized returns a copy with DepartureDays de-duplicated and non-nil,
// so a record fetched with a null day list still binds to the checkboxes.
func (t Transportation) Normalized() Transportation {
	t.DepartureDays = NormalizeDays(t.DepartureDays)
	return t
}

// Validate checks the transportation record against its schema.
func (t Transportation) Validate() error {
	errs := FieldErrors{}
	requireName(t.Name, errs)
	checkDays(t.DepartureDays, true, errs)
	checkFee("expected_fee", t.ExpectedFee, errs)
	if t.DurationMinutes != nil && *t.DurationMinutes < 0 {
		errs["duration_minutes"] = "must not be negative"
	}
	checkImageSlots(t.ImageSlots(), errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var _ Record[Transportation] = Transportation{}
