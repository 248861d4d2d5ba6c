package domain

import "time"

// Rating is a guest comment with a star score, attached to a destination.
// Ratings are moderated, not edited: the dashboard only toggles Display.
// There is no delete route upstream, so Kind.CanDelete is false for ratings.
type Rating struct {
	ID            string `json:"id"`
	DestinationID string `json:"destination_id" form:"destination_id"`
	Author        string `json:"author" form:"author"`
	Comment       string `json:"comment" form:"comment"`
	Stars         int    `json:"stars" form:"stars"`

	// Display controls guest-site visibility; hidden ratings stay stored.
	Display bool `json:"display" form:"display"`

	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// RecordID returns the backend-assigned identifier.
func (r Rating) RecordID() string { return r.ID }

// Normalized returns a copy ready for form binding.
func (r Rating) Normalized() Rating { return r }

// Validate checks the rating against its schema.
func (r Rating) Validate() error {
	errs := FieldErrors{}
	if r.DestinationID == "" {
		errs["destination_id"] = "destination is required"
	}
	if r.Stars < 1 || r.Stars > 5 {
		errs["stars"] = "stars must be between 1 and 5"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var _ Record[Rating] = Rating{}
