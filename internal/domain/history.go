package domain

import "time"

// History is a cultural-heritage page: the story of a landmark, a church,
// a tradition. The description carries the body text (markdown upstream,
// rendered opaquely by the guest site).
type History struct {
	ID          string `json:"id"`
	Name        string `json:"name" form:"name"`
	Era         string `json:"era" form:"era"`
	Description string `json:"description" form:"description"`

	ImageURL1 string `json:"image_url_1" form:"image_url_1"`
	ImageURL2 string `json:"image_url_2" form:"image_url_2"`
	ImageURL3 string `json:"image_url_3" form:"image_url_3"`

	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// RecordID returns the backend-assigned identifier.
func (h History) RecordID() string { return h.ID }

// ImageSlots returns the image URL fields in declared order.
func (h History) ImageSlots() []string {
	return []string{h.ImageURL1, h.ImageURL2, h.ImageURL3}
}

// Normalized returns a copy ready for form binding.
func (h History) Normalized() History { return h }

// Validate checks the heritage entry against its schema.
func (h History) Validate() error {
	errs := FieldErrors{}
	requireName(h.Name, errs)
	if h.Description == "" {
		errs["description"] = "description is required"
	}
	checkImageSlots(h.ImageSlots(), errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var _ Record[History] = History{}
