package domain

import "time"

// Restaurant is an eatery listed on the guest site. Description and all
// contact fields are optional; non-empty contacts must be well formed.
type Restaurant struct {
	ID          string `json:"id"`
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Specialty   string `json:"specialty" form:"specialty"`
	Address     string `json:"address" form:"address"`

	ContactEmail string `json:"contact_email" form:"contact_email"`
	ContactPhone string `json:"contact_phone" form:"contact_phone"`
	Website      string `json:"website" form:"website"`
	Facebook     string `json:"facebook" form:"facebook"`

	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`

	ImageURL1 string `json:"image_url_1" form:"image_url_1"`
	ImageURL2 string `json:"image_url_2" form:"image_url_2"`
	ImageURL3 string `json:"image_url_3" form:"image_url_3"`
	ImageURL4 string `json:"image_url_4" form:"image_url_4"`
	ImageURL5 string `json:"image_url_5" form:"image_url_5"`

	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// RecordID returns the backend-assigned identifier.
func (r Restaurant) RecordID() string { return r.ID }

// ImageSlots returns the image URL fields in declared order.
func (r Restaurant) ImageSlots() []string {
	return []string{r.ImageURL1, r.ImageURL2, r.ImageURL3, r.ImageURL4, r.ImageURL5}
}

// Normalized returns a copy ready for form binding.
func (r Restaurant) Normalized() Restaurant { return r }

// Position returns the record's coordinates; nil means not geotagged.
func (r Restaurant) Position() (lat, lng *float64) { return r.Latitude, r.Longitude }

// Validate checks the restaurant against its schema.
func (r Restaurant) Validate() error {
	errs := FieldErrors{}
	requireName(r.Name, errs)
	checkEmail("contact_email", r.ContactEmail, errs)
	checkURL("website", r.Website, errs)
	checkURL("facebook", r.Facebook, errs)
	checkCoordinates(r.Latitude, r.Longitude, errs)
	checkImageSlots(r.ImageSlots(), errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var _ Record[Restaurant] = Restaurant{}
