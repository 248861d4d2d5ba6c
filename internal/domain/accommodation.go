package domain

import "time"

// AccommodationTypes is the closed set of accepted accommodation categories.
var AccommodationTypes = []string{"hotel", "resort", "inn", "homestay", "lodge"}

// Accommodation is a place to stay: hotels, resorts, inns and the like.
// Contact fields are optional but validated for shape when present.
type Accommodation struct {
	ID          string `json:"id"`
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Type        string `json:"type" form:"type"`
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
func (a Accommodation) RecordID() string { return a.ID }

// ImageSlots returns the image URL fields in declared order.
func (a Accommodation) ImageSlots() []string {
	return []string{a.ImageURL1, a.ImageURL2, a.ImageURL3, a.ImageURL4, a.ImageURL5}
}

// Position returns the record's coordinates; nil means not geotagged.
func (a Accommodation) Position() (lat, lng *float64) { return a.Latitude, a.Longitude }

// Normalized returns a copy ready for form binding.
func (a Accommodation) Normalized() Accommodation { return a }

// Validate checks the accommodation against its schema.
func (a Accommodation) Validate() error {
	errs := FieldErrors{}
	requireName(a.Name, errs)
	if a.Type == "" {
		errs["type"] = "type is required"
	} else if !contains(AccommodationTypes, a.Type) {
		errs["type"] = a.Type + " is not a recognized accommodation type"
	}
	checkEmail("contact_email", a.ContactEmail, errs)
	checkURL("website", a.Website, errs)
	checkURL("facebook", a.Facebook, errs)
	checkCoordinates(a.Latitude, a.Longitude, errs)
	checkImageSlots(a.ImageSlots(), errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// contains reports whether set includes v.
func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

var _ Record[Accommodation] = Accommodation{}
