package domain

import "time"

// Destination is a tourist spot managed through the admin dashboard and
// shown on the guest site. Coordinates are optional but must come as a
// pair; the five image slots are independently optional.
type Destination struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" form:"name"`
	Description string   `json:"description" form:"description"`
	Address     string   `json:"address" form:"address"`
	Latitude    *float64 `json:"latitude" form:"latitude"`
	Longitude   *float64 `json:"longitude" form:"longitude"`
	EntranceFee *float64 `json:"entrance_fee" form:"entrance_fee"`

	ImageURL1 string `json:"image_url_1" form:"image_url_1"`
	ImageURL2 string `json:"image_url_2" form:"image_url_2"`
	ImageURL3 string `json:"image_url_3" form:"image_url_3"`
	ImageURL4 string `json:"image_url_4" form:"image_url_4"`
	ImageURL5 string `json:"image_url_5" form:"image_url_5"`

	// Timestamps are assigned upstream and read-only here. They are
	// pointers because seed records may carry none.
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// RecordID returns the backend-assigned identifier.
func (d Destination) RecordID() string { return d.ID }

// ImageSlots returns the image URL fields in declared order. The gallery
// iterates this structurally instead of looking fields up by name.
func (d Destination) ImageSlots() []string {
	return []string{d.ImageURL1, d.ImageURL2, d.ImageURL3, d.ImageURL4, d.ImageURL5}
}

// Position returns the record's coordinates; nil means not geotagged.
func (d Destination) Position() (lat, lng *float64) { return d.Latitude, d.Longitude }

// Normalized returns a copy ready for form binding.
func (d Destination) Normalized() Destination { return d }

// Validate checks the destination against its schema.
func (d Destination) Validate() error {
	errs := FieldErrors{}
	requireName(d.Name, errs)
	if d.Description == "" {
		errs["description"] = "description is required"
	}
	checkCoordinates(d.Latitude, d.Longitude, errs)
	checkFee("entrance_fee", d.EntranceFee, errs)
	checkImageSlots(d.ImageSlots(), errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var _ Record[Destination] = Destination{}
