package domain

import "strconv"

// imageField returns the form field name for the zero-based image slot i.
func imageField(i int) string {
	return "image_url_" + strconv.Itoa(i+1)
}

// checkImageSlots validates every non-empty slot as a URL.
func checkImageSlots(slots []string, errs FieldErrors) {
	for i, u := range slots {
		checkURL(imageField(i), u, errs)
	}
}
