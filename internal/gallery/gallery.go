// Package gallery builds the image-preview view model for a record's
// optional image slots. Pure view logic: no network, no storage.
package gallery

// FallbackURL is the placeholder swapped in when an image fails to load.
// Templates render it as the element's onerror source, so a dead link
// degrades to the placeholder instead of a broken-image icon.
const FallbackURL = "/static/img/placeholder.svg"

// Image is one populated slot.
type Image struct {
	// Slot is the zero-based index of the slot the URL came from, kept so
	// thumbnails stay traceable to their declared position.
	Slot int
	URL  string
}

// Preview is the gallery state for one record: the populated slots in
// declared order and which of them is currently enlarged.
type Preview struct {
	Images  []Image
	Current int
}

// New builds a Preview from the record's ordered image slots, keeping
// only the non-empty ones. Order follows the slot declaration, never the
// population pattern.
func New(slots []string) Preview {
	var images []Image
	for i, u := range slots {
		if u == "" {
			continue
		}
		images = append(images, Image{Slot: i, URL: u})
	}
	return Preview{Images: images}
}

// Empty reports whether the record has no populated slots.
func (p Preview) Empty() bool { return len(p.Images) == 0 }

// CurrentImage returns the enlarged image, or the fallback when the
// record has no images at all.
func (p Preview) CurrentImage() Image {
	if p.Empty() {
		return Image{Slot: -1, URL: FallbackURL}
	}
	return p.Images[p.Current]
}

// Select returns a copy with the enlarged image switched to index i.
// Out-of-range selections are ignored rather than panicking: the index
// comes from a query parameter.
func (p Preview) Select(i int) Preview {
	if i >= 0 && i < len(p.Images) {
		p.Current = i
	}
	return p
}
