// Package domain contains the resource schemas for the tourism portal.
// Every content category the portal manages is a flat record type here,
// with one canonical struct per kind and validation rules attached.
// This package has zero external dependencies and is imported by every
// other internal package (backend, cache, catalog, forms, portal).
package domain

// Kind identifies one content category managed by the portal.
// Its string value is the upstream REST collection path segment, the
// cache channel name, and the admin route segment — one name, three uses,
// so the keys can never drift apart.
type Kind string

const (
	KindDestinations         Kind = "destinations"
	KindAccommodations       Kind = "accommodations"
	KindRestaurants          Kind = "restaurants"
	KindLandTransportations  Kind = "land-transportations"
	KindWaterTransportations Kind = "water-transportations"
	KindHistories            Kind = "histories"
	KindUsers                Kind = "users"
	KindRatings              Kind = "ratings"
)

// singular maps each kind to the noun used in notifications and
// not-found messages ("destination created", "restaurant not found").
var singular = map[Kind]string{
	KindDestinations:         "destination",
	KindAccommodations:       "accommodation",
	KindRestaurants:          "restaurant",
	KindLandTransportations:  "land transportation",
	KindWaterTransportations: "water transportation",
	KindHistories:            "heritage entry",
	KindUsers:                "user",
	KindRatings:              "rating",
}

// Singular returns the human-readable singular noun for the kind.
func (k Kind) Singular() string {
	if s, ok := singular[k]; ok {
		return s
	}
	return string(k)
}

// Path returns the upstream REST collection path for the kind.
func (k Kind) Path() string {
	return "/" + string(k)
}

// CanDelete reports whether records of this kind may be deleted.
// Ratings are moderation-only: the upstream exposes a visibility toggle
// but no delete route, so the capability is declared off here rather
// than discovered by a failing request.
func (k Kind) CanDelete() bool {
	return k != KindRatings
}
