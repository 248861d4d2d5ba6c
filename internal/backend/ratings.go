package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lakbayan/tourism-portal/internal/domain"
)

// displayRequest is the PATCH /ratings/{id}/display body.
type displayRequest struct {
	Display bool `json:"display"`
}

// SetRatingDisplay toggles a rating's guest-site visibility. Ratings have
// no delete route; hiding is the moderation primitive.
func (c *Client) SetRatingDisplay(ctx context.Context, id string, display bool) (domain.Rating, error) {
	var rating domain.Rating
	path := "/ratings/" + url.PathEscape(id) + "/display"
	if err := c.do(ctx, http.MethodPatch, path, displayRequest{Display: display}, &rating); err != nil {
		return domain.Rating{}, fmt.Errorf("backend.SetRatingDisplay(%s): %w", id, err)
	}
	return rating, nil
}
