package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lakbayan/tourism-portal/internal/domain"
)

// List fetches the full collection for kind. A nil upstream body yields an
// empty, non-nil slice so callers can range without checks.
func List[T domain.Record[T]](ctx context.Context, c *Client, kind domain.Kind) ([]T, error) {
	var records []T
	if err := c.do(ctx, http.MethodGet, kind.Path(), nil, &records); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Empty collections are sometimes served as a null body.
			return []T{}, nil
		}
		return nil, fmt.Errorf("backend.List(%s): %w", kind, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Get fetches a single record by id. Returns domain.ErrNotFound both for
// a 404 and for the upstream's successful-but-empty detail response.
func Get[T domain.Record[T]](ctx context.Context, c *Client, kind domain.Kind, id string) (T, error) {
	var record T
	if err := c.do(ctx, http.MethodGet, detailPath(kind, id), nil, &record); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return record, domain.ErrNotFound
		}
		return record, fmt.Errorf("backend.Get(%s, %s): %w", kind, id, err)
	}
	return record, nil
}

// Create posts a new record and returns it with the upstream-assigned id
// and timestamps populated.
func Create[T domain.Record[T]](ctx context.Context, c *Client, kind domain.Kind, payload T) (T, error) {
	var created T
	if err := c.do(ctx, http.MethodPost, kind.Path(), payload, &created); err != nil {
		return created, fmt.Errorf("backend.Create(%s): %w", kind, err)
	}
	return created, nil
}

// Update patches the record identified by id and returns the updated copy.
func Update[T domain.Record[T]](ctx context.Context, c *Client, kind domain.Kind, id string, payload T) (T, error) {
	var updated T
	if err := c.do(ctx, http.MethodPatch, detailPath(kind, id), payload, &updated); err != nil {
		return updated, fmt.Errorf("backend.Update(%s, %s): %w", kind, id, err)
	}
	return updated, nil
}

// Remove deletes the record identified by id.
func Remove(ctx context.Context, c *Client, kind domain.Kind, id string) error {
	if err := c.do(ctx, http.MethodDelete, detailPath(kind, id), nil, nil); err != nil {
		return fmt.Errorf("backend.Remove(%s, %s): %w", kind, id, err)
	}
	return nil
}

// detailPath builds /{kind}/{id} with the id path-escaped.
func detailPath(kind domain.Kind, id string) string {
	return kind.Path() + "/" + url.PathEscape(id)
}
