package backend

import (
	"context"

	"github.com/lakbayan/tourism-portal/internal/domain"
)

// Resource binds a Client and a Kind into the per-kind operation set the
// catalog layer consumes. It exists so the catalog can depend on a small
// interface instead of the whole client.
type Resource[T domain.Record[T]] struct {
	client *Client
	kind   domain.Kind
}

// NewResource builds the operation set for kind over client.
func NewResource[T domain.Record[T]](client *Client, kind domain.Kind) *Resource[T] {
	return &Resource[T]{client: client, kind: kind}
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	return List[T](ctx, r.client, r.kind)
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	return Get[T](ctx, r.client, r.kind, id)
}

func (r *Resource[T]) Create(ctx context.Context, payload T) (T, error) {
	return Create(ctx, r.client, r.kind, payload)
}

func (r *Resource[T]) Update(ctx context.Context, id string, payload T) (T, error) {
	return Update(ctx, r.client, r.kind, id, payload)
}

func (r *Resource[T]) Remove(ctx context.Context, id string) error {
	return Remove(ctx, r.client, r.kind, id)
}
