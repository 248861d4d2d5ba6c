// Package catalog implements the record-management workflow every content
// kind shares: cached list/detail reads and create/update/delete mutations
// that keep the cache consistent and notify the user of the outcome.
// One Service per kind; all kinds run the identical flow.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lakbayan/tourism-portal/internal/cache"
	"github.com/lakbayan/tourism-portal/internal/domain"
)

// ErrDeleteUnsupported is returned when a delete is attempted on a kind
// whose capability declaration forbids it (ratings).
var ErrDeleteUnsupported = errors.New("delete is not supported for this kind")

// ErrDeleteInFlight is returned when a delete for the same id is already
// running; the confirmer control is disabled while this holds.
var ErrDeleteInFlight = errors.New("delete already in progress")

// Backend is the transport surface a Service needs, satisfied by
// *backend.Resource. Defined here, in the consumer package, so service
// tests inject a mock without touching the network.
type Backend[T domain.Record[T]] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, payload T) (T, error)
	Update(ctx context.Context, id string, payload T) (T, error)
	Remove(ctx context.Context, id string) error
}

// Notifier receives the user-visible outcome of each mutation. The portal
// implements it with flash-cookie toasts; tests with a recorder.
type Notifier interface {
	Success(ctx context.Context, message string)
	Failure(ctx context.Context, message string)
}

// Service runs the shared workflow for one resource kind.
type Service[T domain.Record[T]] struct {
	kind    domain.Kind
	api     Backend[T]
	channel *cache.Channel[T]
	notify  Notifier
	log     *slog.Logger

	// group collapses concurrent identical fetches into one upstream
	// request; the cache TTL provides the de-duplication window for
	// sequential ones.
	group singleflight.Group

	// deleting holds the ids with a delete in flight.
	deleting sync.Map
}

// New constructs the Service for kind.
func New[T domain.Record[T]](kind domain.Kind, api Backend[T], channel *cache.Channel[T], notify Notifier, log *slog.Logger) *Service[T] {
	return &Service[T]{kind: kind, api: api, channel: channel, notify: notify, log: log}
}

// Kind returns the resource kind this service manages.
func (s *Service[T]) Kind() domain.Kind { return s.kind }

// Channel exposes the service's cache channel so list pages and delete
// controls provably share the same keys.
func (s *Service[T]) Channel() *cache.Channel[T] { return s.channel }

// List returns the kind's collection, cached. Errors are returned as-is:
// the page owns the retry affordance, nothing here retries.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	if records, ok := s.channel.List(ctx); ok {
		return records, nil
	}

	v, err, _ := s.group.Do(s.channel.ListKey(), func() (any, error) {
		records, err := s.api.List(ctx)
		if err != nil {
			return nil, err
		}
		normalized := make([]T, len(records))
		for i, r := range records {
			normalized[i] = r.Normalized()
		}
		s.channel.PutList(ctx, normalized)
		return normalized, nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog.Service.List(%s): %w", s.kind, err)
	}
	return v.([]T), nil
}

// Get returns one record by id, cached. An empty id issues no request at
// all — pages may render before an identifier is known — and reports
// not-found. Records are normalized before caching so edit forms always
// receive schema defaults in place of absent fields.
func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, domain.ErrNotFound
	}
	if record, ok := s.channel.Detail(ctx, id); ok {
		return record, nil
	}

	v, err, _ := s.group.Do(s.channel.DetailKey(id), func() (any, error) {
		record, err := s.api.Get(ctx, id)
		if err != nil {
			return zero, err
		}
		record = record.Normalized()
		s.channel.PutDetail(ctx, record)
		return record, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("catalog.Service.Get(%s, %s): %w", s.kind, id, err)
	}
	return v.(T), nil
}

// Create validates and submits a new record. Invalid input never reaches
// the network. On success only the list cache is invalidated — there is
// no detail entry for a record that did not exist yet.
func (s *Service[T]) Create(ctx context.Context, payload T) (T, error) {
	var zero T
	payload = payload.Normalized()
	if err := payload.Validate(); err != nil {
		return zero, err
	}

	created, err := s.api.Create(ctx, payload)
	if err != nil {
		s.notify.Failure(ctx, failureMessage(s.kind, opCreate))
		return zero, fmt.Errorf("catalog.Service.Create(%s): %w", s.kind, err)
	}

	s.channel.InvalidateList(ctx)
	s.notify.Success(ctx, successMessage(s.kind, opCreate))
	return created, nil
}

// Update validates and submits changes to the record identified by id.
// On success both the list cache and the record's detail cache go stale.
func (s *Service[T]) Update(ctx context.Context, id string, payload T) (T, error) {
	var zero T
	if id == "" {
		return zero, domain.ErrNotFound
	}
	payload = payload.Normalized()
	if err := payload.Validate(); err != nil {
		return zero, err
	}

	updated, err := s.api.Update(ctx, id, payload)
	if err != nil {
		// Not-found still gets the failure toast: the record may have
		// been deleted by someone else while this form was open.
		s.notify.Failure(ctx, failureMessage(s.kind, opUpdate))
		if errors.Is(err, domain.ErrNotFound) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("catalog.Service.Update(%s, %s): %w", s.kind, id, err)
	}

	s.channel.InvalidateList(ctx)
	s.channel.InvalidateDetail(ctx, id)
	s.notify.Success(ctx, successMessage(s.kind, opUpdate))
	return updated, nil
}

// Delete removes the record identified by id, guarded against double
// submission per id. On success the list cache goes stale and the detail
// entry is dropped.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	if !s.kind.CanDelete() {
		return ErrDeleteUnsupported
	}
	if id == "" {
		return domain.ErrNotFound
	}
	if _, busy := s.deleting.LoadOrStore(id, struct{}{}); busy {
		return ErrDeleteInFlight
	}
	defer s.deleting.Delete(id)

	if err := s.api.Remove(ctx, id); err != nil {
		s.notify.Failure(ctx, failureMessage(s.kind, opDelete))
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("catalog.Service.Delete(%s, %s): %w", s.kind, id, err)
	}

	s.channel.InvalidateList(ctx)
	s.channel.InvalidateDetail(ctx, id)
	s.notify.Success(ctx, successMessage(s.kind, opDelete))
	return nil
}
