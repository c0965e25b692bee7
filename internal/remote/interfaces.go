// Package remote defines the abstract remote event store the tracker
// persists through, and an HTTP client implementation of it.
package remote

import (
	"context"
	"errors"

	"github.com/halcyra/cadence/internal/domain/event"
)

var (
	// ErrNotFound is returned when a requested event doesn't exist.
	ErrNotFound = errors.New("event not found")
	// ErrUnavailable is returned when the store cannot be reached.
	ErrUnavailable = errors.New("event store unavailable")
)

// Store is the remote event store boundary. Requests are eventually
// consistent individually; there is no transactional guarantee across
// calls. All timestamps cross this boundary as ISO-8601 strings.
type Store interface {
	List(ctx context.Context) ([]event.Event, error)
	Create(ctx context.Context, e event.Event) (event.Event, error)
	Update(ctx context.Context, e event.Event) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
