package store

import (
	"context"
	"database/sql"

	"github.com/mdelucas/libris-api/internal/domain"
)

// PublisherStore defines the interface for publisher persistence.
type PublisherStore interface {
	// Create saves a new publisher and fills in its assigned ID.
	// Returns ErrPublisherExists if the name is already taken.
	Create(ctx context.Context, publisher *domain.Publisher) error

	// GetByID retrieves a publisher by primary key.
	// Returns ErrPublisherNotFound if the publisher does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Publisher, error)

	// List returns all publishers, optionally filtered by a case-insensitive
	// substring match on name when nameFilter is non-empty.
	List(ctx context.Context, nameFilter string) ([]domain.Publisher, error)

	// Update persists the publisher's current field values.
	Update(ctx context.Context, publisher *domain.Publisher) error

	// Delete removes a publisher by ID, cascading to its books.
	// Returns ErrPublisherNotFound if the publisher does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a PublisherStore bound to the given transaction.
	WithTx(tx *sql.Tx) PublisherStore
}
