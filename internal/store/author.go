package store

import (
	"context"
	"database/sql"

	"github.com/mdelucas/libris-api/internal/domain"
)

// AuthorStore defines the interface for author persistence.
type AuthorStore interface {
	// Create saves a new author and fills in its assigned ID.
	// Returns ErrAuthorExists if the name is already taken.
	Create(ctx context.Context, author *domain.Author) error

	// GetByID retrieves an author by primary key.
	// Returns ErrAuthorNotFound if the author does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Author, error)

	// List returns all authors, optionally filtered by a case-insensitive
	// substring match on name when nameFilter is non-empty.
	List(ctx context.Context, nameFilter string) ([]domain.Author, error)

	// Update persists the author's current field values.
	// Returns ErrAuthorNotFound if the author does not exist and
	// ErrAuthorExists if the new name collides with another author.
	Update(ctx context.Context, author *domain.Author) error

	// Delete removes an author by ID. Dependent books are deleted in the
	// same transaction via the schema's cascade rule.
	// Returns ErrAuthorNotFound if the author does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns an AuthorStore bound to the given transaction.
	WithTx(tx *sql.Tx) AuthorStore
}
