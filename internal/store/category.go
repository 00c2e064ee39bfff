package store

import (
	"context"
	"database/sql"

	"github.com/mdelucas/libris-api/internal/domain"
)

// CategoryStore defines the interface for category persistence.
type CategoryStore interface {
	// Create saves a new category and fills in its assigned ID.
	// Returns ErrCategoryExists if the name is already taken.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by primary key.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// List returns all categories, optionally filtered by a case-insensitive
	// substring match on name. Filtered results are ordered by id.
	List(ctx context.Context, nameFilter string) ([]domain.Category, error)

	// Update persists the category's current field values.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category by ID, cascading to its books.
	// Returns ErrCategoryNotFound if the category does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a CategoryStore bound to the given transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
