package store

import (
	"context"
	"database/sql"

	"github.com/mdelucas/libris-api/internal/domain"
)

// BookFilter narrows a book listing. All set fields combine with logical AND.
type BookFilter struct {
	// Name filters by case-insensitive substring match when non-empty.
	Name string

	// AuthorID, CategoryID and PublisherID filter by exact parent id when
	// non-nil.
	AuthorID    *int64
	CategoryID  *int64
	PublisherID *int64
}

// BookStore defines the interface for book persistence.
type BookStore interface {
	// Create saves a new book and fills in its assigned ID.
	// Returns ErrBookExists if the name is already taken and
	// ErrInvalidEntity if a referenced parent row does not exist.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by primary key, with parent names joined in.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id int64) (*domain.BookDetail, error)

	// List returns books matching the filter, with parent names joined in.
	List(ctx context.Context, filter BookFilter) ([]domain.BookDetail, error)

	// ExistsByName reports whether a book with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Update persists the book's current field values.
	// Returns ErrBookNotFound if the book does not exist, ErrBookExists on a
	// name collision, and ErrInvalidEntity on a dangling parent reference.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book by ID. Deleting a book cascades to nothing.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a BookStore bound to the given transaction.
	WithTx(tx *sql.Tx) BookStore
}
