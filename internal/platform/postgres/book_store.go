package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mdelucas/libris-api/internal/domain"
	"github.com/mdelucas/libris-api/internal/platform/logger"
	"github.com/mdelucas/libris-api/internal/store"
)

// BookStore implements store.BookStore backed by PostgreSQL.
type BookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewBookStore creates a PostgreSQL implementation of store.BookStore.
// If logger is nil, the process default logger is used.
func NewBookStore(db store.DBTX, logger *slog.Logger) *BookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

var _ store.BookStore = (*BookStore)(nil)

// WithTx implements store.BookStore.WithTx
func (s *BookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &BookStore{db: tx, logger: s.logger}
}

// bookSelect joins parent names into every book read.
const bookSelect = `
	SELECT b.id, b.name, b.description,
	       b.author_id, b.category_id, b.publisher_id,
	       a.name, c.name, p.name
	FROM books b
	JOIN authors a ON a.id = b.author_id
	JOIN categories c ON c.id = b.category_id
	JOIN publishers p ON p.id = b.publisher_id
`

func scanBookDetail(row interface{ Scan(dest ...any) error }) (*domain.BookDetail, error) {
	var detail domain.BookDetail
	err := row.Scan(
		&detail.ID,
		&detail.Name,
		&detail.Description,
		&detail.AuthorID,
		&detail.CategoryID,
		&detail.PublisherID,
		&detail.AuthorName,
		&detail.CategoryName,
		&detail.PublisherName,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create implements store.BookStore.Create
func (s *BookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO books (name, description, author_id, category_id, publisher_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		book.Name,
		book.Description,
		book.AuthorID,
		book.CategoryID,
		book.PublisherID,
	).Scan(&book.ID)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate book name", slog.String("name", book.Name))
			return store.ErrBookExists
		}
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during book creation",
				slog.String("error", err.Error()),
				slog.Int64("author_id", book.AuthorID),
				slog.Int64("category_id", book.CategoryID),
				slog.Int64("publisher_id", book.PublisherID))
			return fmt.Errorf("%w: referenced row not found", store.ErrInvalidEntity)
		}
		log.Error("failed to create book", slog.String("error", err.Error()))
		return err
	}

	log.Info("book created", slog.Int64("book_id", book.ID))
	return nil
}

// GetByID implements store.BookStore.GetByID
func (s *BookStore) GetByID(ctx context.Context, id int64) (*domain.BookDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, bookSelect+` WHERE b.id = $1`, id)
	detail, err := scanBookDetail(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book by ID",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return nil, err
	}
	return detail, nil
}

// List implements store.BookStore.List
// All filter conditions combine with logical AND.
func (s *BookStore) List(ctx context.Context, filter store.BookFilter) ([]domain.BookDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	conditions := []string{}
	args := []any{}

	if filter.Name != "" {
		args = append(args, filter.Name)
		conditions = append(conditions, fmt.Sprintf("b.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("b.author_id = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("b.category_id = $%d", len(args)))
	}
	if filter.PublisherID != nil {
		args = append(args, *filter.PublisherID)
		conditions = append(conditions, fmt.Sprintf("b.publisher_id = $%d", len(args)))
	}

	query := bookSelect
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list books", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	books := []domain.BookDetail{}
	for rows.Next() {
		detail, err := scanBookDetail(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *detail)
	}
	return books, rows.Err()
}

// ExistsByName implements store.BookStore.ExistsByName
func (s *BookStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM books WHERE name = $1)`
	if err := s.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements store.BookStore.Update
func (s *BookStore) Update(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE books
		SET name = $1, description = $2, author_id = $3, category_id = $4, publisher_id = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		book.Name,
		book.Description,
		book.AuthorID,
		book.CategoryID,
		book.PublisherID,
		book.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrBookExists
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referenced row not found", store.ErrInvalidEntity)
		}
		log.Error("failed to update book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", book.ID))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrBookNotFound
	}
	return nil
}

// Delete implements store.BookStore.Delete
func (s *BookStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM books WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrBookNotFound
	}

	log.Info("book deleted", slog.Int64("book_id", id))
	return nil
}
