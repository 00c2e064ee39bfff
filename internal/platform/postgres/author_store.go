package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mdelucas/libris-api/internal/domain"
	"github.com/mdelucas/libris-api/internal/platform/logger"
	"github.com/mdelucas/libris-api/internal/store"
)

// AuthorStore implements store.AuthorStore backed by PostgreSQL.
type AuthorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAuthorStore creates a PostgreSQL implementation of store.AuthorStore.
// If logger is nil, the process default logger is used.
func NewAuthorStore(db store.DBTX, logger *slog.Logger) *AuthorStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorStore{
		db:     db,
		logger: logger.With(slog.String("component", "author_store")),
	}
}

var _ store.AuthorStore = (*AuthorStore)(nil)

// WithTx implements store.AuthorStore.WithTx
func (s *AuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	return &AuthorStore{db: tx, logger: s.logger}
}

// Create implements store.AuthorStore.Create
func (s *AuthorStore) Create(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := author.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `INSERT INTO authors (name) VALUES ($1) RETURNING id`
	err := s.db.QueryRowContext(ctx, query, author.Name).Scan(&author.ID)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate author name", slog.String("name", author.Name))
			return store.ErrAuthorExists
		}
		log.Error("failed to create author", slog.String("error", err.Error()))
		return err
	}

	log.Info("author created", slog.Int64("author_id", author.ID))
	return nil
}

// GetByID implements store.AuthorStore.GetByID
func (s *AuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name FROM authors WHERE id = $1`

	var author domain.Author
	err := s.db.QueryRowContext(ctx, query, id).Scan(&author.ID, &author.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAuthorNotFound
		}
		log.Error("failed to get author by ID",
			slog.String("error", err.Error()),
			slog.Int64("author_id", id))
		return nil, err
	}

	return &author, nil
}

// List implements store.AuthorStore.List
func (s *AuthorStore) List(ctx context.Context, nameFilter string) ([]domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name FROM authors`
	args := []any{}
	if nameFilter != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, nameFilter)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list authors", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	authors := []domain.Author{}
	for rows.Next() {
		var author domain.Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, rows.Err()
}

// Update implements store.AuthorStore.Update
func (s *AuthorStore) Update(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := author.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `UPDATE authors SET name = $1 WHERE id = $2`
	result, err := s.db.ExecContext(ctx, query, author.Name, author.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAuthorExists
		}
		log.Error("failed to update author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", author.ID))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrAuthorNotFound
	}
	return nil
}

// Delete implements store.AuthorStore.Delete
// The books foreign key is declared ON DELETE CASCADE, so dependent books go
// away in the same statement's transaction.
func (s *AuthorStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM authors WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", id))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrAuthorNotFound
	}

	log.Info("author deleted", slog.Int64("author_id", id))
	return nil
}
