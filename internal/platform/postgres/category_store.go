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

// CategoryStore implements store.CategoryStore backed by PostgreSQL.
type CategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCategoryStore creates a PostgreSQL implementation of store.CategoryStore.
// If logger is nil, the process default logger is used.
func NewCategoryStore(db store.DBTX, logger *slog.Logger) *CategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

var _ store.CategoryStore = (*CategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx
func (s *CategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &CategoryStore{db: tx, logger: s.logger}
}

// Create implements store.CategoryStore.Create
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`
	err := s.db.QueryRowContext(ctx, query, category.Name, category.Description).
		Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate category name", slog.String("name", category.Name))
			return store.ErrCategoryExists
		}
		log.Error("failed to create category", slog.String("error", err.Error()))
		return err
	}

	log.Info("category created", slog.Int64("category_id", category.ID))
	return nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name, description FROM categories WHERE id = $1`

	var category domain.Category
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category by ID",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, err
	}

	return &category, nil
}

// List implements store.CategoryStore.List
// Filtered listings are explicitly ordered by id.
func (s *CategoryStore) List(ctx context.Context, nameFilter string) ([]domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name, description FROM categories`
	args := []any{}
	if nameFilter != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%' ORDER BY id`
		args = append(args, nameFilter)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update implements store.CategoryStore.Update
func (s *CategoryStore) Update(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `UPDATE categories SET name = $1, description = $2 WHERE id = $3`
	result, err := s.db.ExecContext(ctx, query, category.Name, category.Description, category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrCategoryExists
		}
		log.Error("failed to update category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", category.ID))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrCategoryNotFound
	}
	return nil
}

// Delete implements store.CategoryStore.Delete
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM categories WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrCategoryNotFound
	}

	log.Info("category deleted", slog.Int64("category_id", id))
	return nil
}
