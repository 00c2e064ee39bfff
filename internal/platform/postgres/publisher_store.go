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

// PublisherStore implements store.PublisherStore backed by PostgreSQL.
type PublisherStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPublisherStore creates a PostgreSQL implementation of store.PublisherStore.
// If logger is nil, the process default logger is used.
func NewPublisherStore(db store.DBTX, logger *slog.Logger) *PublisherStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PublisherStore{
		db:     db,
		logger: logger.With(slog.String("component", "publisher_store")),
	}
}

var _ store.PublisherStore = (*PublisherStore)(nil)

// WithTx implements store.PublisherStore.WithTx
func (s *PublisherStore) WithTx(tx *sql.Tx) store.PublisherStore {
	return &PublisherStore{db: tx, logger: s.logger}
}

// Create implements store.PublisherStore.Create
func (s *PublisherStore) Create(ctx context.Context, publisher *domain.Publisher) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := publisher.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `INSERT INTO publishers (name, description) VALUES ($1, $2) RETURNING id`
	err := s.db.QueryRowContext(ctx, query, publisher.Name, publisher.Description).
		Scan(&publisher.ID)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate publisher name", slog.String("name", publisher.Name))
			return store.ErrPublisherExists
		}
		log.Error("failed to create publisher", slog.String("error", err.Error()))
		return err
	}

	log.Info("publisher created", slog.Int64("publisher_id", publisher.ID))
	return nil
}

// GetByID implements store.PublisherStore.GetByID
func (s *PublisherStore) GetByID(ctx context.Context, id int64) (*domain.Publisher, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name, description FROM publishers WHERE id = $1`

	var publisher domain.Publisher
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&publisher.ID, &publisher.Name, &publisher.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPublisherNotFound
		}
		log.Error("failed to get publisher by ID",
			slog.String("error", err.Error()),
			slog.Int64("publisher_id", id))
		return nil, err
	}

	return &publisher, nil
}

// List implements store.PublisherStore.List
func (s *PublisherStore) List(ctx context.Context, nameFilter string) ([]domain.Publisher, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name, description FROM publishers`
	args := []any{}
	if nameFilter != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, nameFilter)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list publishers", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	publishers := []domain.Publisher{}
	for rows.Next() {
		var publisher domain.Publisher
		if err := rows.Scan(&publisher.ID, &publisher.Name, &publisher.Description); err != nil {
			return nil, err
		}
		publishers = append(publishers, publisher)
	}
	return publishers, rows.Err()
}

// Update implements store.PublisherStore.Update
func (s *PublisherStore) Update(ctx context.Context, publisher *domain.Publisher) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := publisher.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `UPDATE publishers SET name = $1, description = $2 WHERE id = $3`
	result, err := s.db.ExecContext(ctx, query, publisher.Name, publisher.Description, publisher.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrPublisherExists
		}
		log.Error("failed to update publisher",
			slog.String("error", err.Error()),
			slog.Int64("publisher_id", publisher.ID))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrPublisherNotFound
	}
	return nil
}

// Delete implements store.PublisherStore.Delete
func (s *PublisherStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM publishers WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete publisher",
			slog.String("error", err.Error()),
			slog.Int64("publisher_id", id))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrPublisherNotFound
	}

	log.Info("publisher deleted", slog.Int64("publisher_id", id))
	return nil
}
