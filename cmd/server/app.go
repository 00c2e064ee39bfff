package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mdelucas/libris-api/internal/config"
	"github.com/mdelucas/libris-api/internal/platform/postgres"
	"github.com/mdelucas/libris-api/internal/service/auth"
	"github.com/mdelucas/libris-api/internal/store"
)

// application holds all application-scoped dependencies. Everything is
// wired explicitly here and injected downward; no package-level state.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	authorStore    store.AuthorStore
	categoryStore  store.CategoryStore
	publisherStore store.PublisherStore
	bookStore      store.BookStore
	userStore      store.UserStore
	transactor     store.Transactor

	tokenService   auth.TokenService
	passwordHasher *auth.BcryptHasher
}

// newApplication wires the stores and services on top of an open database
// connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	return &application{
		config: cfg,
		logger: logger,
		db:     db,

		authorStore:    postgres.NewAuthorStore(db, logger),
		categoryStore:  postgres.NewCategoryStore(db, logger),
		publisherStore: postgres.NewPublisherStore(db, logger),
		bookStore:      postgres.NewBookStore(db, logger),
		userStore:      postgres.NewUserStore(db, logger),
		transactor:     &store.DBTransactor{DB: db},

		tokenService:   tokenService,
		passwordHasher: auth.NewBcryptHasher(cfg.Auth.BcryptCost),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
