// Package main implements the entry point for the Libris API server, a
// library catalog service managing authors, categories, publishers and
// books with token-based user authentication.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/mdelucas/libris-api/internal/config"
	"github.com/mdelucas/libris-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if cfg.UsingInsecureSecret() {
		appLogger.Warn("Using the default JWT secret; set LIBRIS_AUTH_JWT_SECRET in production")
	}

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *migrateCmd != "" {
		if err := runMigrations(db, *migrateCmd, appLogger); err != nil {
			log.Fatalf("Migration command failed: %v", err)
		}
		if err := db.Close(); err != nil {
			appLogger.Error("Failed to close database connection", "error", err)
		}
		return
	}

	// The schema is applied on startup so a fresh database is usable
	// without a separate migration step.
	if err := runMigrations(db, "up", appLogger); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
