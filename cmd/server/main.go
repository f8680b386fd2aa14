// Package main implements the entry point for the Draftwise API server,
// which generates research briefs and SEO articles with LLM assistance and
// delivers notifications to connected Slack workspaces.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/draftwise/draftwise-api/internal/config"
	"github.com/draftwise/draftwise-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String(
		"migrate", "", "run database migrations: up, down, status, version, or create")
	migrationName := flag.String(
		"migration-name", "", "name for a new migration (used with -migrate create)")
	flag.Parse()

	// Load configuration before anything else; nothing can run without it.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	// Migration commands run and exit without starting the server.
	if *migrateCmd != "" {
		if err := runMigrations(cfg, *migrateCmd, *migrationName); err != nil {
			appLogger.Error("Migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		appLogger.Info("Migration completed", "command", *migrateCmd)
		return
	}

	ctx := context.Background()

	db, err := setupDatabase(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		appLogger.Error("Failed to initialize application", "error", err)
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
