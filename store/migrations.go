package store

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations contains all database migrations in order.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_brands",
		SQL: `
			CREATE TABLE IF NOT EXISTS brands (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				url TEXT NOT NULL,
				brand_name VARCHAR(255),
				description TEXT,
				raw_description TEXT,
				enhanced BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_brands_url
			ON brands(url);

			CREATE INDEX IF NOT EXISTS idx_brands_created
			ON brands(created_at DESC);
		`,
	},
}

// RunMigrations applies all pending migrations in version order.
func RunMigrations(db *sql.DB, logger *slog.Logger) error {
	logger.Info("running database migrations")

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	applied := 0
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logger.Info("applying migration",
			"version", migration.Version,
			"name", migration.Name,
		)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(migration.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w",
				migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO migrations (version, name) VALUES ($1, $2)",
			migration.Version, migration.Name,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
		applied++
	}

	if applied == 0 {
		logger.Info("database schema up to date", "version", currentVersion)
	} else {
		logger.Info("migrations applied", "count", applied)
	}
	return nil
}
