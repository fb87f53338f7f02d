package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial catalog schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS canonical_items (
					id TEXT PRIMARY KEY,
					scope TEXT NOT NULL DEFAULT '',
					name TEXT NOT NULL,
					norm_name TEXT NOT NULL,
					display_name TEXT NOT NULL DEFAULT '',
					exam_type TEXT NOT NULL DEFAULT 'other',
					organ_tags TEXT NOT NULL DEFAULT '',
					default_unit TEXT NOT NULL DEFAULT '',
					source TEXT NOT NULL DEFAULT 'ADMIN',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(scope, norm_name)
				)`,
				`CREATE INDEX idx_items_scope ON canonical_items(scope)`,

				`CREATE TABLE IF NOT EXISTS aliases (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					scope TEXT NOT NULL DEFAULT '',
					text TEXT NOT NULL,
					norm_text TEXT NOT NULL,
					item_id TEXT NOT NULL,
					source_hint TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(scope, norm_text),
					FOREIGN KEY (item_id) REFERENCES canonical_items(id)
				)`,
				`CREATE INDEX idx_aliases_scope ON aliases(scope)`,
				`CREATE INDEX idx_aliases_item ON aliases(item_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed global catalog with common analytes",
		Up: func(tx *sql.Tx) error {
			for _, seed := range seedItems() {
				_, err := tx.Exec(`
					INSERT INTO canonical_items (id, scope, name, norm_name, display_name, exam_type, organ_tags, default_unit, source)
					VALUES (?, '', ?, ?, ?, ?, ?, ?, 'ADMIN')
					ON CONFLICT(scope, norm_name) DO NOTHING
				`, seed.id, seed.name, seed.normName, seed.displayName, seed.examType, seed.organTags, seed.defaultUnit)
				if err != nil {
					return fmt.Errorf("failed to seed item %s: %w", seed.name, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
