package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/pawprint/labresolve/internal/config"
	"github.com/pawprint/labresolve/internal/model"
	"github.com/pawprint/labresolve/internal/resolve"
	"github.com/pawprint/labresolve/internal/storage"
	"github.com/pawprint/labresolve/internal/units"
)

// initStorage opens the catalog database and runs pending migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine builds the resolution engine on top of the catalog store.
func initEngine(store *storage.SQLiteStorage) *resolve.Engine {
	cfg := resolve.DefaultConfig()
	if ttl := viper.GetDuration("cache.ttl"); ttl > 0 {
		cfg.CacheTTL = ttl
	}
	if threshold := viper.GetFloat64("fuzzy.threshold"); threshold > 0 {
		cfg.FuzzyThreshold = threshold
	}
	return resolve.NewWithConfig(store, cfg)
}

// initRuleTable builds and validates the conversion rule table.
func initRuleTable() (*units.RuleTable, error) {
	table, err := units.DefaultTable()
	if err != nil {
		return nil, fmt.Errorf("conversion rule table failed validation: %w", err)
	}
	return table, nil
}

// scopeFor maps the --user flag to a catalog scope.
func scopeFor(userID string) model.Scope {
	return model.Scope{UserID: userID}
}
