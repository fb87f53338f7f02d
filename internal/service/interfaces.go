// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/pawprint/labresolve/internal/model"
)

// CatalogStore defines the contract for the catalog persistence layer.
// Reads return the rows owned by exactly the given scope; the resolution
// engine layers the global scope and a user scope itself.
type CatalogStore interface {
	// Canonical item operations.
	ItemsForScope(ctx context.Context, scope model.Scope) ([]model.CanonicalItem, error)
	GetItemByName(ctx context.Context, name string, scope model.Scope) (*model.CanonicalItem, error)
	GetItemByID(ctx context.Context, id string) (*model.CanonicalItem, error)
	SaveItem(ctx context.Context, item *model.CanonicalItem, scope model.Scope) error

	// Alias operations.
	AliasesForScope(ctx context.Context, scope model.Scope) ([]model.Alias, error)
	SaveAlias(ctx context.Context, alias *model.Alias, scope model.Scope) error
	DeleteAlias(ctx context.Context, text string, scope model.Scope) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// Verdict is the outcome of the external AI disambiguation step, fed back
// into the engine after tier 3 fails.
type Verdict struct {
	Item       *model.CanonicalItem
	Draft      *model.CanonicalItem
	Reasoning  string
	Confidence float64
}

// Disambiguator is the extension point for the external AI step. The
// resolution engine never calls it; the surrounding application invokes it
// when resolution returns method none and feeds the verdict back.
type Disambiguator interface {
	Disambiguate(ctx context.Context, rawName string, items []model.CanonicalItem) (*Verdict, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
