// Package resolve implements the tiered lab-item resolution cascade.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pawprint/labresolve/internal/common"
	"github.com/pawprint/labresolve/internal/match"
	"github.com/pawprint/labresolve/internal/model"
	"github.com/pawprint/labresolve/internal/service"
)

// Engine orchestrates the resolution of raw lab item names against the
// catalog. Lookups run over an immutable per-scope catalog snapshot; only
// the snapshot fetch touches storage.
type Engine struct {
	store service.CatalogStore
	cache *snapshotCache
	tiers []tier
}

// Config holds configuration options for the resolution engine.
type Config struct {
	// Now is the clock used for cache expiry; nil means time.Now.
	Now            func() time.Time
	CacheTTL       time.Duration
	FuzzyThreshold float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		CacheTTL:       5 * time.Minute,
		FuzzyThreshold: match.DefaultThreshold,
	}
}

// New creates a resolution engine with the default configuration.
func New(store service.CatalogStore) *Engine {
	return NewWithConfig(store, DefaultConfig())
}

// NewWithConfig creates a resolution engine with custom configuration.
func NewWithConfig(store service.CatalogStore, cfg Config) *Engine {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.FuzzyThreshold <= 0 {
		cfg.FuzzyThreshold = match.DefaultThreshold
	}

	return &Engine{
		store: store,
		cache: newSnapshotCache(cfg.CacheTTL, cfg.Now),
		tiers: []tier{
			exactTier{},
			aliasTier{},
			fuzzyTier{threshold: cfg.FuzzyThreshold},
		},
	}
}

// Resolve runs the cascade for a single raw name in the given scope.
// A result with method none is a normal outcome, not an error; errors are
// reserved for catalog-fetch failures.
func (e *Engine) Resolve(ctx context.Context, rawName string, scope model.Scope) (model.MatchResult, error) {
	view, err := e.snapshot(ctx, scope)
	if err != nil {
		return model.MatchResult{}, err
	}
	return e.resolveAgainst(view, rawName), nil
}

// ResolveBatch resolves many raw names against one catalog snapshot,
// fanning the pure lookups out in parallel. Results correspond to inputs
// by index regardless of completion order. A snapshot fetch failure fails
// the whole batch; resolving against a partial catalog is never attempted.
func (e *Engine) ResolveBatch(ctx context.Context, rawNames []string, scope model.Scope) ([]model.MatchResult, error) {
	view, err := e.snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}

	results := make([]model.MatchResult, len(rawNames))
	var wg sync.WaitGroup
	for i, rawName := range rawNames {
		wg.Add(1)
		go func(i int, rawName string) {
			defer wg.Done()
			results[i] = e.resolveAgainst(view, rawName)
		}(i, rawName)
	}
	wg.Wait()

	return results, nil
}

// Alternatives lists every catalog candidate at or above the threshold,
// sorted by similarity. Used to surface ambiguous options, not by the
// cascade itself.
func (e *Engine) Alternatives(ctx context.Context, rawName string, scope model.Scope, threshold float64) ([]model.Candidate, error) {
	view, err := e.snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}

	ranked := match.FindAllMatches(rawName, view.FuzzyCandidates(), threshold)
	out := make([]model.Candidate, len(ranked))
	for i, r := range ranked {
		out[i] = model.Candidate{Text: r.Candidate, Similarity: r.Similarity}
	}
	return out, nil
}

// resolveAgainst runs the ordered tiers over a snapshot. Pure computation.
func (e *Engine) resolveAgainst(view *model.CatalogView, rawName string) model.MatchResult {
	normName := match.Normalize(rawName)
	if normName == "" {
		return model.NoMatch(rawName)
	}

	for _, t := range e.tiers {
		if result, ok := t.attempt(rawName, normName, view); ok {
			return result
		}
	}

	// Terminal: the caller may hand the name to the external AI step and
	// feed its verdict back through AcceptVerdict.
	return model.NoMatch(rawName)
}

// AcceptVerdict converts an external disambiguation verdict into a match
// result. An existing-item verdict keeps the externally supplied
// confidence; a new-item draft is forced to confidence 0 pending human
// confirmation.
func (e *Engine) AcceptVerdict(rawName string, verdict service.Verdict) model.MatchResult {
	switch {
	case verdict.Item != nil:
		return model.MatchResult{
			Item:       verdict.Item,
			RawName:    rawName,
			Reasoning:  verdict.Reasoning,
			Method:     model.MethodAIMatch,
			Confidence: verdict.Confidence,
		}
	case verdict.Draft != nil:
		return model.MatchResult{
			Draft:      verdict.Draft,
			RawName:    rawName,
			Reasoning:  verdict.Reasoning,
			Method:     model.MethodAINew,
			Confidence: 0,
		}
	default:
		return model.NoMatch(rawName)
	}
}

// RegisterAlias writes an alias into the scope's catalog and invalidates
// the snapshot cache. Upsert semantics make retries of identical input
// idempotent. Aliasing to a nonexistent canonical name is rejected with no
// partial write.
func (e *Engine) RegisterAlias(ctx context.Context, aliasText, canonicalName, sourceHint string, scope model.Scope) error {
	if strings.TrimSpace(aliasText) == "" {
		return fmt.Errorf("alias text cannot be empty")
	}

	alias := &model.Alias{
		Text:       aliasText,
		ItemName:   canonicalName,
		SourceHint: sourceHint,
	}
	if err := e.store.SaveAlias(ctx, alias, scope); err != nil {
		return fmt.Errorf("failed to register alias: %w", err)
	}

	e.cache.invalidateAll()
	slog.Info("Registered alias",
		"alias", aliasText,
		"canonical", canonicalName,
		"scope", scope.Key())
	return nil
}

// RegisterNewItem writes a new canonical item into the scope's catalog and
// invalidates the snapshot cache. Upserts are keyed by (scope, normalized
// name), so an existing item keeps its identifier.
func (e *Engine) RegisterNewItem(ctx context.Context, draft *model.CanonicalItem, scope model.Scope) (*model.CanonicalItem, error) {
	if draft == nil {
		return nil, fmt.Errorf("draft item cannot be nil")
	}

	if draft.Source == "" {
		if scope.IsGlobal() {
			draft.Source = model.ItemSourceAdmin
		} else {
			draft.Source = model.ItemSourceUser
		}
	}

	if err := e.store.SaveItem(ctx, draft, scope); err != nil {
		return nil, fmt.Errorf("failed to register item: %w", err)
	}

	e.cache.invalidateAll()
	slog.Info("Registered canonical item",
		"name", draft.Name,
		"id", draft.ID,
		"scope", scope.Key())
	return draft, nil
}

// Learn persists an accepted AI verdict: an ai_match becomes an alias from
// the raw name to the matched item; an ai_new becomes a new canonical item
// plus an alias when the raw spelling differs from the item name.
func (e *Engine) Learn(ctx context.Context, result model.MatchResult, scope model.Scope) error {
	switch result.Method {
	case model.MethodAIMatch:
		if result.Item == nil {
			return fmt.Errorf("ai_match result carries no item")
		}
		return e.RegisterAlias(ctx, result.RawName, result.Item.Name, "ai", scope)

	case model.MethodAINew:
		if result.Draft == nil {
			return fmt.Errorf("ai_new result carries no draft")
		}
		draft := *result.Draft
		draft.Source = model.ItemSourceAI
		item, err := e.RegisterNewItem(ctx, &draft, scope)
		if err != nil {
			return err
		}
		if match.Normalize(result.RawName) != match.Normalize(item.Name) {
			return e.RegisterAlias(ctx, result.RawName, item.Name, "ai", scope)
		}
		return nil

	default:
		return fmt.Errorf("cannot learn from result with method %s", result.Method)
	}
}

// InvalidateCache drops cached snapshots: the given scope's, or every
// scope's when scope is nil. Global-layer writes must use the nil form.
func (e *Engine) InvalidateCache(scope *model.Scope) {
	if scope == nil {
		e.cache.invalidateAll()
		return
	}
	e.cache.invalidate(*scope)
}

// snapshot returns the cached catalog view for a scope, fetching and
// merging the global and overlay layers on a miss. The fetch is the only
// suspension point in the engine.
func (e *Engine) snapshot(ctx context.Context, scope model.Scope) (*model.CatalogView, error) {
	if view, ok := e.cache.get(scope); ok {
		return view, nil
	}

	globalItems, err := e.store.ItemsForScope(ctx, model.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCatalogFetch, err)
	}
	globalAliases, err := e.store.AliasesForScope(ctx, model.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCatalogFetch, err)
	}

	var overlayItems []model.CanonicalItem
	var overlayAliases []model.Alias
	if !scope.IsGlobal() {
		overlayItems, err = e.store.ItemsForScope(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrCatalogFetch, err)
		}
		overlayAliases, err = e.store.AliasesForScope(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrCatalogFetch, err)
		}
	}

	view := model.NewCatalogView(globalItems, overlayItems, globalAliases, overlayAliases, match.Normalize)
	e.cache.put(scope, view)

	slog.Debug("Built catalog snapshot",
		"scope", scope.Key(),
		"items", len(view.Items()),
		"aliases", len(view.Aliases()))
	return view, nil
}
