package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pawprint/labresolve/internal/common"
	"github.com/pawprint/labresolve/internal/match"
	"github.com/pawprint/labresolve/internal/model"
)

// AliasesForScope returns the aliases owned by exactly the given scope,
// joined with the canonical name they resolve to.
func (s *SQLiteStorage) AliasesForScope(ctx context.Context, scope model.Scope) ([]model.Alias, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.text, a.item_id, i.name, a.source_hint, a.created_at
		FROM aliases a
		JOIN canonical_items i ON i.id = a.item_id
		WHERE a.scope = ?
		ORDER BY a.text
	`, scope.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query aliases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var aliases []model.Alias
	for rows.Next() {
		var a model.Alias
		if err := rows.Scan(&a.Text, &a.ItemID, &a.ItemName, &a.SourceHint, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		aliases = append(aliases, a)
	}

	return aliases, rows.Err()
}

// SaveAlias upserts an alias keyed by (scope, normalized text). The target
// canonical item must already exist; aliasing to a missing item is rejected
// with no partial write.
func (s *SQLiteStorage) SaveAlias(ctx context.Context, alias *model.Alias, scope model.Scope) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAlias(alias); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	itemID := alias.ItemID
	if itemID == "" {
		// Resolve the target by canonical name, overlay before global.
		scopes := []string{scope.UserID}
		if !scope.IsGlobal() {
			scopes = append(scopes, "")
		}
		normName := match.Normalize(alias.ItemName)
		for _, sc := range scopes {
			err = tx.QueryRowContext(ctx, `
				SELECT id FROM canonical_items WHERE scope = ? AND norm_name = ?
			`, sc, normName).Scan(&itemID)
			if err == nil {
				break
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("failed to resolve alias target: %w", err)
			}
		}
		if itemID == "" {
			return fmt.Errorf("%w: %s", common.ErrUnknownItem, alias.ItemName)
		}
	} else {
		var exists bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM canonical_items WHERE id = ?)
		`, itemID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check alias target: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %s", common.ErrUnknownItem, itemID)
		}
	}

	if alias.CreatedAt.IsZero() {
		alias.CreatedAt = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO aliases (scope, text, norm_text, item_id, source_hint, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(scope, norm_text) DO UPDATE SET
			text = excluded.text,
			item_id = excluded.item_id,
			source_hint = excluded.source_hint
	`, scope.UserID, alias.Text, match.Normalize(alias.Text), itemID, alias.SourceHint, alias.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save alias: %w", err)
	}

	alias.ItemID = itemID
	return tx.Commit()
}

// DeleteAlias removes an alias from the given scope.
func (s *SQLiteStorage) DeleteAlias(ctx context.Context, text string, scope model.Scope) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(text, "text"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM aliases WHERE scope = ? AND norm_text = ?
	`, scope.UserID, match.Normalize(text))
	if err != nil {
		return fmt.Errorf("failed to delete alias: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
