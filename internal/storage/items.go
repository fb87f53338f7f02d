package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pawprint/labresolve/internal/common"
	"github.com/pawprint/labresolve/internal/match"
	"github.com/pawprint/labresolve/internal/model"
)

const itemColumns = `id, scope, name, display_name, exam_type, organ_tags, default_unit, source, created_at, updated_at`

// ItemsForScope returns the canonical items owned by exactly the given scope.
func (s *SQLiteStorage) ItemsForScope(ctx context.Context, scope model.Scope) ([]model.CanonicalItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM canonical_items
		WHERE scope = ?
		ORDER BY name
	`, scope.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query canonical items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.CanonicalItem
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetItemByName finds a canonical item by normalized name, searching the
// user overlay first when the scope has one, then the global layer.
func (s *SQLiteStorage) GetItemByName(ctx context.Context, name string, scope model.Scope) (*model.CanonicalItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	scopes := []string{scope.UserID}
	if !scope.IsGlobal() {
		scopes = append(scopes, "")
	}

	for _, sc := range scopes {
		item, err := s.getItemByNormName(ctx, match.Normalize(name), sc)
		if err != nil {
			return nil, err
		}
		if item != nil {
			return item, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", common.ErrNotFound, name)
}

func (s *SQLiteStorage) getItemByNormName(ctx context.Context, normName, scopeID string) (*model.CanonicalItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM canonical_items
		WHERE scope = ? AND norm_name = ?
	`, scopeID, normName)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemByID retrieves a canonical item by its identifier.
func (s *SQLiteStorage) GetItemByID(ctx context.Context, id string) (*model.CanonicalItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM canonical_items
		WHERE id = ?
	`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveItem upserts a canonical item keyed by (scope, normalized name).
// An existing row keeps its identifier; only display attributes change.
// The item's ID field is filled in on return.
func (s *SQLiteStorage) SaveItem(ctx context.Context, item *model.CanonicalItem, scope model.Scope) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateItem(item); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	normName := match.Normalize(item.Name)
	now := time.Now()

	var existingID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM canonical_items WHERE scope = ? AND norm_name = ?
	`, scope.UserID, normName).Scan(&existingID)

	switch {
	case err == nil:
		item.ID = existingID
		_, err = tx.ExecContext(ctx, `
			UPDATE canonical_items
			SET display_name = ?, exam_type = ?, organ_tags = ?, default_unit = ?, updated_at = ?
			WHERE id = ?
		`, item.DisplayName, string(item.ExamType), joinTags(item.OrganTags), item.DefaultUnit, now, existingID)
		if err != nil {
			return fmt.Errorf("failed to update canonical item: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO canonical_items (id, scope, name, norm_name, display_name, exam_type, organ_tags, default_unit, source, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, item.ID, scope.UserID, item.Name, normName, item.DisplayName, string(item.ExamType), joinTags(item.OrganTags), item.DefaultUnit, string(item.Source), item.CreatedAt, now)
		if err != nil {
			return fmt.Errorf("failed to insert canonical item: %w", err)
		}
	default:
		return fmt.Errorf("failed to check for existing item: %w", err)
	}

	item.UpdatedAt = now
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (model.CanonicalItem, error) {
	var item model.CanonicalItem
	var scopeID, examType, organTags, source string

	err := row.Scan(
		&item.ID,
		&scopeID,
		&item.Name,
		&item.DisplayName,
		&examType,
		&organTags,
		&item.DefaultUnit,
		&source,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, err
		}
		return item, fmt.Errorf("failed to scan canonical item: %w", err)
	}

	item.ExamType = model.ExamType(examType)
	item.Source = model.ItemSource(source)
	item.OrganTags = splitTags(organTags)
	return item, nil
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
