// Package storage provides the catalog persistence layer backed by SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pawprint/labresolve/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidItem  = errors.New("invalid canonical item")
	ErrInvalidAlias = errors.New("invalid alias")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateItem validates a canonical item before writing.
func validateItem(item *model.CanonicalItem) error {
	if item == nil {
		return fmt.Errorf("%w: item", ErrNilParameter)
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidItem)
	}
	return nil
}

// validateAlias validates an alias before writing. An alias must name its
// target by either ID or canonical name.
func validateAlias(alias *model.Alias) error {
	if alias == nil {
		return fmt.Errorf("%w: alias", ErrNilParameter)
	}
	if strings.TrimSpace(alias.Text) == "" {
		return fmt.Errorf("%w: missing text", ErrInvalidAlias)
	}
	if alias.ItemID == "" && strings.TrimSpace(alias.ItemName) == "" {
		return fmt.Errorf("%w: missing target item", ErrInvalidAlias)
	}
	return nil
}
