// Package model defines the core domain models used throughout the application.
package model

import "time"

// ExamType tags a canonical item with the kind of panel it belongs to.
type ExamType string

// Exam type constants.
const (
	ExamTypeBiochemistry ExamType = "biochemistry"
	ExamTypeHematology   ExamType = "hematology"
	ExamTypeUrinalysis   ExamType = "urinalysis"
	ExamTypeOther        ExamType = "other"
)

// ItemSource indicates how a canonical item entered the catalog.
type ItemSource string

const (
	// ItemSourceAdmin indicates the item was registered by a catalog administrator.
	ItemSourceAdmin ItemSource = "ADMIN"
	// ItemSourceUser indicates the item was added to a user's personal catalog.
	ItemSourceUser ItemSource = "USER"
	// ItemSourceAI indicates the item was drafted by the AI disambiguation step.
	ItemSourceAI ItemSource = "AI"
)

// CanonicalItem is the authoritative registry entry for a lab analyte.
// The ID is immutable once assigned; display attributes may change.
type CanonicalItem struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	Name        string
	DisplayName string
	DefaultUnit string
	ExamType    ExamType
	Source      ItemSource
	OrganTags   []string
}

// Alias maps an alternate spelling to a canonical item. Alias text is
// unique within its owning scope.
type Alias struct {
	CreatedAt  time.Time
	Text       string
	ItemID     string
	ItemName   string
	SourceHint string
}

// Scope identifies the catalog context a lookup runs against: the global
// catalog alone, or the global catalog with one user's overrides layered
// on top. The zero value is the global scope.
type Scope struct {
	UserID string
}

// GlobalScope is the anonymous, global-catalog-only scope.
var GlobalScope = Scope{}

// IsGlobal reports whether the scope carries no user overlay.
func (s Scope) IsGlobal() bool {
	return s.UserID == ""
}

// Key returns a stable cache key for the scope.
func (s Scope) Key() string {
	if s.UserID == "" {
		return "global"
	}
	return "user:" + s.UserID
}
