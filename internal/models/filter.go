package models

import (
	"strings"
	"time"
)

// SearchFilter holds the optional criteria of a species search.
// A nil pointer or blank NameQuery leaves that criterion unset.
type SearchFilter struct {
	NameQuery           string
	ZoneID              *int
	ConservationStateID *int
	ActiveOnly          *bool
	CreatedAfter        *time.Time
	CreatedBefore       *time.Time
}

// IsEmpty reports whether no criterion would restrict a search.
// ActiveOnly=false restricts nothing.
func (f SearchFilter) IsEmpty() bool {
	return strings.TrimSpace(f.NameQuery) == "" && f.ZoneID == nil && f.ConservationStateID == nil &&
		(f.ActiveOnly == nil || !*f.ActiveOnly) && f.CreatedAfter == nil && f.CreatedBefore == nil
}

// HasDateBounds reports whether either creation date bound is set
func (f SearchFilter) HasDateBounds() bool {
	return f.CreatedAfter != nil || f.CreatedBefore != nil
}

// Ptr returns a pointer to v. Handy for building filters.
func Ptr[T any](v T) *T {
	return &v
}
