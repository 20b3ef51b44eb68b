// Package search applies compound species filters to in-memory collections
package search

import (
	"strings"

	"github.com/thenoetrevino/arbor/internal/models"
)

// Matches reports whether s satisfies every criterion set in f.
// Unset criteria are skipped. ActiveOnly=false places no restriction.
// Species without a creation timestamp fail any date-bounded filter.
func Matches(s models.Species, f models.SearchFilter) bool {
	if q := strings.TrimSpace(f.NameQuery); q != "" && !nameMatches(s, q) {
		return false
	}
	if f.ZoneID != nil && s.ZoneID != *f.ZoneID {
		return false
	}
	if f.ConservationStateID != nil && s.ConservationStateID != *f.ConservationStateID {
		return false
	}
	if f.ActiveOnly != nil && *f.ActiveOnly && !s.Active {
		return false
	}
	if f.HasDateBounds() {
		if s.CreatedAt.IsZero() {
			return false
		}
		if f.CreatedAfter != nil && s.CreatedAt.Before(*f.CreatedAfter) {
			return false
		}
		if f.CreatedBefore != nil && s.CreatedAt.After(*f.CreatedBefore) {
			return false
		}
	}
	return true
}

func nameMatches(s models.Species, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(s.CommonName), q) ||
		strings.Contains(strings.ToLower(s.ScientificName), q)
}

// Filter returns the species that match f, preserving their relative order.
// An empty filter returns every species.
func Filter(species []models.Species, f models.SearchFilter) []models.Species {
	out := make([]models.Species, 0, len(species))
	for _, s := range species {
		if Matches(s, f) {
			out = append(out, s)
		}
	}
	return out
}
