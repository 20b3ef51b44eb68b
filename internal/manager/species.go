package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/arbor/internal/async"
	"github.com/thenoetrevino/arbor/internal/cache"
	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/search"
)

// SpeciesByID looks a species up on the service. Soft-deleted species are
// returned with Active false; an unknown id yields a nil value.
func (m *Manager) SpeciesByID(id int, cb Callback[*models.Species]) {
	byID(m, models.KindSpecies, id, m.client.GetSpeciesByID, cb)
}

// CreateSpecies validates s and creates it. The callback carries the new id.
func (m *Manager) CreateSpecies(s models.Species, cb Callback[int]) {
	if err := m.validateSpecies(s); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}
	s.ID = 0
	s.CommonName = strings.TrimSpace(s.CommonName)
	s.ScientificName = strings.TrimSpace(s.ScientificName)

	mutate(m, models.KindSpecies, "create species", func(ctx context.Context) (int, error) {
		return m.client.CreateSpecies(ctx, s)
	}, func(id int) string {
		return fmt.Sprintf("Species '%s' created with ID %d", s.CommonName, id)
	}, "Error creating species", cb)
}

// UpdateSpecies validates s and replaces the species with the given id
func (m *Manager) UpdateSpecies(id int, s models.Species, cb Callback[int]) {
	if err := validateID("species", id); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}
	if err := m.validateSpecies(s); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}
	s.ID = id
	s.CommonName = strings.TrimSpace(s.CommonName)
	s.ScientificName = strings.TrimSpace(s.ScientificName)

	mutate(m, models.KindSpecies, "update species", func(ctx context.Context) (int, error) {
		ok, err := m.client.UpdateSpecies(ctx, s)
		return applied(id, ok, err)
	}, func(int) string {
		return fmt.Sprintf("Species '%s' updated", s.CommonName)
	}, "Error updating species", cb)
}

// DeleteSpecies soft-deletes the species with the given id
func (m *Manager) DeleteSpecies(id int, cb Callback[int]) {
	if err := validateID("species", id); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}

	mutate(m, models.KindSpecies, "delete species", func(ctx context.Context) (int, error) {
		ok, err := m.client.DeleteSpecies(ctx, id)
		return applied(id, ok, err)
	}, func(id int) string {
		return fmt.Sprintf("Species %d deleted", id)
	}, "Error deleting species", cb)
}

// Search filters the species collection, fetching it when the cache holds
// no fresh copy. Results keep the collection's order.
func (m *Manager) Search(ctx context.Context, filter models.SearchFilter) ([]models.Species, error) {
	species, err := m.AllSpecies(ctx, false)
	if err != nil {
		return nil, err
	}
	return search.Filter(species, filter), nil
}

// SearchAsync is Search delivered through the runner. A fresh cache answers synchronously.
func (m *Manager) SearchAsync(filter models.SearchFilter, cb Callback[[]models.Species]) {
	found := func(items []models.Species) Result[[]models.Species] {
		return succeed(items, fmt.Sprintf("Found %d species matching criteria", len(items)))
	}

	if species, ok := cache.Cached[models.Species](m.cache, models.KindSpecies); ok {
		cb.deliver(found(search.Filter(species, filter)))
		return
	}

	err := async.Go(m.runner, "search species", func(ctx context.Context) ([]models.Species, error) {
		return m.Search(ctx, filter)
	}, func(items []models.Species, err error) {
		if err != nil {
			m.logger.Warn("search failed", "error", err)
			cb.deliver(fail[[]models.Species](err, "Error searching species"))
			return
		}
		cb.deliver(found(items))
	})
	if err != nil {
		cb.deliver(fail[[]models.Species](err, "Error searching species"))
	}
}
