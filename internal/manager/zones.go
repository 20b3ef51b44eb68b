package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/arbor/internal/models"
)

// ZoneByID looks a zone up on the service. An unknown id yields a nil value.
func (m *Manager) ZoneByID(id int, cb Callback[*models.Zone]) {
	byID(m, models.KindZone, id, m.client.GetZoneByID, cb)
}

// CreateZone validates z and creates it. The callback carries the new id.
func (m *Manager) CreateZone(z models.Zone, cb Callback[int]) {
	if err := validateZone(z); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}
	z.ID = 0
	z.Name = strings.TrimSpace(z.Name)

	mutate(m, models.KindZone, "create zone", func(ctx context.Context) (int, error) {
		return m.client.CreateZone(ctx, z)
	}, func(id int) string {
		return fmt.Sprintf("Zone '%s' created with ID %d", z.Name, id)
	}, "Error creating zone", cb)
}

// UpdateZone validates z and replaces the zone with the given id.
// Species keep their cached zone names until species are refreshed.
func (m *Manager) UpdateZone(id int, z models.Zone, cb Callback[int]) {
	if err := validateID("zone", id); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}
	if err := validateZone(z); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}
	z.ID = id
	z.Name = strings.TrimSpace(z.Name)

	mutate(m, models.KindZone, "update zone", func(ctx context.Context) (int, error) {
		ok, err := m.client.UpdateZone(ctx, z)
		return applied(id, ok, err)
	}, func(int) string {
		return fmt.Sprintf("Zone '%s' updated", z.Name)
	}, "Error updating zone", cb)
}

// DeleteZone soft-deletes the zone with the given id
func (m *Manager) DeleteZone(id int, cb Callback[int]) {
	if err := validateID("zone", id); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}

	mutate(m, models.KindZone, "delete zone", func(ctx context.Context) (int, error) {
		ok, err := m.client.DeleteZone(ctx, id)
		return applied(id, ok, err)
	}, func(id int) string {
		return fmt.Sprintf("Zone %d deleted", id)
	}, "Error deleting zone", cb)
}
