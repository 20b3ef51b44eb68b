package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/arbor/internal/models"
)

// SeedSampleData adds a few zones and species to an empty registry so a
// fresh service has something to browse. It does nothing when any zone exists.
// Species reference the IUCN states seeded by the migrations.
func SeedSampleData(ctx context.Context, r *Repository, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	zones, err := r.GetAllZones(ctx)
	if err != nil {
		return err
	}
	if len(zones) > 0 {
		return nil
	}
	states, err := r.GetAllConservationStates(ctx)
	if err != nil {
		return err
	}
	if len(states) < 4 {
		return fmt.Errorf("expected the default conservation states, found %d", len(states))
	}
	leastConcern, vulnerable, endangered := states[0].ID, states[2].ID, states[3].ID

	sampleZones := []models.Zone{
		{Name: "Reserva Norte", ForestType: models.ForestMontane, AreaHectares: 1250, Active: true},
		{Name: "Delta del Paraná", ForestType: models.ForestMangrove, AreaHectares: 320.5, Active: true},
		{Name: "Chaco Seco", ForestType: models.ForestDry, AreaHectares: 4800, Active: true},
	}
	zoneIDs := make([]int, 0, len(sampleZones))
	for _, z := range sampleZones {
		id, err := r.CreateZone(ctx, z)
		if err != nil {
			return fmt.Errorf("creating zone %q: %w", z.Name, err)
		}
		logger.Info("created sample zone", "id", id, "name", z.Name)
		zoneIDs = append(zoneIDs, id)
	}

	sampleSpecies := []models.Species{
		models.NewSpecies("Ceibo", "Erythrina crista-galli", zoneIDs[1], leastConcern),
		models.NewSpecies("Pino Paraná", "Araucaria angustifolia", zoneIDs[0], endangered),
		models.NewSpecies("Quebracho colorado", "Schinopsis balansae", zoneIDs[2], vulnerable),
		models.NewSpecies("Algarrobo blanco", "Prosopis alba", zoneIDs[2], leastConcern),
	}
	for _, s := range sampleSpecies {
		id, err := r.CreateSpecies(ctx, s)
		if err != nil {
			return fmt.Errorf("creating species %q: %w", s.CommonName, err)
		}
		logger.Info("created sample species", "id", id, "name", s.CommonName)
	}
	return nil
}
