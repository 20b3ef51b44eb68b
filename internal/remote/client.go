// Package remote defines the contract the client core consumes from the forest
// CRUD service, along with the errors every implementation reports.
package remote

import (
	"context"

	"github.com/thenoetrevino/arbor/internal/models"
)

// SpeciesClient covers the species endpoint.
// DeleteSpecies is a soft delete: the service flips Active to false and keeps the row.
type SpeciesClient interface {
	GetAllSpecies(ctx context.Context) ([]models.Species, error)
	GetSpeciesByID(ctx context.Context, id int) (*models.Species, error)
	CreateSpecies(ctx context.Context, species models.Species) (int, error)
	UpdateSpecies(ctx context.Context, species models.Species) (bool, error)
	DeleteSpecies(ctx context.Context, id int) (bool, error)
}

// ZoneClient covers the zone endpoint. DeleteZone is a soft delete.
type ZoneClient interface {
	GetAllZones(ctx context.Context) ([]models.Zone, error)
	GetZoneByID(ctx context.Context, id int) (*models.Zone, error)
	CreateZone(ctx context.Context, zone models.Zone) (int, error)
	UpdateZone(ctx context.Context, zone models.Zone) (bool, error)
	DeleteZone(ctx context.Context, id int) (bool, error)
}

// ConservationStateClient covers the conservation state endpoint
type ConservationStateClient interface {
	GetAllConservationStates(ctx context.Context) ([]models.ConservationState, error)
	GetConservationStateByID(ctx context.Context, id int) (*models.ConservationState, error)
	CreateConservationState(ctx context.Context, state models.ConservationState) (int, error)
	UpdateConservationState(ctx context.Context, state models.ConservationState) (bool, error)
	DeleteConservationState(ctx context.Context, id int) (bool, error)
}

// Client is the full remote repository contract.
// GetXByID returns an error wrapping ErrNotFound when the record does not exist.
// Any call may fail with a *TransportError or a *ServiceFault.
type Client interface {
	SpeciesClient
	ZoneClient
	ConservationStateClient
}

// Pinger is implemented by clients that can probe each endpoint cheaply
type Pinger interface {
	Ping(ctx context.Context, kind models.Kind) error
}
