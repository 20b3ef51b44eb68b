package models

import "time"

// Species represents a tree species record.
// ID is zero until the service assigns one. ZoneName and ConservationStateName
// are denormalized by the service and may lag behind the zone and state
// collections.
type Species struct {
	ID                    int
	CommonName            string
	ScientificName        string
	ZoneID                int
	ZoneName              string
	ConservationStateID   int
	ConservationStateName string
	Active                bool
	CreatedAt             time.Time
	ModifiedAt            time.Time
}

// NewSpecies returns an active species with the given names and references
func NewSpecies(commonName, scientificName string, zoneID, conservationStateID int) Species {
	return Species{
		CommonName:          commonName,
		ScientificName:      scientificName,
		ZoneID:              zoneID,
		ConservationStateID: conservationStateID,
		Active:              true,
	}
}

// GetID returns the species ID
func (s Species) GetID() int {
	return s.ID
}
