package remote

import "github.com/thenoetrevino/arbor/internal/models"

// Operation names as exposed by the service
const (
	OpGetAllSpecies  = "getAllTreeSpecies"
	OpGetSpeciesByID = "getTreeSpeciesById"
	OpCreateSpecies  = "createTreeSpecies"
	OpUpdateSpecies  = "updateTreeSpecies"
	OpDeleteSpecies  = "deleteTreeSpecies"

	OpGetAllZones = "getAllZones"
	OpGetZoneByID = "getZoneById"
	OpCreateZone  = "createZone"
	OpUpdateZone  = "updateZone"
	OpDeleteZone  = "deleteZone"

	OpGetAllConservationStates = "getAllConservationStates"
	OpGetConservationStateByID = "getConservationStateById"
	OpCreateConservationState  = "createConservationState"
	OpUpdateConservationState  = "updateConservationState"
	OpDeleteConservationState  = "deleteConservationState"
)

// ListOp returns the get-all operation for kind
func ListOp(kind models.Kind) string {
	switch kind {
	case models.KindZone:
		return OpGetAllZones
	case models.KindConservationState:
		return OpGetAllConservationStates
	default:
		return OpGetAllSpecies
	}
}
