package models

// Kind identifies one of the entity collections held by the forest service.
// It doubles as the cache key for that collection.
type Kind string

const (
	KindSpecies           Kind = "species"
	KindZone              Kind = "zones"
	KindConservationState Kind = "conservation_states"
)

// Kinds returns every entity kind in display order
func Kinds() []Kind {
	return []Kind{KindSpecies, KindZone, KindConservationState}
}

// Label returns a human-readable name for the kind
func (k Kind) Label() string {
	switch k {
	case KindSpecies:
		return "Species"
	case KindZone:
		return "Zones"
	case KindConservationState:
		return "Conservation states"
	default:
		return string(k)
	}
}

// Singular returns the singular noun used in user-facing messages
func (k Kind) Singular() string {
	switch k {
	case KindSpecies:
		return "species"
	case KindZone:
		return "zone"
	case KindConservationState:
		return "conservation state"
	default:
		return string(k)
	}
}

// Identifiable is implemented by every entity held by the service
type Identifiable interface {
	GetID() int
}
