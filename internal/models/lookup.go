package models

// UnknownReference is displayed for references the client cannot resolve
const UnknownReference = "Unknown"

// ZoneName returns the name of the zone with the given ID, or UnknownReference
func ZoneName(id int, zones []Zone) string {
	for _, z := range zones {
		if z.ID == id {
			return z.Name
		}
	}
	return UnknownReference
}

// ConservationStateName returns the name of the state with the given ID, or UnknownReference
func ConservationStateName(id int, states []ConservationState) string {
	for _, s := range states {
		if s.ID == id {
			return s.Name
		}
	}
	return UnknownReference
}
