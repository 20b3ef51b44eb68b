package models

// ConservationState represents a conservation category such as "Endangered"
type ConservationState struct {
	ID          int
	Name        string
	Description string
	RiskLevel   string
}

// GetID returns the conservation state ID
func (c ConservationState) GetID() int {
	return c.ID
}
