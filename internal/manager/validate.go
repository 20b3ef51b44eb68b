package manager

import (
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/thenoetrevino/arbor/internal/cache"
	"github.com/thenoetrevino/arbor/internal/models"
)

const maxNameLength = 255

func validateName(field, label, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid(field, ErrEmptyName, "%s is required", label)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return invalid(field, ErrNameTooLong, "%s cannot exceed %d characters", label, maxNameLength)
	}
	return nil
}

func validateID(label string, id int) error {
	if id <= 0 {
		return invalid("id", ErrInvalidID, "%s ID must be a positive number", capitalize(label))
	}
	return nil
}

// resolvable reports whether id may reference a record of kind. Whenever the
// collection is cached, fresh or not, the id must be in it; otherwise the
// service is left to decide.
func resolvable[T models.Identifiable](m *Manager, kind models.Kind, id int) bool {
	items, _, ok := cache.Peek[T](m.cache, kind)
	if !ok {
		return true
	}
	return slices.ContainsFunc(items, func(item T) bool { return item.GetID() == id })
}

func (m *Manager) validateSpecies(s models.Species) error {
	if err := validateName("common_name", "Common name", s.CommonName); err != nil {
		return err
	}
	if utf8.RuneCountInString(s.ScientificName) > maxNameLength {
		return invalid("scientific_name", ErrNameTooLong, "Scientific name cannot exceed %d characters", maxNameLength)
	}
	if s.ZoneID <= 0 {
		return invalid("zone_id", ErrUnknownZone, "Please select a zone")
	}
	if !resolvable[models.Zone](m, models.KindZone, s.ZoneID) {
		return invalid("zone_id", ErrUnknownZone, "Zone %d does not exist", s.ZoneID)
	}
	if s.ConservationStateID <= 0 {
		return invalid("conservation_state_id", ErrUnknownState, "Please select a conservation state")
	}
	if !resolvable[models.ConservationState](m, models.KindConservationState, s.ConservationStateID) {
		return invalid("conservation_state_id", ErrUnknownState, "Conservation state %d does not exist", s.ConservationStateID)
	}
	return nil
}

func validateZone(z models.Zone) error {
	if err := validateName("name", "Zone name", z.Name); err != nil {
		return err
	}
	if !(z.AreaHectares > 0) || math.IsInf(z.AreaHectares, 1) {
		return invalid("area_ha", ErrInvalidArea, "Area must be a finite number greater than zero hectares")
	}
	if !z.ForestType.Valid() {
		return invalid("forest_type", ErrInvalidForestType, "Forest type %d is not recognised", int(z.ForestType))
	}
	return nil
}

func validateConservationState(s models.ConservationState) error {
	return validateName("name", "State name", s.Name)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
