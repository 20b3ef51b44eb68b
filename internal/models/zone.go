package models

import (
	"strings"
	"time"
)

// ForestType classifies the forest found in a zone
type ForestType int

const (
	ForestOther ForestType = iota
	ForestDry
	ForestHumidTropical
	ForestMontane
	ForestMangrove
)

var forestTypeNames = map[ForestType]struct {
	wire    string
	english string
}{
	ForestDry:           {"Seco", "Dry"},
	ForestHumidTropical: {"Húmedo Tropical", "Humid Tropical"},
	ForestMontane:       {"Montano", "Montane"},
	ForestMangrove:      {"Manglar", "Mangrove"},
	ForestOther:         {"Otro", "Other"},
}

// ForestTypes returns every forest type in picker order
func ForestTypes() []ForestType {
	return []ForestType{ForestDry, ForestHumidTropical, ForestMontane, ForestMangrove, ForestOther}
}

// String returns the English display name
func (f ForestType) String() string {
	if n, ok := forestTypeNames[f]; ok {
		return n.english
	}
	return forestTypeNames[ForestOther].english
}

// WireName returns the name the forest service uses for this type
func (f ForestType) WireName() string {
	if n, ok := forestTypeNames[f]; ok {
		return n.wire
	}
	return forestTypeNames[ForestOther].wire
}

// Valid reports whether f is one of the known forest types
func (f ForestType) Valid() bool {
	_, ok := forestTypeNames[f]
	return ok
}

// MarshalText encodes the English display name
func (f ForestType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes any name ParseForestType accepts
func (f *ForestType) UnmarshalText(text []byte) error {
	*f = ParseForestType(string(text))
	return nil
}

// ParseForestType matches s case-insensitively against the wire names and the
// English names. Unknown or empty input maps to ForestOther.
func ParseForestType(s string) ForestType {
	s = strings.TrimSpace(s)
	if s == "" {
		return ForestOther
	}
	compact := strings.ReplaceAll(s, "_", " ")
	for f, n := range forestTypeNames {
		if strings.EqualFold(s, n.wire) || strings.EqualFold(compact, n.english) ||
			strings.EqualFold(strings.ReplaceAll(n.english, " ", ""), s) {
			return f
		}
	}
	return ForestOther
}

// Zone represents a geographic zone that species are registered in
type Zone struct {
	ID           int
	Name         string
	ForestType   ForestType
	AreaHectares float64
	Active       bool
	CreatedAt    time.Time
	ModifiedAt   time.Time
}

// GetID returns the zone ID
func (z Zone) GetID() int {
	return z.ID
}
