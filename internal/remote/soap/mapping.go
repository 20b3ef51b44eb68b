package soap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/thenoetrevino/arbor/internal/models"
)

// Wire field names
const (
	fieldID             = "id"
	fieldCommonName     = "nombreComun"
	fieldScientificName = "nombreCientifico"
	fieldStateID        = "estadoConservacionId"
	fieldStateName      = "estadoConservacionNombre"
	fieldZoneID         = "zonaId"
	fieldZoneName       = "zonaNombre"
	fieldActive         = "activo"
	fieldCreatedAt      = "fechaCreacion"
	fieldModifiedAt     = "fechaModificacion"
	fieldName           = "nombre"
	fieldForestType     = "tipoBosque"
	fieldArea           = "areaHa"
	fieldDescription    = "descripcion"
	fieldRiskLevel      = "nivelRiesgo"
)

// TimeLayout is the layout used when writing timestamps
const TimeLayout = "2006-01-02 15:04:05"

var timeLayouts = []string{
	TimeLayout,
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// ParseTime accepts every timestamp layout the service has been seen to emit.
// Empty input yields the zero time.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// FormatTime writes t in TimeLayout, "" for the zero time
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}

func parseInt(name, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	return n, nil
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return b
}

func parseFloat(name, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	return f, nil
}

// timestamps reads the creation and modification fields of r
func timestamps(r Return) (time.Time, time.Time, error) {
	created, err := ParseTime(r.Get(fieldCreatedAt))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("field %s: %w", fieldCreatedAt, err)
	}
	modified, err := ParseTime(r.Get(fieldModifiedAt))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("field %s: %w", fieldModifiedAt, err)
	}
	return created, modified, nil
}

// SpeciesParams returns the request parameters for s. The id is included when withID is set.
func SpeciesParams(s models.Species, withID bool) []Field {
	params := make([]Field, 0, 6)
	if withID {
		params = append(params, Field{fieldID, formatInt(s.ID)})
	}
	return append(params,
		Field{fieldCommonName, s.CommonName},
		Field{fieldScientificName, s.ScientificName},
		Field{fieldStateID, formatInt(s.ConservationStateID)},
		Field{fieldZoneID, formatInt(s.ZoneID)},
		Field{fieldActive, strconv.FormatBool(s.Active)},
	)
}

// SpeciesFromParams is the inverse of SpeciesParams
func SpeciesFromParams(params []Field) (models.Species, error) {
	return SpeciesFromReturn(Return{Fields: params})
}

// SpeciesFields renders s as a returned record
func SpeciesFields(s models.Species) []Field {
	return []Field{
		{fieldID, formatInt(s.ID)},
		{fieldCommonName, s.CommonName},
		{fieldScientificName, s.ScientificName},
		{fieldStateID, formatInt(s.ConservationStateID)},
		{fieldStateName, s.ConservationStateName},
		{fieldZoneID, formatInt(s.ZoneID)},
		{fieldZoneName, s.ZoneName},
		{fieldActive, strconv.FormatBool(s.Active)},
		{fieldCreatedAt, FormatTime(s.CreatedAt)},
		{fieldModifiedAt, FormatTime(s.ModifiedAt)},
	}
}

// SpeciesFromReturn decodes a species record. A missing activo field means active.
func SpeciesFromReturn(r Return) (models.Species, error) {
	id, err := parseInt(fieldID, r.Get(fieldID))
	if err != nil {
		return models.Species{}, err
	}
	zoneID, err := parseInt(fieldZoneID, r.Get(fieldZoneID))
	if err != nil {
		return models.Species{}, err
	}
	stateID, err := parseInt(fieldStateID, r.Get(fieldStateID))
	if err != nil {
		return models.Species{}, err
	}
	created, modified, err := timestamps(r)
	if err != nil {
		return models.Species{}, err
	}
	return models.Species{
		ID:                    id,
		CommonName:            r.Get(fieldCommonName),
		ScientificName:        r.Get(fieldScientificName),
		ZoneID:                zoneID,
		ZoneName:              r.Get(fieldZoneName),
		ConservationStateID:   stateID,
		ConservationStateName: r.Get(fieldStateName),
		Active:                parseBool(r.Get(fieldActive), true),
		CreatedAt:             created,
		ModifiedAt:            modified,
	}, nil
}

// ZoneParams returns the request parameters for z
func ZoneParams(z models.Zone, withID bool) []Field {
	params := make([]Field, 0, 5)
	if withID {
		params = append(params, Field{fieldID, formatInt(z.ID)})
	}
	return append(params,
		Field{fieldName, z.Name},
		Field{fieldForestType, z.ForestType.WireName()},
		Field{fieldArea, strconv.FormatFloat(z.AreaHectares, 'f', -1, 64)},
		Field{fieldActive, strconv.FormatBool(z.Active)},
	)
}

// ZoneFromParams is the inverse of ZoneParams
func ZoneFromParams(params []Field) (models.Zone, error) {
	return ZoneFromReturn(Return{Fields: params})
}

// ZoneFields renders z as a returned record
func ZoneFields(z models.Zone) []Field {
	return []Field{
		{fieldID, formatInt(z.ID)},
		{fieldName, z.Name},
		{fieldForestType, z.ForestType.WireName()},
		{fieldArea, strconv.FormatFloat(z.AreaHectares, 'f', -1, 64)},
		{fieldActive, strconv.FormatBool(z.Active)},
		{fieldCreatedAt, FormatTime(z.CreatedAt)},
		{fieldModifiedAt, FormatTime(z.ModifiedAt)},
	}
}

// ZoneFromReturn decodes a zone record
func ZoneFromReturn(r Return) (models.Zone, error) {
	id, err := parseInt(fieldID, r.Get(fieldID))
	if err != nil {
		return models.Zone{}, err
	}
	area, err := parseFloat(fieldArea, r.Get(fieldArea))
	if err != nil {
		return models.Zone{}, err
	}
	created, modified, err := timestamps(r)
	if err != nil {
		return models.Zone{}, err
	}
	return models.Zone{
		ID:           id,
		Name:         r.Get(fieldName),
		ForestType:   models.ParseForestType(r.Get(fieldForestType)),
		AreaHectares: area,
		Active:       parseBool(r.Get(fieldActive), true),
		CreatedAt:    created,
		ModifiedAt:   modified,
	}, nil
}

// ConservationStateParams returns the request parameters for s
func ConservationStateParams(s models.ConservationState, withID bool) []Field {
	params := make([]Field, 0, 4)
	if withID {
		params = append(params, Field{fieldID, formatInt(s.ID)})
	}
	return append(params,
		Field{fieldName, s.Name},
		Field{fieldDescription, s.Description},
		Field{fieldRiskLevel, s.RiskLevel},
	)
}

// ConservationStateFromParams is the inverse of ConservationStateParams
func ConservationStateFromParams(params []Field) (models.ConservationState, error) {
	return ConservationStateFromReturn(Return{Fields: params})
}

// ConservationStateFields renders s as a returned record
func ConservationStateFields(s models.ConservationState) []Field {
	return ConservationStateParams(s, true)
}

// ConservationStateFromReturn decodes a conservation state record
func ConservationStateFromReturn(r Return) (models.ConservationState, error) {
	id, err := parseInt(fieldID, r.Get(fieldID))
	if err != nil {
		return models.ConservationState{}, err
	}
	return models.ConservationState{
		ID:          id,
		Name:        r.Get(fieldName),
		Description: r.Get(fieldDescription),
		RiskLevel:   r.Get(fieldRiskLevel),
	}, nil
}

// IDParam returns the single id parameter used by getById and delete
func IDParam(id int) []Field {
	return []Field{{fieldID, formatInt(id)}}
}

// IDFromParams reads the id parameter
func IDFromParams(params []Field) (int, error) {
	return parseInt(fieldID, Return{Fields: params}.Get(fieldID))
}
