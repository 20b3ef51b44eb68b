package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/arbor/internal/config/colors"
	"github.com/thenoetrevino/arbor/internal/models"
)

// riskLevels offered by the conservation state form
var riskLevels = []string{"low", "medium", "high", "critical"}

// createValues holds the fields bound to the open create form
type createValues struct {
	kind models.Kind

	name           string
	scientificName string
	zoneID         int
	stateID        int

	forestType models.ForestType
	area       string

	description string
	riskLevel   string

	confirm bool
}

func requireText(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func parseArea(s string) (float64, error) {
	area, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !(area > 0) || math.IsInf(area, 1) {
		return 0, errors.New("area must be a number greater than zero")
	}
	return area, nil
}

func confirmField(noun string, v *bool) huh.Field {
	return huh.NewConfirm().
		Key("confirm").
		Title(fmt.Sprintf("Create this %s?", noun)).
		Affirmative("Yes").
		Negative("No").
		Value(v)
}

// speciesForm builds the species create form. zones and states supply the
// picker options and must not be empty.
func speciesForm(v *createValues, zones []models.Zone, states []models.ConservationState) *huh.Form {
	zoneOptions := make([]huh.Option[int], 0, len(zones))
	for _, z := range zones {
		zoneOptions = append(zoneOptions, huh.NewOption(z.Name, z.ID))
	}
	stateOptions := make([]huh.Option[int], 0, len(states))
	for _, s := range states {
		stateOptions = append(stateOptions, huh.NewOption(s.Name, s.ID))
	}
	v.zoneID = zones[0].ID
	v.stateID = states[0].ID

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("name").
			Title("Common Name").
			Placeholder("e.g. Ceibo").
			Validate(requireText("common name")).
			Value(&v.name),
		huh.NewInput().
			Key("scientific_name").
			Title("Scientific Name (optional)").
			Placeholder("e.g. Erythrina crista-galli").
			Value(&v.scientificName),
		huh.NewSelect[int]().
			Key("zone").
			Title("Zone").
			Options(zoneOptions...).
			Value(&v.zoneID),
		huh.NewSelect[int]().
			Key("state").
			Title("Conservation State").
			Options(stateOptions...).
			Value(&v.stateID),
		confirmField("species", &v.confirm),
	))
}

func zoneForm(v *createValues) *huh.Form {
	typeOptions := make([]huh.Option[models.ForestType], 0, len(models.ForestTypes()))
	for _, ft := range models.ForestTypes() {
		typeOptions = append(typeOptions, huh.NewOption(ft.String(), ft))
	}
	v.forestType = models.ForestOther

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("name").
			Title("Zone Name").
			Placeholder("Enter zone name...").
			Validate(requireText("zone name")).
			Value(&v.name),
		huh.NewSelect[models.ForestType]().
			Key("forest_type").
			Title("Forest Type").
			Options(typeOptions...).
			Value(&v.forestType),
		huh.NewInput().
			Key("area").
			Title("Area (hectares)").
			Placeholder("e.g. 120.5").
			Validate(func(s string) error {
				_, err := parseArea(s)
				return err
			}).
			Value(&v.area),
		confirmField("zone", &v.confirm),
	))
}

func stateForm(v *createValues) *huh.Form {
	options := make([]huh.Option[string], 0, len(riskLevels))
	for _, r := range riskLevels {
		options = append(options, huh.NewOption(r, r))
	}
	v.riskLevel = riskLevels[0]

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("name").
			Title("State Name").
			Placeholder("e.g. Near Threatened").
			Validate(requireText("state name")).
			Value(&v.name),
		huh.NewText().
			Key("description").
			Title("Description (optional)").
			CharLimit(500).
			Lines(3).
			Value(&v.description),
		huh.NewSelect[string]().
			Key("risk_level").
			Title("Risk Level").
			Options(options...).
			Value(&v.riskLevel),
		confirmField("conservation state", &v.confirm),
	))
}

// formTheme styles huh forms with the configured colors
func formTheme(scheme colors.ColorScheme) huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		accent := lipgloss.Color(scheme.Accent)
		subtle := lipgloss.Color(scheme.Subtle)
		normal := lipgloss.Color(scheme.Normal)
		errorColor := lipgloss.Color(scheme.ErrorFg)

		t.Focused.Base = t.Focused.Base.BorderForeground(accent)
		t.Focused.Title = t.Focused.Title.Foreground(lipgloss.Color(scheme.Title)).Bold(true)
		t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errorColor)
		t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errorColor)
		t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
		t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(lipgloss.Color(scheme.Active))
		t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(normal)
		t.Focused.FocusedButton = t.Focused.FocusedButton.
			Foreground(lipgloss.Color(scheme.SelectedFg)).
			Background(accent).
			Bold(true)
		t.Focused.BlurredButton = t.Focused.BlurredButton.
			Foreground(normal).
			Background(subtle)
		t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(accent)
		t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(subtle)
		t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)

		t.Blurred = t.Focused
		t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
		t.Blurred.Title = t.Blurred.Title.Foreground(subtle)
		return t
	})
}
