package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent (tabs, titles, selection)
	Accent string `yaml:"accent"`

	// Record state
	Active   string `yaml:"active"`
	Inactive string `yaml:"inactive"`
	Delete   string `yaml:"delete"` // delete confirmations

	// Layout
	Border     string `yaml:"border"`
	SelectedFg string `yaml:"selected_fg"`
	SelectedBg string `yaml:"selected_bg"`

	// Text
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	// Status line
	InfoFg    string `yaml:"info_fg"`
	WarningFg string `yaml:"warning_fg"`
	ErrorFg   string `yaml:"error_fg"`
}

// GetPreset returns a preset color scheme by name, falling back to Default
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Accent, &c.Active, &c.Inactive, &c.Delete,
		&c.Border, &c.SelectedFg, &c.SelectedBg,
		&c.Title, &c.Subtle, &c.Normal,
		&c.InfoFg, &c.WarningFg, &c.ErrorFg,
	}
}

// ApplyDefaults fills in empty values from the selected preset
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}
	base := preset.fields()
	for i, f := range c.fields() {
		if *f == "" {
			*f = *base[i]
		}
	}
}

// MergeFrom copies every non-empty value of other over c
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	src := other.fields()
	for i, f := range c.fields() {
		if *src[i] != "" {
			*f = *src[i]
		}
	}
}
