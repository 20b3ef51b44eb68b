package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		Active:   "#FFFFFF",
		Inactive: "#808080",
		Delete:   "#FFFFFF",

		Border:     "#808080",
		SelectedFg: "#000000",
		SelectedBg: "#FFFFFF",

		Title:  "#FFFFFF",
		Subtle: "#808080",
		Normal: "#D0D0D0",

		InfoFg:    "#FFFFFF",
		WarningFg: "#FFFFFF",
		ErrorFg:   "#FFFFFF",
	}
}
