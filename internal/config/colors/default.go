package colors

// Default returns the default color scheme (forest greens)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#5FAF5F",

		Active:   "#87D787",
		Inactive: "#808080",
		Delete:   "#FF5F5F",

		Border:     "#3A5F3A",
		SelectedFg: "#FFFFFF",
		SelectedBg: "#2F4F2F",

		Title:  "#AFD787",
		Subtle: "#626262",
		Normal: "#D0D0D0",

		InfoFg:    "#5FAFD7",
		WarningFg: "#FFD75F",
		ErrorFg:   "#FF5F5F",
	}
}
