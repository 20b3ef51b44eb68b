package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Navigation
	NextTab  string `yaml:"next_tab"`
	PrevTab  string `yaml:"prev_tab"`
	PrevItem string `yaml:"prev_item"`
	NextItem string `yaml:"next_item"`

	// Filtering
	Search       string `yaml:"search"`
	ToggleActive string `yaml:"toggle_active"`
	ClearFilter  string `yaml:"clear_filter"`

	// Records
	ViewDetail string `yaml:"view_detail"`
	Create     string `yaml:"create"`
	Delete     string `yaml:"delete"`

	// Data
	Refresh        string `yaml:"refresh"`
	RefreshAll     string `yaml:"refresh_all"`
	CacheStatus    string `yaml:"cache_status"`
	TestConnection string `yaml:"test_connection"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		NextTab:  "tab",
		PrevTab:  "shift+tab",
		PrevItem: "k",
		NextItem: "j",

		Search:       "/",
		ToggleActive: "a",
		ClearFilter:  "x",

		ViewDetail: "enter",
		Create:     "n",
		Delete:     "d",

		Refresh:        "r",
		RefreshAll:     "R",
		CacheStatus:    "c",
		TestConnection: "t",

		ShowHelp: "?",
		Quit:     "q",
	}
}

func (k *KeyMappings) fields() []*string {
	return []*string{
		&k.NextTab, &k.PrevTab, &k.PrevItem, &k.NextItem,
		&k.Search, &k.ToggleActive, &k.ClearFilter,
		&k.ViewDetail, &k.Create, &k.Delete,
		&k.Refresh, &k.RefreshAll, &k.CacheStatus, &k.TestConnection,
		&k.ShowHelp, &k.Quit,
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()
	base := defaults.fields()
	for i, f := range k.fields() {
		if *f == "" {
			*f = *base[i]
		}
	}
}

// duplicates returns every key bound to more than one action
func (k *KeyMappings) duplicates() []string {
	seen := make(map[string]int)
	var dups []string
	for _, f := range k.fields() {
		seen[*f]++
		if seen[*f] == 2 {
			dups = append(dups, *f)
		}
	}
	return dups
}
