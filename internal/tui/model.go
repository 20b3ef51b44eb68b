// Package tui is the terminal interface over the data manager. Every result
// reaches the model through the dispatcher queue, so the model is only ever
// touched inside Update.
package tui

import (
	"context"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/thenoetrevino/arbor/internal/async"
	"github.com/thenoetrevino/arbor/internal/config"
	"github.com/thenoetrevino/arbor/internal/config/colors"
	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

// Mode selects how keys are interpreted and what is drawn
type Mode int

const (
	NormalMode Mode = iota
	SearchMode
	ConfirmDeleteMode
	CreateMode
	DetailMode
	HelpMode
)

// Severity of the status line
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Status is the one-line notification under the list
type Status struct {
	Text     string
	Severity Severity
}

// pendingDelete is the record awaiting confirmation
type pendingDelete struct {
	kind  models.Kind
	id    int
	label string
}

// Model is the bubbletea model. It must be used through a pointer.
type Model struct {
	ctx    context.Context
	mgr    *manager.Manager
	queue  *async.Queue
	keys   config.KeyMappings
	styles Styles
	scheme colors.ColorScheme

	width  int
	height int
	mode   Mode
	tab    int
	cursor map[models.Kind]int

	species []models.Species
	visible []models.Species
	zones   []models.Zone
	states  []models.ConservationState
	loading map[models.Kind]bool

	search     textinput.Model
	lastQuery  string
	activeOnly bool
	searchSeq  int

	showCache  bool
	connection manager.ConnectionReport
	status     Status
	confirm    pendingDelete
	form       *huh.Form
	formValues *createValues
	detail     string
	markdown   *markdownRenderer
}

// Option configures a Model
type Option func(*Model)

// WithMarkdownStyle sets the glamour style used by the detail view
func WithMarkdownStyle(style string) Option {
	return func(m *Model) {
		m.markdown = newMarkdownRenderer(style)
	}
}

// New creates a Model. queue must be the dispatcher the manager's runner
// delivers to.
func New(ctx context.Context, mgr *manager.Manager, queue *async.Queue, cfg *config.Config, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	search := textinput.New()
	search.Placeholder = "common or scientific name"
	search.Prompt = "Search: "

	m := &Model{
		ctx:      ctx,
		mgr:      mgr,
		queue:    queue,
		keys:     cfg.KeyMappings,
		styles:   NewStyles(cfg.ColorScheme),
		scheme:   cfg.ColorScheme,
		cursor:   make(map[models.Kind]int),
		loading:  make(map[models.Kind]bool),
		search:   search,
		markdown: newMarkdownRenderer("dark"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init starts listening to the queue and loads every collection
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		waitForDispatch(m.ctx, m.queue),
		func() tea.Msg { return reloadMsg{} },
	)
}

// Mode returns the current mode
func (m *Model) Mode() Mode {
	return m.mode
}

// Status returns the current status line
func (m *Model) Status() Status {
	return m.status
}

// Kind returns the kind shown by the selected tab
func (m *Model) Kind() models.Kind {
	return models.Kinds()[m.tab]
}

// Visible returns the species shown by the species tab
func (m *Model) Visible() []models.Species {
	return m.visible
}

func (m *Model) info(text string) {
	m.status = Status{Text: text, Severity: SeverityInfo}
}

func (m *Model) warn(text string) {
	m.status = Status{Text: text, Severity: SeverityWarning}
}

func (m *Model) fail(text string) {
	m.status = Status{Text: text, Severity: SeverityError}
}

// rows returns how many records the current tab lists
func (m *Model) rows() int {
	switch m.Kind() {
	case models.KindSpecies:
		return len(m.visible)
	case models.KindZone:
		return len(m.zones)
	default:
		return len(m.states)
	}
}

// clampCursor keeps the cursor of kind inside its list
func (m *Model) clampCursor(kind models.Kind, n int) {
	c := m.cursor[kind]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.cursor[kind] = c
}
