package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/thenoetrevino/arbor/internal/models"
)

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dispatchMsg:
		msg.fn()
		return m, waitForDispatch(m.ctx, m.queue)

	case reloadMsg:
		m.loadAll(msg.force)
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case SearchMode:
			return m.updateSearch(msg)
		case ConfirmDeleteMode:
			return m.updateConfirm(msg)
		case CreateMode:
			if msg.String() == "esc" {
				m.closeForm()
				m.info("Create cancelled")
				return m, nil
			}
			return m.updateForm(msg)
		case DetailMode, HelpMode:
			return m.updateOverlay(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	switch m.mode {
	case SearchMode:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	case CreateMode:
		return m.updateForm(msg)
	}
	return m, nil
}

// updateForm forwards msg to the create form and submits it once completed
func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.closeForm()
		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitCreate()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		m.info("Create cancelled")
		return m, nil
	}
	return m, cmd
}

func (m *Model) updateNormal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	kind := m.Kind()

	switch key {
	case m.keys.Quit:
		return m, tea.Quit
	case m.keys.NextTab, "right", "l":
		m.tab = (m.tab + 1) % len(models.Kinds())
	case m.keys.PrevTab, "left", "h":
		m.tab = (m.tab + len(models.Kinds()) - 1) % len(models.Kinds())
	case m.keys.NextItem, "down":
		if m.cursor[kind] < m.rows()-1 {
			m.cursor[kind]++
		}
	case m.keys.PrevItem, "up":
		if m.cursor[kind] > 0 {
			m.cursor[kind]--
		}
	case m.keys.Search:
		if kind != models.KindSpecies {
			m.warn("Search applies to species")
			return m, nil
		}
		m.lastQuery = m.search.Value()
		m.mode = SearchMode
		return m, m.search.Focus()
	case m.keys.ToggleActive:
		m.activeOnly = !m.activeOnly
		m.applyFilter()
	case m.keys.ClearFilter:
		m.search.SetValue("")
		m.activeOnly = false
		m.applyFilter()
	case m.keys.ViewDetail:
		m.openDetail()
	case m.keys.Create:
		return m, m.openCreate()
	case m.keys.Delete:
		m.askDelete()
	case m.keys.Refresh:
		m.load(kind, true)
	case m.keys.RefreshAll:
		m.refreshAll()
	case m.keys.CacheStatus:
		m.showCache = !m.showCache
	case m.keys.TestConnection:
		m.testConnection()
	case m.keys.ShowHelp:
		m.mode = HelpMode
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.mode = NormalMode
		return m, nil
	case "esc":
		m.search.SetValue(m.lastQuery)
		m.search.Blur()
		m.mode = NormalMode
		m.applyFilter()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmDelete()
	case "n", "N", "esc":
		m.confirm = pendingDelete{}
		m.mode = NormalMode
		m.info("Delete cancelled")
	}
	return m, nil
}

func (m *Model) updateOverlay(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", m.keys.Quit, m.keys.ShowHelp:
		m.mode = NormalMode
		m.detail = ""
	}
	return m, nil
}
