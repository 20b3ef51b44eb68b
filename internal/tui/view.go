package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/arbor/internal/models"
)

// chrome is the number of lines taken by tabs, filter, status and footer
const chrome = 8

// View renders the current state of the application
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	switch m.mode {
	case ConfirmDeleteMode:
		view.Content = m.place(m.viewConfirm())
	case CreateMode:
		view.Content = m.place(m.viewForm())
	case DetailMode:
		view.Content = m.place(m.styles.Panel.Render(m.detail))
	case HelpMode:
		view.Content = m.place(m.styles.Panel.Render(m.viewHelp()))
	default:
		view.Content = m.viewMain()
	}
	return view
}

// Render returns the plain content of View
func (m *Model) Render() string {
	return m.View().Content
}

func (m *Model) place(s string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

func (m *Model) viewMain() string {
	parts := []string{m.viewTabs(), m.viewFilter()}

	body := m.viewList()
	if m.showCache {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.viewCache())
	}
	parts = append(parts, body, m.viewStatus(), m.viewFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) viewTabs() string {
	kinds := models.Kinds()
	tabs := make([]string, 0, len(kinds))
	for i, kind := range kinds {
		label := fmt.Sprintf("%s (%d)", kind.Label(), m.count(kind))
		if m.loading[kind] {
			label += " …"
		}
		if i == m.tab {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m *Model) count(kind models.Kind) int {
	switch kind {
	case models.KindSpecies:
		return len(m.visible)
	case models.KindZone:
		return len(m.zones)
	default:
		return len(m.states)
	}
}

func (m *Model) viewFilter() string {
	if m.Kind() != models.KindSpecies {
		return ""
	}
	if m.mode == SearchMode {
		return m.search.View()
	}

	var parts []string
	if q := strings.TrimSpace(m.search.Value()); q != "" {
		parts = append(parts, fmt.Sprintf("name ~ %q", q))
	}
	if m.activeOnly {
		parts = append(parts, "active only")
	}
	if len(parts) == 0 {
		return m.styles.Subtle.Render("No filter")
	}
	return m.styles.Subtle.Render("Filter: " + strings.Join(parts, ", "))
}

func (m *Model) viewList() string {
	kind := m.Kind()
	var header string
	var lines []string

	switch kind {
	case models.KindSpecies:
		header = fmt.Sprintf("%-5s %-24s %-28s %-20s %-22s %s", "ID", "Common name", "Scientific name", "Zone", "Conservation state", "Status")
		for _, s := range m.visible {
			lines = append(lines, fmt.Sprintf("%-5d %-24s %-28s %-20s %-22s %s",
				s.ID, truncate(s.CommonName, 24), truncate(s.ScientificName, 28),
				truncate(m.zoneLabel(s), 20), truncate(m.stateLabel(s), 22), m.activeMark(s.Active)))
		}
	case models.KindZone:
		header = fmt.Sprintf("%-5s %-28s %-16s %12s  %s", "ID", "Name", "Forest type", "Area (ha)", "Status")
		for _, z := range m.zones {
			lines = append(lines, fmt.Sprintf("%-5d %-28s %-16s %12.2f  %s",
				z.ID, truncate(z.Name, 28), z.ForestType, z.AreaHectares, m.activeMark(z.Active)))
		}
	default:
		header = fmt.Sprintf("%-5s %-26s %-10s %s", "ID", "Name", "Risk", "Description")
		for _, s := range m.states {
			lines = append(lines, fmt.Sprintf("%-5d %-26s %-10s %s",
				s.ID, truncate(s.Name, 26), dash(s.RiskLevel), truncate(s.Description, 40)))
		}
	}

	if len(lines) == 0 {
		empty := "No records"
		if m.loading[kind] {
			empty = "Loading..."
		}
		return lipgloss.JoinVertical(lipgloss.Left, m.styles.Header.Render(header), m.styles.Subtle.Render(empty))
	}

	first, last := window(m.cursor[kind], len(lines), m.height-chrome)
	rendered := []string{m.styles.Header.Render(header)}
	for i := first; i < last; i++ {
		if i == m.cursor[kind] {
			rendered = append(rendered, m.styles.Selected.Render(lines[i]))
		} else {
			rendered = append(rendered, m.styles.Row.Render(lines[i]))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// window returns the slice of rows to draw so the cursor stays visible
func window(cursor, n, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	first := cursor - height/2
	if first < 0 {
		first = 0
	}
	if first+height > n {
		first = n - height
	}
	return first, first + height
}

func (m *Model) activeMark(active bool) string {
	if active {
		return m.styles.Active.Render("active")
	}
	return m.styles.Inactive.Render("inactive")
}

func (m *Model) viewCache() string {
	status := m.mgr.CacheStatus()
	kinds := models.Kinds()
	lines := []string{m.styles.Title.Render("Cache")}
	for _, kind := range kinds {
		st, ok := status[kind]
		if !ok {
			lines = append(lines, fmt.Sprintf("%-20s not cached", kind.Label()))
			continue
		}
		state := "stale"
		if st.Fresh {
			state = fmt.Sprintf("fresh, expires in %s", st.ExpiresIn.Round(time.Second))
		}
		lines = append(lines, fmt.Sprintf("%-20s %d items, age %s, %s",
			kind.Label(), st.Size, st.Age.Round(time.Second), state))
	}

	if len(m.connection) > 0 {
		lines = append(lines, "", m.styles.Title.Render("Connection"))
		connected := make([]string, 0, len(m.connection))
		for kind, err := range m.connection {
			mark := m.styles.Active.Render("ok")
			if err != nil {
				mark = m.styles.Error.Render("unreachable")
			}
			connected = append(connected, fmt.Sprintf("%-20s %s", kind.Label(), mark))
		}
		sort.Strings(connected)
		lines = append(lines, connected...)
	}
	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

func (m *Model) viewStatus() string {
	if m.status.Text == "" {
		return ""
	}
	switch m.status.Severity {
	case SeverityError:
		return m.styles.Error.Render(m.status.Text)
	case SeverityWarning:
		return m.styles.Warning.Render(m.status.Text)
	default:
		return m.styles.Info.Render(m.status.Text)
	}
}

func (m *Model) viewFooter() string {
	k := m.keys
	return m.styles.Subtle.Render(fmt.Sprintf(
		"%s/%s tabs  %s/%s move  %s search  %s active  %s detail  %s new  %s delete  %s refresh  %s refresh all  %s cache  %s help  %s quit",
		k.PrevTab, k.NextTab, k.PrevItem, k.NextItem, k.Search, k.ToggleActive,
		k.ViewDetail, k.Create, k.Delete, k.Refresh, k.RefreshAll, k.CacheStatus, k.ShowHelp, k.Quit))
}

func (m *Model) viewConfirm() string {
	p := m.confirm
	text := fmt.Sprintf("Delete %s %d %q?\n\n", p.kind.Singular(), p.id, p.label)
	if p.kind == models.KindConservationState {
		text += "This cannot be undone.\n\n"
	}
	text += "y: delete   n: cancel"
	return m.styles.Confirm.Render(text)
}

func (m *Model) viewForm() string {
	if m.form == nil || m.formValues == nil {
		return ""
	}
	title := m.styles.Title.Render("New " + m.formValues.kind.Singular())
	hint := m.styles.Subtle.Render("enter: next   esc: cancel")
	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View(), "", hint))
}

func (m *Model) viewHelp() string {
	k := m.keys
	rows := [][2]string{
		{k.NextTab + " / " + k.PrevTab, "switch tab"},
		{k.NextItem + " / " + k.PrevItem, "move selection"},
		{k.Search, "search species by name"},
		{k.ToggleActive, "toggle active only"},
		{k.ClearFilter, "clear filter"},
		{k.ViewDetail, "show details"},
		{k.Create, "add a record to this tab"},
		{k.Delete, "delete selected"},
		{k.Refresh, "reload this tab from the service"},
		{k.RefreshAll, "drop the cache and reload everything"},
		{k.CacheStatus, "show cache status"},
		{k.TestConnection, "test the connection"},
		{k.ShowHelp, "toggle help"},
		{k.Quit, "quit"},
	}
	lines := []string{m.styles.Title.Render("Keys"), ""}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-18s %s", r[0], r[1]))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
