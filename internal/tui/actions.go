package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

// loadAll loads every collection, reference data first
func (m *Model) loadAll(force bool) {
	m.load(models.KindConservationState, force)
	m.load(models.KindZone, force)
	m.load(models.KindSpecies, force)
}

func (m *Model) load(kind models.Kind, force bool) {
	m.loading[kind] = true
	switch kind {
	case models.KindSpecies:
		m.mgr.LoadSpecies(force, func(r manager.Result[[]models.Species]) {
			m.loading[kind] = false
			if !r.OK() {
				m.fail(r.Message)
				return
			}
			m.species = r.Value
			m.applyFilter()
			m.info(r.Message)
		})
	case models.KindZone:
		m.mgr.LoadZones(force, func(r manager.Result[[]models.Zone]) {
			m.loading[kind] = false
			if !r.OK() {
				m.fail(r.Message)
				return
			}
			m.zones = r.Value
			m.clampCursor(kind, len(m.zones))
			m.info(r.Message)
		})
	case models.KindConservationState:
		m.mgr.LoadConservationStates(force, func(r manager.Result[[]models.ConservationState]) {
			m.loading[kind] = false
			if !r.OK() {
				m.fail(r.Message)
				return
			}
			m.states = r.Value
			m.clampCursor(kind, len(m.states))
			m.info(r.Message)
		})
	}
}

// filter returns the species filter built from the search box and toggle
func (m *Model) filter() models.SearchFilter {
	f := models.SearchFilter{NameQuery: strings.TrimSpace(m.search.Value())}
	if m.activeOnly {
		f.ActiveOnly = models.Ptr(true)
	}
	return f
}

// applyFilter recomputes the visible species. Results of an older search
// that arrive late are dropped.
func (m *Model) applyFilter() {
	f := m.filter()
	m.searchSeq++
	if f.IsEmpty() {
		m.visible = m.species
		m.clampCursor(models.KindSpecies, len(m.visible))
		return
	}

	seq := m.searchSeq
	m.mgr.SearchAsync(f, func(r manager.Result[[]models.Species]) {
		if seq != m.searchSeq {
			return
		}
		if !r.OK() {
			m.fail(r.Message)
			return
		}
		m.visible = r.Value
		m.clampCursor(models.KindSpecies, len(m.visible))
		m.info(r.Message)
	})
}

// selected returns the id and label of the record under the cursor
func (m *Model) selected() (int, string, bool) {
	kind := m.Kind()
	i := m.cursor[kind]
	switch kind {
	case models.KindSpecies:
		if i < len(m.visible) {
			return m.visible[i].ID, m.visible[i].CommonName, true
		}
	case models.KindZone:
		if i < len(m.zones) {
			return m.zones[i].ID, m.zones[i].Name, true
		}
	case models.KindConservationState:
		if i < len(m.states) {
			return m.states[i].ID, m.states[i].Name, true
		}
	}
	return 0, "", false
}

func (m *Model) askDelete() {
	id, label, ok := m.selected()
	if !ok {
		m.warn("Nothing selected")
		return
	}
	m.confirm = pendingDelete{kind: m.Kind(), id: id, label: label}
	m.mode = ConfirmDeleteMode
}

func (m *Model) confirmDelete() {
	p := m.confirm
	m.confirm = pendingDelete{}
	m.mode = NormalMode

	done := func(r manager.Result[int]) {
		if !r.OK() {
			m.fail(r.Message)
			return
		}
		m.info(r.Message)
		m.load(p.kind, false)
	}
	m.info(fmt.Sprintf("Deleting %s %d...", p.kind.Singular(), p.id))
	switch p.kind {
	case models.KindSpecies:
		m.mgr.DeleteSpecies(p.id, done)
	case models.KindZone:
		m.mgr.DeleteZone(p.id, done)
	case models.KindConservationState:
		m.mgr.DeleteConservationState(p.id, done)
	}
}

func (m *Model) refreshAll() {
	m.mgr.RefreshAll()
	m.info("Refreshing all data...")
	m.loadAll(false)
}

func (m *Model) testConnection() {
	m.info("Testing connection...")
	m.mgr.CheckConnection(func(r manager.Result[manager.ConnectionReport]) {
		m.connection = r.Value
		if !r.OK() {
			m.fail(r.Message)
			return
		}
		if r.Value.Connected() < len(r.Value) {
			m.warn(r.Message)
			return
		}
		m.info(r.Message)
	})
}

func (m *Model) openDetail() {
	kind := m.Kind()
	i := m.cursor[kind]
	width := m.width - 4

	var md string
	switch kind {
	case models.KindSpecies:
		if i >= len(m.visible) {
			return
		}
		s := m.visible[i]
		md = speciesMarkdown(s, m.zoneLabel(s), m.stateLabel(s))
	case models.KindZone:
		if i >= len(m.zones) {
			return
		}
		z := m.zones[i]
		md = zoneMarkdown(z, m.countSpecies(func(s models.Species) bool { return s.ZoneID == z.ID }))
	case models.KindConservationState:
		if i >= len(m.states) {
			return
		}
		st := m.states[i]
		md = stateMarkdown(st, m.countSpecies(func(s models.Species) bool { return s.ConservationStateID == st.ID }))
	}
	m.detail = m.markdown.Render(md, width)
	m.mode = DetailMode
}

func (m *Model) countSpecies(match func(models.Species) bool) int {
	n := 0
	for _, s := range m.species {
		if match(s) {
			n++
		}
	}
	return n
}

func (m *Model) zoneLabel(s models.Species) string {
	if s.ZoneName != "" {
		return s.ZoneName
	}
	return m.mgr.ZoneName(s.ZoneID)
}

func (m *Model) stateLabel(s models.Species) string {
	if s.ConservationStateName != "" {
		return s.ConservationStateName
	}
	return m.mgr.ConservationStateName(s.ConservationStateID)
}

// openCreate shows the create form for the current tab
func (m *Model) openCreate() tea.Cmd {
	kind := m.Kind()
	v := &createValues{kind: kind}

	var form *huh.Form
	switch kind {
	case models.KindSpecies:
		if len(m.zones) == 0 || len(m.states) == 0 {
			m.warn("Zones and conservation states must be loaded before adding species")
			return nil
		}
		form = speciesForm(v, m.zones, m.states)
	case models.KindZone:
		form = zoneForm(v)
	default:
		form = stateForm(v)
	}

	m.form = form.WithTheme(formTheme(m.scheme))
	m.formValues = v
	m.mode = CreateMode
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formValues = nil
	m.mode = NormalMode
}

// submitCreate sends the completed form to the manager
func (m *Model) submitCreate() {
	v := m.formValues
	m.closeForm()
	if v == nil || !v.confirm {
		m.info("Create cancelled")
		return
	}

	done := func(r manager.Result[int]) {
		if !r.OK() {
			m.fail(r.Message)
			return
		}
		m.info(r.Message)
		m.load(v.kind, false)
	}
	m.info(fmt.Sprintf("Creating %s...", v.kind.Singular()))
	switch v.kind {
	case models.KindSpecies:
		m.mgr.CreateSpecies(models.NewSpecies(strings.TrimSpace(v.name), strings.TrimSpace(v.scientificName), v.zoneID, v.stateID), done)
	case models.KindZone:
		area, err := parseArea(v.area)
		if err != nil {
			m.fail(err.Error())
			return
		}
		m.mgr.CreateZone(models.Zone{Name: strings.TrimSpace(v.name), ForestType: v.forestType, AreaHectares: area, Active: true}, done)
	case models.KindConservationState:
		m.mgr.CreateConservationState(models.ConservationState{
			Name:        strings.TrimSpace(v.name),
			Description: strings.TrimSpace(v.description),
			RiskLevel:   v.riskLevel,
		}, done)
	}
}
