package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/thenoetrevino/arbor/internal/models"
)

const dateLayout = "2006-01-02 15:04"

// markdownRenderer caches one glamour renderer per wrap width
type markdownRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

func newMarkdownRenderer(style string) *markdownRenderer {
	return &markdownRenderer{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// Render returns md rendered for width, or md itself when rendering fails
func (r *markdownRenderer) Render(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, ok := r.renderers[width]
	if !ok {
		var err error
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		r.renderers[width] = renderer
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func activeLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func speciesMarkdown(s models.Species, zone, state string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.CommonName)
	if s.ScientificName != "" {
		fmt.Fprintf(&b, "*%s*\n\n", s.ScientificName)
	}
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| ID | %d |\n", s.ID)
	fmt.Fprintf(&b, "| Zone | %s |\n", zone)
	fmt.Fprintf(&b, "| Conservation state | %s |\n", state)
	fmt.Fprintf(&b, "| Status | %s |\n", activeLabel(s.Active))
	fmt.Fprintf(&b, "| Created | %s |\n", formatDate(s.CreatedAt))
	fmt.Fprintf(&b, "| Modified | %s |\n", formatDate(s.ModifiedAt))
	return b.String()
}

func zoneMarkdown(z models.Zone, speciesCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", z.Name)
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| ID | %d |\n", z.ID)
	fmt.Fprintf(&b, "| Forest type | %s |\n", z.ForestType)
	fmt.Fprintf(&b, "| Area | %.2f ha |\n", z.AreaHectares)
	fmt.Fprintf(&b, "| Status | %s |\n", activeLabel(z.Active))
	fmt.Fprintf(&b, "| Species | %d |\n", speciesCount)
	fmt.Fprintf(&b, "| Created | %s |\n", formatDate(z.CreatedAt))
	return b.String()
}

func stateMarkdown(s models.ConservationState, speciesCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Name)
	if s.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", s.Description)
	}
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| ID | %d |\n", s.ID)
	fmt.Fprintf(&b, "| Risk level | %s |\n", dash(s.RiskLevel))
	fmt.Fprintf(&b, "| Species | %d |\n", speciesCount)
	return b.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
