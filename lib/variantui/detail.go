// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variantui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/varscope/varscope/lib/distance"
	"github.com/varscope/varscope/lib/pdb"
	"github.com/varscope/varscope/lib/tui"
	"github.com/varscope/varscope/lib/viewer"
)

// detailHeaderLines is the fixed header height: name line,
// classification line, position line, blank line, separator rule. The
// header stays pinned while the body scrolls.
const detailHeaderLines = 5

// DetailPane shows the selected variant: a fixed identity header over
// a scrolling body with the measurement block and rendered notes.
type DetailPane struct {
	theme  tui.Theme
	width  int
	height int

	viewport viewport.Model
	header   string

	// current tracks which row the pane renders so selection moves
	// reset the scroll position but re-renders keep it.
	current string
	hasRow  bool
}

// NewDetailPane returns an empty detail pane; SetSize must be called
// before the first View.
func NewDetailPane(theme tui.Theme) *DetailPane {
	return &DetailPane{theme: theme}
}

// SetSize resizes the pane. Width changes force content re-rendering
// through the next SetContent call.
func (pane *DetailPane) SetSize(width, height int) {
	widthChanged := width != pane.width
	pane.width = width
	pane.height = height

	bodyHeight := height - detailHeaderLines
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	pane.viewport.Width = pane.contentWidth()
	pane.viewport.Height = bodyHeight

	if widthChanged {
		pane.current = ""
	}
}

func (pane *DetailPane) contentWidth() int {
	width := pane.width - 2
	if width < 16 {
		width = 16
	}
	return width
}

// SetContent renders the given row plus the active measurement mode
// into the pane. Selecting a different variant resets the scroll
// position; re-rendering the same variant (a new computation pass, a
// mode switch) keeps it, clamped to the new body height.
func (pane *DetailPane) SetContent(r row, mode distance.Mode) {
	offset := pane.viewport.YOffset
	sameRow := pane.hasRow && pane.current == r.variant.Name

	pane.header = pane.renderHeader(r)
	pane.viewport.SetContent(pane.renderBody(r, mode))
	pane.hasRow = true
	pane.current = r.variant.Name

	if sameRow {
		pane.viewport.SetYOffset(offset)
	} else {
		pane.viewport.GotoTop()
	}
}

// Clear empties the pane back to its placeholder state.
func (pane *DetailPane) Clear() {
	pane.hasRow = false
	pane.current = ""
}

// ScrollUp scrolls the body up one line.
func (pane *DetailPane) ScrollUp() { pane.viewport.LineUp(1) }

// ScrollDown scrolls the body down one line.
func (pane *DetailPane) ScrollDown() { pane.viewport.LineDown(1) }

// PageUp scrolls the body up half a page.
func (pane *DetailPane) PageUp() { pane.viewport.HalfViewUp() }

// PageDown scrolls the body down half a page.
func (pane *DetailPane) PageDown() { pane.viewport.HalfViewDown() }

// GotoTop jumps the body to the first line.
func (pane *DetailPane) GotoTop() { pane.viewport.GotoTop() }

// GotoBottom jumps the body to the last line.
func (pane *DetailPane) GotoBottom() { pane.viewport.GotoBottom() }

// View renders the pane at its current size.
func (pane *DetailPane) View() string {
	if !pane.hasRow {
		placeholder := lipgloss.NewStyle().Foreground(pane.theme.FaintText).
			Render("Select a variant to see details")
		return lipgloss.Place(pane.width, pane.height, lipgloss.Center, lipgloss.Center, placeholder)
	}

	padding := lipgloss.NewStyle().PaddingLeft(1)
	return padding.Render(pane.header) + "\n" + padding.Render(pane.viewport.View())
}

func (pane *DetailPane) renderHeader(r row) string {
	width := pane.contentWidth()

	name := lipgloss.NewStyle().Bold(true).Foreground(pane.theme.HeaderForeground).
		Render(truncateString(r.variant.Name, width))

	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(r.variant.DisplayColor())).
		Render(r.variant.Classification.String())

	position := fmt.Sprintf("residue %d", r.variant.Position)
	resolved := "resolved in structure"
	resolvedStyle := lipgloss.NewStyle().Foreground(pane.theme.FaintText)
	if !r.enabled {
		resolved = "not resolved in structure"
		resolvedStyle = lipgloss.NewStyle().Foreground(pane.theme.WarningText)
	}

	rule := lipgloss.NewStyle().Foreground(pane.theme.BorderColor).
		Render(strings.Repeat("─", width))

	return strings.Join([]string{
		name,
		badge,
		lipgloss.NewStyle().Foreground(pane.theme.NormalText).Render(position) +
			"  " + resolvedStyle.Render(resolved),
		"",
		rule,
	}, "\n")
}

func (pane *DetailPane) renderBody(r row, mode distance.Mode) string {
	width := pane.contentWidth()
	var sections []string

	sections = append(sections, pane.renderMeasurement(r, mode, width))

	if notes := strings.TrimSpace(r.variant.Notes); notes != "" {
		heading := lipgloss.NewStyle().Bold(true).Foreground(pane.theme.HeaderForeground).
			Render("Notes")
		sections = append(sections, heading+"\n\n"+renderTerminalMarkdown(pane.theme, notes, width))
	}

	return strings.Join(sections, "\n\n")
}

func (pane *DetailPane) renderMeasurement(r row, mode distance.Mode, width int) string {
	label := lipgloss.NewStyle().Foreground(pane.theme.FaintText)
	value := lipgloss.NewStyle().Foreground(pane.theme.NormalText)

	lines := []string{
		label.Render("mode      ") + value.Render(mode.String()),
	}

	switch {
	case !r.attempted:
		lines = append(lines, label.Render("distance  ")+value.Render("not yet computed"))
	case r.result == nil:
		reason := "residue unresolved or no reference polymer"
		lines = append(lines,
			label.Render("distance  ")+
				lipgloss.NewStyle().Foreground(pane.theme.WarningText).Render("unreachable"),
			label.Render("          ")+label.Render(truncateString(reason, width-10)))
	default:
		category := r.result.Category()
		distanceText := lipgloss.NewStyle().
			Foreground(lipgloss.Color(category.Color())).
			Render(viewer.FormatDistance(r.result.Distance))
		lines = append(lines,
			label.Render("distance  ")+distanceText+
				label.Render("  "+category.String()+" · "+category.Description()),
			label.Render("atom      ")+value.Render(atomIdentity(r.result.OwnAtom)),
			label.Render("reference ")+value.Render(atomIdentity(r.result.ReferenceAtom)))
	}

	return strings.Join(lines, "\n")
}

// atomIdentity formats an atom for the measurement block, e.g.
// "ARG 177 A · CA".
func atomIdentity(atom pdb.Atom) string {
	return fmt.Sprintf("%s %d %s · %s", atom.ResidueName, atom.ResidueNumber, atom.Chain, atom.Name)
}
