// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variantui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/varscope/varscope/lib/distance"
	"github.com/varscope/varscope/lib/tui"
	"github.com/varscope/varscope/lib/variant"
	"github.com/varscope/varscope/lib/viewer"
)

// row is one renderable list entry: a variant joined with its
// measurement state for the current pass and the fuzzy-match
// positions for highlight.
type row struct {
	variant variant.Variant

	// result and attempted carry the three measurement states:
	// attempted false means no computation pass has covered this
	// position yet, attempted true with a nil result means the
	// position was computed but is unreachable.
	result    *distance.Result
	attempted bool

	// enabled is false when the position is not resolved in the
	// loaded structure. Disabled rows render muted and refuse
	// structural actions.
	enabled bool

	// matches holds the rune indexes of the variant name matched by
	// the fuzzy filter, ascending. Empty when no filter is active.
	matches []int
}

// distanceCell returns the distance column text and its color for a
// row. Before any computation the cell is a placeholder dash; a
// computed-but-unreachable position reads "unreachable".
func (r row) distanceCell() (string, string) {
	switch {
	case !r.attempted:
		return "—", ""
	case r.result == nil:
		return "unreachable", ""
	default:
		return viewer.FormatDistance(r.result.Distance), r.result.Category().Color()
	}
}

// badgeWidth fits the widest classification abbreviation plus
// brackets and a trailing space.
const badgeWidth = 6

// ListRenderer renders variant rows at a fixed width. One renderer
// per frame; width changes rebuild it.
type ListRenderer struct {
	theme tui.Theme
	width int
}

// NewListRenderer returns a renderer for rows of the given width.
func NewListRenderer(theme tui.Theme, width int) *ListRenderer {
	return &ListRenderer{theme: theme, width: width}
}

// RenderRow renders one list row. Selected rows invert under the
// selection background when the list pane has focus; disabled rows
// render muted regardless of selection.
func (l *ListRenderer) RenderRow(r row, selected, focused bool) string {
	if selected && focused {
		return l.renderSelectedRow(r)
	}
	return l.renderNormalRow(r, selected)
}

func (l *ListRenderer) renderNormalRow(r row, selected bool) string {
	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(r.variant.DisplayColor())).
		Render("[" + r.variant.Classification.Abbrev() + "]")
	badge += strings.Repeat(" ", max(0, badgeWidth-lipgloss.Width(badge)))

	distText, distColor := r.distanceCell()
	distStyle := lipgloss.NewStyle().Foreground(l.theme.FaintText)
	if distColor != "" {
		distStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(distColor))
	}

	nameWidth := l.width - badgeWidth - 14
	if nameWidth < 4 {
		nameWidth = 4
	}

	nameStyle := lipgloss.NewStyle().Foreground(l.theme.NormalText)
	if r.variant.Classification == variant.UncertainSignificance {
		nameStyle = lipgloss.NewStyle().Foreground(l.theme.FaintText)
	}
	if !r.enabled {
		muted := lipgloss.NewStyle().Foreground(l.theme.DisabledText)
		nameStyle, distStyle = muted, muted
		badge = muted.Render("[" + r.variant.Classification.Abbrev() + "]")
		badge += strings.Repeat(" ", max(0, badgeWidth-lipgloss.Width(badge)))
	}

	name := l.highlightName(truncateString(r.variant.Name, nameWidth), r.matches, nameStyle, r.enabled)
	namePad := strings.Repeat(" ", max(0, nameWidth-lipgloss.Width(truncateString(r.variant.Name, nameWidth))))

	marker := "  "
	if selected {
		marker = lipgloss.NewStyle().Foreground(l.theme.Accent).Render("▸ ")
	}

	line := marker + badge + name + namePad + " " + distStyle.Render(distText)
	return line + strings.Repeat(" ", max(0, l.width-lipgloss.Width(line)))
}

func (l *ListRenderer) renderSelectedRow(r row) string {
	distText, _ := r.distanceCell()
	nameWidth := l.width - badgeWidth - 14
	if nameWidth < 4 {
		nameWidth = 4
	}

	name := truncateString(r.variant.Name, nameWidth)
	content := "▸ [" + r.variant.Classification.Abbrev() + "]"
	content += strings.Repeat(" ", max(0, badgeWidth+2-lipgloss.Width(content)))
	content += name + strings.Repeat(" ", max(0, nameWidth-lipgloss.Width(name)))
	content += " " + distText

	style := lipgloss.NewStyle().
		Background(l.theme.SelectedBackground).
		Foreground(l.theme.SelectedForeground).
		Width(l.width).
		MaxWidth(l.width)
	return style.Render(content)
}

// highlightName renders a variant name with matched runes under the
// search highlight background. Consecutive runes sharing a style
// render as one batch so the output stays compact.
func (l *ListRenderer) highlightName(name string, matches []int, base lipgloss.Style, enabled bool) string {
	if len(matches) == 0 {
		return base.Render(name)
	}

	matched := make(map[int]bool, len(matches))
	for _, pos := range matches {
		matched[pos] = true
	}

	highlight := lipgloss.NewStyle().
		Foreground(l.theme.NormalText).
		Background(l.theme.SearchHighlightBackground)
	if !enabled {
		highlight = highlight.Foreground(l.theme.DisabledText)
	}

	var out strings.Builder
	runes := []rune(name)
	start := 0
	for start < len(runes) {
		end := start
		for end < len(runes) && matched[end] == matched[start] {
			end++
		}
		segment := string(runes[start:end])
		if matched[start] {
			out.WriteString(highlight.Render(segment))
		} else {
			out.WriteString(base.Render(segment))
		}
		start = end
	}
	return out.String()
}

// truncateString shortens a string to at most width runes, replacing
// the tail with an ellipsis when it does not fit.
func truncateString(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 1 {
		return ""
	}
	return string(runes[:width-1]) + "…"
}
