// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variantui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/varscope/varscope/lib/distance"
	"github.com/varscope/varscope/lib/tui"
)

// DistanceFilter hides rows whose computed distance falls outside one
// contact category. It composes with the fuzzy text filter and never
// reorders rows or changes their disabled state.
type DistanceFilter int

const (
	// FilterAll shows every row, including rows without a
	// measurement.
	FilterAll DistanceFilter = iota

	// FilterClose keeps rows in the close-contact category.
	FilterClose

	// FilterMedium keeps rows in the medium category.
	FilterMedium

	// FilterFar keeps rows in the far category.
	FilterFar
)

// String returns the header-stats name of a distance filter.
func (f DistanceFilter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterClose:
		return "close"
	case FilterMedium:
		return "medium"
	case FilterFar:
		return "far"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// next cycles to the following distance filter.
func (f DistanceFilter) next() DistanceFilter {
	switch f {
	case FilterAll:
		return FilterClose
	case FilterClose:
		return FilterMedium
	case FilterMedium:
		return FilterFar
	default:
		return FilterAll
	}
}

// admits reports whether a row with the given measurement passes the
// filter. Rows without a measurement — result nil, or the position
// never attempted — only show under FilterAll.
func (f DistanceFilter) admits(result *distance.Result, attempted bool) bool {
	if f == FilterAll {
		return true
	}
	if !attempted || result == nil {
		return false
	}
	switch f {
	case FilterClose:
		return result.Category() == distance.CategoryClose
	case FilterMedium:
		return result.Category() == distance.CategoryMedium
	case FilterFar:
		return result.Category() == distance.CategoryFar
	default:
		return true
	}
}

// FilterModel holds the fuzzy text filter state. The filter bar
// replaces the header line while active; the accumulated input
// narrows the list live as the user types.
type FilterModel struct {
	// Input is the accumulated filter text.
	Input string

	// Active reports whether the filter bar currently owns keyboard
	// input.
	Active bool
}

// HandleRune appends a typed character to the filter input.
func (f *FilterModel) HandleRune(r rune) {
	f.Input += string(r)
}

// HandleBackspace removes the last rune from the filter input.
func (f *FilterModel) HandleBackspace() {
	if f.Input == "" {
		return
	}
	runes := []rune(f.Input)
	f.Input = string(runes[:len(runes)-1])
}

// Clear deactivates the filter and discards its input.
func (f *FilterModel) Clear() {
	f.Input = ""
	f.Active = false
}

// View renders the filter bar. While active it shows a block cursor;
// when inactive with input it shows the residual filter dimmed, and
// when empty it renders nothing.
func (f *FilterModel) View(theme tui.Theme, width int) string {
	if !f.Active && f.Input == "" {
		return ""
	}

	label := " filter: "
	content := label + f.Input
	if f.Active {
		content += "▎"
	}
	if lipgloss.Width(content) > width {
		content = content[:width]
	}
	content += strings.Repeat(" ", max(0, width-lipgloss.Width(content)))

	style := lipgloss.NewStyle().Foreground(theme.NormalText)
	if !f.Active {
		style = lipgloss.NewStyle().Foreground(theme.FaintText)
	}
	return style.Render(content)
}
