// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the chrome palette for varscope's terminal interface.
// All colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility. Domain colors — classification badges, distance
// categories, atom elements — do not live here; those come from the
// variant and distance packages so the same values drive both the
// list and the structure pane.
type Theme struct {
	// Text colors.
	NormalText   lipgloss.Color
	FaintText    lipgloss.Color
	DisabledText lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Accent: focused scrollbar thumb, active filter indicator,
	// toggled settings in the header rule.
	Accent lipgloss.Color

	// Filter match highlighting: background tint for characters the
	// fuzzy pattern matched.
	SearchHighlightBackground lipgloss.Color

	// Status line levels.
	ErrorText   lipgloss.Color
	WarningText lipgloss.Color
}

// DefaultThemeName is the name Validate accepts when the config file
// leaves display.theme unset.
const DefaultThemeName = "default"

// DefaultTheme returns the built-in dark-terminal palette. Designed
// for 256-color terminals with a dark background.
func DefaultTheme() Theme {
	return Theme{
		NormalText:   lipgloss.Color("252"),
		FaintText:    lipgloss.Color("245"),
		DisabledText: lipgloss.Color("240"),

		SelectedBackground: lipgloss.Color("236"),
		SelectedForeground: lipgloss.Color("255"),

		HeaderForeground: lipgloss.Color("255"),
		BorderColor:      lipgloss.Color("240"),
		HelpText:         lipgloss.Color("241"),

		Accent: lipgloss.Color("141"),

		SearchHighlightBackground: lipgloss.Color("58"),

		ErrorText:   lipgloss.Color("196"),
		WarningText: lipgloss.Color("220"),
	}
}

// monoTheme keeps the chrome to grays for terminals where the ANSI-256
// accent colors render poorly. Domain colors are unaffected.
func monoTheme() Theme {
	theme := DefaultTheme()
	theme.Accent = lipgloss.Color("255")
	theme.SearchHighlightBackground = lipgloss.Color("238")
	theme.ErrorText = lipgloss.Color("255")
	theme.WarningText = lipgloss.Color("250")
	return theme
}

// NamedTheme returns the theme registered under name, reporting
// whether the name is known.
func NamedTheme(name string) (Theme, bool) {
	switch name {
	case DefaultThemeName:
		return DefaultTheme(), true
	case "mono":
		return monoTheme(), true
	default:
		return Theme{}, false
	}
}

// ThemeNames lists the accepted display.theme values.
func ThemeNames() []string {
	return []string{DefaultThemeName, "mono"}
}
