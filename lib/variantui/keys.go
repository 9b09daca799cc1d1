// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variantui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the viewer session. Bindings
// are grouped the way the help bar presents them: list navigation,
// then structural actions, then representation controls.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	FocusToggle    key.Binding
	FilterActivate key.Binding
	FilterClear    key.Binding

	Select             key.Binding
	Reset              key.Binding
	ToggleAllDistances key.Binding
	ReferencePolymer   key.Binding

	CycleGeometry    key.Binding
	CycleColorScheme key.Binding
	OpacityUp        key.Binding
	OpacityDown      key.Binding
	Sidechains       key.Binding

	CycleSort           key.Binding
	CycleDistanceFilter key.Binding
	MeasurementMode     key.Binding

	RotateLeft  key.Binding
	RotateRight key.Binding
	RotateUp    key.Binding
	RotateDown  key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the standard set of key bindings.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "first"),
	),
	End: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "last"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "focus"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "focus variant"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset view"),
	),
	ToggleAllDistances: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "all dists"),
	),
	ReferencePolymer: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "reference"),
	),
	CycleGeometry: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "geometry"),
	),
	CycleColorScheme: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "colors"),
	),
	OpacityUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "opacity"),
	),
	OpacityDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "opacity"),
	),
	Sidechains: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "sidechains"),
	),
	CycleSort: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "sort"),
	),
	CycleDistanceFilter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "dist filter"),
	),
	MeasurementMode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mode"),
	),
	RotateLeft: key.NewBinding(
		key.WithKeys("shift+left"),
		key.WithHelp("shift+←→↑↓", "rotate"),
	),
	RotateRight: key.NewBinding(
		key.WithKeys("shift+right"),
	),
	RotateUp: key.NewBinding(
		key.WithKeys("shift+up"),
	),
	RotateDown: key.NewBinding(
		key.WithKeys("shift+down"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z/Z", "zoom"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("Z"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
