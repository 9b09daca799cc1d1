// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package render holds the static catalog of structural
// representation styles and the mutable settings record that drives
// the primary structural view.
//
// The Manager is pure policy: Update merges new settings and Config
// produces a merged rendering configuration, but nothing here touches
// the stage. Callers that change settings must explicitly rebuild the
// active representation from a fresh Config — the separation keeps
// "what the user chose" independent from "what is currently drawn".
package render

import "fmt"

// Config is a fully merged rendering configuration for one
// representation: catalog base, then current settings, then caller
// overrides, with unsupported features normalized away.
type Config struct {
	Geometry    GeometryType
	ColorScheme ColorScheme
	Opacity     float64
	Sidechains  bool
	Polymer     PolymerClass
}

// Settings is the current-state record: one per Manager, read by the
// viewer whenever it (re)builds the primary representation.
type Settings struct {
	// Geometry is the active geometry type.
	Geometry GeometryType

	// ColorScheme is the active color scheme.
	ColorScheme ColorScheme

	// Opacity is the representation opacity fraction in [0, 1].
	Opacity float64

	// Sidechains reports whether sidechains are shown, for geometry
	// types that support toggling them.
	Sidechains bool
}

// Patch is a partial settings update. Nil fields keep their current
// values.
type Patch struct {
	Geometry    *GeometryType
	ColorScheme *ColorScheme
	Opacity     *float64
	Sidechains  *bool
}

// Manager owns the representation settings and the catalog lookups
// the UI uses to gray out incompatible controls.
type Manager struct {
	settings Settings
}

// NewManager returns a Manager with session defaults: cartoon
// geometry, chain coloring, full opacity, sidechains hidden.
func NewManager() *Manager {
	return &Manager{settings: Settings{
		Geometry:    Cartoon,
		ColorScheme: ColorByChain,
		Opacity:     1.0,
		Sidechains:  false,
	}}
}

// Settings returns a copy of the current settings.
func (m *Manager) Settings() Settings {
	return m.settings
}

// Update merges the patch into the current settings. Opacity is
// clamped to [0, 1]. Update never rebuilds anything: callers
// re-request a Config and rebuild the active representation to see
// the effect.
func (m *Manager) Update(patch Patch) {
	if patch.Geometry != nil {
		m.settings.Geometry = *patch.Geometry
	}
	if patch.ColorScheme != nil {
		m.settings.ColorScheme = *patch.ColorScheme
	}
	if patch.Opacity != nil {
		m.settings.Opacity = clampFraction(*patch.Opacity)
	}
	if patch.Sidechains != nil {
		m.settings.Sidechains = *patch.Sidechains
	}
}

// Config returns the merged configuration for the given geometry
// type: catalog base, current settings, then overrides. The result is
// always protein-only — the reference polymer is a separate overlay.
// Opacity and sidechain values are normalized for geometries that do
// not support them, so the stage never receives settings it would
// have to second-guess.
func (m *Manager) Config(geometry GeometryType, overrides Patch) Config {
	info, known := catalog[geometry]
	if !known {
		geometry = Cartoon
		info = catalog[Cartoon]
	}

	config := Config{
		Geometry:    geometry,
		ColorScheme: m.settings.ColorScheme,
		Opacity:     m.settings.Opacity,
		Sidechains:  m.settings.Sidechains,
		Polymer:     PolymerProtein,
	}

	if overrides.ColorScheme != nil {
		config.ColorScheme = *overrides.ColorScheme
	}
	if overrides.Opacity != nil {
		config.Opacity = clampFraction(*overrides.Opacity)
	}
	if overrides.Sidechains != nil {
		config.Sidechains = *overrides.Sidechains
	}

	if !info.supportsOpacity {
		config.Opacity = info.baseOpacity
	}
	if !info.supportsSidechains {
		config.Sidechains = false
	}

	return config
}

// SupportsOpacity reports whether the geometry type honors the
// opacity setting. Pure catalog lookup.
func (m *Manager) SupportsOpacity(geometry GeometryType) bool {
	return catalog[geometry].supportsOpacity
}

// SupportsSidechains reports whether the geometry type honors the
// sidechain toggle. Pure catalog lookup.
func (m *Manager) SupportsSidechains(geometry GeometryType) bool {
	return catalog[geometry].supportsSidechains
}

func clampFraction(value float64) float64 {
	switch {
	case value < 0:
		return 0
	case value > 1:
		return 1
	default:
		return value
	}
}

// FormatOpacity renders an opacity fraction for the UI, e.g. "70%".
func FormatOpacity(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}
