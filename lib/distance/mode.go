// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package distance

import "fmt"

// Mode selects which atoms of a variant residue participate in the
// distance search. The zero value is ModeClosestAtom, the default
// measurement.
type Mode int

const (
	// ModeClosestAtom compares every non-hydrogen atom of the
	// residue against every reference atom and takes the global
	// minimum. Sidechain contacts count.
	ModeClosestAtom Mode = iota

	// ModeBackboneOnly restricts the residue side to its alpha
	// carbon, measuring backbone proximity regardless of sidechain
	// orientation.
	ModeBackboneOnly
)

// String returns the flag-friendly name of a mode.
func (m Mode) String() string {
	switch m {
	case ModeClosestAtom:
		return "closest-atom"
	case ModeBackboneOnly:
		return "backbone-only"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMode parses a mode from its string representation.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "closest-atom":
		return ModeClosestAtom, nil
	case "backbone-only":
		return ModeBackboneOnly, nil
	default:
		return 0, fmt.Errorf("unknown measurement mode: %q", name)
	}
}

// Contact categorization thresholds in Ångströms. These are fixed
// constants driving both overlay coloring and the distance filter,
// not configuration.
const (
	closeThreshold = 5.0
	farThreshold   = 10.0
)

// Category buckets a measured distance for display and filtering.
type Category int

const (
	// CategoryClose is a direct contact: distance < 5 Å.
	CategoryClose Category = iota

	// CategoryMedium is an indirect interaction: 5 Å ≤ distance < 10 Å.
	CategoryMedium

	// CategoryFar is a distant residue: distance ≥ 10 Å.
	CategoryFar
)

// Categorize buckets a distance. The boundaries belong to the wider
// bucket: exactly 5 Å is medium, exactly 10 Å is far.
func Categorize(distance float64) Category {
	switch {
	case distance < closeThreshold:
		return CategoryClose
	case distance < farThreshold:
		return CategoryMedium
	default:
		return CategoryFar
	}
}

// String returns the human-readable name of a category.
func (c Category) String() string {
	switch c {
	case CategoryClose:
		return "close"
	case CategoryMedium:
		return "medium"
	case CategoryFar:
		return "far"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Description returns the interaction reading of a category, shown in
// the detail pane.
func (c Category) Description() string {
	switch c {
	case CategoryClose:
		return "direct contact"
	case CategoryMedium:
		return "indirect interaction"
	case CategoryFar:
		return "distant"
	default:
		return "unknown"
	}
}

// Color returns the display color (hex notation) for overlays and
// list rows in this category, mirroring variant.Classification's
// DefaultColor convention.
func (c Category) Color() string {
	switch c {
	case CategoryClose:
		return "#ff4444"
	case CategoryMedium:
		return "#ffaa00"
	case CategoryFar:
		return "#4488ff"
	default:
		return "#808080"
	}
}
