// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package render

import "fmt"

// ColorScheme selects how the primary representation is colored.
// The zero value is ColorByChain, the session default.
type ColorScheme int

const (
	// ColorByChain colors each chain uniformly.
	ColorByChain ColorScheme = iota

	// ColorBySecondary colors by secondary-structure element.
	ColorBySecondary

	// ColorByElement colors atoms by chemical element.
	ColorByElement

	// ColorByResidueIndex colors along a gradient over the residue
	// sequence.
	ColorByResidueIndex

	// ColorUniform uses a single accent color.
	ColorUniform
)

// String returns the flag- and config-friendly name of a color
// scheme.
func (s ColorScheme) String() string {
	switch s {
	case ColorByChain:
		return "chain"
	case ColorBySecondary:
		return "secondary"
	case ColorByElement:
		return "element"
	case ColorByResidueIndex:
		return "residue-index"
	case ColorUniform:
		return "uniform"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ParseColorScheme parses a color scheme from its string
// representation.
func ParseColorScheme(name string) (ColorScheme, error) {
	switch name {
	case "chain":
		return ColorByChain, nil
	case "secondary":
		return ColorBySecondary, nil
	case "element":
		return ColorByElement, nil
	case "residue-index":
		return ColorByResidueIndex, nil
	case "uniform":
		return ColorUniform, nil
	default:
		return 0, fmt.Errorf("unknown color scheme: %q", name)
	}
}

// AllColorSchemes returns every color scheme in cycling order.
func AllColorSchemes() []ColorScheme {
	return []ColorScheme{ColorByChain, ColorBySecondary, ColorByElement, ColorByResidueIndex, ColorUniform}
}

// PolymerClass restricts a representation to one polymer kind. The
// primary structural view is always protein-only; the reference
// polymer is rendered by its own independent overlay.
type PolymerClass int

const (
	// PolymerProtein selects amino-acid residues.
	PolymerProtein PolymerClass = iota

	// PolymerNucleic selects nucleotide residues.
	PolymerNucleic
)

// String returns the polymer class name.
func (p PolymerClass) String() string {
	switch p {
	case PolymerProtein:
		return "protein"
	case PolymerNucleic:
		return "nucleic"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}
