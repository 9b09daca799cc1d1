// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package termstage

import (
	"fmt"

	"github.com/varscope/varscope/lib/pdb"
	"github.com/varscope/varscope/lib/render"
)

// uniformAccent is the single color used by render.ColorUniform.
const uniformAccent = "#7c3aed"

// chainPalette cycles per chain index for render.ColorByChain.
var chainPalette = []string{
	"#4e9af1", "#f1a04e", "#63c76a", "#d46a9e", "#b7c24e", "#7cd0cf",
}

// elementColors follows the CPK convention for the elements that
// occur in protein/nucleic structures; everything else gets pink.
var elementColors = map[string]string{
	"C": "#c8c8c8",
	"N": "#3050f8",
	"O": "#ff0d0d",
	"S": "#ffff30",
	"P": "#ff8000",
	"H": "#e8e8e8",
}

func elementColor(element string) string {
	if color, ok := elementColors[element]; ok {
		return color
	}
	return "#ff69b4"
}

// indexGradient interpolates blue → red along the residue sequence
// for render.ColorByResidueIndex. fraction is clamped to [0, 1].
func indexGradient(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	red := int(0x30 + fraction*(0xe0-0x30))
	blue := int(0xe0 - fraction*(0xe0-0x30))
	return fmt.Sprintf("#%02x60%02x", red, blue)
}

// atomColor resolves the display color for one atom under the given
// scheme. chainIndex and residueFraction position the atom within the
// structure for the chain and residue-index schemes.
//
// The terminal stage has no secondary-structure assignment, so
// ColorBySecondary degrades to per-chain coloring rather than
// pretending to know where the helices are.
func atomColor(scheme render.ColorScheme, atom pdb.Atom, chainIndex int, residueFraction float64) string {
	switch scheme {
	case render.ColorByElement:
		return elementColor(atom.Element)
	case render.ColorByResidueIndex:
		return indexGradient(residueFraction)
	case render.ColorUniform:
		return uniformAccent
	default: // ColorByChain, ColorBySecondary
		return chainPalette[chainIndex%len(chainPalette)]
	}
}
