// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package pdb

import "math"

// Vec3 is a coordinate in Ångströms.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Scale returns v with every component multiplied by factor.
func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the Euclidean distance between two coordinates.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Length()
}

// Atom is a single atom record. Atoms are plain values: copying one
// never aliases structure state.
type Atom struct {
	// Serial is the atom serial number from the file.
	Serial int

	// Name is the trimmed atom name, e.g. "CA", "OP1", "N3".
	Name string

	// Element is the element symbol, e.g. "C", "N", "FE". Taken from
	// the element columns when present, otherwise derived from the
	// atom name (first letter after stripping digits), which is
	// reliable for the organic elements this tool cares about.
	Element string

	// ResidueName is the residue component ID, e.g. "ARG" or "DA".
	ResidueName string

	// ResidueNumber is the residue sequence number.
	ResidueNumber int

	// Chain is the chain identifier, e.g. "A".
	Chain string

	// Het marks atoms read from HETATM records (waters, ions,
	// ligands). MSE is the exception: it is folded into the polymer.
	Het bool

	// Position is the atom coordinate.
	Position Vec3
}

// IsHydrogen reports whether the atom is hydrogen or deuterium.
func (a Atom) IsHydrogen() bool {
	return a.Element == "H" || a.Element == "D"
}

// Residue is one residue with its atoms in file order.
type Residue struct {
	// Name is the residue component ID, e.g. "ARG" or "DA".
	Name string

	// Number is the residue sequence number.
	Number int

	// Chain is the owning chain identifier.
	Chain string

	// Het marks non-polymer residues (waters, ions, ligands).
	Het bool

	// Atoms holds the residue's atoms in file order.
	Atoms []Atom
}

// Atom returns the first atom with the given trimmed name, or nil.
func (r *Residue) Atom(name string) *Atom {
	for index := range r.Atoms {
		if r.Atoms[index].Name == name {
			return &r.Atoms[index]
		}
	}
	return nil
}

// IsNucleic reports whether the residue is a standard nucleotide.
func (r *Residue) IsNucleic() bool {
	return !r.Het && IsNucleicResidue(r.Name)
}

// IsAminoAcid reports whether the residue is a standard amino acid.
func (r *Residue) IsAminoAcid() bool {
	return !r.Het && IsAminoAcidResidue(r.Name)
}

// Chain is one chain with its residues in file order.
type Chain struct {
	// ID is the chain identifier, e.g. "A".
	ID string

	// Residues holds the chain's residues in file order.
	Residues []Residue
}

// Residue returns the residue with the given sequence number, or nil.
func (c *Chain) Residue(number int) *Residue {
	for index := range c.Residues {
		if c.Residues[index].Number == number {
			return &c.Residues[index]
		}
	}
	return nil
}

// Structure is a loaded atomic model. One structure is loaded per
// session; nothing mutates it after parsing, so it is safe to share
// by pointer across packages.
type Structure struct {
	// ID is the four-character archive identifier, e.g. "2H8R".
	// Empty when the source file carried no HEADER record.
	ID string

	// Title is the joined TITLE record text, if any.
	Title string

	// Chains holds the chains in file order.
	Chains []Chain
}

// Chain returns the chain with the given identifier, or nil.
func (s *Structure) Chain(id string) *Chain {
	for index := range s.Chains {
		if s.Chains[index].ID == id {
			return &s.Chains[index]
		}
	}
	return nil
}

// Residue returns the residue at the given chain and sequence number,
// or nil when either is absent.
func (s *Structure) Residue(chain string, number int) *Residue {
	c := s.Chain(chain)
	if c == nil {
		return nil
	}
	return c.Residue(number)
}

// EachAtom calls fn for every atom in file order: chains, then
// residues, then atoms, exactly as parsed. Iteration order is part of
// the package contract — distance tie-breaking depends on it.
func (s *Structure) EachAtom(fn func(Atom)) {
	for chainIndex := range s.Chains {
		chain := &s.Chains[chainIndex]
		for residueIndex := range chain.Residues {
			residue := &chain.Residues[residueIndex]
			for _, atom := range residue.Atoms {
				fn(atom)
			}
		}
	}
}

// AtomCount returns the total number of atoms.
func (s *Structure) AtomCount() int {
	count := 0
	s.EachAtom(func(Atom) { count++ })
	return count
}

// PolymerPositions returns the set of residue sequence numbers on the
// given chain that have at least one polymer (non-HETATM) atom.
// Returns an empty map for an unknown chain.
func (s *Structure) PolymerPositions(chainID string) map[int]bool {
	positions := make(map[int]bool)
	chain := s.Chain(chainID)
	if chain == nil {
		return positions
	}
	for index := range chain.Residues {
		residue := &chain.Residues[index]
		if residue.Het || len(residue.Atoms) == 0 {
			continue
		}
		positions[residue.Number] = true
	}
	return positions
}

// HasNucleicResidues reports whether any chain carries at least one
// standard nucleotide residue. Used as a preflight check before
// distance computation: without a reference polymer every distance is
// uncomputable.
func (s *Structure) HasNucleicResidues() bool {
	for chainIndex := range s.Chains {
		chain := &s.Chains[chainIndex]
		for residueIndex := range chain.Residues {
			if chain.Residues[residueIndex].IsNucleic() {
				return true
			}
		}
	}
	return false
}
