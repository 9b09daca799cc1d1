// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package distance measures how far each variant residue sits from
// the reference nucleic-acid polymer of a loaded structure.
//
// The search is deliberately brute force: every non-hydrogen atom of
// the residue against every reference atom, global minimum by
// Euclidean distance. Both sets are small (hundreds of atoms), and
// the exhaustive scan keeps the tie-break deterministic: the first
// minimum encountered in structure file order wins, with a strict
// less-than comparison.
//
// Results live in an explicit derived map (Results) keyed by residue
// position rather than on the variants themselves, so a measurement
// mode switch replaces the whole result set atomically and nothing
// downstream ever sees a half-updated mix of modes.
package distance

import (
	"log/slog"
	"math"

	"github.com/varscope/varscope/lib/pdb"
)

// Result is one computed variant-to-reference measurement.
type Result struct {
	// Distance is the minimum Euclidean distance in Ångströms.
	Distance float64

	// OwnAtom is the variant-residue atom realizing the minimum.
	OwnAtom pdb.Atom

	// ReferenceAtom is the reference-polymer atom realizing the
	// minimum.
	ReferenceAtom pdb.Atom

	// Mode is the measurement mode the result was computed under.
	Mode Mode
}

// Category buckets the result's distance.
func (r *Result) Category() Category {
	return Categorize(r.Distance)
}

// Results maps residue position to the outcome of one whole-dataset
// computation pass. Three states per position: absent from the map
// means never attempted, present with a nil value means computed but
// unreachable (residue unresolved, or no reference atoms), non-nil
// carries the measurement.
type Results map[int]*Result

// Computed returns the number of positions with an actual
// measurement.
func (r Results) Computed() int {
	count := 0
	for _, result := range r {
		if result != nil {
			count++
		}
	}
	return count
}

// Calculator owns the reference atom set for one loaded structure.
// It is built once per session: the viewer loads a single structure
// and never reloads, so the reference set is never rebuilt.
type Calculator struct {
	structure *pdb.Structure
	reference []pdb.Atom
	logger    *slog.Logger
}

// NewCalculator returns a Calculator with no structure attached.
// Initialize must succeed before distances can be computed.
func NewCalculator(logger *slog.Logger) *Calculator {
	return &Calculator{logger: logger}
}

// Initialize attaches a loaded structure and builds the reference
// atom set. Returns false when structure is nil. As a diagnostic it
// logs how many protein residues are modeled backbone-only versus
// with sidechains: a large backbone-only share means closest-atom
// measurements degenerate toward backbone measurements.
func (c *Calculator) Initialize(structure *pdb.Structure) bool {
	if structure == nil {
		return false
	}
	c.structure = structure
	c.buildReference()
	c.logCompleteness()
	return true
}

// Reference returns the reference atom set. Exposed for the headless
// report; callers must not modify the returned slice.
func (c *Calculator) Reference() []pdb.Atom {
	return c.reference
}

// buildReference caches every non-hydrogen polymer atom belonging to
// a standard nucleotide residue. The slice preserves structure file
// order; the tie-break contract depends on it.
func (c *Calculator) buildReference() {
	reference := make([]pdb.Atom, 0, 256)
	c.structure.EachAtom(func(atom pdb.Atom) {
		if atom.Het || atom.IsHydrogen() {
			return
		}
		if !pdb.IsNucleicResidue(atom.ResidueName) {
			return
		}
		reference = append(reference, atom)
	})
	c.reference = reference
}

func (c *Calculator) logCompleteness() {
	backboneOnly, withSidechains := 0, 0
	for chainIndex := range c.structure.Chains {
		chain := &c.structure.Chains[chainIndex]
		for residueIndex := range chain.Residues {
			residue := &chain.Residues[residueIndex]
			if !residue.IsAminoAcid() {
				continue
			}
			if residueHasSidechain(residue) {
				withSidechains++
			} else {
				backboneOnly++
			}
		}
	}
	c.logger.Info("reference atom set built",
		"referenceAtoms", len(c.reference),
		"sidechainResidues", withSidechains,
		"backboneOnlyResidues", backboneOnly)
}

// backboneAtomNames are the protein main-chain atoms (terminal
// oxygen included). A residue whose heavy atoms all fall in this set
// has no modeled sidechain.
var backboneAtomNames = map[string]bool{
	"N": true, "CA": true, "C": true, "O": true, "OXT": true,
}

func residueHasSidechain(residue *pdb.Residue) bool {
	for _, atom := range residue.Atoms {
		if atom.IsHydrogen() {
			continue
		}
		if !backboneAtomNames[atom.Name] {
			return true
		}
	}
	return false
}

// ComputeDistance measures the given residue against the reference
// set. Returns nil when no structure is attached, the residue is
// absent or non-polymer, the mode's atom selection is empty (no alpha
// carbon in backbone mode, or a residue modeled with hydrogens only),
// or the structure has no reference atoms at all.
func (c *Calculator) ComputeDistance(position int, chain string, mode Mode) *Result {
	if c.structure == nil {
		return nil
	}
	if c.reference == nil {
		c.buildReference()
	}
	if len(c.reference) == 0 {
		return nil
	}

	residue := c.structure.Residue(chain, position)
	if residue == nil || residue.Het {
		return nil
	}

	var own []pdb.Atom
	for _, atom := range residue.Atoms {
		if atom.IsHydrogen() {
			continue
		}
		if mode == ModeBackboneOnly && atom.Name != "CA" {
			continue
		}
		own = append(own, atom)
	}
	if len(own) == 0 {
		return nil
	}

	best := math.Inf(1)
	var bestOwn, bestReference pdb.Atom
	for _, ownAtom := range own {
		for _, referenceAtom := range c.reference {
			if d := pdb.Distance(ownAtom.Position, referenceAtom.Position); d < best {
				best = d
				bestOwn = ownAtom
				bestReference = referenceAtom
			}
		}
	}

	return &Result{
		Distance:      best,
		OwnAtom:       bestOwn,
		ReferenceAtom: bestReference,
		Mode:          mode,
	}
}

// ComputeAll runs ComputeDistance for every position and returns a
// fresh Results map. Callers replace their previous map with the
// returned one in a single assignment; partial mixes of old and new
// results never exist.
func (c *Calculator) ComputeAll(positions []int, chain string, mode Mode) Results {
	results := make(Results, len(positions))
	for _, position := range positions {
		results[position] = c.ComputeDistance(position, chain, mode)
	}
	return results
}
