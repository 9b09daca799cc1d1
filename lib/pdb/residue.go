// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package pdb

// aminoAcidResidues is the set of residue component IDs treated as
// protein polymer: the twenty standard amino acids plus
// selenomethionine.
var aminoAcidResidues = map[string]bool{
	"ALA": true, "ARG": true, "ASN": true, "ASP": true, "CYS": true,
	"GLN": true, "GLU": true, "GLY": true, "HIS": true, "ILE": true,
	"LEU": true, "LYS": true, "MET": true, "PHE": true, "PRO": true,
	"SER": true, "THR": true, "TRP": true, "TYR": true, "VAL": true,
	"MSE": true,
}

// nucleicResidues is the set of residue component IDs treated as
// nucleic-acid polymer: standard deoxyribonucleotides and
// ribonucleotides, including inosine.
var nucleicResidues = map[string]bool{
	"DA": true, "DC": true, "DG": true, "DT": true, "DI": true,
	"A": true, "C": true, "G": true, "U": true, "I": true,
}

// IsAminoAcidResidue reports whether name is a standard amino-acid
// component ID (selenomethionine included).
func IsAminoAcidResidue(name string) bool {
	return aminoAcidResidues[name]
}

// IsNucleicResidue reports whether name is a standard nucleotide
// component ID.
func IsNucleicResidue(name string) bool {
	return nucleicResidues[name]
}
