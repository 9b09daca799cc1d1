// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package pdb models a loaded macromolecular structure and parses the
// PDB file format into it.
//
// The model is deliberately small: a [Structure] holds [Chain]s, a
// chain holds [Residue]s in file order, a residue holds [Atom]s in
// file order. File order matters — distance computation tie-breaks on
// the first minimum encountered under stable iteration, so the parser
// never reorders records.
//
// Parsing reads the columnar fixed-width records (ATOM, HETATM, TER,
// MODEL, HEADER, TITLE) and keeps only the first model and the primary
// alternate location of each atom. HETATM records are kept but flagged,
// so waters, ions, and ligands never count as polymer residues; the one
// exception is selenomethionine (MSE), which crystallographers deposit
// as HETATM even though it sits in the protein chain.
package pdb
