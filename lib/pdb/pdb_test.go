// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package pdb

import (
	"math"
	"testing"
)

func TestVec3Distance(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 6, Z: 3}
	if got := Distance(a, b); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := Distance(a, a); got != 0 {
		t.Errorf("Distance(a, a) = %v, want 0", got)
	}

	sum := a.Add(b)
	if sum != (Vec3{X: 5, Y: 8, Z: 6}) {
		t.Errorf("Add = %+v", sum)
	}
	if half := sum.Scale(0.5); half != (Vec3{X: 2.5, Y: 4, Z: 3}) {
		t.Errorf("Scale = %+v", half)
	}
}

func TestStructureQueries(t *testing.T) {
	structure := parseFixture(t)

	if structure.Chain("Z") != nil {
		t.Error("Chain(Z) should be nil")
	}
	if structure.Residue("A", 9999) != nil {
		t.Error("Residue(A, 9999) should be nil")
	}
	if structure.Residue("Z", 177) != nil {
		t.Error("Residue(Z, 177) should be nil")
	}

	arg := structure.Residue("A", 177)
	if arg == nil {
		t.Fatal("residue A/177 missing")
	}
	if arg.Atom("XYZ") != nil {
		t.Error("Atom(XYZ) should be nil")
	}

	// 12 chain A atoms, 4 chain B atoms, one water.
	if got := structure.AtomCount(); got != 17 {
		t.Errorf("AtomCount = %d, want 17", got)
	}
}

func TestPolymerPositions(t *testing.T) {
	structure := parseFixture(t)

	positions := structure.PolymerPositions("A")
	want := map[int]bool{176: true, 177: true, 178: true, 180: true}
	if len(positions) != len(want) {
		t.Fatalf("PolymerPositions(A) = %v, want %v", positions, want)
	}
	for number := range want {
		if !positions[number] {
			t.Errorf("position %d missing", number)
		}
	}
	if positions[301] {
		t.Error("water 301 must not count as a polymer position")
	}
	if positions[179] {
		t.Error("unmodeled 179 must not appear")
	}

	if got := structure.PolymerPositions("Z"); len(got) != 0 {
		t.Errorf("PolymerPositions(Z) = %v, want empty", got)
	}
}

func TestEachAtomOrder(t *testing.T) {
	structure := parseFixture(t)

	var serials []int
	structure.EachAtom(func(a Atom) {
		serials = append(serials, a.Serial)
	})
	// Chain A first (including the trailing water), then chain B,
	// matching the order chains were first seen in the file.
	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 18, 14, 15, 16, 17}
	if len(serials) != len(want) {
		t.Fatalf("got %d atoms, want %d", len(serials), len(want))
	}
	for index, serial := range want {
		if serials[index] != serial {
			t.Fatalf("atom %d: serial = %d, want %d (order %v)", index, serials[index], serial, serials)
		}
	}
}

func TestHasNucleicResidues(t *testing.T) {
	structure := parseFixture(t)
	if !structure.HasNucleicResidues() {
		t.Error("fixture has DNA chain B, want true")
	}

	proteinOnly := &Structure{Chains: []Chain{{
		ID: "A",
		Residues: []Residue{
			{Name: "GLY", Number: 1, Chain: "A", Atoms: []Atom{{Name: "CA"}}},
		},
	}}}
	if proteinOnly.HasNucleicResidues() {
		t.Error("protein-only structure must report false")
	}
}

func TestIsHydrogen(t *testing.T) {
	tests := []struct {
		element string
		want    bool
	}{
		{"H", true},
		{"D", true},
		{"C", false},
		{"SE", false},
	}
	for _, test := range tests {
		atom := Atom{Element: test.element}
		if got := atom.IsHydrogen(); got != test.want {
			t.Errorf("IsHydrogen(%q) = %v, want %v", test.element, got, test.want)
		}
	}
}
