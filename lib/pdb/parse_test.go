// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package pdb

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// atomLine formats one fixed-width ATOM or HETATM record. Atom names
// shorter than four characters get the standard leading space so
// single-letter elements land in column 14.
func atomLine(record string, serial int, name, altLoc, resName, chain string, resSeq int, x, y, z float64, element string) string {
	if len(name) < 4 {
		name = " " + name
	}
	return fmt.Sprintf("%-6s%5d %-4s%1s%-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s",
		record, serial, name, altLoc, resName, chain, resSeq, x, y, z, 1.00, 20.00, element)
}

// fixtureText builds a small but structurally honest file: a protein
// chain A with three residues (one backbone-only), a selenomethionine
// deposited as HETATM, a DNA chain B, and a water.
func fixtureText() string {
	lines := []string{
		"HEADER    TRANSCRIPTION/DNA                       12-OCT-06   2H8R",
		"TITLE     HNF1B DNA-BINDING DOMAIN IN COMPLEX WITH DNA",
		atomLine("ATOM", 1, "N", " ", "GLY", "A", 176, 0.0, 0.0, 0.0, "N"),
		atomLine("ATOM", 2, "CA", " ", "GLY", "A", 176, 1.5, 0.0, 0.0, "C"),
		atomLine("ATOM", 3, "C", " ", "GLY", "A", 176, 2.2, 1.3, 0.0, "C"),
		atomLine("ATOM", 4, "O", " ", "GLY", "A", 176, 1.6, 2.4, 0.0, "O"),
		atomLine("ATOM", 5, "N", " ", "ARG", "A", 177, 3.5, 1.2, 0.0, "N"),
		atomLine("ATOM", 6, "CA", " ", "ARG", "A", 177, 4.3, 2.4, 0.0, "C"),
		atomLine("ATOM", 7, "CB", " ", "ARG", "A", 177, 5.6, 2.2, 0.8, "C"),
		atomLine("ATOM", 8, "NH1", " ", "ARG", "A", 177, 7.0, 2.0, 0.8, "N"),
		atomLine("ATOM", 9, "HB2", " ", "ARG", "A", 177, 5.5, 2.0, 1.9, "H"),
		atomLine("HETATM", 10, "SE", " ", "MSE", "A", 178, 6.1, 4.4, 1.0, "SE"),
		atomLine("ATOM", 11, "N", " ", "ALA", "A", 180, 5.0, 5.0, 0.0, "N"),
		atomLine("ATOM", 12, "CA", " ", "ALA", "A", 180, 6.4, 5.2, 0.0, "C"),
		"TER      13      ALA A 180",
		atomLine("ATOM", 14, "P", " ", "DA", "B", 5, 10.0, 2.0, 0.0, "P"),
		atomLine("ATOM", 15, "OP1", " ", "DA", "B", 5, 10.8, 3.2, 0.0, "O"),
		atomLine("ATOM", 16, "N1", " ", "DA", "B", 5, 9.0, 2.0, 1.2, "N"),
		atomLine("ATOM", 17, "P", " ", "DT", "B", 6, 12.0, 2.0, 0.0, "P"),
		atomLine("HETATM", 18, "O", " ", "HOH", "A", 301, 20.0, 20.0, 20.0, "O"),
	}
	return strings.Join(lines, "\n") + "\n"
}

func parseFixture(t *testing.T) *Structure {
	t.Helper()
	structure, err := Parse(strings.NewReader(fixtureText()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return structure
}

func TestParseBasic(t *testing.T) {
	structure := parseFixture(t)

	if structure.ID != "2H8R" {
		t.Errorf("ID = %q, want 2H8R", structure.ID)
	}
	if !strings.Contains(structure.Title, "HNF1B") {
		t.Errorf("Title = %q, want HNF1B mention", structure.Title)
	}
	if len(structure.Chains) != 2 {
		t.Fatalf("got %d chains, want 2", len(structure.Chains))
	}

	chainA := structure.Chain("A")
	if chainA == nil {
		t.Fatal("chain A missing")
	}
	// GLY 176, ARG 177, MSE 178, ALA 180, HOH 301.
	if len(chainA.Residues) != 5 {
		t.Fatalf("chain A has %d residues, want 5", len(chainA.Residues))
	}

	arg := structure.Residue("A", 177)
	if arg == nil {
		t.Fatal("residue A/177 missing")
	}
	if arg.Name != "ARG" {
		t.Errorf("residue A/177 name = %q, want ARG", arg.Name)
	}
	if len(arg.Atoms) != 5 {
		t.Errorf("residue A/177 has %d atoms, want 5", len(arg.Atoms))
	}
	ca := arg.Atom("CA")
	if ca == nil {
		t.Fatal("A/177 CA missing")
	}
	if ca.Position != (Vec3{X: 4.3, Y: 2.4, Z: 0.0}) {
		t.Errorf("A/177 CA position = %+v", ca.Position)
	}
	if ca.Element != "C" {
		t.Errorf("A/177 CA element = %q, want C", ca.Element)
	}

	hb2 := arg.Atom("HB2")
	if hb2 == nil || !hb2.IsHydrogen() {
		t.Error("A/177 HB2 should parse as a hydrogen")
	}

	mse := structure.Residue("A", 178)
	if mse == nil {
		t.Fatal("residue A/178 missing")
	}
	if mse.Het {
		t.Error("MSE should be folded into the polymer, got Het=true")
	}
	if !mse.IsAminoAcid() {
		t.Error("MSE should count as an amino acid")
	}

	water := structure.Residue("A", 301)
	if water == nil {
		t.Fatal("water residue missing")
	}
	if !water.Het {
		t.Error("water should keep Het=true")
	}

	da := structure.Residue("B", 5)
	if da == nil || !da.IsNucleic() {
		t.Error("B/5 DA should parse as a nucleic residue")
	}
}

func TestParseAltLoc(t *testing.T) {
	lines := strings.Join([]string{
		atomLine("ATOM", 1, "CA", "A", "SER", "A", 10, 1.0, 0.0, 0.0, "C"),
		atomLine("ATOM", 2, "CA", "B", "SER", "A", 10, 9.0, 0.0, 0.0, "C"),
		atomLine("ATOM", 3, "OG", " ", "SER", "A", 10, 2.0, 1.0, 0.0, "O"),
	}, "\n")

	structure, err := Parse(strings.NewReader(lines))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ser := structure.Residue("A", 10)
	if ser == nil {
		t.Fatal("residue A/10 missing")
	}
	if len(ser.Atoms) != 2 {
		t.Fatalf("got %d atoms, want 2 (altLoc B dropped)", len(ser.Atoms))
	}
	if ser.Atoms[0].Position.X != 1.0 {
		t.Errorf("kept the wrong conformer: X = %v", ser.Atoms[0].Position.X)
	}
}

func TestParseModels(t *testing.T) {
	lines := strings.Join([]string{
		"MODEL        1",
		atomLine("ATOM", 1, "CA", " ", "GLY", "A", 1, 1.0, 0.0, 0.0, "C"),
		"ENDMDL",
		"MODEL        2",
		atomLine("ATOM", 2, "CA", " ", "GLY", "A", 1, 5.0, 0.0, 0.0, "C"),
		"ENDMDL",
	}, "\n")

	structure, err := Parse(strings.NewReader(lines))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if structure.AtomCount() != 1 {
		t.Fatalf("got %d atoms, want 1 (model 2 dropped)", structure.AtomCount())
	}
	gly := structure.Residue("A", 1)
	if gly.Atoms[0].Position.X != 1.0 {
		t.Errorf("kept model 2 coordinates: X = %v", gly.Atoms[0].Position.X)
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Parse(strings.NewReader("HEADER    NOTHING\n"))
		if err == nil {
			t.Fatal("want error for input with no atoms")
		}
	})

	t.Run("bad coordinate", func(t *testing.T) {
		broken := atomLine("ATOM", 1, "CA", " ", "GLY", "A", 1, 1.0, 0.0, 0.0, "C")
		// Corrupt the x coordinate columns.
		broken = broken[:30] + "  badnum" + broken[38:]
		_, err := Parse(strings.NewReader(broken))
		if err == nil {
			t.Fatal("want error for corrupt coordinate")
		}
		if !strings.Contains(err.Error(), "line 1") {
			t.Errorf("error %q should name the line", err)
		}
	})
}

func TestParseFileGzip(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "mini.pdb")
	if err := os.WriteFile(plain, []byte(fixtureText()), 0o644); err != nil {
		t.Fatal(err)
	}

	var compressed bytes.Buffer
	writer := gzip.NewWriter(&compressed)
	if _, err := writer.Write([]byte(fixtureText())); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	zipped := filepath.Join(dir, "mini.pdb.gz")
	if err := os.WriteFile(zipped, compressed.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{plain, zipped} {
		structure, err := ParseFile(path)
		if err != nil {
			t.Fatalf("ParseFile(%s): %v", filepath.Base(path), err)
		}
		if structure.ID != "2H8R" {
			t.Errorf("ParseFile(%s): ID = %q", filepath.Base(path), structure.ID)
		}
	}
}

func TestElementFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"CA", "C"},
		{"1HB", "H"},
		{"HB2", "H"},
		{"OP1", "O"},
		{"N9", "N"},
		{"", ""},
	}
	for _, test := range tests {
		if got := elementFromName(test.name); got != test.want {
			t.Errorf("elementFromName(%q) = %q, want %q", test.name, got, test.want)
		}
	}
}
