// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package structure

import (
	"strings"
	"testing"

	"github.com/varscope/varscope/lib/pdb"
)

func testStructure() *pdb.Structure {
	return &pdb.Structure{
		ID:    "2H8R",
		Title: "HNF1B DNA-binding domain bound to DNA",
		Chains: []pdb.Chain{
			{ID: "A", Residues: []pdb.Residue{
				{Name: "ARG", Number: 177, Chain: "A", Atoms: []pdb.Atom{
					{Name: "CA", Element: "C"}, {Name: "CB", Element: "C"},
				}},
				{Name: "GLY", Number: 178, Chain: "A", Atoms: []pdb.Atom{
					{Name: "CA", Element: "C"},
				}},
				{Name: "HOH", Number: 500, Chain: "A", Het: true, Atoms: []pdb.Atom{
					{Name: "O", Element: "O"},
				}},
			}},
			{ID: "B", Residues: []pdb.Residue{
				{Name: "DA", Number: 5, Chain: "B", Atoms: []pdb.Atom{
					{Name: "P", Element: "P"},
				}},
			}},
		},
	}
}

func TestPrintStructureInfoListsChains(t *testing.T) {
	var out strings.Builder
	printStructureInfo(&out, testStructure())
	text := out.String()

	if !strings.Contains(text, "2H8R: HNF1B DNA-binding domain bound to DNA") {
		t.Errorf("missing title line:\n%s", text)
	}
	if !strings.Contains(text, "177-500") {
		t.Errorf("missing chain A residue range:\n%s", text)
	}
	if !strings.Contains(text, "protein(2)+het(1)") {
		t.Errorf("missing mixed-content summary for chain A:\n%s", text)
	}
	if !strings.Contains(text, "nucleic") {
		t.Errorf("missing nucleic content for chain B:\n%s", text)
	}
	if !strings.Contains(text, "distance measurement has a reference polymer") {
		t.Errorf("missing reference polymer line:\n%s", text)
	}
}

func TestPrintStructureInfoWarnsWithoutNucleicChain(t *testing.T) {
	structure := testStructure()
	structure.Chains = structure.Chains[:1]

	var out strings.Builder
	printStructureInfo(&out, structure)

	if !strings.Contains(out.String(), "will not work on this structure") {
		t.Errorf("missing preflight warning:\n%s", out.String())
	}
}

func TestChainContentPureChains(t *testing.T) {
	structure := testStructure()
	if got := chainContent(&structure.Chains[1]); got != "nucleic" {
		t.Errorf("chain B content = %q, want nucleic", got)
	}

	protein := &pdb.Chain{ID: "C", Residues: []pdb.Residue{
		{Name: "ALA", Number: 1, Atoms: []pdb.Atom{{Name: "CA"}}},
	}}
	if got := chainContent(protein); got != "protein" {
		t.Errorf("pure protein content = %q, want protein", got)
	}
}

func TestResolveStructureConfigRequiresID(t *testing.T) {
	if _, err := resolveStructureConfig("", "", false); err == nil {
		t.Fatal("expected an error without a structure ID")
	}

	cfg, err := resolveStructureConfig("", "2h8r", true)
	if err != nil {
		t.Fatalf("resolveStructureConfig: %v", err)
	}
	if cfg.Structure.ID != "2h8r" {
		t.Errorf("ID = %q, want the flag value", cfg.Structure.ID)
	}
	if cfg.Structure.Cache {
		t.Error("no-cache flag should disable the cache")
	}
}
