// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"testing"
)

func TestFuzzyMatchBasic(t *testing.T) {
	result := FuzzyMatch("p.Arg177Ter pathogenic", []rune("arg177"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for substring match")
	}
	if len(result.Positions) == 0 {
		t.Fatal("expected non-empty match positions")
	}
	if !sort.IntsAreSorted(result.Positions) {
		t.Errorf("positions not ascending: %v", result.Positions)
	}
}

func TestFuzzyMatchNonContiguous(t *testing.T) {
	// "p17t" should match "p.Arg177Ter" across the gaps.
	result := FuzzyMatch("p.Arg177Ter", []rune("p17t"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for non-contiguous fuzzy match")
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	result := FuzzyMatch("p.Arg177Ter", []rune("xyz"), nil)
	if result.Score != 0 {
		t.Errorf("expected zero score for no match, got %d", result.Score)
	}
	if len(result.Positions) != 0 {
		t.Errorf("expected empty positions for no match, got %v", result.Positions)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	// Pattern as typed, text mixed-case.
	result := FuzzyMatch("p.Arg177Ter", []rune("ARG"), nil)
	if result.Score <= 0 {
		t.Fatalf("expected case-insensitive match, got score=%d", result.Score)
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	result := FuzzyMatch("anything", []rune{}, nil)
	if result.Score != 0 {
		t.Errorf("expected zero score for empty pattern, got %d", result.Score)
	}
}

func TestFuzzyMatchReusableSlab(t *testing.T) {
	slab := NewSlab()
	for _, text := range []string{"p.Arg177Ter", "p.His153Asn", "p.Gln253Pro"} {
		result := FuzzyMatch(text, []rune("p"), slab)
		if result.Score <= 0 {
			t.Errorf("match against %q failed with shared slab", text)
		}
	}
}
