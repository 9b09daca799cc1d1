// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package variant defines the curated variant dataset: protein
// variants in HGVS notation with clinical classifications, loaded
// from JSONC annotation files (JSON extended with // line comments,
// /* block comments */, and trailing commas — curated clinical files
// carry commentary).
//
// The typical flow:
//
//  1. Load or Parse: JSONC bytes → Dataset
//  2. Validate: structural checks (names, positions, classifications)
//  3. The dataset is immutable afterwards; derived values such as
//     distances live outside it (see the distance package).
package variant

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Variant is one annotated protein position. Variants carry only
// curated facts; anything derived from a loaded structure (distances,
// resolution state) is computed and stored elsewhere.
type Variant struct {
	// Name is the HGVS protein-level notation, e.g. "p.Arg177Trp".
	Name string `json:"name"`

	// Position is the affected residue sequence number. Immutable
	// once loaded.
	Position int `json:"position"`

	// Classification is the clinical significance verdict.
	Classification Classification `json:"classification"`

	// Color overrides the classification's default display color,
	// hex notation ("#ff0000"). Empty means use the default.
	Color string `json:"color,omitempty"`

	// Notes is optional curator commentary in Markdown, shown in the
	// detail pane.
	Notes string `json:"notes,omitempty"`
}

// DisplayColor returns the variant's display color: the explicit
// override when present, otherwise the classification default.
func (v Variant) DisplayColor() string {
	if v.Color != "" {
		return v.Color
	}
	return v.Classification.DefaultColor()
}

// ProteinChange parses the variant's HGVS name.
func (v Variant) ProteinChange() (ProteinChange, error) {
	return ParseProteinChange(v.Name)
}

// Dataset is an ordered list of variants plus curation metadata.
// Input order is preserved through loading; stable sorts in the UI
// break ties by it.
type Dataset struct {
	// Gene is the gene symbol the variants annotate, e.g. "HNF1B".
	Gene string `json:"gene,omitempty"`

	// Description is free-text provenance for the curation.
	Description string `json:"description,omitempty"`

	// Variants holds the variants in file order.
	Variants []Variant `json:"variants"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a Dataset. Parse does not validate;
// callers that need structural checks run Validate afterwards (Load
// does both).
func Parse(data []byte) (*Dataset, error) {
	stripped := jsonc.ToJSON(data)

	var dataset Dataset
	if err := json.Unmarshal(stripped, &dataset); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	return &dataset, nil
}

// Load reads a JSONC dataset file from disk, parses it, and validates
// it. Any validation issue makes the whole load fail: a partially
// usable dataset would render a misleading list.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	dataset, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if issues := dataset.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("%s: invalid dataset: %s", path, strings.Join(issues, "; "))
	}

	return dataset, nil
}

// Validate checks a Dataset for structural issues. Returns a list of
// human-readable issue descriptions. An empty list means the dataset
// is valid. An empty variant list is valid (the viewer renders an
// empty list).
//
// Structural checks include:
//   - Each variant must have a non-empty Name
//   - Each variant's Position must be positive
//   - Each variant must have a known Classification
//   - Variant names must be unique across the dataset
func (d *Dataset) Validate() []string {
	var issues []string

	names := make(map[string]int, len(d.Variants))
	for index, v := range d.Variants {
		prefix := fmt.Sprintf("variants[%d]", index)
		if v.Name == "" {
			issues = append(issues, fmt.Sprintf("%s: name is required", prefix))
		} else {
			prefix = fmt.Sprintf("%s %q", prefix, v.Name)
			if firstIndex, exists := names[v.Name]; exists {
				issues = append(issues, fmt.Sprintf(
					"%s: duplicate variant name (first used at variants[%d])",
					prefix, firstIndex,
				))
			} else {
				names[v.Name] = index
			}
		}

		if v.Position < 1 {
			issues = append(issues, fmt.Sprintf("%s: position must be positive (got %d)", prefix, v.Position))
		}
		if v.Classification == ClassificationUnknown {
			issues = append(issues, fmt.Sprintf("%s: classification is required", prefix))
		}
	}

	return issues
}

// Positions returns every variant's position in file order.
// Positions may repeat when several variants hit the same residue.
func (d *Dataset) Positions() []int {
	positions := make([]int, len(d.Variants))
	for index, v := range d.Variants {
		positions[index] = v.Position
	}
	return positions
}

// Stats returns the number of variants per classification.
func (d *Dataset) Stats() map[Classification]int {
	stats := make(map[Classification]int, 5)
	for _, v := range d.Variants {
		stats[v.Classification]++
	}
	return stats
}
