// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variant

import (
	"fmt"
	"strings"
)

// Classification is a clinical significance verdict in the five-tier
// scheme used by curated variant databases. The zero value is
// ClassificationUnknown so that a dataset entry missing the field is
// caught by validation instead of silently reading as pathogenic.
type Classification int

const (
	// ClassificationUnknown is the unset zero value. It never
	// appears in a validated dataset.
	ClassificationUnknown Classification = iota

	// Pathogenic variants have established disease causation.
	Pathogenic

	// LikelyPathogenic variants have strong but not conclusive
	// evidence of disease causation.
	LikelyPathogenic

	// LikelyBenign variants have strong evidence against disease
	// causation.
	LikelyBenign

	// Benign variants have established absence of disease causation.
	Benign

	// UncertainSignificance (VUS) variants have conflicting or
	// insufficient evidence.
	UncertainSignificance
)

// String returns the canonical display name of a classification.
func (c Classification) String() string {
	switch c {
	case Pathogenic:
		return "Pathogenic"
	case LikelyPathogenic:
		return "Likely Pathogenic"
	case LikelyBenign:
		return "Likely Benign"
	case Benign:
		return "Benign"
	case UncertainSignificance:
		return "VUS"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Abbrev returns the short badge form of a classification.
func (c Classification) Abbrev() string {
	switch c {
	case Pathogenic:
		return "P"
	case LikelyPathogenic:
		return "LP"
	case LikelyBenign:
		return "LB"
	case Benign:
		return "B"
	case UncertainSignificance:
		return "VUS"
	default:
		return "?"
	}
}

// SeverityRank returns the position of the classification in a
// most-severe-first ordering. Pathogenic sorts first and
// uncertain-significance variants always sort last, after everything
// with an actual verdict.
func (c Classification) SeverityRank() int {
	switch c {
	case Pathogenic:
		return 0
	case LikelyPathogenic:
		return 1
	case LikelyBenign:
		return 2
	case Benign:
		return 3
	case UncertainSignificance:
		return 4
	default:
		return 5
	}
}

// PathogenicityScore returns the numeric severity weight used by the
// distance analysis report: higher means more severe. Uncertain
// significance sits in the middle, between the likely tiers.
func (c Classification) PathogenicityScore() int {
	switch c {
	case Pathogenic:
		return 5
	case LikelyPathogenic:
		return 4
	case UncertainSignificance:
		return 3
	case LikelyBenign:
		return 2
	case Benign:
		return 1
	default:
		return 0
	}
}

// DefaultColor returns the default display color (hex notation) for
// variants of this classification.
func (c Classification) DefaultColor() string {
	switch c {
	case Pathogenic:
		return "#ff0000"
	case LikelyPathogenic:
		return "#ffa500"
	case LikelyBenign:
		return "#f5d547"
	case Benign:
		return "#008000"
	case UncertainSignificance:
		return "#808080"
	default:
		return "#808080"
	}
}

// ParseClassification parses a classification from the spellings
// found in clinical curation exports: case, spaces, underscores,
// hyphens, and periods are ignored, so "Likely pathogenic",
// "likely_pathogenic", and "LIKELY-PATHOGENIC" all parse the same.
func ParseClassification(name string) (Classification, error) {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.':
			return -1
		}
		return r
	}, strings.ToLower(name))

	switch normalized {
	case "pathogenic":
		return Pathogenic, nil
	case "likelypathogenic":
		return LikelyPathogenic, nil
	case "likelybenign":
		return LikelyBenign, nil
	case "benign":
		return Benign, nil
	case "vus", "uncertainsignificance", "uncertain", "unknownsignificance":
		return UncertainSignificance, nil
	default:
		return ClassificationUnknown, fmt.Errorf("unknown classification: %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler so classifications
// serialize as their canonical names.
func (c Classification) MarshalText() ([]byte, error) {
	if c == ClassificationUnknown {
		return nil, fmt.Errorf("cannot marshal an unset classification")
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the
// same spellings as ParseClassification.
func (c *Classification) UnmarshalText(text []byte) error {
	parsed, err := ParseClassification(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
