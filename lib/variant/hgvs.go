// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ProteinChange is a parsed HGVS protein-level substitution:
// "p.Arg177Trp" means the arginine at position 177 is replaced by
// tryptophan. Residue codes are normalized to three-letter form with
// "Ter" for stop codons.
type ProteinChange struct {
	Ref      string
	Position int
	Alt      string
}

// String returns the canonical three-letter HGVS form.
func (c ProteinChange) String() string {
	return fmt.Sprintf("p.%s%d%s", c.Ref, c.Position, c.Alt)
}

// IsNonsense reports whether the change introduces a stop codon.
func (c ProteinChange) IsNonsense() bool {
	return c.Alt == "Ter"
}

var (
	threeLetterForm = regexp.MustCompile(`^p\.([A-Z][a-z]{2})(\d+)([A-Z][a-z]{2}|\*)$`)
	oneLetterForm   = regexp.MustCompile(`^p\.([A-Z])(\d+)([A-Z*])$`)
)

// oneToThree maps single-letter amino-acid codes to three-letter
// codes. "*" and "X" both denote a stop codon in curation exports.
var oneToThree = map[string]string{
	"A": "Ala", "R": "Arg", "N": "Asn", "D": "Asp", "C": "Cys",
	"E": "Glu", "Q": "Gln", "G": "Gly", "H": "His", "I": "Ile",
	"L": "Leu", "K": "Lys", "M": "Met", "F": "Phe", "P": "Pro",
	"S": "Ser", "T": "Thr", "W": "Trp", "Y": "Tyr", "V": "Val",
	"*": "Ter", "X": "Ter",
}

// threeLetterCodes is the set of valid three-letter residue codes,
// stop codon included.
var threeLetterCodes = map[string]bool{
	"Ala": true, "Arg": true, "Asn": true, "Asp": true, "Cys": true,
	"Glu": true, "Gln": true, "Gly": true, "His": true, "Ile": true,
	"Leu": true, "Lys": true, "Met": true, "Phe": true, "Pro": true,
	"Ser": true, "Thr": true, "Trp": true, "Tyr": true, "Val": true,
	"Ter": true,
}

// ParseProteinChange parses an HGVS protein-level substitution in
// either three-letter ("p.Arg177Trp") or single-letter ("p.R177W")
// form. Stop codons written as "*" or "X" normalize to "Ter".
// Anything that is not a simple substitution (frameshifts, deletions,
// splice notation) is rejected.
func ParseProteinChange(name string) (ProteinChange, error) {
	trimmed := strings.TrimSpace(name)

	if match := threeLetterForm.FindStringSubmatch(trimmed); match != nil {
		ref, alt := match[1], match[3]
		if alt == "*" {
			alt = "Ter"
		}
		if !threeLetterCodes[ref] {
			return ProteinChange{}, fmt.Errorf("unknown residue code %q in %q", match[1], name)
		}
		if !threeLetterCodes[alt] {
			return ProteinChange{}, fmt.Errorf("unknown residue code %q in %q", match[3], name)
		}
		return changeAt(ref, match[2], alt, name)
	}

	if match := oneLetterForm.FindStringSubmatch(trimmed); match != nil {
		ref, ok := oneToThree[match[1]]
		if !ok {
			return ProteinChange{}, fmt.Errorf("unknown residue code %q in %q", match[1], name)
		}
		alt, ok := oneToThree[match[3]]
		if !ok {
			return ProteinChange{}, fmt.Errorf("unknown residue code %q in %q", match[3], name)
		}
		return changeAt(ref, match[2], alt, name)
	}

	return ProteinChange{}, fmt.Errorf("not an HGVS protein substitution: %q", name)
}

func changeAt(ref, digits, alt, name string) (ProteinChange, error) {
	position, err := strconv.Atoi(digits)
	if err != nil {
		return ProteinChange{}, fmt.Errorf("position in %q: %w", name, err)
	}
	if position < 1 {
		return ProteinChange{}, fmt.Errorf("position in %q must be positive", name)
	}
	return ProteinChange{Ref: ref, Position: position, Alt: alt}, nil
}
