// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variantui

import (
	"fmt"
	"math"
	"sort"

	"github.com/varscope/varscope/lib/distance"
	"github.com/varscope/varscope/lib/variant"
)

// SortMode selects the variant-list comparator. Sorting is always
// stable over dataset file order, so curated ordering survives as the
// tiebreak.
type SortMode int

const (
	// SortBySeverity orders by clinical severity rank, most severe
	// first within the rank scale (pathogenic before benign before
	// uncertain).
	SortBySeverity SortMode = iota

	// SortByDistance orders by computed distance ascending. Variants
	// without a measurement — not yet computed, or computed
	// unreachable — sort after every measured variant.
	SortByDistance
)

// String returns the header-stats name of a sort mode.
func (s SortMode) String() string {
	switch s {
	case SortBySeverity:
		return "severity"
	case SortByDistance:
		return "distance"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// next cycles to the following sort mode.
func (s SortMode) next() SortMode {
	switch s {
	case SortBySeverity:
		return SortByDistance
	default:
		return SortBySeverity
	}
}

// sortVariants returns a new slice of variants ordered per mode. The
// input is never mutated; results supplies distances for
// SortByDistance and may be nil before the first computation pass, in
// which case every variant ranks as unmeasured and file order wins.
func sortVariants(variants []variant.Variant, mode SortMode, results distance.Results) []variant.Variant {
	sorted := make([]variant.Variant, len(variants))
	copy(sorted, variants)

	switch mode {
	case SortByDistance:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sortDistance(sorted[i], results) < sortDistance(sorted[j], results)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Classification.SeverityRank() < sorted[j].Classification.SeverityRank()
		})
	}

	return sorted
}

// sortDistance returns the comparator key for one variant: its
// measured distance, or +Inf when no measurement exists so the
// variant sinks to the end of the list.
func sortDistance(v variant.Variant, results distance.Results) float64 {
	if results == nil {
		return math.Inf(1)
	}
	result, attempted := results[v.Position]
	if !attempted || result == nil {
		return math.Inf(1)
	}
	return result.Distance
}
