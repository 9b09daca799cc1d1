// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fzf's algo package requires Init to populate its character-class
// and bonus tables; without it no pattern ever matches.
func init() {
	algo.Init("default")
}

// FuzzyResult is the outcome of matching a filter pattern against one
// line of text. Score is zero when the pattern did not match; when it
// did, Positions holds the rune indexes of the matched characters in
// ascending order, for highlight rendering.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch runs fzf's V2 fuzzy algorithm over text. Matching is
// case-insensitive: the algorithm folds the text, and the pattern is
// folded here, so callers can pass user input as typed. An empty
// pattern never matches — filtering with no pattern means no filter,
// and the caller decides that, not the scorer.
//
// The slab is fzf's scratch allocation arena. Passing nil allocates
// per call, which is fine for tests; interactive callers should hold
// one slab and reuse it across the whole list
// (util.MakeSlab(slab16Size, slab32Size) with fzf's standard sizes).
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	folded := make([]rune, len(pattern))
	for i, r := range pattern {
		folded[i] = unicode.ToLower(r)
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, folded, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	var matched []int
	if positions != nil {
		matched = append(matched, *positions...)
		// fzf reports positions from the end of the match backwards.
		sort.Ints(matched)
	}
	return FuzzyResult{Score: result.Score, Positions: matched}
}

// Standard fzf slab sizes, exported so interactive callers allocate
// the same arena fzf itself uses.
const (
	Slab16Size = 100 * 1024
	Slab32Size = 2048
)

// NewSlab returns a scratch arena sized for interactive matching.
func NewSlab() *util.Slab {
	return util.MakeSlab(Slab16Size, Slab32Size)
}
