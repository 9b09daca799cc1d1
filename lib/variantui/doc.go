// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package variantui implements the interactive variant-list terminal
// UI: a bubbletea model composing the variant list pane, the braille
// structure pane, and the variant detail pane into one session.
//
// The model follows the Elm architecture. All state lives in Model
// and every mutation happens in Update on the UI goroutine; the
// single asynchronous operation is the structure load command fired
// from Init. Everything downstream of the load — distance
// computation, row building, overlay changes — runs synchronously in
// message handlers.
//
// Rows derive from the dataset plus the current comparator, distance
// filter, and fuzzy filter. Sorting and filtering never mutate the
// dataset: the row slice is rebuilt from scratch whenever an input
// changes, which keeps stable sort ties anchored to file order.
package variantui
