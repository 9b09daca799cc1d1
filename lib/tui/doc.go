// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface primitives for
// varscope's interactive session: the chrome color theme, a scrollbar
// renderer, ANSI-aware overlay splicing, and fuzzy filter matching.
//
// The variant list and detail panes (lib/variantui) import this
// package for consistent look and behavior. Domain colors —
// classification badges, distance categories — are deliberately not
// part of the theme; they come from the variant and distance packages
// so the list and the structure pane always agree.
package tui
