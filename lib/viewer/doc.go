// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package viewer owns the loaded structure and every visual overlay
// drawn on top of it: the primary structural representation, the
// focus highlight and label, distance measurement lines, and the
// reference polymer display.
//
// Rendering itself is delegated through the [Stage] interface — the
// shipped implementation is lib/termstage, tests use a recording
// fake. The Viewer's job is overlay lifecycle: each overlay kind
// lives in a slot that is always cleared before a replacement is
// installed, so stale handles never accumulate and two highlights
// never coexist.
//
// All methods must be called from one goroutine (the TUI update
// loop). The clear-before-set discipline, not a lock, is what keeps
// the slots consistent.
package viewer
