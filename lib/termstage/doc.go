// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package termstage renders a loaded structure into a terminal pane.
// It implements viewer.Stage with an orthographic projection of atom
// coordinates onto a braille microgrid: every terminal cell carries a
// 2×4 dot matrix (U+2800 block), which quadruples the effective
// resolution in both axes and lets backbone traces and measurement
// lines read as continuous strokes.
//
// Rendering quality is not the point — the stage exists so the
// overlay lifecycle can be exercised end to end in a terminal. The
// camera is a yaw/pitch/zoom orthographic rig with no perspective and
// no animation; transition durations passed to FocusOn and
// ResetCamera are accepted and ignored.
//
// A Stage must only be used from the TUI update goroutine.
package termstage
