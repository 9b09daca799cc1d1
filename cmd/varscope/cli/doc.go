// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-tree framework for the varscope
// binary: a Command type with flags, subcommand dispatch, and a Run
// function. Commands are assembled into a tree in
// cmd/varscope/commands and executed from main.
//
// Unknown commands and flags produce "did you mean" suggestions based
// on edit distance. Commands that manage their own output signal a
// bare exit code through ExitError instead of returning a printable
// error.
package cli
