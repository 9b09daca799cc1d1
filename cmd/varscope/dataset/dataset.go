// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset implements "varscope dataset", the tooling around
// variant dataset files: extracting a dataset from a clinical
// curation CSV export and validating an existing dataset file.
package dataset

import (
	"github.com/varscope/varscope/cmd/varscope/cli"
)

// Command returns the "varscope dataset" command tree.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "dataset",
		Summary: "Extract and validate variant dataset files",
		Description: `Dataset files are JSONC documents listing the variants the viewer
displays. "extract" builds one from a clinical curation CSV export;
"validate" checks an existing file without loading a structure.`,
		Usage: "varscope dataset <subcommand> [flags]",
		Subcommands: []*cli.Command{
			extractCommand(),
			validateCommand(),
		},
	}
}
