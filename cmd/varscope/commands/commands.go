// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete varscope command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/varscope/varscope/cmd/varscope/cli"
	datasetcmd "github.com/varscope/varscope/cmd/varscope/dataset"
	reportcmd "github.com/varscope/varscope/cmd/varscope/report"
	structurecmd "github.com/varscope/varscope/cmd/varscope/structure"
	viewcmd "github.com/varscope/varscope/cmd/varscope/view"
	"github.com/varscope/varscope/lib/version"
)

// Root builds and returns the complete varscope command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "varscope",
		Description: `Varscope: terminal viewer for genetic variants on 3D structures.

Load a macromolecular structure, place a curated variant list on it,
and measure how far each variant sits from the reference polymer.`,
		Subcommands: []*cli.Command{
			viewcmd.Command(),
			reportcmd.Command(),
			datasetcmd.Command(),
			structurecmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					fmt.Printf("varscope %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Open the interactive session",
				Command:     "varscope view --structure 2H8R --dataset variants.jsonc",
			},
			{
				Description: "Headless distance report",
				Command:     "varscope report --structure 2H8R --dataset variants.jsonc",
			},
		},
	}
}
