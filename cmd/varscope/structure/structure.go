// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package structure implements "varscope structure", direct access to
// the structure archive and the on-disk cache without starting a
// session.
package structure

import (
	"fmt"

	"github.com/varscope/varscope/cmd/varscope/cli"
	"github.com/varscope/varscope/lib/config"
)

// Command returns the "varscope structure" command tree.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "structure",
		Summary: "Fetch and inspect structures without starting a session",
		Description: `Work with the structure archive directly: "fetch" downloads a
structure into the on-disk cache, "info" prints its chains and
residue ranges so a dataset's chain flag can be chosen before the
first interactive session.`,
		Usage: "varscope structure <subcommand> [flags]",
		Subcommands: []*cli.Command{
			fetchCommand(),
			infoCommand(),
		},
	}
}

// resolveStructureConfig merges the shared structure flags over the
// config file and the defaults.
func resolveStructureConfig(configPath, structureID string, noCache bool) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if structureID != "" {
		cfg.Structure.ID = structureID
	}
	if noCache {
		cfg.Structure.Cache = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Structure.ID == "" {
		return nil, fmt.Errorf("a structure ID is required (--structure or the config file)")
	}
	return cfg, nil
}
