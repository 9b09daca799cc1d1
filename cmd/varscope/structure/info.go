// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package structure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/varscope/varscope/cmd/varscope/cli"
	"github.com/varscope/varscope/lib/pdb"
	"github.com/varscope/varscope/lib/rcsb"
	"github.com/varscope/varscope/lib/structcache"
)

type infoOptions struct {
	configPath  string
	structureID string
	noCache     bool
}

func infoCommand() *cli.Command {
	var opts infoOptions

	return &cli.Command{
		Name:    "info",
		Summary: "Print a structure's chains and residue ranges",
		Description: `Load a structure and print one line per chain: the residue range and
what the chain is made of. The footer states whether the structure
contains a nucleic acid chain, which distance measurement needs as
its reference polymer.`,
		Usage: "varscope structure info --structure <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Check which chain carries the protein",
				Command:     "varscope structure info --structure 2H8R",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("info", pflag.ContinueOnError)
			flagSet.StringVar(&opts.configPath, "config", "", "session config file (YAML)")
			flagSet.StringVar(&opts.structureID, "structure", "", "structure ID to inspect, e.g. 2H8R")
			flagSet.BoolVar(&opts.noCache, "no-cache", false, "bypass the on-disk structure cache")
			return flagSet
		},
		Run: func(ctx context.Context, _ []string, logger *slog.Logger) error {
			return runInfo(ctx, opts, logger)
		},
	}
}

func runInfo(ctx context.Context, opts infoOptions, logger *slog.Logger) error {
	cfg, err := resolveStructureConfig(opts.configPath, opts.structureID, opts.noCache)
	if err != nil {
		return err
	}

	var loader structcache.Loader = rcsb.NewClient(cfg.Structure.Source, logger)
	if cfg.Structure.Cache {
		loader = structcache.New(cfg.Structure.CacheDir, loader, logger)
	}

	structure, err := loader.Load(ctx, cfg.Structure.ID)
	if err != nil {
		return err
	}

	printStructureInfo(os.Stdout, structure)
	return nil
}

func printStructureInfo(w io.Writer, structure *pdb.Structure) {
	fmt.Fprintf(w, "%s: %s\n\n", structure.ID, structure.Title)

	table := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(table, "CHAIN\tRESIDUES\tRANGE\tCONTENT\tATOMS")
	for index := range structure.Chains {
		chain := &structure.Chains[index]
		fmt.Fprintf(table, "%s\t%d\t%s\t%s\t%d\n",
			chain.ID, len(chain.Residues),
			chainRange(chain), chainContent(chain), chainAtoms(chain))
	}
	table.Flush()

	fmt.Fprintln(w)
	if structure.HasNucleicResidues() {
		fmt.Fprintln(w, "Contains nucleic acid: distance measurement has a reference polymer.")
	} else {
		fmt.Fprintln(w, "No nucleic acid chains: distance measurement will not work on this structure.")
	}
}

func chainRange(chain *pdb.Chain) string {
	if len(chain.Residues) == 0 {
		return "-"
	}
	low, high := chain.Residues[0].Number, chain.Residues[0].Number
	for _, residue := range chain.Residues[1:] {
		if residue.Number < low {
			low = residue.Number
		}
		if residue.Number > high {
			high = residue.Number
		}
	}
	return fmt.Sprintf("%d-%d", low, high)
}

// chainContent summarizes what a chain is made of. Mixed chains list
// every component with a count.
func chainContent(chain *pdb.Chain) string {
	var amino, nucleic, het int
	for index := range chain.Residues {
		switch {
		case chain.Residues[index].IsAminoAcid():
			amino++
		case chain.Residues[index].IsNucleic():
			nucleic++
		default:
			het++
		}
	}

	switch {
	case amino > 0 && nucleic == 0 && het == 0:
		return "protein"
	case nucleic > 0 && amino == 0 && het == 0:
		return "nucleic"
	case het > 0 && amino == 0 && nucleic == 0:
		return "het"
	}

	summary := ""
	for _, part := range []struct {
		label string
		count int
	}{{"protein", amino}, {"nucleic", nucleic}, {"het", het}} {
		if part.count == 0 {
			continue
		}
		if summary != "" {
			summary += "+"
		}
		summary += fmt.Sprintf("%s(%d)", part.label, part.count)
	}
	return summary
}

func chainAtoms(chain *pdb.Chain) int {
	total := 0
	for index := range chain.Residues {
		total += len(chain.Residues[index].Atoms)
	}
	return total
}
