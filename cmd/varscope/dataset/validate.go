// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/varscope/varscope/cmd/varscope/cli"
	"github.com/varscope/varscope/lib/variant"
)

type validateOptions struct {
	datasetPath string
}

func validateCommand() *cli.Command {
	var opts validateOptions

	return &cli.Command{
		Name:    "validate",
		Summary: "Check a dataset file without loading a structure",
		Description: `Parse a dataset file and report every structural issue: missing
names, bad positions, unknown classifications, duplicates. Variant
names in HGVS form are cross-checked against the position field.
Exits non-zero when the dataset has issues.`,
		Usage: "varscope dataset validate --dataset <path>",
		Examples: []cli.Example{
			{
				Description: "Validate before committing a hand-edited dataset",
				Command:     "varscope dataset validate --dataset variants.jsonc",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("validate", pflag.ContinueOnError)
			flagSet.StringVar(&opts.datasetPath, "dataset", "", "variant dataset file (JSONC)")
			return flagSet
		},
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			return runValidate(opts, os.Stdout)
		},
	}
}

func runValidate(opts validateOptions, out io.Writer) error {
	if opts.datasetPath == "" {
		return fmt.Errorf("--dataset is required")
	}

	data, err := os.ReadFile(opts.datasetPath)
	if err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}

	dataset, err := variant.Parse(data)
	if err != nil {
		return err
	}

	issues := dataset.Validate()
	issues = append(issues, crossCheckPositions(dataset)...)

	printDatasetSummary(out, opts.datasetPath, dataset)

	if len(issues) > 0 {
		fmt.Fprintf(out, "\n%d issues:\n", len(issues))
		for _, issue := range issues {
			fmt.Fprintf(out, "  %s\n", issue)
		}
		return &cli.ExitError{Code: 1}
	}

	fmt.Fprintln(out, "\nDataset is valid.")
	return nil
}

// crossCheckPositions flags variants whose HGVS name disagrees with
// the position field. Names that are not HGVS substitutions are
// allowed; the viewer only needs the position to be right.
func crossCheckPositions(dataset *variant.Dataset) []string {
	var issues []string
	for index, v := range dataset.Variants {
		change, err := v.ProteinChange()
		if err != nil {
			continue
		}
		if change.Position != v.Position {
			issues = append(issues, fmt.Sprintf(
				"variants[%d] %q: position %d does not match the name (expected %d)",
				index, v.Name, v.Position, change.Position,
			))
		}
	}
	return issues
}

func printDatasetSummary(w io.Writer, path string, dataset *variant.Dataset) {
	fmt.Fprintf(w, "%s: %d variants", path, len(dataset.Variants))
	if dataset.Gene != "" {
		fmt.Fprintf(w, " (%s)", dataset.Gene)
	}
	fmt.Fprintln(w)

	stats := dataset.Stats()
	order := []variant.Classification{
		variant.Pathogenic,
		variant.LikelyPathogenic,
		variant.UncertainSignificance,
		variant.LikelyBenign,
		variant.Benign,
	}
	for _, classification := range order {
		if count := stats[classification]; count > 0 {
			fmt.Fprintf(w, "  %-24s %d\n", classification.String(), count)
		}
	}
}
