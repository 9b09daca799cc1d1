// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package report implements "varscope report", the headless distance
// analysis over a whole dataset.
package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/varscope/varscope/cmd/varscope/cli"
	"github.com/varscope/varscope/lib/config"
	"github.com/varscope/varscope/lib/distance"
	"github.com/varscope/varscope/lib/rcsb"
	"github.com/varscope/varscope/lib/structcache"
	"github.com/varscope/varscope/lib/variant"
)

type options struct {
	configPath  string
	structureID string
	datasetPath string
	chain       string
	mode        string
	format      string
	outPath     string
	noCache     bool
}

// Command returns the "varscope report" command.
func Command() *cli.Command {
	var opts options

	return &cli.Command{
		Name:    "report",
		Summary: "Compute all distances and print a summary report",
		Description: `Load the dataset, fetch the structure, measure every variant
against the reference polymer, and summarize the result: statistics per
classification group, a pathogenic-versus-VUS comparison, and a contact
category histogram.`,
		Usage: "varscope report --structure <id> --dataset <path> [flags]",
		Examples: []cli.Example{
			{
				Description: "Text report to stdout",
				Command:     "varscope report --structure 2H8R --dataset variants.jsonc",
			},
			{
				Description: "Per-variant CSV for a spreadsheet",
				Command:     "varscope report --structure 2H8R --dataset variants.jsonc --format csv --out distances.csv",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("report", pflag.ContinueOnError)
			flagSet.StringVar(&opts.configPath, "config", "", "session config file (YAML)")
			flagSet.StringVar(&opts.structureID, "structure", "", "structure ID to load, e.g. 2H8R")
			flagSet.StringVar(&opts.datasetPath, "dataset", "", "variant dataset file (JSONC)")
			flagSet.StringVar(&opts.chain, "chain", "", "protein chain the variants annotate")
			flagSet.StringVar(&opts.mode, "mode", "", "measurement mode: closest-atom or backbone-only")
			flagSet.StringVar(&opts.format, "format", "text", "output format: text, json, or csv")
			flagSet.StringVar(&opts.outPath, "out", "", "write the report to this file instead of stdout")
			flagSet.BoolVar(&opts.noCache, "no-cache", false, "bypass the on-disk structure cache")
			return flagSet
		},
		Run: func(ctx context.Context, _ []string, logger *slog.Logger) error {
			return run(ctx, opts, logger)
		},
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	if opts.format != "text" && opts.format != "json" && opts.format != "csv" {
		return fmt.Errorf("unknown format %q (want text, json, or csv)", opts.format)
	}

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.LoadFile(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.structureID != "" {
		cfg.Structure.ID = opts.structureID
	}
	if opts.datasetPath != "" {
		cfg.Dataset.Path = opts.datasetPath
	}
	if opts.chain != "" {
		cfg.Structure.Chain = opts.chain
	}
	if opts.mode != "" {
		cfg.Measurement.Mode = opts.mode
	}
	if opts.noCache {
		cfg.Structure.Cache = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Structure.ID == "" {
		return fmt.Errorf("a structure ID is required (--structure or the config file)")
	}
	if cfg.Dataset.Path == "" {
		return fmt.Errorf("a dataset path is required (--dataset or the config file)")
	}

	dataset, err := variant.Load(cfg.Dataset.Path)
	if err != nil {
		return err
	}
	mode, err := cfg.MeasurementMode()
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

	calculator := distance.NewCalculator(logger)
	if !calculator.Initialize(structure) {
		return fmt.Errorf("structure %s has no reference polymer to measure against", cfg.Structure.ID)
	}
	results := calculator.ComputeAll(dataset.Positions(), cfg.Structure.Chain, mode)

	report := Build(cfg.Structure.ID, cfg.Structure.Chain, mode, dataset, results)

	out := io.Writer(os.Stdout)
	if opts.outPath != "" {
		file, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer file.Close()
		out = file
	}

	switch opts.format {
	case "json":
		return writeJSON(out, report)
	case "csv":
		return writeCSV(out, report)
	default:
		return writeText(out, report)
	}
}

// VariantRow is one measured variant in the report.
type VariantRow struct {
	Name           string   `json:"name"`
	Position       int      `json:"position"`
	Classification string   `json:"classification"`
	Distance       *float64 `json:"distance"`
	Category       string   `json:"category,omitempty"`
}

// GroupStats summarizes one classification group.
type GroupStats struct {
	Classification string  `json:"classification"`
	Count          int     `json:"count"`
	Measured       int     `json:"measured"`
	Mean           float64 `json:"mean"`
	Median         float64 `json:"median"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
}

// Comparison contrasts the disease group (pathogenic plus likely
// pathogenic) with the uncertain group. The working hypothesis reads
// "closer to the reference = more severe": a negative median
// difference supports it.
type Comparison struct {
	DiseaseMedian    float64 `json:"diseaseMedian"`
	UncertainMedian  float64 `json:"uncertainMedian"`
	MedianDifference float64 `json:"medianDifference"`
	Supported        bool    `json:"hypothesisSupported"`
}

// Report is the full analysis result.
type Report struct {
	Structure string         `json:"structure"`
	Chain     string         `json:"chain"`
	Mode      string         `json:"mode"`
	Gene      string         `json:"gene,omitempty"`
	Variants  []VariantRow   `json:"variants"`
	Groups    []GroupStats   `json:"groups"`
	Compare   *Comparison    `json:"comparison,omitempty"`
	Histogram map[string]int `json:"histogram"`
}

// Build assembles a Report from one computation pass. Variants keep
// dataset order; groups appear in severity order and only when
// populated.
func Build(structureID, chain string, mode distance.Mode, dataset *variant.Dataset, results distance.Results) *Report {
	report := &Report{
		Structure: structureID,
		Chain:     chain,
		Mode:      mode.String(),
		Gene:      dataset.Gene,
		Histogram: make(map[string]int),
	}

	grouped := make(map[variant.Classification][]float64)
	var diseaseDistances, uncertainDistances []float64

	for _, item := range dataset.Variants {
		row := VariantRow{
			Name:           item.Name,
			Position:       item.Position,
			Classification: item.Classification.String(),
		}
		if result := results[item.Position]; result != nil {
			d := result.Distance
			row.Distance = &d
			row.Category = result.Category().String()
			report.Histogram[row.Category]++

			grouped[item.Classification] = append(grouped[item.Classification], d)
			switch item.Classification {
			case variant.Pathogenic, variant.LikelyPathogenic:
				diseaseDistances = append(diseaseDistances, d)
			case variant.UncertainSignificance:
				uncertainDistances = append(uncertainDistances, d)
			}
		}
		report.Variants = append(report.Variants, row)
	}

	counts := dataset.Stats()
	order := []variant.Classification{
		variant.Pathogenic,
		variant.LikelyPathogenic,
		variant.LikelyBenign,
		variant.Benign,
		variant.UncertainSignificance,
	}
	for _, classification := range order {
		if counts[classification] == 0 {
			continue
		}
		stats := GroupStats{
			Classification: classification.String(),
			Count:          counts[classification],
			Measured:       len(grouped[classification]),
		}
		if distances := grouped[classification]; len(distances) > 0 {
			stats.Mean = mean(distances)
			stats.Median = median(distances)
			stats.Min = minOf(distances)
			stats.Max = maxOf(distances)
		}
		report.Groups = append(report.Groups, stats)
	}

	if len(diseaseDistances) > 0 && len(uncertainDistances) > 0 {
		diseaseMedian := median(diseaseDistances)
		uncertainMedian := median(uncertainDistances)
		report.Compare = &Comparison{
			DiseaseMedian:    diseaseMedian,
			UncertainMedian:  uncertainMedian,
			MedianDifference: diseaseMedian - uncertainMedian,
			Supported:        diseaseMedian < uncertainMedian,
		}
	}

	return report
}

func mean(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	middle := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[middle]
	}
	return (sorted[middle-1] + sorted[middle]) / 2
}

func minOf(values []float64) float64 {
	lowest := math.Inf(1)
	for _, v := range values {
		if v < lowest {
			lowest = v
		}
	}
	return lowest
}

func maxOf(values []float64) float64 {
	highest := math.Inf(-1)
	for _, v := range values {
		if v > highest {
			highest = v
		}
	}
	return highest
}

func writeJSON(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func writeCSV(w io.Writer, report *Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"name", "position", "classification", "distance", "category"}); err != nil {
		return err
	}
	for _, row := range report.Variants {
		distanceText := ""
		if row.Distance != nil {
			distanceText = strconv.FormatFloat(*row.Distance, 'f', 2, 64)
		}
		record := []string{row.Name, strconv.Itoa(row.Position), row.Classification, distanceText, row.Category}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeText(w io.Writer, report *Report) error {
	title := report.Structure
	if report.Gene != "" {
		title = report.Gene + " vs " + title
	}
	fmt.Fprintf(w, "%s — chain %s, %s\n\n", title, report.Chain, report.Mode)

	fmt.Fprintf(w, "%-22s %6s %9s %8s %8s %8s %8s\n",
		"classification", "count", "measured", "mean", "median", "min", "max")
	for _, group := range report.Groups {
		if group.Measured == 0 {
			fmt.Fprintf(w, "%-22s %6d %9d %8s %8s %8s %8s\n",
				group.Classification, group.Count, 0, "-", "-", "-", "-")
			continue
		}
		fmt.Fprintf(w, "%-22s %6d %9d %8.2f %8.2f %8.2f %8.2f\n",
			group.Classification, group.Count, group.Measured,
			group.Mean, group.Median, group.Min, group.Max)
	}

	if report.Compare != nil {
		fmt.Fprintf(w, "\nP+LP median %.2f Å vs VUS median %.2f Å (difference %+.2f Å)\n",
			report.Compare.DiseaseMedian, report.Compare.UncertainMedian,
			report.Compare.MedianDifference)
		if report.Compare.Supported {
			fmt.Fprintln(w, "Consistent with: closer to the reference polymer = more severe.")
		} else {
			fmt.Fprintln(w, "Not consistent with: closer to the reference polymer = more severe.")
		}
	}

	fmt.Fprintf(w, "\nContact categories:\n")
	for _, category := range []distance.Category{distance.CategoryClose, distance.CategoryMedium, distance.CategoryFar} {
		name := category.String()
		fmt.Fprintf(w, "  %-8s %4d  (%s)\n", name, report.Histogram[name], category.Description())
	}

	unreachable := 0
	for _, row := range report.Variants {
		if row.Distance == nil {
			unreachable++
		}
	}
	if unreachable > 0 {
		fmt.Fprintf(w, "\n%d variant(s) without a measurement (unresolved in the structure).\n", unreachable)
	}
	return nil
}
