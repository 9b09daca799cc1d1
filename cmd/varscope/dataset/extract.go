// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/varscope/varscope/cmd/varscope/cli"
	"github.com/varscope/varscope/lib/variant"
)

type extractOptions struct {
	csvPath     string
	outPath     string
	gene        string
	description string
}

func extractCommand() *cli.Command {
	var opts extractOptions

	return &cli.Command{
		Name:    "extract",
		Summary: "Build a dataset from a clinical curation CSV export",
		Description: `Read a curation CSV export, keep the single-nucleotide variants,
extract the HGVS protein substitution from each row, and write a
JSONC dataset. Termination (stop-gain) variants are skipped: the
truncated transcript is usually degraded before a protein exists to
map onto the structure. Rows whose protein change cannot be parsed
are reported on stderr and left out.`,
		Usage: "varscope dataset extract --csv <path> [flags]",
		Examples: []cli.Example{
			{
				Description: "Extract HNF1B variants into a dataset file",
				Command:     "varscope dataset extract --csv curation.csv --gene HNF1B --out variants.jsonc",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("extract", pflag.ContinueOnError)
			flagSet.StringVar(&opts.csvPath, "csv", "", "curation CSV export to read")
			flagSet.StringVar(&opts.outPath, "out", "", "write the dataset to this file instead of stdout")
			flagSet.StringVar(&opts.gene, "gene", "", "gene symbol recorded in the dataset header")
			flagSet.StringVar(&opts.description, "description", "", "free-form dataset description")
			return flagSet
		},
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			return runExtract(opts, logger)
		},
	}
}

// Curation exports name their columns inconsistently across
// versions, so each column has a list of accepted headers.
var (
	typeColumns     = []string{"VariantType", "variant_type", "Type"}
	varsomeColumns  = []string{"Varsome", "varsome"}
	reportedColumns = []string{"VariantReported", "variant_reported", "Variant"}
	verdictColumns  = []string{"verdict_classification", "Classification", "classification"}
)

// parenthesized protein notation, e.g. "NM_000458.4:c.494G>A (p.Arg165His)".
var parenthesizedChange = regexp.MustCompile(`\(p\.([^)]+)\)`)

// bare protein notation embedded in a longer string, three-letter
// form first so "p.Arg165His" is not truncated to "p.A165H".
var (
	embeddedThreeLetter = regexp.MustCompile(`p\.[A-Z][a-z]{2}\d+(?:[A-Z][a-z]{2}|\*|X)`)
	embeddedOneLetter   = regexp.MustCompile(`p\.[A-Z]\d+[A-Z*]`)
)

// unparsedRow records a CSV row whose protein change could not be
// extracted, for the summary report.
type unparsedRow struct {
	line   int
	value  string
	reason string
}

// extraction is the result of walking a curation CSV.
type extraction struct {
	dataset     *variant.Dataset
	totalRows   int
	snvRows     int
	skippedTer  int
	unparsed    []unparsedRow
	unclassable int
}

func runExtract(opts extractOptions, logger *slog.Logger) error {
	if opts.csvPath == "" {
		return fmt.Errorf("--csv is required")
	}

	file, err := os.Open(opts.csvPath)
	if err != nil {
		return fmt.Errorf("opening curation export: %w", err)
	}
	defer file.Close()

	result, err := extract(file, opts.gene, opts.description, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.csvPath, err)
	}

	out := io.Writer(os.Stdout)
	if opts.outPath != "" {
		outFile, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer outFile.Close()
		out = outFile
	}

	if err := writeDataset(out, result.dataset); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	printExtractionSummary(os.Stderr, result)
	return nil
}

// extract walks a curation CSV and builds a dataset from its SNV
// rows. Non-SNV rows, termination variants, duplicates, and rows
// without a parseable protein change are dropped and counted.
func extract(r io.Reader, gene, description string, logger *slog.Logger) (*extraction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for index, name := range header {
		columns[strings.TrimSpace(name)] = index
	}

	typeIndex, ok := findColumn(columns, typeColumns)
	if !ok {
		return nil, fmt.Errorf("no variant type column (looked for %s)", strings.Join(typeColumns, ", "))
	}
	varsomeIndex, hasVarsome := findColumn(columns, varsomeColumns)
	reportedIndex, hasReported := findColumn(columns, reportedColumns)
	if !hasVarsome && !hasReported {
		return nil, fmt.Errorf("no variant name column (looked for %s)",
			strings.Join(append(varsomeColumns, reportedColumns...), ", "))
	}
	verdictIndex, hasVerdict := findColumn(columns, verdictColumns)

	result := &extraction{
		dataset: &variant.Dataset{Gene: gene, Description: description},
	}
	seen := make(map[string]bool)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		result.totalRows++

		if !strings.EqualFold(field(record, typeIndex), "SNV") {
			continue
		}
		result.snvRows++

		// Varsome annotations carry canonical HGVS; the
		// free-text reported name is the fallback.
		var sources []string
		if hasVarsome {
			sources = append(sources, field(record, varsomeIndex))
		}
		if hasReported {
			sources = append(sources, field(record, reportedIndex))
		}

		change, ok := extractProteinChange(sources)
		if !ok {
			result.unparsed = append(result.unparsed, unparsedRow{
				line:   line,
				value:  firstNonEmpty(sources),
				reason: "no HGVS protein substitution found",
			})
			continue
		}

		if change.IsNonsense() {
			result.skippedTer++
			logger.Debug("skipping termination variant",
				"line", line, "variant", change.String())
			continue
		}

		name := change.String()
		if seen[name] {
			continue
		}
		seen[name] = true

		classification := variant.UncertainSignificance
		if hasVerdict {
			verdict := field(record, verdictIndex)
			parsed, err := variant.ParseClassification(verdict)
			if err != nil {
				result.unclassable++
				logger.Warn("unrecognized classification, defaulting to VUS",
					"line", line, "variant", name, "verdict", verdict)
			} else {
				classification = parsed
			}
		}

		result.dataset.Variants = append(result.dataset.Variants, variant.Variant{
			Name:           name,
			Position:       change.Position,
			Classification: classification,
		})
	}

	sort.SliceStable(result.dataset.Variants, func(i, j int) bool {
		return result.dataset.Variants[i].Position < result.dataset.Variants[j].Position
	})

	return result, nil
}

// extractProteinChange tries each source string in order and returns
// the first protein substitution it can parse. Parenthesized HGVS
// wins over bare notation within a single source.
func extractProteinChange(sources []string) (variant.ProteinChange, bool) {
	for _, source := range sources {
		source = strings.TrimSpace(source)
		if source == "" {
			continue
		}

		var candidates []string
		if match := parenthesizedChange.FindStringSubmatch(source); match != nil {
			candidates = append(candidates, "p."+strings.TrimSpace(match[1]))
		}
		if match := embeddedThreeLetter.FindString(source); match != "" {
			candidates = append(candidates, match)
		}
		if match := embeddedOneLetter.FindString(source); match != "" {
			candidates = append(candidates, match)
		}
		candidates = append(candidates, source)

		for _, candidate := range candidates {
			if change, err := variant.ParseProteinChange(candidate); err == nil {
				return change, true
			}
		}
	}
	return variant.ProteinChange{}, false
}

// writeDataset emits the dataset as JSONC: a generation comment
// followed by indented JSON. The comment survives a round trip
// through variant.Load since the loader strips comments.
func writeDataset(w io.Writer, dataset *variant.Dataset) error {
	encoded, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return err
	}
	header := fmt.Sprintf("// Generated by varscope dataset extract on %s.\n// Edit notes freely; regeneration overwrites everything else.\n",
		time.Now().Format("2006-01-02"))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	if _, err := w.Write(append(encoded, '\n')); err != nil {
		return err
	}
	return nil
}

func printExtractionSummary(w io.Writer, result *extraction) {
	fmt.Fprintf(w, "Read %d rows, %d SNVs.\n", result.totalRows, result.snvRows)
	fmt.Fprintf(w, "Extracted %d variants", len(result.dataset.Variants))
	if result.skippedTer > 0 {
		fmt.Fprintf(w, " (skipped %d termination variants)", result.skippedTer)
	}
	fmt.Fprintln(w, ".")

	stats := result.dataset.Stats()
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

	if result.unclassable > 0 {
		fmt.Fprintf(w, "%d rows had an unrecognized classification and default to VUS.\n", result.unclassable)
	}

	if len(result.unparsed) > 0 {
		fmt.Fprintf(w, "%d rows could not be parsed:\n", len(result.unparsed))
		for index, row := range result.unparsed {
			if index == 10 {
				fmt.Fprintf(w, "  ... and %d more\n", len(result.unparsed)-10)
				break
			}
			fmt.Fprintf(w, "  line %d: %q (%s)\n", row.line, row.value, row.reason)
		}
	}
}

func findColumn(columns map[string]int, names []string) (int, bool) {
	for _, name := range names {
		if index, ok := columns[name]; ok {
			return index, true
		}
	}
	return 0, false
}

func field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
