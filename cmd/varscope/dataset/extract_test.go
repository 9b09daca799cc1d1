// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/varscope/varscope/lib/variant"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const curationHeader = "VariantReported,VariantType,Varsome,verdict_classification\n"

func extractFrom(t *testing.T, csv string) *extraction {
	t.Helper()
	result, err := extract(strings.NewReader(csv), "HNF1B", "", discardLogger())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	return result
}

func variantNames(dataset *variant.Dataset) []string {
	names := make([]string, len(dataset.Variants))
	for index, v := range dataset.Variants {
		names[index] = v.Name
	}
	return names
}

func TestExtractKeepsOnlySNVs(t *testing.T) {
	result := extractFrom(t, curationHeader+
		"c.494G>A (p.Arg165His),SNV,,Pathogenic\n"+
		"c.1045_1046del,Deletion,,Pathogenic\n"+
		"whole gene,CNV,,Pathogenic\n")

	if result.totalRows != 3 || result.snvRows != 1 {
		t.Fatalf("totalRows=%d snvRows=%d, want 3 and 1", result.totalRows, result.snvRows)
	}
	if got := variantNames(result.dataset); len(got) != 1 || got[0] != "p.Arg165His" {
		t.Fatalf("variants = %v, want [p.Arg165His]", got)
	}
}

func TestExtractPrefersVarsomeColumn(t *testing.T) {
	// The reported name and Varsome disagree; Varsome wins.
	result := extractFrom(t, curationHeader+
		"p.R165H,SNV,NM_000458.4:c.494G>A (p.Arg165Cys),VUS\n")

	if got := variantNames(result.dataset); len(got) != 1 || got[0] != "p.Arg165Cys" {
		t.Fatalf("variants = %v, want [p.Arg165Cys]", got)
	}
}

func TestExtractFallsBackToReportedName(t *testing.T) {
	result := extractFrom(t, curationHeader+
		"p.R165H,SNV,,Likely pathogenic\n")

	dataset := result.dataset
	if len(dataset.Variants) != 1 {
		t.Fatalf("got %d variants, want 1", len(dataset.Variants))
	}
	v := dataset.Variants[0]
	if v.Name != "p.Arg165His" {
		t.Errorf("name = %q, want single-letter form normalized to p.Arg165His", v.Name)
	}
	if v.Position != 165 {
		t.Errorf("position = %d, want 165", v.Position)
	}
	if v.Classification != variant.LikelyPathogenic {
		t.Errorf("classification = %v, want LikelyPathogenic", v.Classification)
	}
}

func TestExtractSkipsTerminationVariants(t *testing.T) {
	result := extractFrom(t, curationHeader+
		"c.826C>T (p.Arg276*),SNV,,Pathogenic\n"+
		"c.544C>T (p.Gln182X),SNV,,Pathogenic\n"+
		"c.494G>A (p.Arg165His),SNV,,Pathogenic\n")

	if result.skippedTer != 2 {
		t.Errorf("skippedTer = %d, want 2", result.skippedTer)
	}
	if got := variantNames(result.dataset); len(got) != 1 || got[0] != "p.Arg165His" {
		t.Fatalf("variants = %v, want [p.Arg165His]", got)
	}
}

func TestExtractDeduplicatesAndSortsByPosition(t *testing.T) {
	result := extractFrom(t, curationHeader+
		"c.1136C>T (p.Ser379Phe),SNV,,VUS\n"+
		"c.494G>A (p.Arg165His),SNV,,Pathogenic\n"+
		"p.R165H,SNV,,Pathogenic\n")

	got := variantNames(result.dataset)
	want := []string{"p.Arg165His", "p.Ser379Phe"}
	if len(got) != len(want) {
		t.Fatalf("variants = %v, want %v", got, want)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("variants = %v, want %v", got, want)
		}
	}
}

func TestExtractReportsUnparsedRows(t *testing.T) {
	result := extractFrom(t, curationHeader+
		"c.1045-2A>G splice,SNV,,VUS\n"+
		"c.494G>A (p.Arg165His),SNV,,Pathogenic\n")

	if len(result.unparsed) != 1 {
		t.Fatalf("unparsed = %v, want one row", result.unparsed)
	}
	if result.unparsed[0].line != 2 {
		t.Errorf("unparsed line = %d, want 2", result.unparsed[0].line)
	}
}

func TestExtractDefaultsUnknownVerdictToVUS(t *testing.T) {
	result := extractFrom(t, curationHeader+
		"c.494G>A (p.Arg165His),SNV,,conflicting\n")

	if result.unclassable != 1 {
		t.Errorf("unclassable = %d, want 1", result.unclassable)
	}
	if got := result.dataset.Variants[0].Classification; got != variant.UncertainSignificance {
		t.Errorf("classification = %v, want UncertainSignificance", got)
	}
}

func TestExtractRejectsExportWithoutTypeColumn(t *testing.T) {
	_, err := extract(strings.NewReader("Name,Verdict\nfoo,bar\n"), "", "", discardLogger())
	if err == nil || !strings.Contains(err.Error(), "variant type column") {
		t.Fatalf("err = %v, want missing type column error", err)
	}
}

func TestExtractProteinChangePatterns(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"NM_000458.4:c.494G>A (p.Arg165His)", "p.Arg165His"},
		{"NM_000458.4(HNF1B):c.494G>A p.Arg165His", "p.Arg165His"},
		{"c.494G>A p.R165H het", "p.Arg165His"},
		{"p.Arg276*", "p.Arg276Ter"},
		{"p.Q182X", "p.Gln182Ter"},
	}
	for _, test := range tests {
		change, ok := extractProteinChange([]string{test.source})
		if !ok {
			t.Errorf("extractProteinChange(%q): no match", test.source)
			continue
		}
		if change.String() != test.want {
			t.Errorf("extractProteinChange(%q) = %s, want %s", test.source, change, test.want)
		}
	}

	if _, ok := extractProteinChange([]string{"c.1045-2A>G"}); ok {
		t.Error("nucleotide-only notation should not parse as a protein change")
	}
}

func TestWriteDatasetRoundTrips(t *testing.T) {
	dataset := &variant.Dataset{
		Gene: "HNF1B",
		Variants: []variant.Variant{
			{Name: "p.Arg165His", Position: 165, Classification: variant.Pathogenic},
		},
	}

	var out strings.Builder
	if err := writeDataset(&out, dataset); err != nil {
		t.Fatalf("writeDataset: %v", err)
	}
	if !strings.HasPrefix(out.String(), "//") {
		t.Error("output should start with a generation comment")
	}

	parsed, err := variant.Parse([]byte(out.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if issues := parsed.Validate(); len(issues) > 0 {
		t.Fatalf("round-tripped dataset has issues: %v", issues)
	}
	if parsed.Gene != "HNF1B" || len(parsed.Variants) != 1 {
		t.Fatalf("round trip lost data: %+v", parsed)
	}
}
