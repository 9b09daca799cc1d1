// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/varscope/varscope/lib/distance"
	"github.com/varscope/varscope/lib/variant"
)

func testDataset() *variant.Dataset {
	return &variant.Dataset{
		Gene: "HNF1B",
		Variants: []variant.Variant{
			{Name: "p.Gly200Asp", Position: 200, Classification: variant.Pathogenic},
			{Name: "p.Arg235Gln", Position: 235, Classification: variant.LikelyPathogenic},
			{Name: "p.Arg177Trp", Position: 177, Classification: variant.UncertainSignificance},
			{Name: "p.Ser300Leu", Position: 300, Classification: variant.UncertainSignificance},
			{Name: "p.Ala999Thr", Position: 999, Classification: variant.Benign},
		},
	}
}

func testResults() distance.Results {
	return distance.Results{
		200: {Distance: 2.0},
		235: {Distance: 4.0},
		177: {Distance: 8.0},
		300: {Distance: 12.0},
		999: nil,
	}
}

func TestBuildGroupStats(t *testing.T) {
	report := Build("2H8R", "A", distance.ModeClosestAtom, testDataset(), testResults())

	if len(report.Groups) != 4 {
		t.Fatalf("groups = %d, want 4 (likely-benign absent)", len(report.Groups))
	}

	pathogenic := report.Groups[0]
	if pathogenic.Classification != "Pathogenic" || pathogenic.Count != 1 || pathogenic.Measured != 1 {
		t.Errorf("pathogenic group = %+v", pathogenic)
	}
	if pathogenic.Median != 2.0 {
		t.Errorf("pathogenic median = %g, want 2.0", pathogenic.Median)
	}

	// The benign variant is unreachable: counted, not measured.
	benign := report.Groups[2]
	if benign.Classification != "Benign" || benign.Count != 1 || benign.Measured != 0 {
		t.Errorf("benign group = %+v", benign)
	}
}

func TestBuildComparisonSupportsHypothesis(t *testing.T) {
	report := Build("2H8R", "A", distance.ModeClosestAtom, testDataset(), testResults())

	if report.Compare == nil {
		t.Fatal("comparison missing")
	}
	// Disease medians 2.0 and 4.0 -> 3.0; VUS medians 8.0 and 12.0 -> 10.0.
	if report.Compare.DiseaseMedian != 3.0 || report.Compare.UncertainMedian != 10.0 {
		t.Errorf("medians = %g vs %g, want 3.0 vs 10.0",
			report.Compare.DiseaseMedian, report.Compare.UncertainMedian)
	}
	if !report.Compare.Supported {
		t.Error("disease group closer to the reference should support the hypothesis")
	}
	if report.Compare.MedianDifference != -7.0 {
		t.Errorf("difference = %g, want -7.0", report.Compare.MedianDifference)
	}
}

func TestBuildHistogram(t *testing.T) {
	report := Build("2H8R", "A", distance.ModeClosestAtom, testDataset(), testResults())

	if report.Histogram["close"] != 2 {
		t.Errorf("close = %d, want 2", report.Histogram["close"])
	}
	if report.Histogram["medium"] != 1 {
		t.Errorf("medium = %d, want 1", report.Histogram["medium"])
	}
	if report.Histogram["far"] != 1 {
		t.Errorf("far = %d, want 1", report.Histogram["far"])
	}
}

func TestBuildKeepsDatasetOrderAndNilDistances(t *testing.T) {
	report := Build("2H8R", "A", distance.ModeClosestAtom, testDataset(), testResults())

	if len(report.Variants) != 5 {
		t.Fatalf("variants = %d, want 5", len(report.Variants))
	}
	if report.Variants[0].Name != "p.Gly200Asp" || report.Variants[4].Name != "p.Ala999Thr" {
		t.Error("report variants should keep dataset order")
	}
	if report.Variants[4].Distance != nil {
		t.Error("unreachable variant should carry a nil distance")
	}
}

func TestMedianEvenCount(t *testing.T) {
	if got := median([]float64{4.0, 1.0, 3.0, 2.0}); got != 2.5 {
		t.Errorf("median = %g, want 2.5", got)
	}
	if got := median([]float64{5.0}); got != 5.0 {
		t.Errorf("median of one = %g, want 5.0", got)
	}
}

func TestWriteCSV(t *testing.T) {
	report := Build("2H8R", "A", distance.ModeClosestAtom, testDataset(), testResults())

	var out bytes.Buffer
	if err := writeCSV(&out, report); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("csv lines = %d, want header + 5 rows", len(lines))
	}
	if lines[0] != "name,position,classification,distance,category" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "p.Gly200Asp,200,Pathogenic,2.00,close") {
		t.Errorf("row = %q", lines[1])
	}
	// The unreachable variant emits empty distance and category cells.
	if !strings.HasSuffix(lines[5], "Benign,,") {
		t.Errorf("unreachable row = %q", lines[5])
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	report := Build("2H8R", "A", distance.ModeBackboneOnly, testDataset(), testResults())

	var out bytes.Buffer
	if err := writeJSON(&out, report); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Mode != "backbone-only" || decoded.Gene != "HNF1B" {
		t.Errorf("decoded = %+v", decoded)
	}
	if math.Abs(decoded.Compare.MedianDifference+7.0) > 1e-9 {
		t.Errorf("difference = %g, want -7.0", decoded.Compare.MedianDifference)
	}
}

func TestWriteTextSections(t *testing.T) {
	report := Build("2H8R", "A", distance.ModeClosestAtom, testDataset(), testResults())

	var out bytes.Buffer
	if err := writeText(&out, report); err != nil {
		t.Fatalf("writeText: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"HNF1B vs 2H8R",
		"Pathogenic",
		"P+LP median 3.00 Å vs VUS median 10.00 Å",
		"Consistent with",
		"close",
		"1 variant(s) without a measurement",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text report missing %q:\n%s", want, text)
		}
	}
}
