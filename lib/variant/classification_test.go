// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variant

import (
	"encoding/json"
	"testing"
)

func TestParseClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Classification
		wantErr bool
	}{
		{input: "Pathogenic", want: Pathogenic},
		{input: "pathogenic", want: Pathogenic},
		{input: "Likely Pathogenic", want: LikelyPathogenic},
		{input: "Likely pathogenic", want: LikelyPathogenic},
		{input: "likely_pathogenic", want: LikelyPathogenic},
		{input: "LIKELY-BENIGN", want: LikelyBenign},
		{input: "Benign", want: Benign},
		{input: "VUS", want: UncertainSignificance},
		{input: "Uncertain significance", want: UncertainSignificance},
		{input: "Uncertain", want: UncertainSignificance},
		{input: "", wantErr: true},
		{input: "Probably fine", wantErr: true},
	}

	for _, testCase := range tests {
		got, err := ParseClassification(testCase.input)
		if testCase.wantErr {
			if err == nil {
				t.Errorf("ParseClassification(%q): want error, got %v", testCase.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClassification(%q): %v", testCase.input, err)
			continue
		}
		if got != testCase.want {
			t.Errorf("ParseClassification(%q) = %v, want %v", testCase.input, got, testCase.want)
		}
	}
}

func TestSeverityRankOrder(t *testing.T) {
	t.Parallel()

	// Most severe first, uncertainty last.
	ordered := []Classification{Pathogenic, LikelyPathogenic, LikelyBenign, Benign, UncertainSignificance}
	for index := 1; index < len(ordered); index++ {
		previous, current := ordered[index-1], ordered[index]
		if previous.SeverityRank() >= current.SeverityRank() {
			t.Errorf("SeverityRank(%v)=%d not below SeverityRank(%v)=%d",
				previous, previous.SeverityRank(), current, current.SeverityRank())
		}
	}
	if UncertainSignificance.SeverityRank() <= Benign.SeverityRank() {
		t.Error("uncertain significance must rank after every verdict")
	}
}

func TestPathogenicityScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		classification Classification
		want           int
	}{
		{Pathogenic, 5},
		{LikelyPathogenic, 4},
		{UncertainSignificance, 3},
		{LikelyBenign, 2},
		{Benign, 1},
		{ClassificationUnknown, 0},
	}
	for _, testCase := range tests {
		if got := testCase.classification.PathogenicityScore(); got != testCase.want {
			t.Errorf("PathogenicityScore(%v) = %d, want %d", testCase.classification, got, testCase.want)
		}
	}
}

func TestClassificationJSONRoundTrip(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(LikelyPathogenic)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(encoded) != `"Likely Pathogenic"` {
		t.Errorf("Marshal = %s", encoded)
	}

	var decoded Classification
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != LikelyPathogenic {
		t.Errorf("round trip = %v", decoded)
	}

	if _, err := json.Marshal(ClassificationUnknown); err == nil {
		t.Error("marshaling the zero value should fail")
	}
}
