// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "varscope.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	path := writeTempConfig(t, `
structure:
  id: 1AAA
  chain: B
dataset:
  path: file-variants.jsonc
measurement:
  mode: closest-atom
`)

	cfg, err := resolveConfig(options{
		configPath:  path,
		structureID: "2H8R",
		mode:        "backbone-only",
		noCache:     true,
	})
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}

	if cfg.Structure.ID != "2H8R" {
		t.Errorf("ID = %q, want the flag to win", cfg.Structure.ID)
	}
	if cfg.Structure.Chain != "B" {
		t.Errorf("Chain = %q, want the file value to survive", cfg.Structure.Chain)
	}
	if cfg.Dataset.Path != "file-variants.jsonc" {
		t.Errorf("Dataset.Path = %q, want the file value", cfg.Dataset.Path)
	}
	if cfg.Measurement.Mode != "backbone-only" {
		t.Errorf("Mode = %q, want the flag to win", cfg.Measurement.Mode)
	}
	if cfg.Structure.Cache {
		t.Error("no-cache flag should disable the cache")
	}
}

func TestResolveConfigRequiresStructureAndDataset(t *testing.T) {
	if _, err := resolveConfig(options{datasetPath: "v.jsonc"}); err == nil ||
		!strings.Contains(err.Error(), "structure ID is required") {
		t.Errorf("err = %v, want missing structure ID", err)
	}
	if _, err := resolveConfig(options{structureID: "2H8R"}); err == nil ||
		!strings.Contains(err.Error(), "dataset path is required") {
		t.Errorf("err = %v, want missing dataset path", err)
	}
}

func TestResolveConfigRejectsInvalidValues(t *testing.T) {
	_, err := resolveConfig(options{
		structureID: "2H8R",
		datasetPath: "v.jsonc",
		mode:        "as-the-crow-flies",
	})
	if err == nil || !strings.Contains(err.Error(), "measurement.mode") {
		t.Errorf("err = %v, want a measurement.mode validation error", err)
	}
}

func TestResolveConfigRejectsUnknownKeys(t *testing.T) {
	path := writeTempConfig(t, "structure:\n  id: 2H8R\n  protocol: gopher\n")
	if _, err := resolveConfig(options{configPath: path, datasetPath: "v.jsonc"}); err == nil {
		t.Error("unknown config keys should fail strict decoding")
	}
}
