// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package view implements "varscope view", the interactive TUI
// session.
package view

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/varscope/varscope/cmd/varscope/cli"
	"github.com/varscope/varscope/lib/config"
	"github.com/varscope/varscope/lib/distance"
	"github.com/varscope/varscope/lib/rcsb"
	"github.com/varscope/varscope/lib/render"
	"github.com/varscope/varscope/lib/structcache"
	"github.com/varscope/varscope/lib/termstage"
	"github.com/varscope/varscope/lib/variant"
	"github.com/varscope/varscope/lib/variantui"
	"github.com/varscope/varscope/lib/viewer"
)

// options are the view command's flag values. Flags override the
// config file, which overrides built-in defaults.
type options struct {
	configPath  string
	structureID string
	datasetPath string
	chain       string
	mode        string
	logFile     string
	noCache     bool
}

// Command returns the "varscope view" command.
func Command() *cli.Command {
	var opts options

	return &cli.Command{
		Name:    "view",
		Summary: "Open the interactive variant viewer",
		Description: `Open the interactive terminal session: variant list, structure
rendering, and per-variant distance measurements against the nearest
reference polymer.`,
		Usage: "varscope view --structure <id> --dataset <path> [flags]",
		Examples: []cli.Example{
			{
				Description: "View the HNF1B curation against structure 2H8R",
				Command:     "varscope view --structure 2H8R --dataset variants.jsonc",
			},
			{
				Description: "Backbone-only measurement with a session config",
				Command:     "varscope view --config varscope.yaml --mode backbone-only",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("view", pflag.ContinueOnError)
			flagSet.StringVar(&opts.configPath, "config", "", "session config file (YAML)")
			flagSet.StringVar(&opts.structureID, "structure", "", "structure ID to load, e.g. 2H8R")
			flagSet.StringVar(&opts.datasetPath, "dataset", "", "variant dataset file (JSONC)")
			flagSet.StringVar(&opts.chain, "chain", "", "protein chain the variants annotate")
			flagSet.StringVar(&opts.mode, "mode", "", "measurement mode: closest-atom or backbone-only")
			flagSet.StringVar(&opts.logFile, "log-file", "", "append structured logs to this file")
			flagSet.BoolVar(&opts.noCache, "no-cache", false, "bypass the on-disk structure cache")
			return flagSet
		},
		Run: func(ctx context.Context, _ []string, _ *slog.Logger) error {
			return run(ctx, opts)
		},
	}
}

// resolveConfig merges flags over the config file over defaults.
func resolveConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.LoadFile(opts.configPath)
		if err != nil {
			return nil, err
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
	if opts.logFile != "" {
		cfg.Logging.File = opts.logFile
	}
	if opts.noCache {
		cfg.Structure.Cache = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Structure.ID == "" {
		return nil, fmt.Errorf("a structure ID is required (--structure or the config file)")
	}
	if cfg.Dataset.Path == "" {
		return nil, fmt.Errorf("a dataset path is required (--dataset or the config file)")
	}
	return cfg, nil
}

func run(_ context.Context, opts options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	dataset, err := variant.Load(cfg.Dataset.Path)
	if err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	// Session logging never writes to stderr: the alternate screen
	// owns the terminal. Warnings and errors surface on the in-UI
	// status line; the full stream goes to the log file when one is
	// configured.
	statusHandler := variantui.NewStatusLogHandler(slog.LevelWarn)
	var fileHandler slog.Handler
	if cfg.Logging.File != "" {
		logSink, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logSink.Close()
		fileHandler = slog.NewJSONHandler(logSink, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(cli.NewFanoutHandler(fileHandler, statusHandler))

	var loader viewer.StructureLoader = rcsb.NewClient(cfg.Structure.Source, logger)
	if cfg.Structure.Cache {
		loader = structcache.New(cfg.Structure.CacheDir, loader, logger)
	}

	geometry, err := cfg.GeometryType()
	if err != nil {
		return err
	}
	scheme, err := cfg.ColorScheme()
	if err != nil {
		return err
	}
	mode, err := cfg.MeasurementMode()
	if err != nil {
		return err
	}

	manager := render.NewManager()
	manager.Update(render.Patch{
		Geometry:    &geometry,
		ColorScheme: &scheme,
		Opacity:     &cfg.Display.Opacity,
		Sidechains:  &cfg.Display.Sidechains,
	})

	stage := termstage.New()
	model := variantui.New(variantui.Config{
		Viewer:      viewer.New(stage, manager, loader, cfg.Structure.Chain, logger),
		Stage:       stage,
		Manager:     manager,
		Calculator:  distance.NewCalculator(logger),
		Dataset:     dataset,
		StructureID: cfg.Structure.ID,
		Mode:        mode,
		Theme:       cfg.Theme(),
		Logger:      logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	statusHandler.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running viewer session: %w", err)
	}
	return nil
}
