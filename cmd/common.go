/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"slices"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/liamsdat/LabXtract/config"
	"github.com/liamsdat/LabXtract/extract"
	"github.com/liamsdat/LabXtract/ingest"
	"github.com/liamsdat/LabXtract/lab"
	"github.com/liamsdat/LabXtract/logging"
	"github.com/liamsdat/LabXtract/normalize"
)

// LoadDotEnv loads variables from a .env file. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Sources: cli.EnvVars("LABXTRACT_CONFIG"),
		Usage:   "YAML config file",
	}
}

func verboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Sources: cli.EnvVars("LABXTRACT_VERBOSE"),
		Usage:   "Log debug output",
	}
}

func patientSourceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "patient-source",
		Usage: "Where to read the patient from: auto, sheet or filename",
	}
}

func jobsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Value:   runtime.NumCPU(),
		Usage:   "Number of files processed in parallel",
	}
}

// setup loads the config and builds an extractor from it, applying command
// line overrides.
func setup(cmd *cli.Command) (*config.Config, *extract.Extractor, error) {
	logging.SetVerbose(cmd.Bool("verbose"))

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if cmd.IsSet("patient-source") {
		cfg.Parser.PatientSource = cmd.String("patient-source")
	}

	opts, err := cfg.ExtractOptions()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to apply config: %w", err)
	}

	return cfg, extract.New(opts, normalize.New(cfg.NormalizerOptions()...)), nil
}

// collectReports extracts every supported file under paths. Files that fail
// to open are logged and skipped; reports keep the discovery order.
func collectReports(ctx context.Context, extractor *extract.Extractor, paths []string, jobs int) ([]*lab.LabReport, error) {
	files, err := ingest.Discover(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to discover inputs: %w", err)
	}
	appLogger.Info("processing files", "files", len(files), "jobs", jobs)

	results := make([][]*lab.LabReport, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			workbook, err := ingest.ReadFile(path)
			if err != nil {
				appLogger.Error("failed to read file", "path", path, "error", err)
				return nil
			}

			results[i] = extractor.ExtractWorkbook(workbook)
			appLogger.Debug("file processed", "path", path, "reports", len(results[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slices.Concat(results...), nil
}
