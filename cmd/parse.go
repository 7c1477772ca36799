/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/liamsdat/LabXtract/export"
	"github.com/liamsdat/LabXtract/lab"
	"github.com/liamsdat/LabXtract/validate"
)

const (
	outputBaseName  = "lab_results"
	timestampLayout = "20060102_150405"
)

var CmdParse = &cli.Command{
	Name:      "parse",
	Usage:     "Extract lab results from spreadsheets and export them",
	ArgsUsage: "<file or directory>...",
	Flags: []cli.Flag{
		configFlag(),
		verboseFlag(),
		patientSourceFlag(),
		jobsFlag(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output directory (overrides output.directory)",
		},
		&cli.StringSliceFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Export format: csv, json, xlsx, parquet, org, html or all (repeatable)",
		},
		&cli.BoolFlag{
			Name:  "require-results",
			Usage: "Fail when nothing was extracted",
		},
		&cli.BoolFlag{
			Name:  "no-timestamp",
			Usage: "Write directly into the output directory",
		},
		&cli.BoolFlag{
			Name:  "validate",
			Usage: "Log validation findings for each report",
		},
	},
	Action: parse,
}

func parse(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errInputRequired
	}

	cfg, extractor, err := setup(cmd)
	if err != nil {
		return err
	}

	formats, err := cfg.Formats()
	if cmd.IsSet("format") {
		formats, err = export.ParseFormats(cmd.StringSlice("format"))
	}
	if err != nil {
		return fmt.Errorf("failed to parse formats: %w", err)
	}

	exportOpts, err := cfg.ExportOptions()
	if err != nil {
		return fmt.Errorf("failed to apply config: %w", err)
	}

	reports, err := collectReports(ctx, extractor, paths, cmd.Int("jobs"))
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		if cmd.Bool("require-results") {
			return errNoResults
		}
		appLogger.Warn("no lab results found", "inputs", len(paths))
		return nil
	}

	now := extractor.Options().Now()
	if cmd.Bool("validate") {
		for _, report := range reports {
			logFindings(report, validate.Report(report, now))
		}
	}

	dir := cfg.Output.Directory
	if cmd.IsSet("output") {
		dir = cmd.String("output")
	}
	if cfg.Output.TimestampDir && !cmd.Bool("no-timestamp") {
		dir = filepath.Join(dir, now.Format(timestampLayout))
	}

	written, err := export.WriteAll(dir, outputBaseName, formats, reports, exportOpts)
	if err != nil {
		return fmt.Errorf("failed to export results: %w", err)
	}

	out := cmd.Root().Writer
	tests, abnormal := 0, 0
	for _, report := range reports {
		tests += report.TotalTests()
		abnormal += report.AbnormalTests()
	}
	fmt.Fprintf(out, "Reports: %d\nTests: %d\nAbnormal: %d\n", len(reports), tests, abnormal)
	for _, path := range written {
		fmt.Fprintf(out, "Wrote %s\n", path)
	}

	return nil
}

func logFindings(report *lab.LabReport, result validate.ReportResult) {
	log := appLogger.With("file", report.SourceFile, "sheet", report.SheetName)

	emit := func(res validate.Result, keyvals ...any) {
		for _, finding := range res.Errors {
			log.Error("validation error", append(keyvals, "finding", finding.String())...)
		}
		for _, finding := range res.Warnings {
			log.Warn("validation warning", append(keyvals, "finding", finding.String())...)
		}
	}

	emit(result.Patient)
	emit(result.Report)
	for _, test := range result.Tests {
		emit(test.Result, "test", test.Name, "row", test.RowNumber)
	}
}
