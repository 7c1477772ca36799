/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/liamsdat/LabXtract/lab"
	"github.com/liamsdat/LabXtract/validate"
)

var CmdValidate = &cli.Command{
	Name:      "validate",
	Usage:     "Extract lab results and print validation findings",
	ArgsUsage: "<file or directory>...",
	Flags: []cli.Flag{
		configFlag(),
		verboseFlag(),
		patientSourceFlag(),
		jobsFlag(),
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Fail when any report has validation errors",
		},
	},
	Action: validateReports,
}

func validateReports(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errInputRequired
	}

	_, extractor, err := setup(cmd)
	if err != nil {
		return err
	}

	reports, err := collectReports(ctx, extractor, paths, cmd.Int("jobs"))
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		appLogger.Warn("no lab results found", "inputs", len(paths))
		return nil
	}

	now := extractor.Options().Now()
	failed := 0
	for _, report := range reports {
		result := validate.Report(report, now)
		printFindings(cmd.Root().Writer, report, result)
		if !result.Valid() {
			failed++
		}
	}

	if failed > 0 && cmd.Bool("strict") {
		return fmt.Errorf("%w: %d of %d reports", errValidationFailed, failed, len(reports))
	}
	return nil
}

func printFindings(w io.Writer, report *lab.LabReport, result validate.ReportResult) {
	all := result.All()
	fmt.Fprintf(w, "%s (%s / %s): %d tests, %d errors, %d warnings\n",
		report.Patient.FullName, report.SourceFile, report.SheetName,
		report.TotalTests(), len(all.Errors), len(all.Warnings))

	emit := func(prefix string, res validate.Result) {
		for _, finding := range res.Errors {
			fmt.Fprintf(w, "  error   %s%s\n", prefix, finding)
		}
		for _, finding := range res.Warnings {
			fmt.Fprintf(w, "  warning %s%s\n", prefix, finding)
		}
	}

	emit("patient ", result.Patient)
	emit("report ", result.Report)
	for _, test := range result.Tests {
		emit(fmt.Sprintf("row %d %s ", test.RowNumber, test.Name), test.Result)
	}
	for _, test := range report.AbnormalTestList() {
		fmt.Fprintf(w, "  abnormal %s = %v (%s)\n", test.Name, test.Value(), test.Status)
	}
}
