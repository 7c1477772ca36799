/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/liamsdat/LabXtract/extract"
	"github.com/liamsdat/LabXtract/ingest"
	"github.com/liamsdat/LabXtract/lab"
)

const (
	previewRows      = 5
	previewCellRunes = 30
)

var CmdAnalyze = &cli.Command{
	Name:      "analyze",
	Usage:     "Show how a spreadsheet is classified and where its tables are",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		configFlag(),
		verboseFlag(),
		patientSourceFlag(),
	},
	Action: analyze,
}

func analyze(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errInputRequired
	}

	_, extractor, err := setup(cmd)
	if err != nil {
		return err
	}

	workbook, err := ingest.ReadFile(cmd.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read workbook: %w", err)
	}

	describeWorkbook(cmd.Root().Writer, workbook, extractor.Options())
	return nil
}

func describeWorkbook(w io.Writer, workbook lab.Workbook, opts extract.Options) {
	now := opts.Now()

	fmt.Fprintf(w, "File: %s\n", workbook.FileName)
	fmt.Fprintf(w, "Sheets: %d\n", len(workbook.Sheets))

	if identity, ok := extract.IdentityFromContent(workbook, opts.MaxRowsToCheck, now); ok {
		fmt.Fprintf(w, "Patient in content: %s\n", describeIdentity(identity))
	}
	if identity, ok := lab.IdentityFromFile(workbook.FileName, now); ok {
		fmt.Fprintf(w, "Patient in file name: %s\n", describeIdentity(identity))
	}

	for _, sheet := range workbook.Sheets {
		fmt.Fprintln(w)
		describeSheet(w, sheet, opts)
	}
}

func describeSheet(w io.Writer, sheet lab.Sheet, opts extract.Options) {
	grid := sheet.Grid
	class := extract.ClassifySheet(sheet.Name, grid, opts)

	fmt.Fprintf(w, "Sheet %q: %d rows x %d columns, %d filled cells (%.1f%%)\n",
		sheet.Name, class.Rows, class.Columns, class.FilledCells, class.FillRatio*100)

	decision := "no"
	if class.IsLab {
		decision = "yes"
	}
	fmt.Fprintf(w, "  Lab sheet: %s (%s)\n", decision, class.Reason)
	if len(class.KeywordGroups) > 0 {
		fmt.Fprintf(w, "  Keyword groups: %s\n", strings.Join(class.KeywordGroups, ", "))
	}
	for _, problem := range class.Problems {
		fmt.Fprintf(w, "  Problem: %s\n", problem)
	}

	if identity, ok := lab.IdentityFromSheetName(sheet.Name, opts.Now()); ok {
		fmt.Fprintf(w, "  Patient in sheet name: %s\n", describeIdentity(identity))
	}

	if rows := min(previewRows, grid.Rows()); rows > 0 {
		fmt.Fprintln(w, "  Preview:")
		for r := range rows {
			fmt.Fprintf(w, "    %d: %s\n", r+1, previewRow(grid.Row(r)))
		}
	}

	var headerRows []string
	for r := range min(opts.MaxRowsToCheck, grid.Rows()) {
		if extract.IsHeaderRow(grid.Row(r)) {
			headerRows = append(headerRows, fmt.Sprint(r+1))
		}
	}
	if len(headerRows) > 0 {
		fmt.Fprintf(w, "  Header-like rows: %s\n", strings.Join(headerRows, ", "))
	}

	regions := extract.LocateTables(grid, opts)
	if len(regions) == 0 {
		fmt.Fprintln(w, "  Tables: none")
		return
	}
	for i, region := range regions {
		stats := extract.DescribeRegion(grid, region)
		fmt.Fprintf(w, "  Table %d: rows %d-%d (%s), %.1f%% filled\n",
			i+1, region.StartRow+1, region.EndRow+1, region.Method, stats.FillRatio*100)
		for _, column := range stats.RoleColumns {
			fmt.Fprintf(w, "    %s: column %d %q (%s)\n", column.Role, column.Index+1, column.Header, column.Type)
		}
	}
}

func describeIdentity(identity lab.PatientIdentity) string {
	out := identity.FullName
	if identity.BirthDate != nil {
		out += ", born " + identity.BirthDate.Format(lab.BirthDateLayout)
	}
	if identity.Age != nil {
		out += fmt.Sprintf(", age %d", *identity.Age)
	}
	return out
}

func previewRow(row []string) string {
	cells := make([]string, 0, len(row))
	for _, cell := range row {
		if r := []rune(cell); len(r) > previewCellRunes {
			cell = string(r[:previewCellRunes]) + "..."
		}
		cells = append(cells, cell)
	}
	return strings.TrimRight(strings.Join(cells, " | "), " |")
}
