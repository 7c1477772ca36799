/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/liamsdat/LabXtract/lab"
)

const (
	summarySheet      = "Summary"
	maxSheetNameRunes = 31
	abnormalFill      = "FFC7CE"
)

var summaryHeader = []any{"Patient", "Birth date", "Age", "Source file", "Sheet", "Report date", "Tests", "Abnormal"}

var reportHeader = []any{"Category", "Subcategory", "Test", "Original name", "Value", "Unit", "Reference", "Status", "Flag", "Sample date", "Result date", "Row"}

var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

type xlsxExporter struct{}

func (xlsxExporter) Format() Format { return FormatXLSX }

// Write builds a workbook with a Summary sheet and one sheet per report.
func (xlsxExporter) Write(w io.Writer, reports []*lab.LabReport) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{abnormalFill}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create highlight style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if err := writeHeader(f, summarySheet, summaryHeader, bold); err != nil {
		return err
	}

	used := map[string]bool{strings.ToLower(summarySheet): true}
	for i, report := range reports {
		patient := report.Patient
		age := ""
		if patient.Age != nil {
			age = strconv.Itoa(*patient.Age)
		}

		summary := []any{
			patient.FullName, formatDate(patient.BirthDate), age, report.SourceFile, report.SheetName,
			formatDate(report.ReportDate), report.TotalTests(), report.AbnormalTests(),
		}
		if err := setRow(f, summarySheet, i+2, summary); err != nil {
			return err
		}

		name := uniqueSheetName(reportSheetName(report, i), used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
		if err := writeReportSheet(f, name, report, bold, highlight); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeReportSheet(f *excelize.File, sheet string, report *lab.LabReport, bold, highlight int) error {
	if err := writeHeader(f, sheet, reportHeader, bold); err != nil {
		return err
	}

	for i, test := range report.Tests() {
		var value any = test.TextValue
		if test.Kind == lab.ValueNumeric && test.NumericValue != nil {
			value = *test.NumericValue
		}

		row := []any{
			lab.CategoryLabel(test.Category), test.Subcategory, test.Name, test.OriginalName, value, test.Unit,
			referenceText(test), string(test.Status), test.Flag, formatDate(test.SampleDate),
			formatDate(test.ResultDate), test.RowNumber,
		}
		rowNum := i + 2
		if err := setRow(f, sheet, rowNum, row); err != nil {
			return err
		}

		if test.Status.IsAbnormal() {
			start, _ := excelize.CoordinatesToCellName(1, rowNum)
			end, _ := excelize.CoordinatesToCellName(len(reportHeader), rowNum)
			if err := f.SetCellStyle(sheet, start, end, highlight); err != nil {
				return fmt.Errorf("failed to highlight row %d: %w", rowNum, err)
			}
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []any, style int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	end, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", end, style); err != nil {
		return fmt.Errorf("failed to style header of %q: %w", sheet, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %q: %w", row, sheet, err)
	}
	return nil
}

// referenceText prefers the printed range and falls back to the bounds.
func referenceText(test lab.LabTest) string {
	if test.ReferenceText != "" {
		return test.ReferenceText
	}
	switch {
	case test.ReferenceMin != nil && test.ReferenceMax != nil:
		return formatFloat(test.ReferenceMin) + "-" + formatFloat(test.ReferenceMax)
	case test.ReferenceMin != nil:
		return ">" + formatFloat(test.ReferenceMin)
	case test.ReferenceMax != nil:
		return "<" + formatFloat(test.ReferenceMax)
	}
	return ""
}

func reportSheetName(report *lab.LabReport, index int) string {
	name := report.Patient.FullName
	if name == "" {
		name = report.SheetName
	}
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Report " + strconv.Itoa(index+1)
	}
	return truncateRunes(name, maxSheetNameRunes)
}

func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		candidate = truncateRunes(name, maxSheetNameRunes-utf8.RuneCountInString(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
