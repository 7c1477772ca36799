/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"path/filepath"

	"github.com/liamsdat/LabXtract/lab"
	"github.com/liamsdat/LabXtract/normalize"
)

// Extractor runs classification, table location, row extraction and
// normalization over sheets. It is immutable and safe for concurrent use.
type Extractor struct {
	opts       Options
	normalizer *normalize.Normalizer
}

// New creates an Extractor. A nil normalizer uses the built-in tables.
func New(opts Options, normalizer *normalize.Normalizer) *Extractor {
	if normalizer == nil {
		normalizer = normalize.New()
	}
	return &Extractor{opts: opts.withDefaults(), normalizer: normalizer}
}

// Options returns the effective options.
func (e *Extractor) Options() Options {
	return e.opts
}

// ExtractWorkbook extracts one report per sheet that yields at least one test.
func (e *Extractor) ExtractWorkbook(workbook lab.Workbook) []*lab.LabReport {
	fileName := workbook.FileName
	if fileName == "" {
		fileName = filepath.Base(workbook.Path)
	}

	var reports []*lab.LabReport
	for _, sheet := range workbook.Sheets {
		if report, ok := e.ExtractSheet(fileName, sheet); ok {
			reports = append(reports, report)
		}
	}

	logger.Debug("workbook extracted", "file", fileName, "sheets", len(workbook.Sheets), "reports", len(reports))
	return reports
}

// ExtractSheet extracts the tests of one sheet. The boolean is false when the
// sheet is skipped or holds no recognisable tests.
func (e *Extractor) ExtractSheet(fileName string, sheet lab.Sheet) (*lab.LabReport, bool) {
	if e.opts.SkipNonLabSheets {
		if class := ClassifySheet(sheet.Name, sheet.Grid, e.opts); !class.IsLab {
			logger.Debug("skipping sheet", "file", fileName, "sheet", sheet.Name, "reason", class.Reason)
			return nil, false
		}
	}

	var tests []lab.LabTest
	for _, region := range LocateTables(sheet.Grid, e.opts) {
		logger.Debug("table found",
			"sheet", sheet.Name,
			"start", region.StartRow+1,
			"end", region.EndRow+1,
			"method", region.Method,
		)
		tests = append(tests, ExtractTable(sheet.Grid, region, e.opts.DateLayouts)...)
	}

	if len(tests) == 0 && e.opts.FreeformFallback {
		tests = ExtractFreeform(sheet.Grid, e.opts.DateLayouts)
		logger.Debug("freeform fallback", "sheet", sheet.Name, "tests", len(tests))
	}
	if len(tests) == 0 {
		logger.Debug("no tests found", "file", fileName, "sheet", sheet.Name)
		return nil, false
	}

	now := e.opts.Now()
	report := lab.NewReport(e.Identity(fileName, sheet.Name), fileName, sheet.Name, now)
	for i := range tests {
		tests[i].SheetName = sheet.Name
		tests[i].FileName = fileName
		tests[i] = e.normalizer.Test(tests[i])
	}
	report.SetTests(tests)
	report.RefreshReportDate()

	return report, true
}

// Identity resolves the patient for a sheet according to the configured
// patient source. It always returns an identity; unparsed text is the last
// resort.
func (e *Extractor) Identity(fileName, sheetName string) lab.PatientIdentity {
	now := e.opts.Now()

	fromSheet := func() (lab.PatientIdentity, bool) { return lab.IdentityFromSheetName(sheetName, now) }
	fromFile := func() (lab.PatientIdentity, bool) { return lab.IdentityFromFile(fileName, now) }

	order := []func() (lab.PatientIdentity, bool){fromSheet, fromFile}
	fallback := sheetName
	switch e.opts.PatientSource {
	case PatientSourceSheet:
		order = order[:1]
	case PatientSourceFileName:
		order = []func() (lab.PatientIdentity, bool){fromFile, fromSheet}
		fallback = filepath.Base(fileName)
	}

	for _, source := range order {
		if identity, ok := source(); ok {
			return identity
		}
	}
	if fallback == "" {
		fallback = filepath.Base(fileName)
	}
	return lab.UnparsedIdentity(fallback)
}
