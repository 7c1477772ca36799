/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
)

// LabReport holds the tests extracted from one sheet. The test list is only
// reachable through methods so the counters always match it.
type LabReport struct {
	ID          uuid.UUID
	Patient     PatientIdentity
	ReportDate  *time.Time
	SourceFile  string
	SheetName   string
	ExtractedAt time.Time

	tests         []LabTest
	totalTests    int
	abnormalTests int
}

// NewReport creates an empty report for a sheet.
func NewReport(patient PatientIdentity, sourceFile, sheetName string, extractedAt time.Time) *LabReport {
	return &LabReport{
		ID:          uuid.New(),
		Patient:     patient,
		SourceFile:  sourceFile,
		SheetName:   sheetName,
		ExtractedAt: extractedAt,
	}
}

// Tests returns a copy of the report's tests in row order.
func (r *LabReport) Tests() []LabTest {
	return slices.Clone(r.tests)
}

// TotalTests returns the number of tests.
func (r *LabReport) TotalTests() int {
	return r.totalTests
}

// AbnormalTests returns the number of tests whose status is abnormal.
func (r *LabReport) AbnormalTests() int {
	return r.abnormalTests
}

// AddTest appends a test.
func (r *LabReport) AddTest(test LabTest) {
	r.tests = append(r.tests, test)
	r.recount()
}

// SetTests replaces all tests.
func (r *LabReport) SetTests(tests []LabTest) {
	r.tests = slices.Clone(tests)
	r.recount()
}

// UpdateTests rewrites every test in place through fn.
func (r *LabReport) UpdateTests(fn func(LabTest) LabTest) {
	for i := range r.tests {
		r.tests[i] = fn(r.tests[i])
	}
	r.recount()
}

// AbnormalTestList returns the tests with an abnormal status.
func (r *LabReport) AbnormalTestList() []LabTest {
	var out []LabTest
	for _, test := range r.tests {
		if test.Status.IsAbnormal() {
			out = append(out, test)
		}
	}
	return out
}

// RefreshReportDate sets ReportDate to the latest result date, falling back to
// the latest sample date, or nil when no test carries a date.
func (r *LabReport) RefreshReportDate() {
	var latest *time.Time
	pick := func(candidate *time.Time) {
		if candidate != nil && (latest == nil || candidate.After(*latest)) {
			d := *candidate
			latest = &d
		}
	}

	for _, test := range r.tests {
		pick(test.ResultDate)
	}
	if latest == nil {
		for _, test := range r.tests {
			pick(test.SampleDate)
		}
	}
	r.ReportDate = latest
}

func (r *LabReport) recount() {
	r.totalTests = len(r.tests)
	r.abnormalTests = 0
	for _, test := range r.tests {
		if test.Status.IsAbnormal() {
			r.abnormalTests++
		}
	}
}

type reportJSON struct {
	ID            uuid.UUID       `json:"id"`
	Patient       PatientIdentity `json:"patient"`
	ReportDate    *time.Time      `json:"report_date,omitempty"`
	SourceFile    string          `json:"source_file"`
	SheetName     string          `json:"sheet_name"`
	ExtractedAt   time.Time       `json:"extracted_at"`
	TotalTests    int             `json:"total_tests"`
	AbnormalTests int             `json:"abnormal_tests"`
	Tests         []LabTest       `json:"tests"`
}

// MarshalJSON encodes the report with its derived counters.
func (r *LabReport) MarshalJSON() ([]byte, error) {
	tests := r.tests
	if tests == nil {
		tests = []LabTest{}
	}
	return json.Marshal(reportJSON{
		ID:            r.ID,
		Patient:       r.Patient,
		ReportDate:    r.ReportDate,
		SourceFile:    r.SourceFile,
		SheetName:     r.SheetName,
		ExtractedAt:   r.ExtractedAt,
		TotalTests:    r.totalTests,
		AbnormalTests: r.abnormalTests,
		Tests:         tests,
	})
}

// UnmarshalJSON decodes a report and recomputes its counters from the tests.
func (r *LabReport) UnmarshalJSON(data []byte) error {
	var raw reportJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = LabReport{
		ID:          raw.ID,
		Patient:     raw.Patient,
		ReportDate:  raw.ReportDate,
		SourceFile:  raw.SourceFile,
		SheetName:   raw.SheetName,
		ExtractedAt: raw.ExtractedAt,
	}
	r.SetTests(raw.Tests)
	return nil
}
