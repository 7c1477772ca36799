/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package validate

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/liamsdat/LabXtract/lab"
)

// Finding is a single validation message about one field.
type Finding struct {
	Field   string
	Message string
}

func (f Finding) String() string {
	return f.Field + ": " + f.Message
}

// Result collects the findings of one check. Findings never stop extraction.
type Result struct {
	Errors   []Finding
	Warnings []Finding
}

// Valid reports whether there are no errors. Warnings do not count.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(field, format string, args ...any) {
	r.Errors = append(r.Errors, Finding{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) warnf(field, format string, args ...any) {
	r.Warnings = append(r.Warnings, Finding{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

const (
	maxNameLength     = 200
	maxTextLength     = 500
	extremeFactor     = 10
	maxRangeDeviation = 0.5
	maxDateAgeYears   = 100
	maxPatientAge     = 120
)

var nameCharsRe = regexp.MustCompile(`[^\p{L}\p{N}\s\-.()/%,]`)

// Test checks one test against common sense and the expected range table.
func Test(test lab.LabTest, now time.Time) Result {
	var res Result
	expected, known := Expected(test.Name)

	checkName(&res, test.Name, known)

	switch test.Kind {
	case lab.ValueNumeric:
		if test.NumericValue == nil {
			res.errorf("value", "numeric value is missing")
			break
		}
		checkNumeric(&res, *test.NumericValue, expected, known)
	case lab.ValueText:
		checkText(&res, test.Name, test.TextValue)
	default:
		res.warnf("value", "no value for %q", test.Name)
	}

	if test.Unit != "" && known && !expected.UnitAllowed(test.Unit) {
		res.warnf("unit", "unusual unit %q for %s, expected one of %s", test.Unit, test.Name, strings.Join(expected.AllowedUnits, ", "))
	}
	if test.Unit == "" {
		if test.Kind == lab.ValueNumeric {
			res.warnf("unit", "numeric value without a unit")
		}
		if test.ReferenceMin != nil || test.ReferenceMax != nil {
			res.warnf("unit", "reference range without a unit")
		}
	}

	if test.HasRange() {
		checkReference(&res, test.Name, *test.ReferenceMin, *test.ReferenceMax, expected, known)
	}

	if ranged := test.RangeStatus(); ranged != lab.StatusUnset && test.Status != ranged {
		res.warnf("status", "status %q disagrees with the reference range (%s)", test.Status, ranged)
	}

	checkDate(&res, "sample_date", test.SampleDate, now)
	checkDate(&res, "result_date", test.ResultDate, now)
	if test.SampleDate != nil && test.ResultDate != nil && test.ResultDate.Before(*test.SampleDate) {
		res.warnf("result_date", "result date is before the sample date")
	}

	return res
}

func checkName(res *Result, name string, known bool) {
	if strings.TrimSpace(name) == "" {
		res.errorf("name", "test name is empty")
		return
	}
	if n := utf8.RuneCountInString(name); n > maxNameLength {
		res.warnf("name", "test name is too long: %d characters", n)
	}
	if odd := nameCharsRe.FindAllString(name, -1); len(odd) > 0 {
		slices.Sort(odd)
		res.warnf("name", "test name has unusual characters: %s", strings.Join(slices.Compact(odd), " "))
	}
	if !known {
		res.warnf("name", "unknown test %q", name)
	}
}

func checkNumeric(res *Result, value float64, expected ExpectedRange, known bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		res.errorf("value", "value is not a finite number")
		return
	}
	if value < 0 {
		res.warnf("value", "negative value %v", value)
	}
	if known && expected.Max != nil && *expected.Max > 0 && value > *expected.Max*extremeFactor {
		res.warnf("value", "extreme value %v", value)
	}
}

func checkText(res *Result, name, value string) {
	if strings.TrimSpace(value) == "" {
		res.errorf("value", "text value is empty")
		return
	}
	if n := utf8.RuneCountInString(value); n > maxTextLength {
		res.warnf("value", "text value is too long: %d characters", n)
	}
	if slices.Contains(qualitativeTests, name) && !slices.Contains(qualitativeAnswers, value) {
		res.warnf("value", "unusual answer %q for %s", value, name)
	}
}

func checkReference(res *Result, name string, lo, hi float64, expected ExpectedRange, known bool) {
	if lo > hi {
		res.errorf("reference", "reference minimum %v is above maximum %v", lo, hi)
	}
	if lo < 0 || hi < 0 {
		res.warnf("reference", "negative reference bound")
	}
	if !known || expected.Min == nil || expected.Max == nil {
		return
	}
	if deviates(lo, *expected.Min) || deviates(hi, *expected.Max) {
		res.warnf("reference", "unusual reference range %v-%v for %s, expected %v-%v", lo, hi, name, *expected.Min, *expected.Max)
	}
}

// deviates reports a relative difference over maxRangeDeviation. A zero
// expected bound has no relative scale and is skipped.
func deviates(got, want float64) bool {
	if want == 0 {
		return false
	}
	return math.Abs(got-want)/math.Abs(want) > maxRangeDeviation
}

func checkDate(res *Result, field string, date *time.Time, now time.Time) {
	if date == nil {
		return
	}
	if date.After(now) {
		res.warnf(field, "date %s is in the future", date.Format(lab.BirthDateLayout))
	}
	if date.Before(now.AddDate(-maxDateAgeYears, 0, 0)) {
		res.warnf(field, "date %s is more than %d years old", date.Format(lab.BirthDateLayout), maxDateAgeYears)
	}
}

// Patient checks a patient identity.
func Patient(patient lab.PatientIdentity, now time.Time) Result {
	var res Result

	switch tokens := strings.Fields(patient.FullName); {
	case len(tokens) == 0:
		res.warnf("patient", "patient name is missing")
	case len(tokens) < 2:
		res.warnf("patient", "incomplete patient name %q", patient.FullName)
	}

	if patient.BirthDate != nil && patient.BirthDate.After(now) {
		res.errorf("patient", "birth date %s is in the future", patient.BirthDate.Format(lab.BirthDateLayout))
	}
	if patient.Age != nil {
		switch age := *patient.Age; {
		case age < 0:
			res.errorf("patient", "negative age %d", age)
		case age > maxPatientAge:
			res.warnf("patient", "unusual age %d", age)
		}
	}

	return res
}

// TestResult ties test findings to the test they belong to.
type TestResult struct {
	Name      string
	RowNumber int
	Result
}

// ReportResult holds every finding for a report.
type ReportResult struct {
	Patient Result
	Report  Result
	Tests   []TestResult
}

// Valid reports whether the report has no errors at any level.
func (r ReportResult) Valid() bool {
	if !r.Patient.Valid() || !r.Report.Valid() {
		return false
	}
	for i := range r.Tests {
		if !r.Tests[i].Valid() {
			return false
		}
	}
	return true
}

// All flattens every finding into one Result.
func (r ReportResult) All() Result {
	var all Result
	all.merge(r.Patient)
	all.merge(r.Report)
	for _, test := range r.Tests {
		all.merge(test.Result)
	}
	return all
}

// Report checks a report, its patient and each of its tests. The report is
// only read.
func Report(report *lab.LabReport, now time.Time) ReportResult {
	out := ReportResult{Patient: Patient(report.Patient, now)}

	tests := report.Tests()
	if len(tests) == 0 {
		out.Report.errorf("report", "report has no tests")
	}
	switch {
	case report.ReportDate == nil:
		out.Report.warnf("report_date", "report date is missing")
	case report.ReportDate.After(now):
		out.Report.warnf("report_date", "report date is in the future")
	}
	if report.SourceFile == "" {
		out.Report.warnf("source_file", "source file is missing")
	}
	checkDuplicates(&out.Report, tests)

	for _, test := range tests {
		out.Tests = append(out.Tests, TestResult{
			Name:      test.Name,
			RowNumber: test.RowNumber,
			Result:    Test(test, now),
		})
	}

	return out
}

func checkDuplicates(res *Result, tests []lab.LabTest) {
	var order []string
	groups := map[string][]lab.LabTest{}
	for _, test := range tests {
		if _, seen := groups[test.Name]; !seen {
			order = append(order, test.Name)
		}
		groups[test.Name] = append(groups[test.Name], test)
	}

	for _, name := range order {
		group := groups[name]
		if len(group) < 2 {
			continue
		}
		res.warnf("tests", "%d duplicates of %s", len(group), name)

		values := map[string]struct{}{}
		for _, test := range group {
			values[fmt.Sprint(test.Value())] = struct{}{}
		}
		if len(values) > 1 {
			res.warnf("tests", "duplicates of %s have different values", name)
		}
	}
}
