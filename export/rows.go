/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package export

import (
	"strconv"
	"time"

	"github.com/liamsdat/LabXtract/lab"
)

const dateLayout = time.DateOnly

// Row is one test flattened together with its report and patient.
type Row struct {
	ReportID      string   `parquet:"report_id"`
	PatientName   string   `parquet:"patient_name"`
	LastName      string   `parquet:"last_name,optional"`
	FirstName     string   `parquet:"first_name,optional"`
	MiddleName    string   `parquet:"middle_name,optional"`
	BirthDate     string   `parquet:"birth_date,optional"`
	Age           *int32   `parquet:"age,optional"`
	SourceFile    string   `parquet:"source_file"`
	SheetName     string   `parquet:"sheet_name"`
	ReportDate    string   `parquet:"report_date,optional"`
	Category      string   `parquet:"category"`
	Subcategory   string   `parquet:"subcategory,optional"`
	Name          string   `parquet:"name"`
	OriginalName  string   `parquet:"original_name"`
	Value         *float64 `parquet:"value,optional"`
	TextValue     string   `parquet:"text_value,optional"`
	Unit          string   `parquet:"unit,optional"`
	ReferenceMin  *float64 `parquet:"reference_min,optional"`
	ReferenceMax  *float64 `parquet:"reference_max,optional"`
	ReferenceText string   `parquet:"reference_text,optional"`
	Status        string   `parquet:"status,optional"`
	Flag          string   `parquet:"flag,optional"`
	SampleDate    string   `parquet:"sample_date,optional"`
	ResultDate    string   `parquet:"result_date,optional"`
	Doctor        string   `parquet:"doctor,optional"`
	Notes         string   `parquet:"notes,optional"`
	RowNumber     int32    `parquet:"row_number"`
}

// Header is the CSV column order, matching Row.Record.
var Header = []string{
	"report_id", "patient_name", "last_name", "first_name", "middle_name", "birth_date", "age",
	"source_file", "sheet_name", "report_date", "category", "subcategory", "name", "original_name",
	"value", "text_value", "unit", "reference_min", "reference_max", "reference_text", "status",
	"flag", "sample_date", "result_date", "doctor", "notes", "row_number",
}

// Flatten turns reports into one row per test, in report and row order.
func Flatten(reports []*lab.LabReport) []Row {
	var rows []Row
	for _, report := range reports {
		patient := report.Patient

		var age *int32
		if patient.Age != nil {
			a := int32(*patient.Age)
			age = &a
		}

		for _, test := range report.Tests() {
			row := Row{
				ReportID:      report.ID.String(),
				PatientName:   patient.FullName,
				LastName:      patient.LastName,
				FirstName:     patient.FirstName,
				MiddleName:    patient.MiddleName,
				BirthDate:     formatDate(patient.BirthDate),
				Age:           age,
				SourceFile:    report.SourceFile,
				SheetName:     report.SheetName,
				ReportDate:    formatDate(report.ReportDate),
				Category:      string(test.Category),
				Subcategory:   test.Subcategory,
				Name:          test.Name,
				OriginalName:  test.OriginalName,
				TextValue:     test.TextValue,
				Unit:          test.Unit,
				ReferenceMin:  test.ReferenceMin,
				ReferenceMax:  test.ReferenceMax,
				ReferenceText: test.ReferenceText,
				Status:        string(test.Status),
				Flag:          test.Flag,
				SampleDate:    formatDate(test.SampleDate),
				ResultDate:    formatDate(test.ResultDate),
				Doctor:        test.Doctor,
				Notes:         test.Notes,
				RowNumber:     int32(test.RowNumber),
			}
			if test.Kind == lab.ValueNumeric {
				row.Value = test.NumericValue
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// Record renders a row as CSV fields in Header order.
func (r Row) Record() []string {
	age := ""
	if r.Age != nil {
		age = strconv.Itoa(int(*r.Age))
	}

	return []string{
		r.ReportID, r.PatientName, r.LastName, r.FirstName, r.MiddleName, r.BirthDate, age,
		r.SourceFile, r.SheetName, r.ReportDate, r.Category, r.Subcategory, r.Name, r.OriginalName,
		formatFloat(r.Value), r.TextValue, r.Unit, formatFloat(r.ReferenceMin), formatFloat(r.ReferenceMax), r.ReferenceText, r.Status,
		r.Flag, r.SampleDate, r.ResultDate, r.Doctor, r.Notes, strconv.Itoa(int(r.RowNumber)),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
