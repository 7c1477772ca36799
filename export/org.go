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

	"github.com/niklasfasching/go-org/org"

	"github.com/liamsdat/LabXtract/lab"
)

var parseOrg = func(config *org.Configuration, reader io.Reader) *org.Document {
	return config.Parse(reader, "")
}

var writeOrg = func(doc *org.Document, writer *org.OrgWriter) (string, error) {
	return doc.Write(writer)
}

var orgCellReplacer = strings.NewReplacer("|", "/", "\n", " ", "\r", "")

var orgTableHeader = []string{"Test", "Value", "Unit", "Reference", "Status", "Category"}

type orgExporter struct{}

func (orgExporter) Format() Format { return FormatOrg }

// Write renders one heading per report. The draft is parsed and written back
// through go-org so tables come out aligned.
func (orgExporter) Write(w io.Writer, reports []*lab.LabReport) error {
	doc := parseOrg(org.New(), strings.NewReader(orgDraft(reports)))
	if doc.Error != nil {
		return fmt.Errorf("failed to parse org draft: %w", doc.Error)
	}

	out, err := writeOrg(doc, org.NewOrgWriter())
	if err != nil {
		return fmt.Errorf("failed to render org: %w", err)
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write org: %w", err)
	}
	return nil
}

func orgDraft(reports []*lab.LabReport) string {
	var b strings.Builder
	b.WriteString("#+TITLE: Lab reports\n\n")

	for _, report := range reports {
		patient := report.Patient
		title := patient.FullName
		if title == "" {
			title = report.SheetName
		}
		if report.SheetName != "" && report.SheetName != title {
			title += " / " + report.SheetName
		}
		fmt.Fprintf(&b, "* %s\n", orgCell(title))

		b.WriteString(":PROPERTIES:\n")
		orgProperty(&b, "ID", report.ID.String())
		orgProperty(&b, "SOURCE", report.SourceFile)
		orgProperty(&b, "SHEET", report.SheetName)
		orgProperty(&b, "PATIENT", patient.FullName)
		orgProperty(&b, "BIRTH_DATE", formatDate(patient.BirthDate))
		if patient.Age != nil {
			orgProperty(&b, "AGE", strconv.Itoa(*patient.Age))
		}
		orgProperty(&b, "REPORT_DATE", formatDate(report.ReportDate))
		orgProperty(&b, "TOTAL_TESTS", strconv.Itoa(report.TotalTests()))
		orgProperty(&b, "ABNORMAL_TESTS", strconv.Itoa(report.AbnormalTests()))
		b.WriteString(":END:\n\n")

		tests := report.Tests()
		if len(tests) == 0 {
			b.WriteString("No tests.\n\n")
			continue
		}

		orgRow(&b, orgTableHeader)
		b.WriteString("|-\n")
		for _, test := range tests {
			value := test.TextValue
			if test.Kind == lab.ValueNumeric {
				value = formatFloat(test.NumericValue)
			}
			orgRow(&b, []string{
				test.Name, value, test.Unit, referenceText(test), string(test.Status), lab.CategoryLabel(test.Category),
			})
		}
		b.WriteString("\n")
	}

	return b.String()
}

func orgProperty(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, ":%s: %s\n", key, orgCell(value))
}

func orgRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		b.WriteString(" " + orgCell(cell) + " |")
	}
	b.WriteString("\n")
}

func orgCell(s string) string {
	return strings.TrimSpace(orgCellReplacer.Replace(s))
}
