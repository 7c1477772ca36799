// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package lab

import (
	"encoding/json"
	"testing"
	"time"
)

func assertCounts(t *testing.T, report *LabReport) {
	t.Helper()

	tests := report.Tests()
	abnormal := 0
	for _, test := range tests {
		if test.Status.IsAbnormal() {
			abnormal++
		}
	}
	if report.TotalTests() != len(tests) {
		t.Fatalf("expected total %d, got %d", len(tests), report.TotalTests())
	}
	if report.AbnormalTests() != abnormal {
		t.Fatalf("expected abnormal %d, got %d", abnormal, report.AbnormalTests())
	}
}

func TestReportCountsFollowMutations(t *testing.T) {
	t.Parallel()

	report := NewReport(UnparsedIdentity("Лист1"), "a.xlsx", "Лист1", fixedNow)
	assertCounts(t, report)

	report.AddTest(LabTest{Name: "Глюкоза", Status: StatusNormal})
	report.AddTest(LabTest{Name: "Лейкоциты", Status: StatusHigh})
	assertCounts(t, report)
	if report.AbnormalTests() != 1 {
		t.Fatalf("expected 1 abnormal test, got %d", report.AbnormalTests())
	}

	report.UpdateTests(func(test LabTest) LabTest {
		test.Status = StatusLow
		return test
	})
	assertCounts(t, report)
	if report.AbnormalTests() != 2 {
		t.Fatalf("expected 2 abnormal tests, got %d", report.AbnormalTests())
	}

	report.SetTests(nil)
	assertCounts(t, report)
}

func TestAbnormalTestList(t *testing.T) {
	t.Parallel()

	report := NewReport(UnparsedIdentity("x"), "a.xlsx", "x", fixedNow)
	if got := report.AbnormalTestList(); len(got) != 0 {
		t.Fatalf("expected no abnormal tests, got %v", got)
	}

	report.AddTest(LabTest{Name: "Глюкоза", Status: StatusNormal})
	report.AddTest(LabTest{Name: "Лейкоциты", Status: StatusHigh})
	report.AddTest(LabTest{Name: "Candida", Status: StatusNotDetected})
	report.AddTest(LabTest{Name: "Гемоглобин", Status: StatusLow})

	got := report.AbnormalTestList()
	if len(got) != report.AbnormalTests() || len(got) != 2 {
		t.Fatalf("expected 2 abnormal tests, got %d", len(got))
	}
	if got[0].Name != "Лейкоциты" || got[1].Name != "Гемоглобин" {
		t.Fatalf("expected insertion order, got %s, %s", got[0].Name, got[1].Name)
	}
}

func TestReportTestsIsACopy(t *testing.T) {
	t.Parallel()

	report := NewReport(UnparsedIdentity("x"), "a.xlsx", "x", fixedNow)
	report.AddTest(LabTest{Name: "Глюкоза", Status: StatusHigh})

	tests := report.Tests()
	tests[0].Status = StatusNormal
	if report.AbnormalTests() != 1 || report.Tests()[0].Status != StatusHigh {
		t.Fatal("expected report to be unaffected by edits to the copy")
	}
}

func TestRefreshReportDate(t *testing.T) {
	t.Parallel()

	early := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	report := NewReport(UnparsedIdentity("x"), "a.xlsx", "x", fixedNow)
	report.RefreshReportDate()
	if report.ReportDate != nil {
		t.Fatalf("expected no report date, got %v", report.ReportDate)
	}

	report.AddTest(LabTest{Name: "A", SampleDate: &late})
	report.AddTest(LabTest{Name: "B", ResultDate: &early})
	report.RefreshReportDate()
	if report.ReportDate == nil || !report.ReportDate.Equal(early) {
		t.Fatalf("expected result date to win, got %v", report.ReportDate)
	}
}

func TestReportJSONKeepsCounts(t *testing.T) {
	t.Parallel()

	report := NewReport(UnparsedIdentity("x"), "a.xlsx", "x", fixedNow)
	report.AddTest(LabTest{Name: "Глюкоза", Status: StatusHigh})

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("failed to marshal report: %v", err)
	}

	var decoded LabReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal report: %v", err)
	}
	if decoded.ID != report.ID {
		t.Fatalf("expected id %s, got %s", report.ID, decoded.ID)
	}
	assertCounts(t, &decoded)
	if decoded.AbnormalTests() != 1 {
		t.Fatalf("expected 1 abnormal test, got %d", decoded.AbnormalTests())
	}
}
