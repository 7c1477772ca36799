// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"testing"

	"github.com/liamsdat/LabXtract/lab"
)

var standardColumns = ColumnRoleMap{
	RoleTestName:   0,
	RoleResult:     1,
	RoleUnit:       2,
	RoleReference:  3,
	RoleSampleDate: 4,
}

func TestExtractRow(t *testing.T) {
	t.Parallel()

	raw, ok := ExtractRow([]string{" Глюкоза ", "5,4", "ммоль/л", "3.9-6.1", "12.03.2024"}, 7, standardColumns)
	if !ok {
		t.Fatalf("expected row to be extracted")
	}
	want := RawTestRow{
		OriginalName:  "Глюкоза",
		RawValue:      "5,4",
		Unit:          "ммоль/л",
		ReferenceRaw:  "3.9-6.1",
		SampleDateRaw: "12.03.2024",
		RowIndex:      7,
	}
	if raw != want {
		t.Fatalf("expected %+v, got %+v", want, raw)
	}

	if _, ok := ExtractRow([]string{"", " ", ""}, 0, standardColumns); ok {
		t.Fatalf("expected blank row to be skipped")
	}
	if _, ok := ExtractRow([]string{"", "5.0"}, 0, standardColumns); ok {
		t.Fatalf("expected row without a name to be skipped")
	}
	if _, ok := ExtractRow([]string{"Глюкоза", "5.0"}, 0, ColumnRoleMap{RoleResult: 1}); ok {
		t.Fatalf("expected row without a name column to be skipped")
	}
	if raw, ok := ExtractRow([]string{"Глюкоза"}, 0, standardColumns); !ok || raw.RawValue != "" {
		t.Fatalf("expected short row to be read with blank cells, got %+v", raw)
	}
}

func TestLooksLikeTest(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"Гемоглобин":                  true,
		"Витамин D":                   true,
		"Общий анализ крови":          false,
		"Биохимическое исследование":  false,
		"Клинический анализ":          false,
		"Лабораторные данные":         false,
		"":                            false,
		"Очень длинное название одного неизвестного показателя": false,
	}

	for name, want := range cases {
		if got := LooksLikeTest(name); got != want {
			t.Fatalf("%q: expected %v, got %v", name, want, got)
		}
	}
}

func TestSectionFromTitle(t *testing.T) {
	t.Parallel()

	cases := map[string]lab.Category{
		"Общий анализ крови":         lab.CategoryHematology,
		"Биохимический анализ крови": lab.CategoryBloodChemistry,
		"Общий анализ мочи":          lab.CategoryUrine,
		"Гормоны щитовидной железы":  lab.CategoryHormones,
		"Посев на флору":             lab.CategoryMicrobiology,
		"Прочее":                     lab.CategoryGeneral,
	}

	for title, want := range cases {
		section := SectionFromTitle(title)
		if section.Category != want {
			t.Fatalf("%q: expected %s, got %s", title, want, section.Category)
		}
		if section.Subcategory != title {
			t.Fatalf("%q: expected title as subcategory, got %q", title, section.Subcategory)
		}
	}
}

func TestNextSection(t *testing.T) {
	t.Parallel()

	start := Section{Category: lab.CategoryHematology, Subcategory: "ОАК"}

	next, isTitle := NextSection(start, RawTestRow{OriginalName: "Биохимический анализ крови"})
	if !isTitle || next.Category != lab.CategoryBloodChemistry {
		t.Fatalf("expected a chemistry section, got %+v (%v)", next, isTitle)
	}

	same, isTitle := NextSection(start, RawTestRow{OriginalName: "Общий анализ крови", RawValue: "5"})
	if isTitle || same != start {
		t.Fatalf("expected a row with a value to keep the section, got %+v (%v)", same, isTitle)
	}

	same, isTitle = NextSection(start, RawTestRow{OriginalName: "Гемоглобин"})
	if isTitle || same != start {
		t.Fatalf("expected a test without a value to keep the section, got %+v (%v)", same, isTitle)
	}
}

func TestBuildTest(t *testing.T) {
	t.Parallel()

	raw := RawTestRow{
		OriginalName:  "Лейкоциты",
		RawValue:      "8-12",
		Unit:          "10^9/л",
		ReferenceRaw:  "4.0-9.0",
		SampleDateRaw: "12.03.2024",
		RowIndex:      4,
	}
	test := BuildTest(raw, Section{}, DefaultDateLayouts)

	if test.Kind != lab.ValueNumeric {
		t.Fatalf("expected numeric value, got %q", test.Kind)
	}
	assertFloat(t, "value", test.NumericValue, 10)
	if test.TextValue != "8-12" || test.OriginalValue != "8-12" {
		t.Fatalf("expected range text to be kept, got %q / %q", test.TextValue, test.OriginalValue)
	}
	if test.Status != lab.StatusHigh {
		t.Fatalf("expected high, got %s", test.Status)
	}
	if test.Category != lab.CategoryHematology {
		t.Fatalf("expected inferred hematology, got %s", test.Category)
	}
	if test.RowNumber != 5 {
		t.Fatalf("expected row number 5, got %d", test.RowNumber)
	}
	assertDate(t, "sample date", test.SampleDate, 2024, 3, 12)

	qualitative := BuildTest(RawTestRow{OriginalName: "Candida", RawValue: "не обнаружено"}, Section{Category: lab.CategoryGeneral, Subcategory: "Мазок"}, DefaultDateLayouts)
	if qualitative.Kind != lab.ValueText || qualitative.TextValue != "Не обнаружено" {
		t.Fatalf("expected canonical text, got %+v", qualitative)
	}
	if qualitative.Status != lab.StatusNotDetected {
		t.Fatalf("expected not_detected, got %s", qualitative.Status)
	}
	if qualitative.Category != lab.CategoryGeneral || qualitative.Subcategory != "Мазок" {
		t.Fatalf("expected section category, got %s / %q", qualitative.Category, qualitative.Subcategory)
	}

	broken := BuildTest(RawTestRow{OriginalName: "Глюкоза", ReferenceRaw: "см. бланк", SampleDateRaw: "вчера"}, Section{}, DefaultDateLayouts)
	if broken.Kind != lab.ValueAbsent || broken.ReferenceMin != nil || broken.SampleDate != nil {
		t.Fatalf("expected unparseable cells to stay empty, got %+v", broken)
	}
	if broken.ReferenceText != "см. бланк" {
		t.Fatalf("expected raw reference text, got %q", broken.ReferenceText)
	}
}

func TestBuildTestLeadingDecimal(t *testing.T) {
	t.Parallel()

	for _, value := range []string{".5", ",5", "< .5"} {
		test := BuildTest(RawTestRow{OriginalName: "СРБ", RawValue: value, ReferenceRaw: "0-1"}, Section{}, DefaultDateLayouts)
		assertFloat(t, value, test.NumericValue, 0.5)
		if test.Status != lab.StatusNormal {
			t.Fatalf("%s: expected normal, got %s", value, test.Status)
		}
	}
}

func TestExtractTableSections(t *testing.T) {
	t.Parallel()

	header := []string{"Показатель", "Результат", "Ед.", "Норма"}
	g := grid(
		header,
		[]string{"Общий анализ крови"},
		[]string{"Гемоглобин", "135", "г/л", "120-160"},
		header,
		[]string{"Биохимический анализ крови"},
		[]string{"Глюкоза", "7,2", "ммоль/л", "3.9-6.1"},
	)
	region := Region{StartRow: 0, EndRow: 5, Columns: ResolveColumns(header, DefaultRoleKeywords()), Method: MethodHeader}

	tests := ExtractTable(g, region, DefaultDateLayouts)
	if len(tests) != 2 {
		t.Fatalf("expected 2 tests, got %d", len(tests))
	}

	if tests[0].Category != lab.CategoryHematology || tests[0].Subcategory != "Общий анализ крови" {
		t.Fatalf("expected hematology section, got %s / %q", tests[0].Category, tests[0].Subcategory)
	}
	if tests[0].RowNumber != 3 {
		t.Fatalf("expected row number 3, got %d", tests[0].RowNumber)
	}

	if tests[1].Category != lab.CategoryBloodChemistry {
		t.Fatalf("expected chemistry section, got %s", tests[1].Category)
	}
	if tests[1].Status != lab.StatusHigh {
		t.Fatalf("expected high glucose, got %s", tests[1].Status)
	}
}
