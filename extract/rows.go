/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"strings"

	"github.com/liamsdat/LabXtract/lab"
)

// RawTestRow is one table row split by column role, before any parsing.
type RawTestRow struct {
	OriginalName  string
	RawValue      string
	Unit          string
	ReferenceRaw  string
	Flag          string
	SampleDateRaw string
	ResultDateRaw string
	Doctor        string
	Notes         string
	// RowIndex is the 0-based grid row.
	RowIndex int
}

// ExtractRow reads the role cells of a row. It returns false for blank rows
// and rows without a test name.
func ExtractRow(row []string, rowIndex int, columns ColumnRoleMap) (RawTestRow, bool) {
	if lab.JoinCells(row) == "" {
		return RawTestRow{}, false
	}

	cell := func(role Role) string {
		idx, ok := columns[role]
		if !ok || idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	raw := RawTestRow{
		OriginalName:  cell(RoleTestName),
		RawValue:      cell(RoleResult),
		Unit:          cell(RoleUnit),
		ReferenceRaw:  cell(RoleReference),
		Flag:          cell(RoleFlag),
		SampleDateRaw: cell(RoleSampleDate),
		ResultDateRaw: cell(RoleResultDate),
		Doctor:        cell(RoleDoctor),
		Notes:         cell(RoleNotes),
		RowIndex:      rowIndex,
	}
	if raw.OriginalName == "" {
		return RawTestRow{}, false
	}

	return raw, true
}

// Section is the category context carried down a table by section-title rows.
type Section struct {
	Category    lab.Category
	Subcategory string
}

// NextSection folds one row into the running section. A row whose name does
// not look like a test and that has no value starts a new section; the
// boolean reports that the row was consumed as a section title.
func NextSection(current Section, raw RawTestRow) (Section, bool) {
	if raw.RawValue != "" || LooksLikeTest(raw.OriginalName) {
		return current, false
	}
	return SectionFromTitle(raw.OriginalName), true
}

var sectionMarkers = []string{
	"лабораторные", "исследование", "анализ крови", "общий анализ", "биохимический", "гормональный",
}

var studySuffixes = []string{"исследование", "анализ", "тест"}

const maxTestNameWords = 5

// LooksLikeTest reports whether a name cell reads like a test rather than a
// section title.
func LooksLikeTest(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return false
	}
	for _, marker := range sectionMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	if lab.IsCategoryKeyword(lower) {
		return true
	}

	words := strings.Fields(lower)
	if len(words) > maxTestNameWords {
		return false
	}
	for _, suffix := range studySuffixes {
		if strings.HasSuffix(lower, suffix) {
			return false
		}
	}
	return true
}

var sectionTitleCategories = []struct {
	category lab.Category
	keywords []string
}{
	{lab.CategoryBloodChemistry, []string{"биохим"}},
	{lab.CategoryHematology, []string{"кров", "гемат"}},
	{lab.CategoryHormones, []string{"гормон", "эндокрин"}},
	{lab.CategoryUrine, []string{"моч"}},
	{lab.CategoryMicrobiology, []string{"микро", "флор", "посев"}},
	{lab.CategoryImmunology, []string{"иммун", "инфекц", "серолог"}},
}

// SectionFromTitle maps a section title to a category. The title itself is
// kept as the subcategory.
func SectionFromTitle(title string) Section {
	title = strings.Join(strings.Fields(title), " ")
	section := Section{Category: lab.CategoryGeneral, Subcategory: title}

	if category := lab.InferCategory(title); category != lab.CategoryOther {
		section.Category = category
		return section
	}

	lower := strings.ToLower(title)
	for _, entry := range sectionTitleCategories {
		if lab.ContainsAnyKeyword(lower, entry.keywords) {
			section.Category = entry.category
			break
		}
	}
	return section
}

// BuildTest parses a raw row into a test. Unparseable cells leave their field
// empty; the row itself is never dropped.
func BuildTest(raw RawTestRow, section Section, layouts []string) lab.LabTest {
	test := lab.LabTest{
		Name:          raw.OriginalName,
		OriginalName:  raw.OriginalName,
		OriginalValue: raw.RawValue,
		Unit:          raw.Unit,
		Flag:          raw.Flag,
		Doctor:        raw.Doctor,
		Notes:         raw.Notes,
		Subcategory:   section.Subcategory,
		RowNumber:     raw.RowIndex + 1,
	}

	parsed := ParseResultValue(raw.RawValue)
	switch {
	case parsed.Numeric != nil:
		test.SetNumeric(*parsed.Numeric, parsed.Text)
	case parsed.Text != "":
		test.SetText(parsed.Text)
	}

	test.ReferenceMin, test.ReferenceMax, test.ReferenceText = ParseReferenceRange(raw.ReferenceRaw)
	test.SampleDate = ParseDate(raw.SampleDateRaw, layouts)
	test.ResultDate = ParseDate(raw.ResultDateRaw, layouts)

	test.Category = section.Category
	if test.Category == "" {
		test.Category = lab.InferCategory(raw.OriginalName)
	}
	test.DeriveStatus()

	return test
}

// ExtractTable turns the body of a region into tests, folding section title
// rows into the category of the rows beneath them.
func ExtractTable(grid lab.Grid, region Region, layouts []string) []lab.LabTest {
	nameCol, hasName := region.Columns[RoleTestName]
	if !hasName {
		return nil
	}
	headerName := strings.ToLower(grid.Cell(region.StartRow, nameCol))

	var (
		tests   []lab.LabTest
		section Section
	)
	for r := region.StartRow + 1; r <= region.EndRow; r++ {
		raw, ok := ExtractRow(grid.Row(r), r, region.Columns)
		if !ok {
			continue
		}
		// Tables split across pages repeat their header.
		if strings.ToLower(raw.OriginalName) == headerName {
			continue
		}

		var isTitle bool
		if section, isTitle = NextSection(section, raw); isTitle {
			logger.Debug("section", "row", r+1, "category", section.Category, "title", section.Subcategory)
			continue
		}

		tests = append(tests, BuildTest(raw, section, layouts))
	}

	return tests
}
