/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/liamsdat/LabXtract/lab"
)

var (
	freeformDateRe  = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
	freeformService = []string{"лаборатор", "исследован", "показатель", "дата выполн", "врач"}
)

const (
	maxFreeformValueLen = 15
	minStudyTitleLen    = 20
)

// ExtractFreeform reads a headerless sheet row by row: the first filled cell
// is the test name and the first short cell with a digit or "+" is the value.
// Long digit-free rows name the study for the rows below them.
func ExtractFreeform(grid lab.Grid, layouts []string) []lab.LabTest {
	var (
		tests []lab.LabTest
		study Section
	)

	for r := range grid.Rows() {
		var cells []string
		for _, cell := range grid.Row(r) {
			if cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) == 0 {
			continue
		}

		first := cells[0]
		if lab.ContainsAnyKeyword(strings.ToLower(first), freeformService) {
			continue
		}
		if !hasDigit(first) && utf8.RuneCountInString(first) >= minStudyTitleLen {
			study = SectionFromTitle(first)
			continue
		}

		value, ok := freeformValue(cells[1:])
		if !ok {
			continue
		}

		raw := RawTestRow{OriginalName: first, RawValue: value, RowIndex: r}
		for _, cell := range cells {
			if freeformDateRe.MatchString(cell) {
				raw.SampleDateRaw = cell
				break
			}
		}

		tests = append(tests, BuildTest(raw, study, layouts))
	}

	return tests
}

func freeformValue(cells []string) (string, bool) {
	for _, cell := range cells {
		if freeformDateRe.MatchString(cell) || utf8.RuneCountInString(cell) > maxFreeformValueLen {
			continue
		}
		if hasDigit(cell) || strings.Contains(cell, "+") {
			return cell, true
		}
	}
	return "", false
}

func hasDigit(text string) bool {
	return strings.IndexFunc(text, unicode.IsDigit) >= 0
}
