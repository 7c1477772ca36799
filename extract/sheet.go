/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"strings"

	"github.com/liamsdat/LabXtract/lab"
)

// KeywordGroup is a named set of content keywords used to spot lab sheets.
type KeywordGroup struct {
	Name     string
	Keywords []string
}

var sheetKeywordGroups = []KeywordGroup{
	{"lab", []string{"лабораторные", "лаборатория", "lab", "laboratory"}},
	{"test", []string{"анализ", "исследование", "тест", "study", "test"}},
	{"medical", []string{"медицинск", "medical", "clinic"}},
	{"patient", []string{"пациент", "больной", "patient", "client"}},
	{"result", []string{"результат", "значение", "result", "value"}},
	{"parameter", []string{"показатель", "параметр", "indicator", "parameter"}},
	{"blood", []string{"кров", "blood", "гемо", "гемато"}},
	{"urine", []string{"моч", "urine", "урин"}},
	{"biochemistry", []string{"биохими", "biochem"}},
	{"hormone", []string{"гормон", "hormone", "эндокрин"}},
}

var sheetNameTerms = []string{
	"анализ", "лаборатор", "медицин", "пациент", "карта", "история", "результат",
	"обследование", "диагноз", "lab", "medical", "patient", "results", "report",
}

var structureMarkers = []string{"показатель", "анализ", "результат", "значение", "норма", "ед."}

const structureProbeRows = 5

// Classification reasons.
const (
	ReasonPatientName = "sheet name is a patient label"
	ReasonSheetName   = "sheet name mentions a medical term"
	ReasonKeywords    = "content mentions medical keywords"
	ReasonStructure   = "leading rows look like a table header"
	ReasonNone        = "no lab markers found"
)

// SheetClassification explains the lab-sheet decision for one sheet.
type SheetClassification struct {
	IsLab         bool
	Reason        string
	KeywordGroups []string
	Rows          int
	Columns       int
	FilledCells   int
	FillRatio     float64
	Problems      []string
}

// IsLabSheet reports whether a sheet likely holds lab results.
func IsLabSheet(name string, grid lab.Grid, opts Options) bool {
	return ClassifySheet(name, grid, opts).IsLab
}

// ClassifySheet checks, in order, the sheet name against patient labels, the
// sheet name against medical terms, the leading rows against keyword groups
// and the first rows against table-header markers.
func ClassifySheet(name string, grid lab.Grid, opts Options) SheetClassification {
	opts = opts.withDefaults()

	result := SheetClassification{Rows: grid.Rows(), Columns: grid.Width()}
	for r := range grid.Rows() {
		result.FilledCells += grid.FilledCells(r)
	}
	if total := result.Rows * result.Columns; total > 0 {
		result.FillRatio = float64(result.FilledCells) / float64(total)
	}

	var leading []string
	for r := 0; r < min(opts.ClassifierRows, grid.Rows()); r++ {
		if text := grid.RowText(r); text != "" {
			leading = append(leading, text)
		}
	}
	content := strings.Join(leading, " ")
	for _, group := range sheetKeywordGroups {
		if lab.ContainsAnyKeyword(content, group.Keywords) {
			result.KeywordGroups = append(result.KeywordGroups, group.Name)
		}
	}

	switch {
	case lab.LooksLikePatientName(name):
		result.IsLab, result.Reason = true, ReasonPatientName
	case lab.ContainsAnyKeyword(strings.ToLower(name), sheetNameTerms):
		result.IsLab, result.Reason = true, ReasonSheetName
	case len(result.KeywordGroups) > 0:
		result.IsLab, result.Reason = true, ReasonKeywords
	case hasTableStructure(grid):
		result.IsLab, result.Reason = true, ReasonStructure
	default:
		result.Reason = ReasonNone
	}

	if result.Rows < 3 {
		result.Problems = append(result.Problems, "too few rows")
	}
	if result.Columns < 3 {
		result.Problems = append(result.Problems, "too few columns")
	}
	if result.Rows*result.Columns > 0 && result.FillRatio < 0.1 {
		result.Problems = append(result.Problems, "less than 10% of cells filled")
	}

	return result
}

func hasTableStructure(grid lab.Grid) bool {
	for r := 0; r < min(structureProbeRows, grid.Rows()); r++ {
		if countKeywords(grid.RowText(r), structureMarkers) >= 2 {
			return true
		}
	}
	return false
}
