/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"regexp"
	"slices"
	"strings"

	"github.com/liamsdat/LabXtract/lab"
)

// Method records how a region was found.
type Method string

// Method values.
const (
	MethodHeader Method = "header"
	MethodBlock  Method = "block"
)

// Region is a located table. StartRow is its header row; EndRow is inclusive.
type Region struct {
	StartRow int
	EndRow   int
	Columns  ColumnRoleMap
	Method   Method
}

// Rows returns the number of rows including the header.
func (r Region) Rows() int {
	return r.EndRow - r.StartRow + 1
}

// headerShapes are keyword sets that together mark a header row.
var headerShapes = [][]string{
	{"показатель", "результат"},
	{"название", "анализ", "значение"},
	{"test", "name", "result", "value"},
	{"parameter", "result", "unit"},
}

// requiredColumns groups header keywords by column. Without a shape match a
// header row needs hits in two groups.
var requiredColumns = [][]string{
	{"показатель", "анализ", "название", "test", "parameter"},
	{"результат", "значение", "value", "result"},
	{"ед.", "единиц", "unit", "измерен"},
}

var blockMarkers = []string{"показатель", "результат", "ед.", "норма"}

const (
	// candidates closer than this collapse into the earliest one
	minHeaderGap = 3
	endLookahead = 2

	minTableRows   = 3
	minTableCols   = 2
	minTableCells  = 5
	minBlockRun    = 5
	blockProbeRows = 3
)

// LocateTables finds lab tables in a grid. Header-anchored tables are tried
// first; a block scan over runs of filled rows is the fallback. The result is
// ordered by start row and free of overlaps.
func LocateTables(grid lab.Grid, opts Options) []Region {
	opts = opts.withDefaults()
	if grid.Rows() == 0 {
		return nil
	}

	candidates := headerCandidates(grid, opts.HeaderSearchRows)

	var regions []Region
	for i, start := range candidates {
		end := tableEnd(grid, start)
		if i+1 < len(candidates) && end >= candidates[i+1] {
			end = candidates[i+1] - 1
		}
		for end > start && grid.RowEmpty(end) {
			end--
		}

		region := Region{
			StartRow: start,
			EndRow:   end,
			Columns:  ResolveColumns(grid.Row(start), opts.Keywords),
			Method:   MethodHeader,
		}
		if !acceptable(grid, region) {
			logger.Debug("rejected header candidate", "row", start, "end", end)
			continue
		}
		regions = append(regions, region)
	}

	if len(regions) == 0 {
		regions = blockScan(grid, opts.Keywords)
	}

	return resolveOverlaps(regions)
}

// IsHeaderRow reports whether a row of cells reads like a table header.
func IsHeaderRow(cells []string) bool {
	text := lab.JoinCells(cells)
	if text == "" {
		return false
	}

	for _, shape := range headerShapes {
		if containsAll(text, shape) {
			return true
		}
	}

	hits := 0
	for _, group := range requiredColumns {
		if lab.ContainsAnyKeyword(text, group) {
			hits++
		}
	}
	return hits >= 2
}

func headerCandidates(grid lab.Grid, searchRows int) []int {
	limit := min(grid.Rows(), searchRows)

	var candidates []int
	for r := 0; r < limit; r++ {
		// A lone title cell such as "Результаты анализов" is not a header.
		if grid.FilledCells(r) < 2 || !IsHeaderRow(grid.Row(r)) {
			continue
		}
		if n := len(candidates); n > 0 && r-candidates[n-1] < minHeaderGap {
			continue
		}
		candidates = append(candidates, r)
	}

	return candidates
}

// tableEnd returns the row before the first empty row followed by
// endLookahead more empty rows, or the last row of the grid.
func tableEnd(grid lab.Grid, start int) int {
	for r := start + 1; r < grid.Rows(); r++ {
		if !grid.RowEmpty(r) {
			continue
		}
		ended := true
		for k := 1; k <= endLookahead; k++ {
			if !grid.RowEmpty(r + k) {
				ended = false
				break
			}
		}
		if ended {
			return r - 1
		}
	}
	return grid.Rows() - 1
}

func acceptable(grid lab.Grid, region Region) bool {
	if region.Rows() < minTableRows {
		return false
	}

	cells := 0
	filledCols := make(map[int]struct{})
	for r := region.StartRow; r <= region.EndRow; r++ {
		for c := range grid.Width() {
			if grid.Cell(r, c) != "" {
				cells++
				filledCols[c] = struct{}{}
			}
		}
	}

	return len(filledCols) >= minTableCols && cells >= minTableCells
}

func blockScan(grid lab.Grid, keywords RoleKeywords) []Region {
	var regions []Region

	for r := 0; r < grid.Rows(); {
		if grid.RowEmpty(r) {
			r++
			continue
		}

		start := r
		for r < grid.Rows() && !grid.RowEmpty(r) {
			r++
		}
		end := r - 1

		if end-start+1 < minBlockRun {
			continue
		}

		for h := start; h < start+blockProbeRows && h <= end; h++ {
			if countKeywords(grid.RowText(h), blockMarkers) < 2 {
				continue
			}
			region := Region{
				StartRow: h,
				EndRow:   end,
				Columns:  ResolveColumns(grid.Row(h), keywords),
				Method:   MethodBlock,
			}
			if acceptable(grid, region) {
				regions = append(regions, region)
			}
			break
		}
	}

	return regions
}

// resolveOverlaps keeps the larger of two overlapping regions, or the earlier
// one when they are the same size.
func resolveOverlaps(regions []Region) []Region {
	slices.SortStableFunc(regions, func(a, b Region) int {
		return a.StartRow - b.StartRow
	})

	var kept []Region
	for _, region := range regions {
		n := len(kept)
		if n == 0 || region.StartRow > kept[n-1].EndRow {
			kept = append(kept, region)
			continue
		}
		if region.Rows() > kept[n-1].Rows() {
			kept[n-1] = region
		}
	}

	return kept
}

func containsAll(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if !lab.ContainsKeyword(text, keyword) {
			return false
		}
	}
	return true
}

func countKeywords(text string, keywords []string) int {
	n := 0
	for _, keyword := range keywords {
		if lab.ContainsKeyword(text, keyword) {
			n++
		}
	}
	return n
}

// ColumnType is a coarse guess at what a column holds.
type ColumnType string

// ColumnType values.
const (
	ColumnNumeric     ColumnType = "numeric"
	ColumnDate        ColumnType = "date"
	ColumnMedicalText ColumnType = "medical_text"
	ColumnText        ColumnType = "text"
	ColumnUnknown     ColumnType = "unknown"
)

// ColumnStats describes one role column of a region.
type ColumnStats struct {
	Role   Role
	Index  int
	Header string
	Type   ColumnType
}

// RegionStats summarizes a located region for inspection.
type RegionStats struct {
	Rows        int
	Columns     int
	FilledCells int
	FillRatio   float64
	RoleColumns []ColumnStats
}

// columnSampleRows caps how many body rows are sampled per column.
const columnSampleRows = 9

var (
	numericCellRe = regexp.MustCompile(`^[-+]?\d*\.?\d+$`)
	dateCellRe    = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}|\d{2}/\d{2}/\d{4}|\d{4}-\d{2}-\d{2}`)
)

var medicalTexts = []string{"не обнаружено", "отрицательный", "положительный", "норма", "отр", "пол"}

// DescribeRegion computes fill statistics and a type guess for each role
// column of a region.
func DescribeRegion(grid lab.Grid, region Region) RegionStats {
	stats := RegionStats{Rows: region.Rows(), Columns: grid.Width()}
	for r := region.StartRow; r <= region.EndRow; r++ {
		stats.FilledCells += grid.FilledCells(r)
	}
	if total := stats.Rows * stats.Columns; total > 0 {
		stats.FillRatio = float64(stats.FilledCells) / float64(total)
	}

	for _, role := range Roles {
		idx, ok := region.Columns[role]
		if !ok {
			continue
		}

		var sample []string
		for r := region.StartRow + 1; r <= region.EndRow && len(sample) < columnSampleRows; r++ {
			if cell := grid.Cell(r, idx); cell != "" {
				sample = append(sample, cell)
			}
		}

		stats.RoleColumns = append(stats.RoleColumns, ColumnStats{
			Role:   role,
			Index:  idx,
			Header: grid.Cell(region.StartRow, idx),
			Type:   guessColumnType(sample),
		})
	}

	return stats
}

func guessColumnType(sample []string) ColumnType {
	if len(sample) == 0 {
		return ColumnUnknown
	}

	var numeric, dates, medical int
	for _, value := range sample {
		if numericCellRe.MatchString(strings.ReplaceAll(value, ",", ".")) {
			numeric++
		}
		if dateCellRe.MatchString(value) {
			dates++
		}
		lower := strings.ToLower(value)
		for _, text := range medicalTexts {
			if strings.Contains(lower, text) {
				medical++
				break
			}
		}
	}

	total := float64(len(sample))
	switch {
	case float64(numeric)/total > 0.7:
		return ColumnNumeric
	case float64(dates)/total > 0.5:
		return ColumnDate
	case float64(medical)/total > 0.5:
		return ColumnMedicalText
	default:
		return ColumnText
	}
}
