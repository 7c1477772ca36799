/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"slices"
	"strings"
)

// Grid is a rectangular, row-major sheet of raw cell text. A blank string is
// an absent cell.
type Grid struct {
	cells [][]string
	width int
}

// NewGrid copies rows into a grid, trimming cells and padding ragged rows.
func NewGrid(rows [][]string) Grid {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	cells := make([][]string, len(rows))
	for r, row := range rows {
		padded := make([]string, width)
		for c, cell := range row {
			padded[c] = strings.TrimSpace(cell)
		}
		cells[r] = padded
	}

	return Grid{cells: cells, width: width}
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g.cells)
}

// Width returns the number of columns.
func (g Grid) Width() int {
	return g.width
}

// Cell returns the cell at (row, col), or "" when out of bounds.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= g.width {
		return ""
	}
	return g.cells[row][col]
}

// Row returns a copy of a row, or nil when out of bounds.
func (g Grid) Row(row int) []string {
	if row < 0 || row >= len(g.cells) {
		return nil
	}
	return slices.Clone(g.cells[row])
}

// RowEmpty reports whether every cell of a row is blank. Rows past the end
// count as empty.
func (g Grid) RowEmpty(row int) bool {
	if row < 0 || row >= len(g.cells) {
		return true
	}
	for _, cell := range g.cells[row] {
		if cell != "" {
			return false
		}
	}
	return true
}

// RowText joins the non-blank cells of a row with spaces, lowercased.
func (g Grid) RowText(row int) string {
	if row < 0 || row >= len(g.cells) {
		return ""
	}
	return JoinCells(g.cells[row])
}

// FilledCells counts non-blank cells in a row.
func (g Grid) FilledCells(row int) int {
	if row < 0 || row >= len(g.cells) {
		return 0
	}
	n := 0
	for _, cell := range g.cells[row] {
		if cell != "" {
			n++
		}
	}
	return n
}

// JoinCells joins the non-blank cells with spaces, lowercased.
func JoinCells(cells []string) string {
	parts := make([]string, 0, len(cells))
	for _, cell := range cells {
		if cell = strings.TrimSpace(cell); cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Sheet is one named page of a workbook.
type Sheet struct {
	Name string
	Grid Grid
}

// Workbook is a decoded spreadsheet file.
type Workbook struct {
	FileName string
	Path     string
	Sheets   []Sheet
}
