/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/liamsdat/LabXtract/lab"
)

// Format is a supported spreadsheet container.
type Format string

// Format values.
const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
)

var extensionFormats = map[string]Format{
	".xlsx": FormatXLSX,
	".xlsm": FormatXLSX,
	".xltx": FormatXLSX,
	".xls":  FormatXLS,
	".csv":  FormatCSV,
	".tsv":  FormatTSV,
}

// DetectFormat picks a reader from the file extension.
func DetectFormat(path string) (Format, error) {
	if format, ok := extensionFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: %s", errUnsupportedFormat, filepath.Ext(path))
}

// Supported reports whether a file has a readable spreadsheet extension.
func Supported(path string) bool {
	_, err := DetectFormat(path)
	return err == nil
}

// ReadFile decodes every sheet of a spreadsheet file into grids.
func ReadFile(path string) (lab.Workbook, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return lab.Workbook{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return lab.Workbook{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	name := filepath.Base(path)

	var wb lab.Workbook
	switch format {
	case FormatXLSX:
		wb, err = ReadXLSX(file, name)
	case FormatXLS:
		wb, err = ReadXLS(file, name)
	case FormatCSV:
		wb, err = ReadCSV(file, name, 0)
	case FormatTSV:
		wb, err = ReadCSV(file, name, '\t')
	}
	if err != nil {
		return lab.Workbook{}, err
	}

	wb.Path = path
	logger.Debug("workbook read", "file", name, "format", format, "sheets", len(wb.Sheets))
	return wb, nil
}

// normalizeRows NFC-normalizes every cell so composed and decomposed
// Cyrillic (й, ё) compare equal.
func normalizeRows(rows [][]string) [][]string {
	for _, row := range rows {
		for c, cell := range row {
			row[c] = norm.NFC.String(cell)
		}
	}
	return rows
}

func newSheet(name string, rows [][]string) lab.Sheet {
	return lab.Sheet{Name: norm.NFC.String(name), Grid: lab.NewGrid(normalizeRows(rows))}
}
