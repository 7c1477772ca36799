/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/liamsdat/LabXtract/lab"
)

// ReadXLSX decodes an Office Open XML workbook. Cells are read as displayed.
func ReadXLSX(r io.Reader, name string) (lab.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return lab.Workbook{}, fmt.Errorf("failed to open workbook %s: %w", name, err)
	}
	defer f.Close()

	sheetNames := f.GetSheetList()
	if len(sheetNames) == 0 {
		return lab.Workbook{}, fmt.Errorf("failed to read %s: %w", name, errEmptyWorkbook)
	}

	wb := lab.Workbook{FileName: name}
	for _, sheetName := range sheetNames {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return lab.Workbook{}, fmt.Errorf("failed to read sheet %q of %s: %w", sheetName, name, err)
		}
		wb.Sheets = append(wb.Sheets, newSheet(sheetName, rows))
	}

	return wb, nil
}
