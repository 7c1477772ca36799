/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ingest

import (
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/liamsdat/LabXtract/lab"
)

// ReadXLS decodes a legacy BIFF (Excel 97-2003) workbook.
func ReadXLS(r io.ReadSeeker, name string) (lab.Workbook, error) {
	book, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return lab.Workbook{}, fmt.Errorf("failed to open workbook %s: %w", name, err)
	}
	if book.NumSheets() == 0 {
		return lab.Workbook{}, fmt.Errorf("failed to read %s: %w", name, errEmptyWorkbook)
	}

	wb := lab.Workbook{FileName: name}
	for i := range book.NumSheets() {
		sheet := book.GetSheet(i)
		if sheet == nil {
			continue
		}

		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}

			cells := make([]string, max(row.LastCol(), 0))
			for c := max(row.FirstCol(), 0); c < row.LastCol(); c++ {
				cells[c] = row.Col(c)
			}
			rows = append(rows, cells)
		}

		wb.Sheets = append(wb.Sheets, newSheet(sheet.Name, rows))
	}

	return wb, nil
}
