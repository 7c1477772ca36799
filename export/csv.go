/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/liamsdat/LabXtract/lab"
)

const utf8BOM = "\uFEFF"

type csvExporter struct {
	opts Options
}

func (csvExporter) Format() Format { return FormatCSV }

func (e csvExporter) Write(w io.Writer, reports []*lab.LabReport) error {
	if e.opts.BOM {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if e.opts.Separator != 0 {
		writer.Comma = e.opts.Separator
	}

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range Flatten(reports) {
		if err := writer.Write(row.Record()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
