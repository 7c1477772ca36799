/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package export

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/liamsdat/LabXtract/lab"
)

type parquetExporter struct{}

func (parquetExporter) Format() Format { return FormatParquet }

// Write stores one Row per test, Snappy compressed.
func (parquetExporter) Write(w io.Writer, reports []*lab.LabReport) error {
	writer := parquet.NewGenericWriter[Row](w, parquet.Compression(&parquet.Snappy))

	rows := Flatten(reports)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return fmt.Errorf("failed to write parquet rows: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
