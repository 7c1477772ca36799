/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ingest

import "errors"

var (
	errUnsupportedFormat = errors.New("unsupported spreadsheet format")
	errEmptyWorkbook     = errors.New("workbook has no sheets")
)
