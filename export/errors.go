/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package export

import "errors"

var (
	errUnknownFormat = errors.New("unknown export format")
	errNoReports     = errors.New("no reports to export")
)
