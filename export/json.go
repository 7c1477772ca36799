/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/liamsdat/LabXtract/lab"
)

type jsonExporter struct{}

func (jsonExporter) Format() Format { return FormatJSON }

// Write emits an array of reports with their tests nested.
func (jsonExporter) Write(w io.Writer, reports []*lab.LabReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if reports == nil {
		reports = []*lab.LabReport{}
	}
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}
	return nil
}
