/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/liamsdat/LabXtract/lab"
)

// Format is an output format.
type Format string

// Format values.
const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
	FormatOrg     Format = "org"
	FormatHTML    Format = "html"
)

// Formats lists every format in the order "all" expands to.
var Formats = []Format{FormatCSV, FormatJSON, FormatXLSX, FormatParquet, FormatOrg, FormatHTML}

// ParseFormats turns format names into formats. "all" expands to every
// format; duplicates are dropped.
func ParseFormats(names []string) ([]Format, error) {
	var formats []Format
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "all" {
			formats = append(formats, Formats...)
			continue
		}
		format := Format(name)
		if !slices.Contains(Formats, format) {
			return nil, fmt.Errorf("%w: %q", errUnknownFormat, name)
		}
		formats = append(formats, format)
	}

	var unique []Format
	for _, format := range formats {
		if !slices.Contains(unique, format) {
			unique = append(unique, format)
		}
	}
	return unique, nil
}

// Options tunes the text exporters.
type Options struct {
	// Separator is the CSV field separator.
	Separator rune
	// BOM prefixes CSV output with a UTF-8 byte order mark so Excel picks
	// the right encoding.
	BOM bool
}

// DefaultOptions returns comma separated CSV with a BOM.
func DefaultOptions() Options {
	return Options{Separator: ',', BOM: true}
}

// Exporter writes reports in one format.
type Exporter interface {
	Format() Format
	Write(w io.Writer, reports []*lab.LabReport) error
}

// For returns the exporter for a format.
func For(format Format, opts Options) (Exporter, error) {
	switch format {
	case FormatCSV:
		return csvExporter{opts: opts}, nil
	case FormatJSON:
		return jsonExporter{}, nil
	case FormatXLSX:
		return xlsxExporter{}, nil
	case FormatParquet:
		return parquetExporter{}, nil
	case FormatOrg:
		return orgExporter{}, nil
	case FormatHTML:
		return htmlExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// WriteAll writes one file per format into dir, named base.<format>, and
// returns the written paths.
func WriteAll(dir, base string, formats []Format, reports []*lab.LabReport, opts Options) ([]string, error) {
	if len(reports) == 0 {
		return nil, errNoReports
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, format := range formats {
		exporter, err := For(format, opts)
		if err != nil {
			return written, err
		}

		path := filepath.Join(dir, base+"."+string(format))
		if err := writeFile(path, exporter, reports); err != nil {
			return written, err
		}

		logger.Info("exported", "format", format, "path", path, "reports", len(reports))
		written = append(written, path)
	}

	return written, nil
}

func writeFile(path string, exporter Exporter, reports []*lab.LabReport) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := exporter.Write(file, reports); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
