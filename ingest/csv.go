/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/liamsdat/LabXtract/lab"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV decodes a delimited text export as a single-sheet workbook. A zero
// comma sniffs ";" or "," from the first line. Input that is not valid UTF-8
// is decoded as Windows-1251, the usual encoding of Russian Excel exports.
func ReadCSV(r io.Reader, name string, comma rune) (lab.Workbook, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return lab.Workbook{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), content)
		if err != nil {
			return lab.Workbook{}, fmt.Errorf("failed to decode %s: %w", name, err)
		}
		content = decoded
		logger.Debug("decoded as windows-1251", "file", name)
	}

	if comma == 0 {
		comma = sniffComma(content)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return lab.Workbook{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return lab.Workbook{
		FileName: name,
		Sheets:   []lab.Sheet{newSheet(lab.StripSpreadsheetExt(name), rows)},
	}, nil
}

func sniffComma(content []byte) rune {
	line, _, _ := bytes.Cut(content, []byte("\n"))
	text := string(line)

	switch {
	case strings.Count(text, "\t") > max(strings.Count(text, ";"), strings.Count(text, ",")):
		return '\t'
	case strings.Count(text, ";") > strings.Count(text, ","):
		return ';'
	default:
		return ','
	}
}
