/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParsedValue is a result cell split into its numeric and text parts. Either
// may be empty; a range such as "8-12" fills both.
type ParsedValue struct {
	Numeric *float64
	Text    string
}

type lexiconEntry struct {
	fragment  string
	canonical string
}

// Checked in order: "не обнаружено" has to win over "обнаружено".
var valueLexicon = []lexiconEntry{
	{"не обнаружено", "Не обнаружено"},
	{"отрицательный", "Отрицательный"},
	{"положительный", "Положительный"},
	{"норма", "Норма"},
	{"отр", "Отрицательный"},
	{"пол", "Положительный"},
	{"обнаружено", "Обнаружено"},
	{"полож", "Положительный"},
}

var (
	valueNoiseRe     = regexp.MustCompile(`[^\d.,+\-\s]`)
	referenceNoiseRe = regexp.MustCompile(`[^\d.,\-–—\s]`)
	signedNumberRe   = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	unsignedNumberRe = regexp.MustCompile(`\d*\.?\d+`)
)

// ParseResultValue interprets a raw result cell. Qualitative answers map to
// their canonical text, "8-12" becomes its mean with the range kept as text,
// and anything without a number is kept verbatim as text.
func ParseResultValue(raw string) ParsedValue {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedValue{}
	}

	lower := strings.ToLower(raw)
	for _, entry := range valueLexicon {
		if strings.Contains(lower, entry.fragment) {
			return ParsedValue{Text: entry.canonical}
		}
	}

	cleaned := strings.ReplaceAll(valueNoiseRe.ReplaceAllString(raw, " "), ",", ".")

	if strings.ContainsAny(raw, "-–—") {
		if bounds := unsignedNumberRe.FindAllString(cleaned, 2); len(bounds) == 2 {
			lo, errLo := strconv.ParseFloat(bounds[0], 64)
			hi, errHi := strconv.ParseFloat(bounds[1], 64)
			if errLo == nil && errHi == nil {
				mean := (lo + hi) / 2
				return ParsedValue{Numeric: &mean, Text: bounds[0] + "-" + bounds[1]}
			}
		}
	}

	if match := signedNumberRe.FindString(cleaned); match != "" {
		if value, err := strconv.ParseFloat(match, 64); err == nil {
			return ParsedValue{Numeric: &value}
		}
	}

	return ParsedValue{Text: raw}
}

// ParseReferenceRange extracts reference bounds. A single number is used for
// both bounds. The trimmed raw text is always returned.
func ParseReferenceRange(raw string) (lo, hi *float64, text string) {
	text = strings.TrimSpace(raw)
	if text == "" {
		return nil, nil, ""
	}

	cleaned := strings.ReplaceAll(referenceNoiseRe.ReplaceAllString(text, " "), ",", ".")
	var numbers []float64
	for _, match := range unsignedNumberRe.FindAllString(cleaned, -1) {
		if value, err := strconv.ParseFloat(match, 64); err == nil {
			numbers = append(numbers, value)
		}
	}

	switch len(numbers) {
	case 0:
		return nil, nil, text
	case 1:
		lo, hi := numbers[0], numbers[0]
		return &lo, &hi, text
	default:
		return &numbers[0], &numbers[1], text
	}
}

// ParseDate tries each layout in order. When the whole cell does not parse,
// the first token is tried so a trailing time of day is ignored.
func ParseDate(raw string, layouts []string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	candidates := []string{raw}
	if fields := strings.Fields(raw); len(fields) > 1 {
		candidates = append(candidates, fields[0])
	}

	for _, candidate := range candidates {
		for _, layout := range layouts {
			if parsed, err := time.Parse(layout, candidate); err == nil {
				return &parsed
			}
		}
	}

	return nil
}
