/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"strings"
	"time"
)

// Status is the clinical interpretation of a test result.
type Status string

// Status values.
const (
	StatusUnset       Status = ""
	StatusNormal      Status = "normal"
	StatusHigh        Status = "high"
	StatusLow         Status = "low"
	StatusAbnormal    Status = "abnormal"
	StatusNotDetected Status = "not_detected"
	StatusPositive    Status = "positive"
	StatusNegative    Status = "negative"
	StatusSuspicious  Status = "suspicious"
)

// IsAbnormal reports whether the status counts towards a report's abnormal tests.
func (s Status) IsAbnormal() bool {
	switch s {
	case StatusHigh, StatusLow, StatusAbnormal, StatusSuspicious:
		return true
	default:
		return false
	}
}

// Category is the lab discipline a test belongs to.
type Category string

// Category values.
const (
	CategoryBloodChemistry Category = "blood_chemistry"
	CategoryHematology     Category = "hematology"
	CategoryHormones       Category = "hormones"
	CategoryUrine          Category = "urine"
	CategoryMicrobiology   Category = "microbiology"
	CategoryImmunology     Category = "immunology"
	CategoryGeneral        Category = "general"
	CategoryOther          Category = "other"
)

// CategoryLabel returns a display label for a category.
func CategoryLabel(category Category) string {
	switch category {
	case CategoryBloodChemistry:
		return "Blood Chemistry"
	case CategoryHematology:
		return "Hematology"
	case CategoryHormones:
		return "Hormones"
	case CategoryUrine:
		return "Urine"
	case CategoryMicrobiology:
		return "Microbiology"
	case CategoryImmunology:
		return "Immunology"
	case CategoryGeneral:
		return "General"
	case CategoryOther:
		return "Other"
	default:
		return string(category)
	}
}

// ValueKind tells which value field of a LabTest is authoritative.
type ValueKind string

// ValueKind values.
const (
	ValueAbsent  ValueKind = ""
	ValueNumeric ValueKind = "numeric"
	ValueText    ValueKind = "text"
)

// LabTest is one extracted and normalized test result.
type LabTest struct {
	Name          string     `json:"name"`
	OriginalName  string     `json:"original_name"`
	Kind          ValueKind  `json:"value_kind,omitempty"`
	NumericValue  *float64   `json:"numeric_value,omitempty"`
	TextValue     string     `json:"text_value,omitempty"`
	OriginalValue string     `json:"original_value,omitempty"`
	Unit          string     `json:"unit,omitempty"`
	ReferenceMin  *float64   `json:"reference_min,omitempty"`
	ReferenceMax  *float64   `json:"reference_max,omitempty"`
	ReferenceText string     `json:"reference_text,omitempty"`
	Status        Status     `json:"status,omitempty"`
	Flag          string     `json:"flag,omitempty"`
	Category      Category   `json:"category"`
	Subcategory   string     `json:"subcategory,omitempty"`
	SampleDate    *time.Time `json:"sample_date,omitempty"`
	ResultDate    *time.Time `json:"result_date,omitempty"`
	Doctor        string     `json:"doctor,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	SheetName     string     `json:"sheet_name,omitempty"`
	FileName      string     `json:"file_name,omitempty"`
	// RowNumber is the 1-based spreadsheet row the test was read from.
	RowNumber int `json:"row_number,omitempty"`
}

// Value returns the authoritative value: a float64, a string, or nil.
func (t *LabTest) Value() any {
	switch t.Kind {
	case ValueNumeric:
		if t.NumericValue != nil {
			return *t.NumericValue
		}
	case ValueText:
		return t.TextValue
	}
	return nil
}

// SetNumeric stores a numeric result. text is kept as its display form, e.g.
// the original range "8-12" whose mean is value.
func (t *LabTest) SetNumeric(value float64, text string) {
	t.Kind = ValueNumeric
	t.NumericValue = &value
	t.TextValue = text
}

// SetText stores a qualitative result.
func (t *LabTest) SetText(text string) {
	t.Kind = ValueText
	t.NumericValue = nil
	t.TextValue = text
}

// HasRange reports whether both reference bounds are known.
func (t *LabTest) HasRange() bool {
	return t.ReferenceMin != nil && t.ReferenceMax != nil
}

// RangeStatus derives low/high/normal from the numeric value and reference
// bounds, or StatusUnset when any of them is missing.
func (t *LabTest) RangeStatus() Status {
	if t.Kind != ValueNumeric || t.NumericValue == nil || !t.HasRange() {
		return StatusUnset
	}

	switch v := *t.NumericValue; {
	case v < *t.ReferenceMin:
		return StatusLow
	case v > *t.ReferenceMax:
		return StatusHigh
	default:
		return StatusNormal
	}
}

// ExpectedStatus computes the status from the test's current fields. A
// recognised flag always wins over the reference range.
func (t *LabTest) ExpectedStatus() Status {
	if status := StatusFromFlag(t.Flag); status != StatusUnset {
		return status
	}
	if status := t.RangeStatus(); status != StatusUnset {
		return status
	}
	if t.Kind == ValueText {
		return StatusFromText(t.TextValue)
	}
	return StatusUnset
}

// DeriveStatus recomputes Status from the test's current fields.
func (t *LabTest) DeriveStatus() {
	t.Status = t.ExpectedStatus()
}

type statusKeywords struct {
	status   Status
	keywords []string
}

var exactFlags = map[string]Status{
	"h":  StatusHigh,
	"hh": StatusHigh,
	"↑":  StatusHigh,
	"l":  StatusLow,
	"ll": StatusLow,
	"↓":  StatusLow,
	"n":  StatusNormal,
}

// Order matters: "abnormal" contains "normal", "не обнаружено" contains
// "обнаружено".
var flagStatuses = []statusKeywords{
	{StatusNotDetected, []string{"не обнар", "not detected"}},
	{StatusNegative, []string{"отрицат", "negative"}},
	{StatusPositive, []string{"положит", "positive"}},
	{StatusSuspicious, []string{"сомнит", "suspicious", "equivocal"}},
	{StatusAbnormal, []string{"abnormal", "патолог", "отклон"}},
	{StatusHigh, []string{"повыш", "high", "выше"}},
	{StatusLow, []string{"пониж", "low", "ниже"}},
	{StatusNormal, []string{"норм", "normal"}},
}

var textStatuses = []statusKeywords{
	{StatusNotDetected, []string{"не обнаружено", "not detected"}},
	{StatusNegative, []string{"отрицательн", "negative"}},
	{StatusPositive, []string{"положительн", "обнаружено", "positive", "detected"}},
	{StatusNormal, []string{"норма", "normal"}},
}

// StatusFromFlag maps a lab-provided flag to a status, or StatusUnset when
// the flag is blank or unrecognised.
func StatusFromFlag(flag string) Status {
	flag = strings.ToLower(strings.TrimSpace(flag))
	if flag == "" {
		return StatusUnset
	}
	if status, ok := exactFlags[flag]; ok {
		return status
	}
	return matchStatus(flag, flagStatuses)
}

// StatusFromText maps a qualitative result to a status.
func StatusFromText(text string) Status {
	return matchStatus(strings.ToLower(strings.TrimSpace(text)), textStatuses)
}

func matchStatus(text string, table []statusKeywords) Status {
	if text == "" {
		return StatusUnset
	}
	for _, entry := range table {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.status
			}
		}
	}
	return StatusUnset
}
