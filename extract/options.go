/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"slices"
	"time"
)

// PatientSource selects where patient identity is read from.
type PatientSource string

// PatientSource values.
const (
	PatientSourceAuto     PatientSource = "auto"
	PatientSourceSheet    PatientSource = "sheet_name"
	PatientSourceFileName PatientSource = "filename"
)

// DefaultDateLayouts are tried in order when parsing date cells.
var DefaultDateLayouts = []string{"2.1.2006", "2/1/2006", "2006-01-02", "2.1.06", "2/1/06"}

// Options tunes the extraction heuristics.
type Options struct {
	// ClassifierRows is how many leading rows the sheet classifier reads.
	ClassifierRows int
	// HeaderSearchRows bounds where the table locator looks for header rows.
	HeaderSearchRows int
	// MaxRowsToCheck bounds the header-keyword scan and in-content identity
	// search.
	MaxRowsToCheck int
	DateLayouts    []string
	Keywords       RoleKeywords
	// SkipNonLabSheets drops sheets the classifier rejects.
	SkipNonLabSheets bool
	// FreeformFallback scans headerless sheets row by row when no table is found.
	FreeformFallback bool
	PatientSource    PatientSource
	// Now is the extraction clock; defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns the stock heuristics.
func DefaultOptions() Options {
	return Options{
		ClassifierRows:   10,
		HeaderSearchRows: 100,
		MaxRowsToCheck:   20,
		DateLayouts:      slices.Clone(DefaultDateLayouts),
		Keywords:         DefaultRoleKeywords(),
		SkipNonLabSheets: true,
		PatientSource:    PatientSourceAuto,
		Now:              time.Now,
	}
}

// withDefaults fills zero fields so a partially built Options still works.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ClassifierRows <= 0 {
		o.ClassifierRows = d.ClassifierRows
	}
	if o.HeaderSearchRows <= 0 {
		o.HeaderSearchRows = d.HeaderSearchRows
	}
	if o.MaxRowsToCheck <= 0 {
		o.MaxRowsToCheck = d.MaxRowsToCheck
	}
	if len(o.DateLayouts) == 0 {
		o.DateLayouts = d.DateLayouts
	}
	if len(o.Keywords) == 0 {
		o.Keywords = d.Keywords
	}
	if o.PatientSource == "" {
		o.PatientSource = d.PatientSource
	}
	if o.Now == nil {
		o.Now = d.Now
	}
	return o
}
