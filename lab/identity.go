/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// IdentitySource records where a patient identity came from.
type IdentitySource string

// IdentitySource values.
const (
	IdentityFromSheet    IdentitySource = "sheet_name"
	IdentityFromFileName IdentitySource = "filename"
	IdentityFromContent  IdentitySource = "content"
	IdentityUnparsed     IdentitySource = "unparsed"
)

// BirthDateLayout is the only date form accepted in identity strings.
const BirthDateLayout = "02.01.2006"

// PatientIdentity describes the patient a report belongs to.
type PatientIdentity struct {
	FullName   string         `json:"full_name,omitempty"`
	LastName   string         `json:"last_name,omitempty"`
	FirstName  string         `json:"first_name,omitempty"`
	MiddleName string         `json:"middle_name,omitempty"`
	BirthDate  *time.Time     `json:"birth_date,omitempty"`
	Age        *int           `json:"age,omitempty"`
	Source     IdentitySource `json:"source,omitempty"`
}

const (
	namePart  = `\p{Lu}\p{Ll}+(?:-\p{Lu}\p{Ll}+)?`
	datePart  = `(\d{2}\.\d{2}\.\d{4})`
	initialPt = `\p{Lu}\.`
)

var (
	fullNameDateRe  = regexp.MustCompile(`^(` + namePart + `)\s+(` + namePart + `)\s+(` + namePart + `)\s+` + datePart + `$`)
	shortNameDateRe = regexp.MustCompile(`^(` + namePart + `)\s+(` + namePart + `)\s+` + datePart + `$`)
	anyTextDateRe   = regexp.MustCompile(`^(.+?)\s+` + datePart + `$`)

	initialsDateRe = regexp.MustCompile(`^` + namePart + `\s+` + initialPt + `\s*` + initialPt + `\s*\d{2}\.\d{2}\.\d{4}$`)
	bareFullNameRe = regexp.MustCompile(`^` + namePart + `\s+` + namePart + `\s+` + namePart + `$`)
)

var spreadsheetExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xls", ".csv", ".tsv"}

// ParseIdentity parses "Last First Middle DD.MM.YYYY", "Last First DD.MM.YYYY"
// or "<text> DD.MM.YYYY". The boolean is false when nothing matched.
func ParseIdentity(text string, now time.Time) (PatientIdentity, bool) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return PatientIdentity{}, false
	}

	var fullName, rawDate string
	switch {
	case fullNameDateRe.MatchString(text):
		m := fullNameDateRe.FindStringSubmatch(text)
		fullName, rawDate = m[1]+" "+m[2]+" "+m[3], m[4]
	case shortNameDateRe.MatchString(text):
		m := shortNameDateRe.FindStringSubmatch(text)
		fullName, rawDate = m[1]+" "+m[2], m[3]
	case anyTextDateRe.MatchString(text):
		m := anyTextDateRe.FindStringSubmatch(text)
		fullName, rawDate = strings.TrimSpace(m[1]), m[2]
	default:
		return PatientIdentity{}, false
	}

	identity := NewIdentity(fullName)
	if birth, err := time.Parse(BirthDateLayout, rawDate); err == nil {
		identity.BirthDate = &birth
		identity.Age = identity.AgeAt(now)
	}

	return identity, true
}

// IdentityFromFile parses a file name with its spreadsheet extension removed.
func IdentityFromFile(name string, now time.Time) (PatientIdentity, bool) {
	identity, ok := ParseIdentity(StripSpreadsheetExt(filepath.Base(name)), now)
	if ok {
		identity.Source = IdentityFromFileName
	}
	return identity, ok
}

// IdentityFromSheetName parses a sheet name.
func IdentityFromSheetName(name string, now time.Time) (PatientIdentity, bool) {
	identity, ok := ParseIdentity(name, now)
	if ok {
		identity.Source = IdentityFromSheet
	}
	return identity, ok
}

// UnparsedIdentity keeps raw text as the full name without structured parts.
func UnparsedIdentity(text string) PatientIdentity {
	return PatientIdentity{
		FullName: strings.TrimSpace(StripSpreadsheetExt(text)),
		Source:   IdentityUnparsed,
	}
}

// NewIdentity builds an identity from a full name, splitting it into parts.
func NewIdentity(fullName string) PatientIdentity {
	identity := PatientIdentity{FullName: strings.Join(strings.Fields(fullName), " ")}
	identity.LastName, identity.FirstName, identity.MiddleName = SplitFullName(identity.FullName)
	return identity
}

// SplitFullName splits "Last First Middle...". Extra tokens stay in the
// middle name.
func SplitFullName(fullName string) (last, first, middle string) {
	tokens := strings.Fields(fullName)
	switch len(tokens) {
	case 0:
		return "", "", ""
	case 1:
		return tokens[0], "", ""
	case 2:
		return tokens[0], tokens[1], ""
	default:
		return tokens[0], tokens[1], strings.Join(tokens[2:], " ")
	}
}

// AgeAt calculates the age in years at a given date
func (p *PatientIdentity) AgeAt(atDate time.Time) *int {
	if p.BirthDate == nil {
		return nil
	}

	years := atDate.Year() - p.BirthDate.Year()
	// Adjust if birthday hasn't occurred yet this year
	if atDate.Month() < p.BirthDate.Month() ||
		(atDate.Month() == p.BirthDate.Month() && atDate.Day() < p.BirthDate.Day()) {
		years--
	}

	return &years
}

// Parsed reports whether the identity carries structured name parts.
func (p *PatientIdentity) Parsed() bool {
	return p.LastName != "" && p.Source != IdentityUnparsed
}

// LooksLikePatientName reports whether text is shaped like a patient label:
// a full name with a birth date, a surname with initials and a birth date, or
// a bare three-part name.
func LooksLikePatientName(text string) bool {
	text = strings.Join(strings.Fields(text), " ")
	return fullNameDateRe.MatchString(text) ||
		shortNameDateRe.MatchString(text) ||
		initialsDateRe.MatchString(text) ||
		bareFullNameRe.MatchString(text)
}

// StripSpreadsheetExt removes a known spreadsheet extension. Other suffixes
// are left alone so "Иванов 25.04.2005" keeps its year.
func StripSpreadsheetExt(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range spreadsheetExtensions {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
