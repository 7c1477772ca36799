/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/liamsdat/LabXtract/lab"
)

const contentNamePart = `\p{Lu}\p{Ll}+(?:-\p{Lu}\p{Ll}+)?`

var (
	patientLabelRe = regexp.MustCompile(`(?i:пациент)[:\s]+(` + contentNamePart + `)\s+(` + contentNamePart + `)\s+(` + contentNamePart + `)`)
	fioLabelRe     = regexp.MustCompile(`(?i:фио)[:\s]+(` + contentNamePart + `)\s+(\p{Lu})\.\s*(\p{Lu})\.`)
	twoNameCellRe  = regexp.MustCompile(`^(` + contentNamePart + `)\s+(` + contentNamePart + `)$`)

	contentDateRes = []struct {
		re     *regexp.Regexp
		layout string
	}{
		{regexp.MustCompile(`\b\d{2}\.\d{2}\.\d{4}\b`), "02.01.2006"},
		{regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`), "02/01/2006"},
		{regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`), "2006-01-02"},
	}
)

// identitySheets is how many leading sheets are searched for a patient label.
const identitySheets = 3

// IdentityFromContent looks for a patient label ("Пациент: Фамилия Имя
// Отчество", "ФИО: Фамилия И.О." or a lone "Фамилия Имя" cell) in the first
// rows of the first sheets. The first date found near the label is taken as
// the birth date.
func IdentityFromContent(workbook lab.Workbook, maxRows int, now time.Time) (lab.PatientIdentity, bool) {
	for s, sheet := range workbook.Sheets {
		if s >= identitySheets {
			break
		}
		for r := 0; r < min(maxRows, sheet.Grid.Rows()); r++ {
			row := sheet.Grid.Row(r)
			text := strings.Join(strings.Fields(strings.Join(row, " ")), " ")
			if text == "" {
				continue
			}

			identity, ok := identityFromRow(row, text)
			if !ok {
				continue
			}

			if birth := firstDate(text); birth != nil {
				identity.BirthDate = birth
				identity.Age = identity.AgeAt(now)
			} else if birth := firstDate(sheet.Grid.RowText(r + 1)); birth != nil {
				identity.BirthDate = birth
				identity.Age = identity.AgeAt(now)
			}
			identity.Source = lab.IdentityFromContent

			return identity, true
		}
	}

	return lab.PatientIdentity{}, false
}

func identityFromRow(row []string, text string) (lab.PatientIdentity, bool) {
	if m := patientLabelRe.FindStringSubmatch(text); m != nil {
		return lab.NewIdentity(m[1] + " " + m[2] + " " + m[3]), true
	}
	if m := fioLabelRe.FindStringSubmatch(text); m != nil {
		return lab.PatientIdentity{
			FullName:   m[1] + " " + m[2] + ". " + m[3] + ".",
			LastName:   m[1],
			FirstName:  m[2] + ".",
			MiddleName: m[3] + ".",
		}, true
	}
	for _, cell := range row {
		if m := twoNameCellRe.FindStringSubmatch(cell); m != nil {
			return lab.NewIdentity(m[1] + " " + m[2]), true
		}
	}
	return lab.PatientIdentity{}, false
}

func firstDate(text string) *time.Time {
	for _, entry := range contentDateRes {
		if match := entry.re.FindString(text); match != "" {
			if parsed, err := time.Parse(entry.layout, match); err == nil {
				return &parsed
			}
		}
	}
	return nil
}
