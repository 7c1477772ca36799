/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package normalize

import (
	"strings"
	"unicode"
)

// Variants are written in cleaned form: lowercase, letters, digits and "/"
// only.
var unitGroups = []synonymGroup{
	{"г/л", []string{"г/л", "g/l"}},
	{"мг/л", []string{"мг/л", "mg/l"}},
	{"мкг/л", []string{"мкг/л"}},
	{"ммоль/л", []string{"ммоль/л", "ммольл", "ммоль", "mmol/l"}},
	{"мкмоль/л", []string{"мкмоль/л", "мкмоль", "umol/l", "µmol/l", "μmol/l"}},
	{"нмоль/л", []string{"нмоль/л", "nmol/l"}},
	{"пмоль/л", []string{"пмоль/л", "pmol/l"}},
	{"%", []string{"процент", "percent"}},
	{"10⁹/л", []string{"10⁹/л", "109/л", "109л", "10e9/л", "109/l", "тыс/мкл"}},
	{"10¹²/л", []string{"10¹²/л", "1012/л", "1012л", "10e12/л", "1012/l", "млн/мкл"}},
	{"Ед/л", []string{"ед/л", "е/л", "u/l", "ме/л"}},
	{"мкЕд/мл", []string{"мкед/мл", "мке/мл", "мкме/мл", "mu/l", "µiu/ml", "μiu/ml", "uiu/ml"}},
	{"нг/мл", []string{"нг/мл", "ng/ml"}},
	{"пг/мл", []string{"пг/мл", "pg/ml"}},
	{"пг", []string{"пг", "pg"}},
	{"фл", []string{"фл", "fl", "фемтолитр"}},
	{"мг/дл", []string{"мг/дл", "mg/dl"}},
	{"г/дл", []string{"г/дл", "g/dl"}},
	{"мм/ч", []string{"мм/ч", "мл/ч", "mm/h", "mm/hr", "миллиметрвчас"}},
	{"б/р", []string{"б/р", "безразмерная", "безразмернаяединица"}},
}

// CleanUnit lowercases a unit and keeps letters, digits and slashes.
func CleanUnit(unit string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(unit) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '/' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
