/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package validate

import "strings"

// ExpectedRange is the typical adult reference interval of a common test,
// used to sanity check extracted ranges and values.
type ExpectedRange struct {
	TestName     string
	Min          *float64
	Max          *float64
	Unit         string
	AllowedUnits []string
}

// ptr is a helper to create pointers to float64 literals
func ptr(f float64) *float64 {
	return &f
}

var expectedRanges = []ExpectedRange{
	// ===== HEMATOLOGY =====
	{
		TestName: "Гемоглобин", Min: ptr(120), Max: ptr(160), Unit: "г/л",
		AllowedUnits: []string{"г/л", "г/дл"},
	},
	{
		TestName: "Лейкоциты", Min: ptr(4.0), Max: ptr(9.0), Unit: "10⁹/л",
		AllowedUnits: []string{"10⁹/л"},
	},
	{
		TestName: "Эритроциты", Min: ptr(3.9), Max: ptr(5.5), Unit: "10¹²/л",
		AllowedUnits: []string{"10¹²/л"},
	},
	{
		TestName: "Тромбоциты", Min: ptr(150), Max: ptr(400), Unit: "10⁹/л",
		AllowedUnits: []string{"10⁹/л"},
	},

	// ===== BLOOD CHEMISTRY =====
	{
		TestName: "Глюкоза", Min: ptr(3.9), Max: ptr(6.1), Unit: "ммоль/л",
		AllowedUnits: []string{"ммоль/л", "мг/дл"},
	},
	{
		TestName: "Креатинин", Min: ptr(58), Max: ptr(110), Unit: "мкмоль/л",
		AllowedUnits: []string{"мкмоль/л", "мг/дл"},
	},
	{
		TestName: "Мочевина", Min: ptr(2.8), Max: ptr(7.2), Unit: "ммоль/л",
		AllowedUnits: []string{"ммоль/л", "мг/дл"},
	},
	{
		TestName: "Холестерин общий", Min: ptr(3.6), Max: ptr(6.2), Unit: "ммоль/л",
		AllowedUnits: []string{"ммоль/л", "мг/дл"},
	},
	{
		TestName: "АЛТ", Min: ptr(0), Max: ptr(35), Unit: "Ед/л",
		AllowedUnits: []string{"Ед/л"},
	},
	{
		TestName: "АСТ", Min: ptr(0), Max: ptr(35), Unit: "Ед/л",
		AllowedUnits: []string{"Ед/л"},
	},

	// ===== HORMONES =====
	{
		TestName: "ТТГ", Min: ptr(0.4), Max: ptr(4.0), Unit: "мкЕд/мл",
		AllowedUnits: []string{"мкЕд/мл"},
	},
}

var qualitativeAnswers = []string{"Не обнаружено", "Обнаружено", "Положительный", "Отрицательный", "Сомнительный"}

// qualitativeTests only accept one of qualitativeAnswers as a text result.
var qualitativeTests = []string{"Trichomonas vaginalis", "Candida", "ВИЧ", "Гепатит B", "Гепатит C", "Сифилис"}

// ExpectedRanges returns the built-in expected ranges.
func ExpectedRanges() []ExpectedRange {
	out := make([]ExpectedRange, len(expectedRanges))
	copy(out, expectedRanges)
	return out
}

// Expected looks up the expected range of a canonical test name.
func Expected(name string) (ExpectedRange, bool) {
	for _, r := range expectedRanges {
		if strings.EqualFold(r.TestName, name) {
			return r, true
		}
	}
	return ExpectedRange{}, false
}

// UnitAllowed reports whether unit is acceptable for the range.
func (r ExpectedRange) UnitAllowed(unit string) bool {
	for _, allowed := range r.AllowedUnits {
		if strings.EqualFold(allowed, strings.TrimSpace(unit)) {
			return true
		}
	}
	return false
}
