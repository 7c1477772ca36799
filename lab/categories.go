/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CategoryKeywords ties a category to the name fragments that imply it.
type CategoryKeywords struct {
	Category Category
	Keywords []string
}

// categoryKeywords is checked in order; the first category with a hit wins.
var categoryKeywords = []CategoryKeywords{
	{CategoryHematology, []string{
		"гемоглобин", "лейкоцит", "эритроцит", "тромбоцит", "гематокрит", "соэ",
		"нейтрофил", "лимфоцит", "моноцит", "эозинофил", "базофил",
		"hgb", "wbc", "rbc", "plt", "hct", "esr",
	}},
	{CategoryBloodChemistry, []string{
		"глюкоз", "креатинин", "мочевин", "холестерин", "билирубин", "алт", "аст",
		"ггт", "щелочн", "фосфатаз", "белок", "альбумин", "липопротеид",
		"триглицерид", "мочев", "кислот", "кальци", "железо", "hba1c",
		"glucose", "crea", "urea", "chol", "alt", "ast", "bilirubin",
	}},
	{CategoryHormones, []string{
		"ттг", "тиреотропн", "т4", "т3", "кортизол", "инсулин", "пролактин",
		"эстрадиол", "тестостерон", "прогестерон", "лг", "фсг", "tsh", "thyroid",
	}},
	{CategoryUrine, []string{
		"моч", "оам", "урин", "протеинурия", "глюкозурия", "кетон", "уробилиноген",
		"нитрит", "цилиндр", "urine",
	}},
	{CategoryMicrobiology, []string{
		"микрофлор", "бактери", "гриб", "трихомонад", "кандид", "стафилококк",
		"стрептококк", "посев", "чувствительн", "trichomonas", "candida", "culture",
	}},
	{CategoryImmunology, []string{
		"вич", "гепатит", "сифилис", "антител", "антиген", "рмп", "hbsag", "hcv",
		"hiv", "hepatitis", "syphilis", "antibod", "antigen",
	}},
}

// InferCategory infers a category from a test name, defaulting to other.
func InferCategory(name string) Category {
	lower := strings.ToLower(name)
	for _, entry := range categoryKeywords {
		if ContainsAnyKeyword(lower, entry.Keywords) {
			return entry.Category
		}
	}
	return CategoryOther
}

// IsCategoryKeyword reports whether text mentions any category keyword.
func IsCategoryKeyword(text string) bool {
	return InferCategory(text) != CategoryOther
}

// shortKeyword is the rune length at or below which a keyword must start a
// token: "аст" must not match inside "частота".
const shortKeyword = 3

// ContainsKeyword reports whether lowercase text contains keyword. Short
// keywords only match at the start of a token.
func ContainsKeyword(text, keyword string) bool {
	if keyword == "" {
		return false
	}
	if utf8.RuneCountInString(keyword) > shortKeyword {
		return strings.Contains(text, keyword)
	}

	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], keyword)
		if idx < 0 {
			return false
		}
		pos := offset + idx
		if pos == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(text[:pos])
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
			return true
		}
		offset = pos + len(keyword)
	}
	return false
}

// ContainsAnyKeyword reports whether text contains any of the keywords.
func ContainsAnyKeyword(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if ContainsKeyword(text, keyword) {
			return true
		}
	}
	return false
}
