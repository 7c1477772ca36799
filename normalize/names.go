/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package normalize

// synonymGroup maps lowercase variants to one canonical display form. The
// canonical form is always matched as well, so it maps to itself.
type synonymGroup struct {
	canonical string
	variants  []string
}

var testNameGroups = []synonymGroup{
	// Hematology
	{"Гемоглобин", []string{"гемоглобин(hgb)", "гемоглобин", "hgb", "hemoglobin"}},
	{"Лейкоциты", []string{"лейкоциты(wbc)", "лейкоциты", "wbc", "white blood cells"}},
	{"Эритроциты", []string{"эритроциты(rbc)", "эритроциты", "rbc", "red blood cells"}},
	{"Тромбоциты", []string{"тромбоциты(plt)", "тромбоциты", "plt", "platelets"}},
	{"Гематокрит", []string{"гематокрит(hct)", "гематокрит", "hct", "hematocrit"}},
	{"СОЭ", []string{"соэ", "соэ по панченкову", "соэ по вестергрену", "esr"}},
	{"MCV", []string{"mcv", "средний объем эритроцит", "средний объём эритроцит"}},
	{"MCH", []string{"mch", "среднее содержание гемоглобина"}},
	{"MCHC", []string{"mchc", "средняя концентрация гемоглобина"}},
	{"RDW", []string{"rdw", "ширина распределения эритроцитов"}},
	{"Лейкоциты в моче", []string{"лейкоциты в моче", "лейкоциты (моча)"}},
	{"Эритроциты в моче", []string{"эритроциты в моче", "эритроциты (моча)"}},

	// Blood chemistry
	{"Глюкоза", []string{"глюкоза", "глюкоза в крови", "glucose"}},
	{"Креатинин", []string{"креатинин", "creatinine"}},
	{"Мочевина", []string{"мочевина", "urea"}},
	{"Мочевая кислота", []string{"мочевая кислота", "uric acid"}},
	{"Холестерин общий", []string{"холестерин", "холестерин общий", "общий холестерин", "cholesterol"}},
	{"АЛТ", []string{"алт", "аланинаминотрансфераза", "alt"}},
	{"АСТ", []string{"аст", "аспартатаминотрансфераза", "ast"}},
	{"Билирубин общий", []string{"билирубин общий", "общий билирубин", "total bilirubin"}},
	{"Билирубин прямой", []string{"билирубин прямой", "прямой билирубин", "direct bilirubin"}},
	{"Общий белок", []string{"общий белок", "белок общий", "total protein"}},
	{"Альбумин", []string{"альбумин", "albumin"}},
	{"Микроальбумин", []string{"микроальбумин", "microalbumin"}},
	{"HbA1c", []string{"hba1c", "гликированный гемоглобин", "гликозилированный гемоглобин", "гемоглобин a1c", "glycated hemoglobin"}},

	// Hormones
	{"ТТГ", []string{"ттг", "тиреотропный гормон", "tsh", "thyroid stimulating hormone"}},
	{"Т4 свободный", []string{"т4 свободный", "свободный т4", "free t4"}},
	{"Т3 свободный", []string{"т3 свободный", "свободный т3", "free t3"}},

	// Urine
	{"Белок в моче", []string{"белок в моче", "протеинурия", "protein urine"}},
	{"Глюкоза в моче", []string{"глюкоза в моче", "глюкозурия", "glucose urine"}},

	// Microbiology
	{"Trichomonas vaginalis", []string{"трихомонады", "trichomonas"}},
	{"Candida", []string{"кандида", "candida", "дрожжевые клетки"}},

	// Immunology
	{"ВИЧ", []string{"вич", "hiv", "антитела к вич"}},
	{"Гепатит B", []string{"гепатит в", "гепатит b", "hbsag"}},
	{"Гепатит C", []string{"гепатит с", "гепатит c", "анти-hcv", "anti-hcv"}},
	{"Сифилис", []string{"сифилис", "рмп", "syphilis"}},
}

// acronymFixes run after title-casing an unmapped name.
var acronymFixes = []struct {
	pattern     string
	replacement string
}{
	{`(?i)\bAlt\b`, "АЛТ"},
	{`(?i)\bAst\b`, "АСТ"},
	{`(?i)\bTsh\b`, "ТТГ"},
	{`(?i)\bHba1c\b`, "HbA1c"},
	{`(?i)\bHba\b`, "HbA"},
	{`(?i)\bHgb\b`, "HGB"},
	{`(?i)\bWbc\b`, "WBC"},
	{`(?i)\bRbc\b`, "RBC"},
	{`(?i)\bPlt\b`, "PLT"},
	{`(?i)\bHct\b`, "HCT"},
}
