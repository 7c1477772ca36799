/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package normalize

// Checked in order, first substring hit wins.
var textValueGroups = []synonymGroup{
	{"Не обнаружено", []string{"не обнаружено", "не обнар", "not detected"}},
	{"Отрицательный", []string{"отрицательный", "отрицат", "отр", "negative"}},
	{"Положительный", []string{"положительный", "положит", "пол", "positive"}},
	{"Норма", []string{"норма", "норм", "normal"}},
	{"Повышен", []string{"повышен", "повыш"}},
	{"Понижен", []string{"понижен", "пониж"}},
	{"Сомнительный", []string{"сомнительный", "сомнит"}},
	{"Единично", []string{"единично", "един"}},
	{"Следы", []string{"следы"}},
	{"Сплошь", []string{"сплошь"}},
	{"Большое количество", []string{"большое количество"}},
	{"Скопление", []string{"скопление"}},
	{"Умеренное", []string{"умеренное"}},
	{"Обильное", []string{"обильное"}},
	{"Скудно", []string{"скудно"}},
}

// "abnormal" contains "normal", so it is listed first.
var flagGroups = []synonymGroup{
	{"Не обнаружено", []string{"не обнаружено", "не обнар", "not detected"}},
	{"Отрицательный", []string{"отрицательный", "отрицат", "negative"}},
	{"Положительный", []string{"положительный", "положит", "positive"}},
	{"Сомнительный", []string{"сомнительный", "сомнит", "suspicious", "equivocal"}},
	{"Отклонение", []string{"отклонение", "отклон", "abnormal", "патолог"}},
	{"Повышен", []string{"повышен", "повыш", "high", "выше"}},
	{"Понижен", []string{"понижен", "пониж", "low", "ниже"}},
	{"Норма", []string{"норма", "норм", "normal"}},
}

var exactFlags = map[string]string{
	"h":  "Повышен",
	"hh": "Повышен",
	"↑":  "Повышен",
	"l":  "Понижен",
	"ll": "Понижен",
	"↓":  "Понижен",
	"n":  "Норма",
}
