// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"math"
	"testing"
	"time"

	"github.com/liamsdat/LabXtract/lab"
)

var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

func grid(rows ...[]string) lab.Grid {
	return lab.NewGrid(rows)
}

// scenarioRows is a header, two results and a blank tail.
func scenarioRows() [][]string {
	return [][]string{
		{"Показатель", "Результат", "Ед.изм", "Норма"},
		{"Глюкоза", "5.4", "ммоль/л", "3.9-6.1"},
		{"Лейкоциты", "12", "10^9/л", "4.0-9.0"},
		{"", "", "", ""},
		{"", "", "", ""},
	}
}

func assertFloat(t *testing.T, name string, got *float64, want float64) {
	t.Helper()

	if got == nil {
		t.Fatalf("%s: expected %v, got nil", name, want)
	}
	if math.Abs(*got-want) > 1e-9 {
		t.Fatalf("%s: expected %v, got %v", name, want, *got)
	}
}

func assertDate(t *testing.T, name string, got *time.Time, year int, month time.Month, day int) {
	t.Helper()

	if got == nil {
		t.Fatalf("%s: expected %04d-%02d-%02d, got nil", name, year, month, day)
	}
	if got.Year() != year || got.Month() != month || got.Day() != day {
		t.Fatalf("%s: expected %04d-%02d-%02d, got %s", name, year, month, day, got.Format(time.DateOnly))
	}
}
