// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"testing"

	"github.com/liamsdat/LabXtract/lab"
)

func workbookOf(sheets ...lab.Sheet) lab.Workbook {
	return lab.Workbook{FileName: "export.xlsx", Sheets: sheets}
}

func TestIdentityFromContent(t *testing.T) {
	t.Parallel()

	t.Run("patient label", func(t *testing.T) {
		t.Parallel()

		wb := workbookOf(lab.Sheet{Name: "Лист1", Grid: grid(
			[]string{"Медицинский центр"},
			[]string{"Пациент: Петров Петр Петрович", "Дата рождения: 01.02.1980"},
		)})

		identity, ok := IdentityFromContent(wb, 20, fixedNow)
		if !ok {
			t.Fatalf("expected an identity")
		}
		if identity.FullName != "Петров Петр Петрович" || identity.MiddleName != "Петрович" {
			t.Fatalf("expected full name parts, got %+v", identity)
		}
		assertDate(t, "birth date", identity.BirthDate, 1980, 2, 1)
		if identity.Age == nil || *identity.Age != 45 {
			t.Fatalf("expected age 45, got %v", identity.Age)
		}
		if identity.Source != lab.IdentityFromContent {
			t.Fatalf("expected content source, got %s", identity.Source)
		}
	})

	t.Run("initials", func(t *testing.T) {
		t.Parallel()

		wb := workbookOf(lab.Sheet{Name: "Лист1", Grid: grid(
			[]string{"ФИО: Сидоров А. Б."},
			[]string{"1990-07-15"},
		)})

		identity, ok := IdentityFromContent(wb, 20, fixedNow)
		if !ok {
			t.Fatalf("expected an identity")
		}
		if identity.LastName != "Сидоров" || identity.FirstName != "А." || identity.MiddleName != "Б." {
			t.Fatalf("expected initials, got %+v", identity)
		}
		assertDate(t, "birth date", identity.BirthDate, 1990, 7, 15)
	})

	t.Run("outside window", func(t *testing.T) {
		t.Parallel()

		wb := workbookOf(lab.Sheet{Name: "Лист1", Grid: grid(
			[]string{"Показатель", "Результат"},
			[]string{"Пациент: Петров Петр Петрович"},
		)})

		if _, ok := IdentityFromContent(wb, 1, fixedNow); ok {
			t.Fatalf("expected the label past the row window to be ignored")
		}
	})

	t.Run("only leading sheets", func(t *testing.T) {
		t.Parallel()

		empty := lab.Sheet{Name: "Лист", Grid: grid([]string{"1", "2"})}
		labelled := lab.Sheet{Name: "Лист4", Grid: grid([]string{"Пациент: Петров Петр Петрович"})}

		if _, ok := IdentityFromContent(workbookOf(empty, empty, empty, labelled), 20, fixedNow); ok {
			t.Fatalf("expected the fourth sheet to be ignored")
		}
	})
}
