// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package lab

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestParseIdentityFullName(t *testing.T) {
	t.Parallel()

	identity, ok := ParseIdentity("Иванов Иван Иванович 25.04.2005", fixedNow)
	if !ok {
		t.Fatal("expected identity to parse")
	}
	if identity.LastName != "Иванов" || identity.FirstName != "Иван" || identity.MiddleName != "Иванович" {
		t.Fatalf("unexpected name parts: %+v", identity)
	}
	if identity.BirthDate == nil || !identity.BirthDate.Equal(time.Date(2005, time.April, 25, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected birth date 2005-04-25, got %v", identity.BirthDate)
	}
	if identity.Age == nil || *identity.Age != 20 {
		t.Fatalf("expected age 20, got %v", identity.Age)
	}
}

func TestParseIdentityVariants(t *testing.T) {
	t.Parallel()

	t.Run("two names", func(t *testing.T) {
		t.Parallel()
		identity, ok := ParseIdentity("Петрова Анна 01.02.1990", fixedNow)
		if !ok || identity.LastName != "Петрова" || identity.FirstName != "Анна" || identity.MiddleName != "" {
			t.Fatalf("unexpected identity: %+v", identity)
		}
	})

	t.Run("any text", func(t *testing.T) {
		t.Parallel()
		identity, ok := ParseIdentity("пациент сидоров 10.10.1970", fixedNow)
		if !ok || identity.FullName != "пациент сидоров" || identity.BirthDate == nil {
			t.Fatalf("unexpected identity: %+v", identity)
		}
	})

	t.Run("invalid date keeps name", func(t *testing.T) {
		t.Parallel()
		identity, ok := ParseIdentity("Иванов Иван 31.02.2005", fixedNow)
		if !ok || identity.BirthDate != nil || identity.LastName != "Иванов" {
			t.Fatalf("unexpected identity: %+v", identity)
		}
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		if _, ok := ParseIdentity("Лист1", fixedNow); ok {
			t.Fatal("expected no match")
		}
	})
}

func TestIdentityFromFile(t *testing.T) {
	t.Parallel()

	identity, ok := IdentityFromFile("/data/Иванов Иван 25.04.2005.xlsx", fixedNow)
	if !ok || identity.Source != IdentityFromFileName || identity.LastName != "Иванов" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	if got := StripSpreadsheetExt("Иванов 25.04.2005"); got != "Иванов 25.04.2005" {
		t.Fatalf("expected date suffix kept, got %q", got)
	}
}

func TestUnparsedIdentity(t *testing.T) {
	t.Parallel()

	identity := UnparsedIdentity("Results.xlsx")
	if identity.FullName != "Results" || identity.LastName != "" || identity.Parsed() {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAgeAt(t *testing.T) {
	t.Parallel()

	dob := time.Date(2000, time.February, 10, 0, 0, 0, 0, time.UTC)
	identity := PatientIdentity{BirthDate: &dob}

	if got := identity.AgeAt(time.Date(2024, time.February, 9, 0, 0, 0, 0, time.UTC)); got == nil || *got != 23 {
		t.Fatalf("expected age 23, got %v", got)
	}
	if got := identity.AgeAt(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)); got == nil || *got != 24 {
		t.Fatalf("expected age 24, got %v", got)
	}
}

func TestLooksLikePatientName(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"Иванов Иван Иванович 25.04.2005": true,
		"Иванов И. И. 25.04.2005":         true,
		"Иванов Иван Иванович":            true,
		"Результаты анализов":             false,
		"":                                false,
	}

	for text, want := range cases {
		if got := LooksLikePatientName(text); got != want {
			t.Fatalf("%q: expected %v, got %v", text, want, got)
		}
	}
}

func TestSplitFullName(t *testing.T) {
	t.Parallel()

	last, first, middle := SplitFullName("Оглы Мамед Али Оглы")
	if last != "Оглы" || first != "Мамед" || middle != "Али Оглы" {
		t.Fatalf("unexpected split: %q %q %q", last, first, middle)
	}

	last, first, middle = SplitFullName("Иванов")
	if last != "Иванов" || first != "" || middle != "" {
		t.Fatalf("unexpected split: %q %q %q", last, first, middle)
	}
}
