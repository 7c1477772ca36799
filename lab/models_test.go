// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package lab

import "testing"

func floatPtr(value float64) *float64 {
	return &value
}

func numericTest(value, lo, hi float64) LabTest {
	test := LabTest{Name: "Тест", ReferenceMin: floatPtr(lo), ReferenceMax: floatPtr(hi)}
	test.SetNumeric(value, "")
	return test
}

func TestRangeStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value float64
		want  Status
	}{
		{value: 15, want: StatusNormal},
		{value: 25, want: StatusHigh},
		{value: 5, want: StatusLow},
		{value: 10, want: StatusNormal},
		{value: 20, want: StatusNormal},
	}

	for _, tc := range cases {
		test := numericTest(tc.value, 10, 20)
		test.DeriveStatus()
		if test.Status != tc.want {
			t.Fatalf("value %v: expected %q, got %q", tc.value, tc.want, test.Status)
		}
	}
}

func TestFlagOverridesRange(t *testing.T) {
	t.Parallel()

	test := numericTest(15, 10, 20)
	test.Flag = "Повышен"
	test.DeriveStatus()
	if test.Status != StatusHigh {
		t.Fatalf("expected flag to win, got %q", test.Status)
	}

	test.Flag = "???"
	test.DeriveStatus()
	if test.Status != StatusNormal {
		t.Fatalf("expected unrecognised flag to fall back to range, got %q", test.Status)
	}
}

func TestStatusFromFlag(t *testing.T) {
	t.Parallel()

	cases := map[string]Status{
		"H":             StatusHigh,
		"↓":             StatusLow,
		"abnormal":      StatusAbnormal,
		"Норма":         StatusNormal,
		"сомнительный":  StatusSuspicious,
		"Не обнаружено": StatusNotDetected,
		"отрицательный": StatusNegative,
		"Положительный": StatusPositive,
		"":              StatusUnset,
	}

	for flag, want := range cases {
		if got := StatusFromFlag(flag); got != want {
			t.Fatalf("flag %q: expected %q, got %q", flag, want, got)
		}
	}
}

func TestTextValueStatus(t *testing.T) {
	t.Parallel()

	var test LabTest
	test.SetText("Не обнаружено")
	test.DeriveStatus()
	if test.Status != StatusNotDetected {
		t.Fatalf("expected not_detected, got %q", test.Status)
	}

	test.SetText("мутная")
	test.DeriveStatus()
	if test.Status != StatusUnset {
		t.Fatalf("expected unset, got %q", test.Status)
	}
}

func TestValueKinds(t *testing.T) {
	t.Parallel()

	var test LabTest
	if test.Value() != nil {
		t.Fatalf("expected nil value, got %v", test.Value())
	}

	test.SetNumeric(10, "8-12")
	if v, ok := test.Value().(float64); !ok || v != 10 {
		t.Fatalf("expected numeric 10, got %v", test.Value())
	}

	test.SetText("Норма")
	if test.NumericValue != nil {
		t.Fatalf("expected numeric value cleared")
	}
	if v, ok := test.Value().(string); !ok || v != "Норма" {
		t.Fatalf("expected text value, got %v", test.Value())
	}
}

func TestStatusIsAbnormal(t *testing.T) {
	t.Parallel()

	abnormal := []Status{StatusHigh, StatusLow, StatusAbnormal, StatusSuspicious}
	for _, s := range abnormal {
		if !s.IsAbnormal() {
			t.Fatalf("expected %q to be abnormal", s)
		}
	}

	normal := []Status{StatusNormal, StatusNotDetected, StatusPositive, StatusNegative, StatusUnset}
	for _, s := range normal {
		if s.IsAbnormal() {
			t.Fatalf("expected %q not to be abnormal", s)
		}
	}
}
