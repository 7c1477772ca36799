// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func writeXLSX(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("failed to rename sheet: %v", err)
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("failed to add sheet: %v", err)
		}

		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("failed to build cell name: %v", err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("failed to write row: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
}

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestReadXLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Иванов Иван 25.04.2005.xlsx")
	writeXLSX(t, path, map[string][][]any{
		"Анализы": {
			{"Показатель", "Результат", "Ед.изм"},
			{" Глюкоза ", 5.4, "ммоль/л"},
			{"Лейкоциты", "12"},
		},
	})

	wb, err := ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read workbook: %v", err)
	}
	if wb.FileName != "Иванов Иван 25.04.2005.xlsx" || wb.Path != path {
		t.Fatalf("expected file name and path to be set, got %q / %q", wb.FileName, wb.Path)
	}
	if len(wb.Sheets) != 1 || wb.Sheets[0].Name != "Анализы" {
		t.Fatalf("expected one sheet named Анализы, got %+v", wb.Sheets)
	}

	grid := wb.Sheets[0].Grid
	if grid.Rows() != 3 || grid.Width() != 3 {
		t.Fatalf("expected a 3x3 grid, got %dx%d", grid.Rows(), grid.Width())
	}
	if got := grid.Cell(1, 0); got != "Глюкоза" {
		t.Fatalf("expected trimmed cell, got %q", got)
	}
	if got := grid.Cell(1, 1); got != "5.4" {
		t.Fatalf("expected 5.4, got %q", got)
	}
	if got := grid.Cell(2, 2); got != "" {
		t.Fatalf("expected padded blank cell, got %q", got)
	}
}

func TestReadCSVVariants(t *testing.T) {
	t.Parallel()

	want := [][]string{
		{"Показатель", "Результат"},
		{"Глюкоза", "5,4"},
	}
	plain := "Показатель;Результат\nГлюкоза;5,4\n"

	cp1251, err := charmap.Windows1251.NewEncoder().String(plain)
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	cases := map[string][]byte{
		"utf8":         []byte(plain),
		"utf8 bom":     append([]byte{0xEF, 0xBB, 0xBF}, plain...),
		"windows-1251": []byte(cp1251),
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			wb, err := ReadCSV(strings.NewReader(string(content)), "export.csv", 0)
			if err != nil {
				t.Fatalf("failed to read csv: %v", err)
			}
			if len(wb.Sheets) != 1 || wb.Sheets[0].Name != "export" {
				t.Fatalf("expected one sheet named export, got %+v", wb.Sheets)
			}

			grid := wb.Sheets[0].Grid
			var got [][]string
			for r := range grid.Rows() {
				got = append(got, grid.Row(r))
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("expected %v, got %v", want, got)
			}
		})
	}
}

func TestReadCSVNormalizesUnicode(t *testing.T) {
	t.Parallel()

	decomposed := "И\u0306од,1\n"
	composed := "\u0419од"
	wb, err := ReadCSV(strings.NewReader(decomposed), "a.csv", 0)
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	if got := wb.Sheets[0].Grid.Cell(0, 0); got != composed {
		t.Fatalf("expected NFC %q, got %q", composed, got)
	}
}

func TestReadFileUnsupported(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, []byte("hello"))

	if _, err := ReadFile(path); !errors.Is(err, errUnsupportedFormat) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{
		"b.xlsx",
		"a.csv",
		"nested/c.xls",
		"~$b.xlsx",
		".hidden.xlsx",
		".cache/d.xlsx",
		"readme.txt",
	} {
		writeFile(t, filepath.Join(root, name), []byte("x"))
	}

	got, err := Discover([]string{root, filepath.Join(root, "b.xlsx")})
	if err != nil {
		t.Fatalf("failed to discover: %v", err)
	}

	want := []string{
		filepath.Join(root, "a.csv"),
		filepath.Join(root, "b.xlsx"),
		filepath.Join(root, "nested", "c.xls"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := Discover([]string{filepath.Join(root, "missing")}); err == nil {
		t.Fatalf("expected an error for a missing path")
	}
	if _, err := Discover([]string{filepath.Join(root, "readme.txt")}); !errors.Is(err, errUnsupportedFormat) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}
