// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/liamsdat/LabXtract/export"
	"github.com/liamsdat/LabXtract/extract"
	"github.com/liamsdat/LabXtract/normalize"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "labxtract.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	opts, err := cfg.ExtractOptions()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	defaults := extract.DefaultOptions()
	if opts.MaxRowsToCheck != defaults.MaxRowsToCheck || opts.HeaderSearchRows != defaults.HeaderSearchRows || opts.ClassifierRows != defaults.ClassifierRows {
		t.Fatalf("expected default windows, got %d/%d/%d", opts.MaxRowsToCheck, opts.HeaderSearchRows, opts.ClassifierRows)
	}
	if opts.PatientSource != extract.PatientSourceAuto {
		t.Fatalf("expected auto patient source, got %q", opts.PatientSource)
	}
	if !opts.SkipNonLabSheets || opts.FreeformFallback {
		t.Fatalf("expected skip on and freeform off")
	}

	formats, err := cfg.Formats()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !slices.Equal(formats, []export.Format{export.FormatCSV, export.FormatJSON}) {
		t.Fatalf("expected csv and json, got %v", formats)
	}

	exportOpts, err := cfg.ExportOptions()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if exportOpts.Separator != ',' || !exportOpts.BOM {
		t.Fatalf("expected comma with BOM, got %q %v", exportOpts.Separator, exportOpts.BOM)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
parser:
  max_rows_to_check: 30
  date_formats: ["%d.%m.%Y", "2006-01-02"]
  patient_source: sheet
  freeform_fallback: true
  keywords:
    result: ["итог"]
normalizer:
  custom_mappings:
    test_names:
      мой тест: Особый тест
output:
  directory: results
  formats: [xlsx, parquet]
  separator: ";"
  bom: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	opts, err := cfg.ExtractOptions()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if opts.MaxRowsToCheck != 30 {
		t.Fatalf("expected 30, got %d", opts.MaxRowsToCheck)
	}
	if opts.HeaderSearchRows != 100 {
		t.Fatalf("expected untouched default 100, got %d", opts.HeaderSearchRows)
	}
	if !slices.Equal(opts.DateLayouts, []string{"2.1.2006", "2006-01-02"}) {
		t.Fatalf("expected converted layouts, got %v", opts.DateLayouts)
	}
	if opts.PatientSource != extract.PatientSourceSheet {
		t.Fatalf("expected sheet source, got %q", opts.PatientSource)
	}
	if !opts.FreeformFallback {
		t.Fatalf("expected freeform fallback enabled")
	}
	if got := opts.Keywords.For(extract.RoleResult); !slices.Equal(got, []string{"итог"}) {
		t.Fatalf("expected result keywords [итог], got %v", got)
	}
	if got := opts.Keywords.For(extract.RoleTestName); len(got) == 0 {
		t.Fatalf("expected default test name keywords to survive")
	}

	n := normalize.New(cfg.NormalizerOptions()...)
	if got := n.Name("Мой тест"); got != "Особый тест" {
		t.Fatalf("expected custom mapping, got %q", got)
	}

	exportOpts, err := cfg.ExportOptions()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if exportOpts.Separator != ';' || exportOpts.BOM {
		t.Fatalf("expected semicolon without BOM, got %q %v", exportOpts.Separator, exportOpts.BOM)
	}
	if cfg.Output.Directory != "results" {
		t.Fatalf("expected results directory, got %q", cfg.Output.Directory)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	cfg, err := Load(writeConfig(t, "parser:\n  patient_source: content\n"))
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if _, err := cfg.ExtractOptions(); !errors.Is(err, errInvalidPatientSource) {
		t.Fatalf("expected errInvalidPatientSource, got %v", err)
	}

	cfg, err = Load(writeConfig(t, "parser:\n  keywords:\n    price: [цена]\n"))
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if _, err := cfg.ExtractOptions(); !errors.Is(err, errUnknownRole) {
		t.Fatalf("expected errUnknownRole, got %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LABXTRACT_OUTPUT_SEPARATOR", "tab")
	t.Setenv("LABXTRACT_PARSER_CLASSIFIER_ROWS", "15")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Parser.ClassifierRows != 15 {
		t.Fatalf("expected 15 classifier rows, got %d", cfg.Parser.ClassifierRows)
	}

	opts, err := cfg.ExportOptions()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if opts.Separator != '\t' {
		t.Fatalf("expected tab separator, got %q", opts.Separator)
	}
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "labxtract.yaml")
	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected error when file exists")
	}
	if err := WriteDefault(path, true); err != nil {
		t.Fatalf("expected force to overwrite, got %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected written config to load, got %v", err)
	}
	want := Default()
	if cfg.Parser.MaxRowsToCheck != want.Parser.MaxRowsToCheck || cfg.Output.Directory != want.Output.Directory {
		t.Fatalf("expected defaults back, got %+v", cfg.Parser)
	}
	if !slices.Equal(cfg.Parser.Keywords["test_name"], want.Parser.Keywords["test_name"]) {
		t.Fatalf("expected keyword table round trip, got %v", cfg.Parser.Keywords["test_name"])
	}
}

func TestParsePatientSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want extract.PatientSource
	}{
		{"", extract.PatientSourceAuto},
		{"AUTO", extract.PatientSourceAuto},
		{"sheet", extract.PatientSourceSheet},
		{"sheet_name", extract.PatientSourceSheet},
		{"filename", extract.PatientSourceFileName},
		{"file", extract.PatientSourceFileName},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePatientSource(tt.in)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseSeparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"", ',', false},
		{";", ';', false},
		{"tab", '\t', false},
		{`\t`, '\t', false},
		{"|", '|', false},
		{";;", 0, true},
		{`"`, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSeparator(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errInvalidSeparator) {
				t.Fatalf("expected errInvalidSeparator for %q, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("expected %q for %q, got %q (%v)", tt.want, tt.in, got, err)
		}
	}
}

func TestDateLayouts(t *testing.T) {
	t.Parallel()

	got := DateLayouts([]string{"%d.%m.%Y", "%Y-%m-%d %H:%M", " ", "02/01/2006"})
	want := []string{"2.1.2006", "2006-1-2 15:04", "02/01/2006"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
