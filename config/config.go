/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/liamsdat/LabXtract/export"
	"github.com/liamsdat/LabXtract/extract"
	"github.com/liamsdat/LabXtract/normalize"
)

// EnvPrefix prefixes every environment override, e.g. LABXTRACT_OUTPUT_SEPARATOR.
const EnvPrefix = "LABXTRACT"

// keys may contain dots, e.g. custom unit mappings like "10^9/l"
const keyDelimiter = "::"

// Config is the full configuration surface.
type Config struct {
	Parser     ParserConfig     `mapstructure:"parser"`
	Normalizer NormalizerConfig `mapstructure:"normalizer"`
	Output     OutputConfig     `mapstructure:"output"`
}

// ParserConfig tunes extraction.
type ParserConfig struct {
	MaxRowsToCheck   int                 `mapstructure:"max_rows_to_check"`
	HeaderSearchRows int                 `mapstructure:"header_search_rows"`
	ClassifierRows   int                 `mapstructure:"classifier_rows"`
	DateFormats      []string            `mapstructure:"date_formats"`
	SkipNonLabSheets bool                `mapstructure:"skip_non_lab_sheets"`
	FreeformFallback bool                `mapstructure:"freeform_fallback"`
	PatientSource    string              `mapstructure:"patient_source"`
	Keywords         map[string][]string `mapstructure:"keywords"`
}

// NormalizerConfig extends the synonym tables.
type NormalizerConfig struct {
	// StrictMode is accepted for compatibility and only logged.
	StrictMode     bool           `mapstructure:"strict_mode"`
	CustomMappings CustomMappings `mapstructure:"custom_mappings"`
}

// CustomMappings map raw spellings to canonical ones.
type CustomMappings struct {
	TestNames map[string]string `mapstructure:"test_names"`
	Units     map[string]string `mapstructure:"units"`
}

// OutputConfig controls exports.
type OutputConfig struct {
	Directory    string   `mapstructure:"directory"`
	Formats      []string `mapstructure:"formats"`
	Separator    string   `mapstructure:"separator"`
	BOM          bool     `mapstructure:"bom"`
	TimestampDir bool     `mapstructure:"timestamp_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	defaults := extract.DefaultOptions()

	keywords := map[string][]string{}
	for _, entry := range defaults.Keywords {
		keywords[string(entry.Role)] = entry.Keywords
	}

	return &Config{
		Parser: ParserConfig{
			MaxRowsToCheck:   defaults.MaxRowsToCheck,
			HeaderSearchRows: defaults.HeaderSearchRows,
			ClassifierRows:   defaults.ClassifierRows,
			DateFormats:      defaults.DateLayouts,
			SkipNonLabSheets: defaults.SkipNonLabSheets,
			FreeformFallback: defaults.FreeformFallback,
			PatientSource:    string(defaults.PatientSource),
			Keywords:         keywords,
		},
		Normalizer: NormalizerConfig{
			CustomMappings: CustomMappings{
				TestNames: map[string]string{},
				Units:     map[string]string{},
			},
		},
		Output: OutputConfig{
			Directory:    "output",
			Formats:      []string{string(export.FormatCSV), string(export.FormatJSON)},
			Separator:    ",",
			BOM:          true,
			TimestampDir: true,
		},
	}
}

func newViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigType("yaml")

	d := Default()
	keywords := map[string]any{}
	for role, words := range d.Parser.Keywords {
		keywords[role] = words
	}

	v.SetDefault(key("parser", "max_rows_to_check"), d.Parser.MaxRowsToCheck)
	v.SetDefault(key("parser", "header_search_rows"), d.Parser.HeaderSearchRows)
	v.SetDefault(key("parser", "classifier_rows"), d.Parser.ClassifierRows)
	v.SetDefault(key("parser", "date_formats"), d.Parser.DateFormats)
	v.SetDefault(key("parser", "skip_non_lab_sheets"), d.Parser.SkipNonLabSheets)
	v.SetDefault(key("parser", "freeform_fallback"), d.Parser.FreeformFallback)
	v.SetDefault(key("parser", "patient_source"), d.Parser.PatientSource)
	v.SetDefault(key("parser", "keywords"), keywords)

	v.SetDefault(key("normalizer", "strict_mode"), d.Normalizer.StrictMode)
	v.SetDefault(key("normalizer", "custom_mappings", "test_names"), map[string]any{})
	v.SetDefault(key("normalizer", "custom_mappings", "units"), map[string]any{})

	v.SetDefault(key("output", "directory"), d.Output.Directory)
	v.SetDefault(key("output", "formats"), d.Output.Formats)
	v.SetDefault(key("output", "separator"), d.Output.Separator)
	v.SetDefault(key("output", "bom"), d.Output.BOM)
	v.SetDefault(key("output", "timestamp_dir"), d.Output.TimestampDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_"))
	v.AutomaticEnv()

	return v
}

func key(parts ...string) string {
	return strings.Join(parts, keyDelimiter)
}

// Load reads the configuration. An empty path uses defaults plus environment
// overrides.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		logger.Debug("config loaded", "path", path)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	if cfg.Normalizer.StrictMode {
		logger.Info("normalizer strict mode is advisory and has no effect")
	}
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// WriteDefault writes the default configuration as YAML. An existing file is
// only replaced when force is set.
func WriteDefault(path string, force bool) error {
	v := newViper()

	var err error
	if force {
		err = v.WriteConfigAs(path)
	} else {
		err = v.SafeWriteConfigAs(path)
	}

	var exists viper.ConfigFileAlreadyExistsError
	if errors.As(err, &exists) {
		return fmt.Errorf("failed to write config: %s already exists, use --force to overwrite", path)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logger.Info("config written", "path", path)
	return nil
}

// ExtractOptions converts the parser section into extraction options.
func (c *Config) ExtractOptions() (extract.Options, error) {
	opts := extract.DefaultOptions()
	p := c.Parser

	if p.MaxRowsToCheck > 0 {
		opts.MaxRowsToCheck = p.MaxRowsToCheck
	}
	if p.HeaderSearchRows > 0 {
		opts.HeaderSearchRows = p.HeaderSearchRows
	}
	if p.ClassifierRows > 0 {
		opts.ClassifierRows = p.ClassifierRows
	}
	if len(p.DateFormats) > 0 {
		opts.DateLayouts = DateLayouts(p.DateFormats)
	}
	opts.SkipNonLabSheets = p.SkipNonLabSheets
	opts.FreeformFallback = p.FreeformFallback

	source, err := ParsePatientSource(p.PatientSource)
	if err != nil {
		return opts, err
	}
	opts.PatientSource = source

	for name, keywords := range p.Keywords {
		role, ok := extract.ParseRole(name)
		if !ok {
			return opts, fmt.Errorf("%w: %q", errUnknownRole, name)
		}
		if len(keywords) > 0 {
			opts.Keywords = opts.Keywords.With(role, keywords)
		}
	}

	return opts, nil
}

// NormalizerOptions returns the custom synonym options.
func (c *Config) NormalizerOptions() []normalize.Option {
	var opts []normalize.Option
	if m := c.Normalizer.CustomMappings.TestNames; len(m) > 0 {
		opts = append(opts, normalize.WithNameSynonyms(m))
	}
	if m := c.Normalizer.CustomMappings.Units; len(m) > 0 {
		opts = append(opts, normalize.WithUnitSynonyms(m))
	}
	return opts
}

// ExportOptions returns the CSV settings.
func (c *Config) ExportOptions() (export.Options, error) {
	sep, err := ParseSeparator(c.Output.Separator)
	if err != nil {
		return export.Options{}, err
	}
	return export.Options{Separator: sep, BOM: c.Output.BOM}, nil
}

// Formats returns the configured export formats.
func (c *Config) Formats() ([]export.Format, error) {
	return export.ParseFormats(c.Output.Formats)
}

// ParsePatientSource accepts "auto", "sheet", "sheet_name", "filename" and
// "file". Empty means auto.
func ParsePatientSource(name string) (extract.PatientSource, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return extract.PatientSourceAuto, nil
	case "sheet", "sheet_name":
		return extract.PatientSourceSheet, nil
	case "filename", "file":
		return extract.PatientSourceFileName, nil
	default:
		return "", fmt.Errorf("%w: %q", errInvalidPatientSource, name)
	}
}

// ParseSeparator accepts one character, or "tab" / `\t`.
func ParseSeparator(sep string) (rune, error) {
	switch sep {
	case "":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(sep) != 1 {
		return 0, fmt.Errorf("%w: %q", errInvalidSeparator, sep)
	}
	r, _ := utf8.DecodeRuneInString(sep)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: %q", errInvalidSeparator, sep)
	}
	return r, nil
}
