/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package normalize

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/liamsdat/LabXtract/lab"
)

// synonym is one lookup key and the canonical form it maps to.
type synonym struct {
	key       string
	canonical string
}

// Normalizer canonicalizes test names, units, qualitative values and flags.
// It is immutable after New and safe for concurrent use.
type Normalizer struct {
	names  []synonym
	units  []synonym
	values []synonym
	flags  []synonym
	fixes  []acronymFix
}

type acronymFix struct {
	re          *regexp.Regexp
	replacement string
}

// Option customizes a Normalizer.
type Option func(*options)

type options struct {
	names map[string]string
	units map[string]string
}

// WithNameSynonyms adds name mappings that are tried before the built-in table.
func WithNameSynonyms(mapping map[string]string) Option {
	return func(o *options) {
		o.names = mapping
	}
}

// WithUnitSynonyms adds unit mappings that are tried before the built-in table.
func WithUnitSynonyms(mapping map[string]string) Option {
	return func(o *options) {
		o.units = mapping
	}
}

// New builds a Normalizer from the built-in tables and any custom mappings.
func New(opts ...Option) *Normalizer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n := &Normalizer{
		names:  append(customSynonyms(o.names, strings.ToLower), longestFirst(testNameGroups, strings.ToLower)...),
		units:  append(customSynonyms(o.units, CleanUnit), longestFirst(unitGroups, CleanUnit)...),
		values: inOrder(textValueGroups),
		flags:  inOrder(flagGroups),
	}
	for _, fix := range acronymFixes {
		n.fixes = append(n.fixes, acronymFix{re: regexp.MustCompile(fix.pattern), replacement: fix.replacement})
	}

	return n
}

// Test returns a normalized copy of a test with category and status
// re-derived. Normalizing an already normalized test changes nothing.
func (n *Normalizer) Test(test lab.LabTest) lab.LabTest {
	source := test.OriginalName
	if source == "" {
		source = test.Name
	}
	if source != "" {
		test.Name = n.Name(source)
	}

	if test.Unit != "" {
		test.Unit = n.Unit(test.Unit)
	}
	if test.Kind == lab.ValueText && test.TextValue != "" {
		test.TextValue = n.TextValue(test.TextValue)
	}
	if test.Flag != "" {
		test.Flag = n.Flag(test.Flag)
	}

	// A section-assigned category survives when the name itself says nothing.
	if category := lab.InferCategory(test.Name); category != lab.CategoryOther || test.Category == "" {
		test.Category = category
	}
	test.DeriveStatus()

	return test
}

// Report normalizes every test of a report in place.
func (n *Normalizer) Report(report *lab.LabReport) {
	report.UpdateTests(n.Test)
}

// Name maps a test name to its canonical form, or title-cases it when unknown.
func (n *Normalizer) Name(name string) string {
	cleaned := CleanName(name)
	if cleaned == "" {
		return cleaned
	}

	if canonical, ok := lookup(n.names, strings.ToLower(cleaned)); ok {
		return canonical
	}

	logger.Debug("unmapped test name", "name", cleaned)
	return n.capitalize(cleaned)
}

// Unit maps a unit to its canonical form. Unknown units are only trimmed.
func (n *Normalizer) Unit(unit string) string {
	if canonical, ok := lookup(n.units, CleanUnit(unit)); ok {
		return canonical
	}
	return strings.TrimSpace(unit)
}

// TextValue maps a qualitative result to its canonical form.
func (n *Normalizer) TextValue(value string) string {
	if canonical, ok := lookup(n.values, strings.ToLower(strings.TrimSpace(value))); ok {
		return canonical
	}
	return value
}

// Flag maps a lab flag to its canonical form.
func (n *Normalizer) Flag(flag string) string {
	lower := strings.ToLower(strings.TrimSpace(flag))
	if canonical, ok := exactFlags[lower]; ok {
		return canonical
	}
	if canonical, ok := lookup(n.flags, lower); ok {
		return canonical
	}
	return flag
}

// CleanName collapses whitespace and trims edge punctuation.
func CleanName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return strings.Trim(name, " :;,-.")
}

// capitalize builds its own Caser per call since a Caser must not be shared
// between goroutines.
func (n *Normalizer) capitalize(name string) string {
	title := cases.Title(language.Russian)
	words := strings.Fields(name)
	for i, word := range words {
		if isAcronym(word) {
			continue
		}
		words[i] = title.String(word)
	}

	result := strings.Join(words, " ")
	for _, fix := range n.fixes {
		result = fix.re.ReplaceAllString(result, fix.replacement)
	}
	return result
}

// isAcronym reports whether a word has letters and all of them are upper case.
func isAcronym(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			hasLetter = true
		}
	}
	return hasLetter
}

func lookup(table []synonym, text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, entry := range table {
		if lab.ContainsKeyword(text, entry.key) {
			return entry.canonical, true
		}
	}
	return "", false
}

// longestFirst flattens groups and orders keys by length so specific entries
// ("глюкоза в моче") win over their prefixes ("глюкоза").
func longestFirst(groups []synonymGroup, clean func(string) string) []synonym {
	table := flatten(groups, clean)
	slices.SortStableFunc(table, func(a, b synonym) int {
		return utf8.RuneCountInString(b.key) - utf8.RuneCountInString(a.key)
	})
	return table
}

func inOrder(groups []synonymGroup) []synonym {
	return flatten(groups, strings.ToLower)
}

func flatten(groups []synonymGroup, clean func(string) string) []synonym {
	var table []synonym
	seen := make(map[string]bool)
	add := func(key, canonical string) {
		key = clean(key)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		table = append(table, synonym{key: key, canonical: canonical})
	}

	for _, group := range groups {
		for _, variant := range group.variants {
			add(variant, group.canonical)
		}
		add(group.canonical, group.canonical)
	}
	return table
}

func customSynonyms(mapping map[string]string, clean func(string) string) []synonym {
	if len(mapping) == 0 {
		return nil
	}

	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	groups := make([]synonymGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, synonymGroup{canonical: mapping[key], variants: []string{key}})
	}
	return longestFirst(groups, clean)
}
