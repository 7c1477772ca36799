/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"slices"
	"strings"

	"github.com/liamsdat/LabXtract/lab"
)

// Role is the meaning of a table column.
type Role string

// Role values, in resolution priority order.
const (
	RoleTestName   Role = "test_name"
	RoleResult     Role = "result"
	RoleUnit       Role = "unit"
	RoleReference  Role = "reference"
	RoleFlag       Role = "flag"
	RoleSampleDate Role = "sample_date"
	RoleResultDate Role = "result_date"
	RoleDoctor     Role = "doctor"
	RoleNotes      Role = "notes"
)

// Roles lists every role in priority order.
var Roles = []Role{
	RoleTestName, RoleResult, RoleUnit, RoleReference, RoleFlag,
	RoleSampleDate, RoleResultDate, RoleDoctor, RoleNotes,
}

// ParseRole maps a role name to a Role.
func ParseRole(name string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(Roles, role) {
		return role, true
	}
	return "", false
}

// RoleKeyword lists the header fragments that identify one role.
type RoleKeyword struct {
	Role     Role
	Keywords []string
}

// RoleKeywords is an ordered keyword table; earlier roles win ambiguous cells.
type RoleKeywords []RoleKeyword

// DefaultRoleKeywords returns the built-in header keyword table.
func DefaultRoleKeywords() RoleKeywords {
	return RoleKeywords{
		{RoleTestName, []string{"показатель", "анализ", "название", "наименование", "test", "parameter", "name"}},
		{RoleResult, []string{"результат", "значение", "value", "result", "уровень", "level"}},
		{RoleUnit, []string{"ед.", "ед.изм", "единиц", "unit", "измерен", "measure"}},
		{RoleReference, []string{"норма", "нормы", "референс", "reference", "диапазон", "range"}},
		{RoleFlag, []string{"флаг", "flag", "статус", "status", "отклонение"}},
		{RoleSampleDate, []string{"дата взятия", "дата исслед", "дата забора", "sample date", "collection"}},
		{RoleResultDate, []string{"дата выполн", "дата результата", "result date", "report date"}},
		{RoleDoctor, []string{"врач", "doctor", "исполнитель", "executor", "лаборант"}},
		{RoleNotes, []string{"примечание", "комментарий", "notes", "comment"}},
	}
}

// With returns a copy of the table with one role's keywords replaced.
func (k RoleKeywords) With(role Role, keywords []string) RoleKeywords {
	out := make(RoleKeywords, 0, len(k))
	replaced := false
	for _, entry := range k {
		if entry.Role == role {
			entry = RoleKeyword{Role: role, Keywords: lowerAll(keywords)}
			replaced = true
		}
		out = append(out, entry)
	}
	if !replaced {
		out = append(out, RoleKeyword{Role: role, Keywords: lowerAll(keywords)})
	}
	return out
}

// For returns the keywords for a role.
func (k RoleKeywords) For(role Role) []string {
	for _, entry := range k {
		if entry.Role == role {
			return entry.Keywords
		}
	}
	return nil
}

// ColumnRoleMap maps a role to its 0-based column index within a table.
type ColumnRoleMap map[Role]int

// Index returns the column for a role.
func (m ColumnRoleMap) Index(role Role) (int, bool) {
	idx, ok := m[role]
	return idx, ok
}

// ResolveColumns assigns roles to header cells. Cells matching a single role
// are assigned first, left to right; ambiguous cells then take their first
// free role. A role gets at most one column and a column at most one role.
func ResolveColumns(header []string, table RoleKeywords) ColumnRoleMap {
	matches := make([][]Role, len(header))
	for col, cell := range header {
		text := strings.ToLower(strings.TrimSpace(cell))
		if text == "" {
			continue
		}
		for _, entry := range table {
			if lab.ContainsAnyKeyword(text, entry.Keywords) {
				matches[col] = append(matches[col], entry.Role)
			}
		}
	}

	columns := ColumnRoleMap{}
	taken := make([]bool, len(header))

	for col, roles := range matches {
		if len(roles) != 1 {
			continue
		}
		if _, ok := columns[roles[0]]; !ok {
			columns[roles[0]] = col
			taken[col] = true
		}
	}

	for col, roles := range matches {
		if taken[col] || len(roles) < 2 {
			continue
		}
		for _, role := range roles {
			if _, ok := columns[role]; !ok {
				columns[role] = col
				break
			}
		}
	}

	return columns
}

func lowerAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if keyword = strings.ToLower(strings.TrimSpace(keyword)); keyword != "" {
			out = append(out, keyword)
		}
	}
	return out
}
