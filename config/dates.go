/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package config

import "strings"

// Day and month map to the unpadded Go forms so "5.4.2025" still parses.
var strftimeReplacer = strings.NewReplacer(
	"%d", "2",
	"%m", "1",
	"%Y", "2006",
	"%y", "06",
	"%H", "15",
	"%M", "04",
	"%S", "05",
	"%b", "Jan",
	"%B", "January",
	"%%", "%",
)

// DateLayouts converts strftime patterns such as "%d.%m.%Y" into Go layouts.
// Entries without a '%' are taken as Go layouts already.
func DateLayouts(formats []string) []string {
	layouts := make([]string, 0, len(formats))
	for _, format := range formats {
		format = strings.TrimSpace(format)
		if format == "" {
			continue
		}
		if strings.Contains(format, "%") {
			format = strftimeReplacer.Replace(format)
		}
		layouts = append(layouts, format)
	}
	return layouts
}
