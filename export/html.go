/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/liamsdat/LabXtract/lab"
)

const pageTitle = "Lab reports"

var statusColors = map[lab.Status]string{
	lab.StatusNormal:   "#5470c6",
	lab.StatusLow:      "#fac858",
	lab.StatusHigh:     "#ee6666",
	lab.StatusAbnormal: "#9a1b1b",
}

type htmlExporter struct{}

func (htmlExporter) Format() Format { return FormatHTML }

// Write renders a page with one bar chart per report. Each bar is the value's
// position inside its reference range, so 0 sits on Ref Min and 1 on Ref Max.
// Tests without a two-sided numeric range are left out.
func (htmlExporter) Write(w io.Writer, reports []*lab.LabReport) error {
	page := components.NewPage()
	page.PageTitle = pageTitle

	for _, report := range reports {
		if bar := reportChart(report); bar != nil {
			page.AddCharts(bar)
		}
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}

func reportChart(report *lab.LabReport) *charts.Bar {
	var xAxis []string
	var data []opts.BarData

	for _, test := range report.Tests() {
		position, ok := RangePosition(test)
		if !ok {
			continue
		}

		item := opts.BarData{
			Name:  fmt.Sprintf("%s %s", formatFloat(test.NumericValue), test.Unit),
			Value: math.Round(position*100) / 100,
		}
		if color, ok := statusColors[test.Status]; ok {
			item.ItemStyle = &opts.ItemStyle{Color: color}
		}

		xAxis = append(xAxis, test.Name)
		data = append(data, item)
	}

	if len(data) == 0 {
		return nil
	}

	title := report.Patient.FullName
	if title == "" {
		title = report.SheetName
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: report.SourceFile,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "position in range",
		}),
	)

	markLineItems := []interface{}{
		opts.MarkLineNameYAxisItem{Name: "Ref Min", YAxis: 0},
		opts.MarkLineNameYAxisItem{Name: "Ref Max", YAxis: 1},
	}

	// no arrows, dashed gray lines
	seriesOpts := []charts.SeriesOpts{
		func(s *charts.SingleSeries) {
			s.MarkLines = &opts.MarkLines{
				Data: markLineItems,
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
		},
	}

	bar.SetXAxis(xAxis).
		AddSeries(title, data).
		SetSeriesOptions(seriesOpts...)

	return bar
}

// RangePosition maps a numeric value onto its reference range, 0 at the
// lower bound and 1 at the upper.
func RangePosition(test lab.LabTest) (float64, bool) {
	if test.Kind != lab.ValueNumeric || test.NumericValue == nil || test.ReferenceMin == nil || test.ReferenceMax == nil {
		return 0, false
	}
	lo, hi := *test.ReferenceMin, *test.ReferenceMax
	if hi <= lo {
		return 0, false
	}
	return (*test.NumericValue - lo) / (hi - lo), true
}
