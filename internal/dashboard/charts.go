package dashboard

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"macrostat/internal/series"
)

// View identifies one dashboard page.
type View struct {
	Slug  string
	Title string
}

var Views = []View{
	{Slug: "wages-vs-inflation", Title: "Wages vs Inflation"},
	{Slug: "hours-pay", Title: "Work Hours & Pay"},
	{Slug: "employment", Title: "Employment Market"},
}

// DefaultView is where GET / lands.
var DefaultView = Views[0]

func ViewBySlug(slug string) (View, bool) {
	for _, v := range Views {
		if v.Slug == slug {
			return v, true
		}
	}
	return View{}, false
}

const (
	colorBackground    = "#0b1120"
	colorTextPrimary   = "#eceff4"
	colorTextSecondary = "#9ca3af"
	colorInflation     = "#f87171"
	colorNominal       = "#3b82f6"
	colorReal          = "#34d399"
	colorHours         = "#a78bfa"
	colorHourly        = "#fbbf24"
	colorEmployment    = "#22d3ee"
	colorUnemployment  = "#fb7185"
	colorTrend         = "#f472b6"

	chartWidthPx  = 1280
	chartHeightPx = 560

	trendMonths = 12
)

// BuildPageHTML renders the named view for the filtered table into a
// standalone HTML page.
func BuildPageHTML(view View, t series.Table, sum Summary) ([]byte, error) {
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("no rows in the selected range")
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.PageTitle = view.Title

	switch view.Slug {
	case "wages-vs-inflation":
		page.AddCharts(buildWageInflationChart(t, sum))
	case "hours-pay":
		page.AddCharts(buildHoursPayChart(t, sum))
	case "employment":
		page.AddCharts(buildEmploymentChart(t, sum))
	default:
		return nil, fmt.Errorf("unknown view %q", view.Slug)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildWageInflationChart plots CPI, nominal and real weekly earnings
// rebased to the range start, plus a 12-month trend of real wages when
// the range is long enough.
func buildWageInflationChart(t series.Table, sum Summary) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(baseOptions(
		"Wages vs Inflation",
		fmt.Sprintf("Cumulative change since %s | %s", sum.Start.Format("Jan 2006"), kpiLine(sum)),
		"% change",
	)...)

	xAxis := monthLabels(t)
	cpi := Rebase(Column(t, series.NameCPI))
	nominal := Rebase(Column(t, series.ColWeeklyEarnings))
	real := Rebase(Column(t, series.ColRealWeeklyEarnings))

	line.SetXAxis(xAxis)
	line.AddSeries("CPI", toLineData(cpi),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorInflation, Width: 2}))
	line.AddSeries("Nominal Weekly Earnings", toLineData(nominal),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorNominal, Width: 2}))
	line.AddSeries("Real Weekly Earnings", toLineData(real),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorReal, Width: 3}))

	if trend := Trend(real, trendMonths); trend != nil {
		line.AddSeries(fmt.Sprintf("Real Earnings %dm Trend", trendMonths), toLineData(trend),
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorTrend, Width: 2, Type: "dashed"}))
	}

	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line
}

// buildHoursPayChart plots hourly earnings against weekly hours on a
// second axis, the raw levels rather than rebased growth.
func buildHoursPayChart(t series.Table, sum Summary) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(baseOptions(
		"Work Hours & Pay",
		fmt.Sprintf("%s to %s | %s", sum.Start.Format("Jan 2006"), sum.End.Format("Jan 2006"), kpiLine(sum)),
		"$ per hour",
	)...)
	line.ExtendYAxis(opts.YAxis{
		Name:      "hours per week",
		Type:      "value",
		Scale:     opts.Bool(true),
		AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
		SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
	})

	line.SetXAxis(monthLabels(t))
	line.AddSeries("Hourly Earnings", toLineData(Column(t, series.NameHourlyEarnings)),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorHourly, Width: 2}))
	line.AddSeries("Weekly Hours", toLineData(Column(t, series.NameHoursWorked)),
		charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorHours, Width: 2}))

	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line
}

// buildEmploymentChart plots the employment level (thousands) with the
// unemployment rate on a second axis.
func buildEmploymentChart(t series.Table, sum Summary) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(baseOptions(
		"Employment Market",
		fmt.Sprintf("%s to %s | %s", sum.Start.Format("Jan 2006"), sum.End.Format("Jan 2006"), kpiLine(sum)),
		"employed, thousands",
	)...)
	line.ExtendYAxis(opts.YAxis{
		Name:      "unemployment %",
		Type:      "value",
		Scale:     opts.Bool(true),
		AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
		SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
	})

	line.SetXAxis(monthLabels(t))
	line.AddSeries("Employment Level", toLineData(Column(t, series.NameEmployment)),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorEmployment, Width: 2}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.15)}))
	line.AddSeries("Unemployment Rate", toLineData(Column(t, series.NameUnemployment)),
		charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorUnemployment, Width: 2}))

	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line
}

func baseOptions(title, subtitle, yAxisName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:           types.ThemeWesteros,
			Width:           fmt.Sprintf("%dpx", chartWidthPx),
			Height:          fmt.Sprintf("%dpx", chartHeightPx),
			BackgroundColor: colorBackground,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         title,
			Subtitle:      subtitle,
			Left:          "left",
			Top:           "10",
			TitleStyle:    &opts.TextStyle{Color: colorTextPrimary, FontSize: 18},
			SubtitleStyle: &opts.TextStyle{Color: colorTextSecondary},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Top:       "60",
			TextStyle: &opts.TextStyle{Color: colorTextPrimary},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      yAxisName,
			Scale:     opts.Bool(true),
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: colorTextSecondary, Opacity: opts.Float(0.2)}},
		}),
	}
}

// kpiLine formats the headline numbers for chart subtitles. NaN KPIs
// (series missing in the range) are shown as n/a.
func kpiLine(sum Summary) string {
	return fmt.Sprintf("Unemployment %s (%s pts) | Inflation %s | Nominal wages %s | Real wages %s",
		fmtNum(sum.UnemploymentRate, "%.1f%%"),
		fmtNum(sum.UnemploymentDelta, "%+.1f"),
		fmtNum(sum.InflationPct, "%+.1f%%"),
		fmtNum(sum.NominalWagePct, "%+.1f%%"),
		fmtNum(sum.RealWagePct, "%+.1f%%"))
}

func fmtNum(v float64, format string) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf(format, v)
}

func toLineData(vals []float64) []opts.LineData {
	data := make([]opts.LineData, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			data[i] = opts.LineData{Value: nil}
			continue
		}
		data[i] = opts.LineData{Value: round(v, 2)}
	}
	return data
}

func round(val float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(val*scale) / scale
}
