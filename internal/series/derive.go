package series

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric coerces a raw cell to a float, returning NaN for anything
// unparsable (the API's "-" placeholder, empty cells, garbage).
// ParseFloat accepts "Inf" spellings, which are as meaningless here as
// garbage and would panic decimal.NewFromFloat, so they become NaN too.
func Numeric(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// Derive recomputes the two earnings columns for every row:
//
//	Weekly Earnings      = Hourly Earnings * Hours Worked
//	Real Weekly Earnings = Weekly Earnings / CPI(row) * CPI(latest row)
//
// both rounded to two decimals. The latest-row CPI anchors the whole
// table to current dollars, so Derive must run again whenever the date
// range extends. NaN in either factor makes both derived cells NaN
// (persisted as empty); the row itself is kept.
func Derive(t *Table) {
	for _, col := range []string{ColWeeklyEarnings, ColRealWeeklyEarnings} {
		if !t.HasColumn(col) {
			t.Columns = append(t.Columns, col)
		}
	}
	if t.Empty() {
		return
	}
	t.SortByDate()

	anchorCPI := Numeric(t.Rows[len(t.Rows)-1].Value(NameCPI))
	last := len(t.Rows) - 1
	for i := range t.Rows {
		row := &t.Rows[i]
		if row.Values == nil {
			row.Values = make(map[string]string)
		}
		hourly := Numeric(row.Value(NameHourlyEarnings))
		hours := Numeric(row.Value(NameHoursWorked))
		if math.IsNaN(hourly) || math.IsNaN(hours) {
			row.Values[ColWeeklyEarnings] = ""
			row.Values[ColRealWeeklyEarnings] = ""
			continue
		}
		weekly := decimal.NewFromFloat(hourly).Mul(decimal.NewFromFloat(hours)).Round(2)
		row.Values[ColWeeklyEarnings] = weekly.StringFixed(2)

		if i == last {
			// CPI ratio is exactly 1 at the anchor row, even when the
			// anchor month's CPI itself is missing: the latest nominal
			// value is already in current dollars by definition.
			row.Values[ColRealWeeklyEarnings] = weekly.StringFixed(2)
			continue
		}
		cpi := Numeric(row.Value(NameCPI))
		if math.IsNaN(cpi) || cpi == 0 || math.IsNaN(anchorCPI) {
			row.Values[ColRealWeeklyEarnings] = ""
			continue
		}
		real := weekly.
			Div(decimal.NewFromFloat(cpi)).
			Mul(decimal.NewFromFloat(anchorCPI)).
			Round(2)
		row.Values[ColRealWeeklyEarnings] = real.StringFixed(2)
	}
}
