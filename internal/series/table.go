// Package series holds the wide per-month table model for the BLS
// indicators macrostat tracks, plus the reshaping and derivation logic
// that turns raw API payloads into snapshot rows.
package series

import (
	"sort"
	"time"
)

// Display names of the tracked series and of the derived columns. The
// snapshot column set is part of the contract with downstream readers.
const (
	NameUnemployment   = "Unemployment Rate"
	NameEmployment     = "Employment Level"
	NameCPI            = "CPI"
	NameHourlyEarnings = "Hourly Earnings"
	NameHoursWorked    = "Hours Worked"

	ColWeeklyEarnings     = "Weekly Earnings"
	ColRealWeeklyEarnings = "Real Weekly Earnings"
)

// Observation is a single {year, period, value} entry of a series block.
// Value stays a raw string: the API uses placeholders like "-" for
// missing data.
type Observation struct {
	Year   string `json:"year"`
	Period string `json:"period"`
	Value  string `json:"value"`
}

// Block is one per-series slice of a BLS response.
type Block struct {
	SeriesID     string        `json:"seriesID"`
	Observations []Observation `json:"data"`
}

// Point is one long-format record: a (month, series) pair.
type Point struct {
	Name  string
	Date  time.Time
	Value string
}

// Row is one calendar month of the wide table. Values maps series
// display name to the raw value string; missing cells are absent keys.
type Row struct {
	Date   time.Time
	Values map[string]string
}

// Value returns the cell for col, or "" when the cell is missing.
func (r Row) Value(col string) string {
	if r.Values == nil {
		return ""
	}
	return r.Values[col]
}

// Table is an ordered wide table: at most one row per month, dates
// ascending, with a fixed column order.
type Table struct {
	Columns []string
	Rows    []Row
}

func (t Table) Empty() bool { return len(t.Rows) == 0 }

// LatestDate returns the max date of the table; ok is false when the
// table has no rows.
func (t Table) LatestDate() (time.Time, bool) {
	if len(t.Rows) == 0 {
		return time.Time{}, false
	}
	latest := t.Rows[0].Date
	for _, r := range t.Rows[1:] {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest, true
}

// SortByDate orders rows ascending in place.
func (t *Table) SortByDate() {
	sort.Slice(t.Rows, func(i, j int) bool {
		return t.Rows[i].Date.Before(t.Rows[j].Date)
	})
}

// HasColumn reports whether col is part of the table's column set.
func (t Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// MonthDate builds the canonical date key: first day of the month, UTC.
func MonthDate(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
