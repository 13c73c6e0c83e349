// Package dashboard renders the processed snapshot as interactive
// charts: three views over a caller-selected month range.
package dashboard

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	talib "github.com/markcheno/go-talib"

	"macrostat/internal/series"
	"macrostat/internal/store/snapshot"
)

// Dataset holds the in-memory copy of the snapshot behind a lock so the
// watcher can swap it while requests read.
type Dataset struct {
	mu    sync.RWMutex
	store *snapshot.Store
	table series.Table
}

func NewDataset(store *snapshot.Store) *Dataset {
	return &Dataset{store: store}
}

// Reload re-reads the snapshot file. A missing file is an error here:
// the dashboard has nothing to show until the collector has run.
func (d *Dataset) Reload() error {
	table, ok, err := d.store.Load()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("snapshot %s not found, run the collector first", d.store.Path())
	}
	d.mu.Lock()
	d.table = table
	d.mu.Unlock()
	return nil
}

func (d *Dataset) Table() series.Table {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.table
}

func (d *Dataset) Path() string { return d.store.Path() }

// FilterRange keeps rows with start <= date <= end.
func FilterRange(t series.Table, start, end time.Time) series.Table {
	out := series.Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if row.Date.Before(start) || row.Date.After(end) {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// Summary carries the KPI header values for the selected range: levels
// at the range end and movement since the range start. KPIs are NaN
// when their series has no data in the range.
type Summary struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	UnemploymentRate  float64 `json:"unemployment_rate"`
	UnemploymentDelta float64 `json:"unemployment_delta_pts"`
	InflationPct      float64 `json:"inflation_pct"`
	NominalWagePct    float64 `json:"nominal_wage_pct"`
	RealWagePct       float64 `json:"real_wage_pct"`
}

// MarshalJSON encodes NaN KPIs as null; encoding/json refuses NaN and
// would otherwise abort the response mid-write.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start             time.Time `json:"start"`
		End               time.Time `json:"end"`
		UnemploymentRate  *float64  `json:"unemployment_rate"`
		UnemploymentDelta *float64  `json:"unemployment_delta_pts"`
		InflationPct      *float64  `json:"inflation_pct"`
		NominalWagePct    *float64  `json:"nominal_wage_pct"`
		RealWagePct       *float64  `json:"real_wage_pct"`
	}{
		Start:             s.Start,
		End:               s.End,
		UnemploymentRate:  finiteOrNil(s.UnemploymentRate),
		UnemploymentDelta: finiteOrNil(s.UnemploymentDelta),
		InflationPct:      finiteOrNil(s.InflationPct),
		NominalWagePct:    finiteOrNil(s.NominalWagePct),
		RealWagePct:       finiteOrNil(s.RealWagePct),
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Summarize compares the first and last row of the filtered table. ok
// is false when fewer than two rows are in range.
func Summarize(t series.Table) (Summary, bool) {
	if len(t.Rows) < 2 {
		return Summary{}, false
	}
	first, last := t.Rows[0], t.Rows[len(t.Rows)-1]
	s := Summary{Start: first.Date, End: last.Date}

	s.UnemploymentRate = series.Numeric(last.Value(series.NameUnemployment))
	s.UnemploymentDelta = s.UnemploymentRate - series.Numeric(first.Value(series.NameUnemployment))
	s.InflationPct = pctChange(
		series.Numeric(first.Value(series.NameCPI)),
		series.Numeric(last.Value(series.NameCPI)))
	s.NominalWagePct = pctChange(
		series.Numeric(first.Value(series.ColWeeklyEarnings)),
		series.Numeric(last.Value(series.ColWeeklyEarnings)))
	s.RealWagePct = pctChange(
		series.Numeric(first.Value(series.ColRealWeeklyEarnings)),
		series.Numeric(last.Value(series.ColRealWeeklyEarnings)))
	return s, true
}

func pctChange(from, to float64) float64 {
	if math.IsNaN(from) || math.IsNaN(to) || from == 0 {
		return math.NaN()
	}
	return (to - from) / from * 100
}

// Column extracts one column as floats, NaN for missing cells.
func Column(t series.Table, name string) []float64 {
	vals := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		vals[i] = series.Numeric(row.Value(name))
	}
	return vals
}

// Rebase expresses vals as cumulative percent change from the first
// finite value (base = 0%). NaN entries stay NaN.
func Rebase(vals []float64) []float64 {
	base := math.NaN()
	for _, v := range vals {
		if !math.IsNaN(v) && v != 0 {
			base = v
			break
		}
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || math.IsNaN(base) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (v - base) / base * 100
	}
	return out
}

// Trend smooths vals with a simple moving average; nil when the range
// is too short for the window.
func Trend(vals []float64, period int) []float64 {
	if period < 2 || len(vals) < period {
		return nil
	}
	for _, v := range vals {
		if math.IsNaN(v) {
			return nil
		}
	}
	out := talib.Sma(vals, period)
	for i := 0; i < period-1 && i < len(out); i++ {
		out[i] = math.NaN() // warm-up window, zero would plot as data
	}
	return out
}

func monthLabels(t series.Table) []string {
	labels := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		labels[i] = row.Date.Format("Jan 2006")
	}
	return labels
}
