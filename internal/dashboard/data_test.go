package dashboard

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macrostat/internal/series"
	"macrostat/internal/store/snapshot"
)

// sampleTable builds a derived table with n months starting 2023-01,
// values drifting upward so growth numbers are nonzero.
func sampleTable(n int) series.Table {
	t := series.Table{Columns: series.DefaultCatalog().Columns()}
	for i := 0; i < n; i++ {
		date := series.MonthDate(2023, 1).AddDate(0, i, 0)
		t.Rows = append(t.Rows, series.Row{Date: date, Values: map[string]string{
			series.NameCPI:            fmt.Sprintf("%.1f", 300.0+float64(i)),
			series.NameUnemployment:   fmt.Sprintf("%.1f", 3.5+0.1*float64(i)),
			series.NameEmployment:     fmt.Sprintf("%d", 161000+50*i),
			series.NameHourlyEarnings: fmt.Sprintf("%.2f", 28.00+0.10*float64(i)),
			series.NameHoursWorked:    "34.3",
		}})
	}
	series.Derive(&t)
	return t
}

func TestFilterRange(t *testing.T) {
	table := sampleTable(12)

	got := FilterRange(table, series.MonthDate(2023, 3), series.MonthDate(2023, 6))
	require.Len(t, got.Rows, 4, "bounds are inclusive")
	assert.Equal(t, series.MonthDate(2023, 3), got.Rows[0].Date)
	assert.Equal(t, series.MonthDate(2023, 6), got.Rows[3].Date)
	assert.Equal(t, table.Columns, got.Columns)

	empty := FilterRange(table, series.MonthDate(2030, 1), series.MonthDate(2030, 12))
	assert.Empty(t, empty.Rows)
}

func TestSummarize(t *testing.T) {
	table := sampleTable(12)

	sum, ok := Summarize(table)
	require.True(t, ok)
	assert.Equal(t, series.MonthDate(2023, 1), sum.Start)
	assert.Equal(t, series.MonthDate(2023, 12), sum.End)
	assert.InDelta(t, 4.6, sum.UnemploymentRate, 0.01)
	assert.InDelta(t, 1.1, sum.UnemploymentDelta, 0.01)
	assert.InDelta(t, 11.0/300.0*100, sum.InflationPct, 0.01)
	assert.Greater(t, sum.NominalWagePct, 0.0)
	assert.Less(t, sum.RealWagePct, sum.NominalWagePct, "inflation outpaces a flat-hours raise here")

	_, ok = Summarize(sampleTable(1))
	assert.False(t, ok, "one row has no range to compare")
}

func TestSummarizeMissingSeries(t *testing.T) {
	table := series.Table{
		Columns: series.DefaultCatalog().Columns(),
		Rows: []series.Row{
			{Date: series.MonthDate(2023, 1), Values: map[string]string{series.NameCPI: "300.0"}},
			{Date: series.MonthDate(2023, 2), Values: map[string]string{series.NameCPI: "301.0"}},
		},
	}
	sum, ok := Summarize(table)
	require.True(t, ok)
	assert.True(t, math.IsNaN(sum.UnemploymentRate))
	assert.True(t, math.IsNaN(sum.NominalWagePct))
	assert.False(t, math.IsNaN(sum.InflationPct))
}

func TestRebase(t *testing.T) {
	got := Rebase([]float64{200, 210, 220})
	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got[0])
	assert.InDelta(t, 5.0, got[1], 1e-9)
	assert.InDelta(t, 10.0, got[2], 1e-9)

	withGap := Rebase([]float64{math.NaN(), 200, 230})
	assert.True(t, math.IsNaN(withGap[0]), "gaps stay gaps")
	assert.Equal(t, 0.0, withGap[1], "base is the first finite value")
	assert.InDelta(t, 15.0, withGap[2], 1e-9)

	allNaN := Rebase([]float64{math.NaN(), math.NaN()})
	assert.True(t, math.IsNaN(allNaN[1]))
}

func TestTrend(t *testing.T) {
	vals := make([]float64, 24)
	for i := range vals {
		vals[i] = float64(i)
	}
	got := Trend(vals, 12)
	require.Len(t, got, 24)
	assert.True(t, math.IsNaN(got[10]), "warm-up window is masked")
	assert.InDelta(t, 5.5, got[11], 1e-9, "mean of 0..11")
	assert.InDelta(t, 17.5, got[23], 1e-9, "mean of 12..23")

	assert.Nil(t, Trend(vals[:6], 12), "range shorter than the window")
	vals[3] = math.NaN()
	assert.Nil(t, Trend(vals, 12), "gaps disable the trend line")
}

func TestBuildPageHTML(t *testing.T) {
	table := sampleTable(24)
	sum, ok := Summarize(table)
	require.True(t, ok)

	for _, view := range Views {
		t.Run(view.Slug, func(t *testing.T) {
			html, err := BuildPageHTML(view, table, sum)
			require.NoError(t, err)
			assert.Contains(t, string(html), "echarts")
			assert.Contains(t, string(html), view.Title)
		})
	}

	t.Run("unknown view", func(t *testing.T) {
		_, err := BuildPageHTML(View{Slug: "nope"}, table, sum)
		assert.Error(t, err)
	})

	t.Run("empty range", func(t *testing.T) {
		_, err := BuildPageHTML(DefaultView, series.Table{}, Summary{})
		assert.Error(t, err)
	})
}

func TestDatasetReload(t *testing.T) {
	store := snapshot.NewStore(filepath.Join(t.TempDir(), "data.csv"))
	data := NewDataset(store)

	err := data.Reload()
	require.Error(t, err, "dashboard refuses to start without a snapshot")
	assert.Contains(t, err.Error(), "run the collector first")

	require.NoError(t, store.Save(sampleTable(6)))
	require.NoError(t, data.Reload())
	assert.Len(t, data.Table().Rows, 6)
}
