package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPivotOneRowPerMonth(t *testing.T) {
	points := []Point{
		{Name: NameCPI, Date: MonthDate(2020, 2), Value: "258.7"},
		{Name: NameUnemployment, Date: MonthDate(2020, 1), Value: "3.5"},
		{Name: NameCPI, Date: MonthDate(2020, 1), Value: "257.9"},
		{Name: NameUnemployment, Date: MonthDate(2020, 2), Value: "3.5"},
	}

	table := Pivot(points, DefaultCatalog())
	require.Len(t, table.Rows, 2)
	assert.True(t, table.Rows[0].Date.Before(table.Rows[1].Date))
	assert.Equal(t, "257.9", table.Rows[0].Value(NameCPI))
	assert.Equal(t, "3.5", table.Rows[1].Value(NameUnemployment))

	seen := map[int64]bool{}
	for _, row := range table.Rows {
		assert.False(t, seen[row.Date.Unix()], "duplicate month %s", row.Date)
		seen[row.Date.Unix()] = true
	}
}

func TestPivotDuplicateResolution(t *testing.T) {
	// Overlapping chunk windows can repeat a (date, series) pair with a
	// revised value; the last point seen must win.
	points := []Point{
		{Name: NameCPI, Date: MonthDate(2017, 12), Value: "246.5"},
		{Name: NameCPI, Date: MonthDate(2017, 12), Value: "246.8"},
	}

	table := Pivot(points, DefaultCatalog())
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "246.8", table.Rows[0].Value(NameCPI))
}

func TestPivotEmptyInput(t *testing.T) {
	table := Pivot(nil, DefaultCatalog())
	assert.True(t, table.Empty())
	assert.Equal(t, DefaultCatalog().Columns(), table.Columns)
}

func TestPivotColumnSetStable(t *testing.T) {
	// A fetch that returned only CPI still yields the full known column
	// set, with passthrough series appended after it.
	points := []Point{
		{Name: NameCPI, Date: MonthDate(2021, 3), Value: "264.9"},
		{Name: "XYZ0000000042", Date: MonthDate(2021, 3), Value: "7"},
	}

	table := Pivot(points, DefaultCatalog())
	want := append(DefaultCatalog().Columns(), "XYZ0000000042")
	assert.Equal(t, want, table.Columns)
}

func TestPivotIdempotent(t *testing.T) {
	points := []Point{
		{Name: NameCPI, Date: MonthDate(2022, 5), Value: "292.3"},
		{Name: NameHoursWorked, Date: MonthDate(2022, 5), Value: "34.6"},
	}

	assert.Equal(t, Pivot(points, DefaultCatalog()), Pivot(points, DefaultCatalog()))
}
