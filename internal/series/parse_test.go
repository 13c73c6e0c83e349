package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenMonthlyOnly(t *testing.T) {
	blocks := []Block{{
		SeriesID: "LNS14000000",
		Observations: []Observation{
			{Year: "2019", Period: "M01", Value: "4.0"},
			{Year: "2019", Period: "M13", Value: "3.7"}, // annual average
			{Year: "2019", Period: "Q01", Value: "3.9"},
			{Year: "2019", Period: "A01", Value: "3.8"},
			{Year: "2019", Period: "M12", Value: "3.6"},
		},
	}}

	points := Flatten(blocks, DefaultCatalog())
	require.Len(t, points, 2)
	assert.Equal(t, NameUnemployment, points[0].Name)
	assert.Equal(t, MonthDate(2019, 1), points[0].Date)
	assert.Equal(t, "4.0", points[0].Value)
	assert.Equal(t, MonthDate(2019, 12), points[1].Date)
}

func TestFlattenUnknownSeriesPassesThrough(t *testing.T) {
	blocks := []Block{{
		SeriesID:     "XYZ0000000042",
		Observations: []Observation{{Year: "2020", Period: "M05", Value: "1.5"}},
	}}

	points := Flatten(blocks, DefaultCatalog())
	require.Len(t, points, 1)
	assert.Equal(t, "XYZ0000000042", points[0].Name)
}

func TestFlattenKeepsRawPlaceholders(t *testing.T) {
	blocks := []Block{{
		SeriesID:     "CES0500000003",
		Observations: []Observation{{Year: "2021", Period: "M02", Value: "-"}},
	}}

	points := Flatten(blocks, DefaultCatalog())
	require.Len(t, points, 1)
	assert.Equal(t, "-", points[0].Value)
}

func TestFlattenSkipsBadYears(t *testing.T) {
	blocks := []Block{{
		SeriesID:     "CUUR0000SA0",
		Observations: []Observation{{Year: "n/a", Period: "M03", Value: "250.1"}},
	}}

	assert.Empty(t, Flatten(blocks, DefaultCatalog()))
}

func TestFlattenIdempotent(t *testing.T) {
	blocks := []Block{{
		SeriesID: "CUUR0000SA0",
		Observations: []Observation{
			{Year: "2022", Period: "M01", Value: "281.1"},
			{Year: "2022", Period: "M02", Value: "283.7"},
		},
	}}

	first := Flatten(blocks, DefaultCatalog())
	second := Flatten(blocks, DefaultCatalog())
	assert.Equal(t, first, second)
}

func TestMonthlyPeriod(t *testing.T) {
	cases := []struct {
		code  string
		month int
		ok    bool
	}{
		{"M01", 1, true},
		{"M12", 12, true},
		{"M13", 0, false},
		{"M00", 0, false},
		{"Q01", 0, false},
		{"M1", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		month, ok := monthlyPeriod(tc.code)
		assert.Equal(t, tc.ok, ok, tc.code)
		assert.Equal(t, tc.month, month, tc.code)
	}
}

func TestMonthDate(t *testing.T) {
	d := MonthDate(2024, 7)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), d)
}
