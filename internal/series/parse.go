package series

import (
	"strconv"
	"strings"
)

// Flatten turns per-series response blocks into long-format points.
// Only monthly periods M01..M12 survive; M13 is the annual average
// pseudo-period and is dropped along with quarterly/annual codes.
// Values are kept as raw strings. Flatten is pure and idempotent.
func Flatten(blocks []Block, cat *Catalog) []Point {
	if cat == nil {
		cat = DefaultCatalog()
	}
	var points []Point
	for _, block := range blocks {
		name := cat.DisplayName(block.SeriesID)
		for _, obs := range block.Observations {
			month, ok := monthlyPeriod(obs.Period)
			if !ok {
				continue
			}
			year, err := strconv.Atoi(strings.TrimSpace(obs.Year))
			if err != nil {
				continue
			}
			points = append(points, Point{
				Name:  name,
				Date:  MonthDate(year, month),
				Value: obs.Value,
			})
		}
	}
	return points
}

// monthlyPeriod parses a BLS period code, accepting only M01..M12.
func monthlyPeriod(code string) (int, bool) {
	code = strings.TrimSpace(code)
	if len(code) != 3 || code[0] != 'M' {
		return 0, false
	}
	month, err := strconv.Atoi(code[1:])
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	return month, true
}
