package series

import "sort"

// Pivot groups long-format points into the wide table: one row per
// month, one column per series name, sorted ascending by date.
//
// When the same (date, series) pair appears twice -- overlapping chunk
// windows do this at decade boundaries -- the last point seen wins.
// Chunks are fetched oldest window first, so the newest fetch ends up
// in the table.
//
// The column set always contains every catalog column, even when a
// series returned no data, plus any passthrough series that appeared,
// appended in alphabetical order.
func Pivot(points []Point, cat *Catalog) Table {
	if cat == nil {
		cat = DefaultCatalog()
	}
	known := cat.Columns()
	knownSet := make(map[string]bool, len(known))
	for _, c := range known {
		knownSet[c] = true
	}

	byDate := make(map[int64]*Row)
	var extras []string
	for _, p := range points {
		key := p.Date.Unix()
		row, ok := byDate[key]
		if !ok {
			row = &Row{Date: p.Date, Values: make(map[string]string)}
			byDate[key] = row
		}
		row.Values[p.Name] = p.Value
		if !knownSet[p.Name] {
			knownSet[p.Name] = true
			extras = append(extras, p.Name)
		}
	}
	sort.Strings(extras)

	t := Table{Columns: append(known, extras...)}
	if len(byDate) == 0 {
		return t
	}
	t.Rows = make([]Row, 0, len(byDate))
	for _, row := range byDate {
		t.Rows = append(t.Rows, *row)
	}
	t.SortByDate()
	return t
}
