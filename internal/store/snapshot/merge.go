package snapshot

import "macrostat/internal/series"

// Merge unions the prior snapshot with a fresh fetch.
//
//   - empty incoming: existing comes back untouched, updated=false, so
//     the caller can report "already up to date" instead of rewriting.
//   - no existing snapshot: the incoming table, sorted.
//   - otherwise: one row per date; when both sides have a date the
//     incoming row wins, which is how backfill corrections from the API
//     replace stale values.
func Merge(existing series.Table, hasExisting bool, incoming series.Table) (series.Table, bool) {
	if incoming.Empty() {
		return existing, false
	}
	if !hasExisting || existing.Empty() {
		incoming.SortByDate()
		return incoming, true
	}

	columns := append([]string(nil), existing.Columns...)
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		seen[c] = true
	}
	for _, c := range incoming.Columns {
		if !seen[c] {
			seen[c] = true
			columns = append(columns, c)
		}
	}

	byDate := make(map[int64]series.Row, len(existing.Rows)+len(incoming.Rows))
	for _, row := range existing.Rows {
		byDate[row.Date.Unix()] = row
	}
	for _, row := range incoming.Rows {
		byDate[row.Date.Unix()] = row
	}

	merged := series.Table{Columns: columns, Rows: make([]series.Row, 0, len(byDate))}
	for _, row := range byDate {
		merged.Rows = append(merged.Rows, row)
	}
	merged.SortByDate()
	return merged, true
}
