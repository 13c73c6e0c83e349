// Package snapshot persists the wide monthly table as a flat CSV file
// and merges fresh fetches against the prior state.
package snapshot

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"macrostat/internal/series"
)

const dateColumn = "Date"

const dateLayout = "2006-01-02"

// Store reads and writes the snapshot file at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the snapshot. An absent file is not an error: it returns
// (zero table, false, nil) and the caller runs the full backfill.
func (s *Store) Load() (series.Table, bool, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return series.Table{}, false, nil
		}
		return series.Table{}, false, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return series.Table{}, false, fmt.Errorf("reading snapshot %s failed: %w", s.path, err)
	}
	if len(records) == 0 {
		return series.Table{}, false, nil
	}
	header := records[0]
	if len(header) == 0 || header[0] != dateColumn {
		return series.Table{}, false, fmt.Errorf("snapshot %s: first column must be %s", s.path, dateColumn)
	}

	t := series.Table{Columns: append([]string(nil), header[1:]...)}
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		date, err := time.ParseInLocation(dateLayout, rec[0], time.UTC)
		if err != nil {
			return series.Table{}, false, fmt.Errorf("snapshot %s: bad date %q: %w", s.path, rec[0], err)
		}
		row := series.Row{Date: date, Values: make(map[string]string, len(t.Columns))}
		for i, col := range t.Columns {
			if i+1 < len(rec) && rec[i+1] != "" {
				row.Values[col] = rec[i+1]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	t.SortByDate()
	return t, true, nil
}

// Save writes the table atomically: a temp file in the same directory
// is renamed over the target, so a failed run never leaves a truncated
// snapshot behind.
func (s *Store) Save(t series.Table) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(append([]string{dateColumn}, t.Columns...)); err != nil {
		tmp.Close()
		return err
	}
	rec := make([]string, len(t.Columns)+1)
	for _, row := range t.Rows {
		rec[0] = row.Date.Format(dateLayout)
		for i, col := range t.Columns {
			rec[i+1] = row.Value(col)
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
