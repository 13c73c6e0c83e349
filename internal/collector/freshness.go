package collector

import (
	"time"

	"macrostat/internal/series"
)

// Freshness is the state of the persisted snapshot relative to the
// publication calendar.
type Freshness int

const (
	// FreshnessNoSnapshot means no snapshot exists: full backfill.
	FreshnessNoSnapshot Freshness = iota
	// FreshnessStale means the snapshot trails by at least one full
	// month: incremental update.
	FreshnessStale
	// FreshnessFresh means there is nothing new to fetch.
	FreshnessFresh
)

func (f Freshness) String() string {
	switch f {
	case FreshnessNoSnapshot:
		return "no-snapshot"
	case FreshnessStale:
		return "stale"
	default:
		return "fresh"
	}
}

func freshness(t series.Table, ok bool, now time.Time) Freshness {
	if !ok || t.Empty() {
		return FreshnessNoSnapshot
	}
	latest, _ := t.LatestDate()
	if monthsBehind(now, latest) >= 1 {
		return FreshnessStale
	}
	return FreshnessFresh
}

// monthsBehind counts whole months between the month before now and the
// snapshot's latest month. BLS publishes with roughly a month of lag,
// so mid-June a snapshot ending in May is current, not stale.
func monthsBehind(now, latest time.Time) int {
	cur := series.MonthDate(now.Year(), int(now.Month())).AddDate(0, -1, 0)
	return (cur.Year()-latest.Year())*12 + int(cur.Month()) - int(latest.Month())
}
