// Package collector orchestrates one refresh of the snapshot: decide
// whether anything needs fetching, pull the missing window from the
// API, merge, derive and persist.
package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"macrostat/internal/config"
	"macrostat/internal/gateway/bls"
	"macrostat/internal/logger"
	"macrostat/internal/series"
	"macrostat/internal/store/runlog"
	"macrostat/internal/store/snapshot"
)

// Fetcher is the slice of the BLS client the collector needs.
type Fetcher interface {
	Fetch(ctx context.Context, seriesIDs []string, startYear, endYear int) (bls.Response, error)
}

// Result summarizes one run for logging and the run history.
type Result struct {
	Action       string
	RowsAdded    int
	LatestDate   time.Time
	SeriesCounts map[string]int
	Message      string
}

// Collector performs a single synchronous batch refresh. One invocation
// per run: no retries, no parallel fetches.
type Collector struct {
	fetcher    Fetcher
	store      *snapshot.Store
	catalog    *series.Catalog
	startYear  int
	chunkYears int
	now        func() time.Time
}

func New(fetcher Fetcher, store *snapshot.Store, catalog *series.Catalog, cfg config.BLSConfig) *Collector {
	if catalog == nil {
		catalog = series.DefaultCatalog()
	}
	return &Collector{
		fetcher:    fetcher,
		store:      store,
		catalog:    catalog,
		startYear:  cfg.StartYear,
		chunkYears: cfg.ChunkYears,
		now:        time.Now,
	}
}

// Run executes the state machine once. Errors are terminal for the run
// but never destructive: the prior snapshot is only replaced after a
// successful merge and derive.
func (c *Collector) Run(ctx context.Context) (Result, error) {
	existing, hasExisting, err := c.store.Load()
	if err != nil {
		return Result{}, fmt.Errorf("loading snapshot failed: %w", err)
	}

	now := c.now().UTC()
	state := freshness(existing, hasExisting, now)

	var startYear int
	var action string
	switch state {
	case FreshnessFresh:
		latest, _ := existing.LatestDate()
		logger.Infof("snapshot is current through %s, nothing to fetch", latest.Format("2006-01"))
		return Result{Action: runlog.ActionNoop, LatestDate: latest, Message: "already current"}, nil
	case FreshnessNoSnapshot:
		action = runlog.ActionBackfill
		startYear = c.startYear
		logger.Infof("no snapshot found, backfilling %d-%d", startYear, now.Year())
	case FreshnessStale:
		action = runlog.ActionUpdate
		latest, _ := existing.LatestDate()
		startYear = latest.Year()
		logger.Infof("snapshot ends %s, fetching %d-%d", latest.Format("2006-01"), startYear, now.Year())
	}

	incoming, counts := c.fetchWindow(ctx, startYear, now.Year())
	merged, updated := snapshot.Merge(existing, hasExisting, incoming)
	if !updated {
		if state == FreshnessNoSnapshot {
			return Result{Action: action}, fmt.Errorf("backfill %d-%d returned no usable data", startYear, now.Year())
		}
		latest, _ := existing.LatestDate()
		logger.Infof("no new data from the API, snapshot unchanged")
		return Result{Action: action, LatestDate: latest, Message: "no new data available"}, nil
	}

	series.Derive(&merged)
	if err := c.store.Save(merged); err != nil {
		return Result{Action: action}, fmt.Errorf("writing snapshot failed: %w", err)
	}

	latest, _ := merged.LatestDate()
	res := Result{
		Action:       action,
		RowsAdded:    len(merged.Rows) - len(existing.Rows),
		LatestDate:   latest,
		SeriesCounts: counts,
		Message:      fmt.Sprintf("snapshot through %s, %d rows", latest.Format("2006-01"), len(merged.Rows)),
	}
	logger.Infof("%s done: +%d rows, latest %s", action, res.RowsAdded, latest.Format("2006-01"))
	return res, nil
}

// fetchWindow pulls [startYear, endYear] in api-sized chunks and pivots
// the concatenated points. A failed chunk degrades to no data for that
// window; the API answering with a non-success status is logged and any
// series it still carried are kept.
func (c *Collector) fetchWindow(ctx context.Context, startYear, endYear int) (series.Table, map[string]int) {
	ids := c.catalog.IDs()
	var points []series.Point
	for _, chunk := range bls.ChunkYears(startYear, endYear, c.chunkYears) {
		resp, err := c.fetcher.Fetch(ctx, ids, chunk.Start, chunk.End)
		if err != nil {
			logger.Warnf("fetch %d-%d: %v", chunk.Start, chunk.End, err)
			continue
		}
		if !resp.Succeeded() {
			logger.Warnf("bls reported %q for %d-%d: %s",
				resp.Status, chunk.Start, chunk.End, strings.Join(resp.Messages, "; "))
		}
		points = append(points, series.Flatten(resp.Series, c.catalog)...)
	}

	counts := make(map[string]int)
	for _, p := range points {
		counts[p.Name]++
	}
	return series.Pivot(points, c.catalog), counts
}
