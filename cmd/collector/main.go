// Command collector refreshes the processed snapshot from the BLS
// public API: full backfill on first run, incremental updates after.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"macrostat/internal/collector"
	"macrostat/internal/config"
	"macrostat/internal/gateway/bls"
	"macrostat/internal/logger"
	"macrostat/internal/series"
	"macrostat/internal/store/runlog"
	"macrostat/internal/store/snapshot"
)

func main() {
	_ = godotenv.Load()

	xlsxPath := flag.String("xlsx", "", "also export the snapshot as an xlsx workbook to this path")
	history := flag.Int("history", 0, "print the last N runs and exit")
	flag.Parse()

	cfgPath := os.Getenv("MACROSTAT_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config failed: %v", err)
	}
	logFile, err := setupLogOutput(cfg.App.LogPath)
	if err != nil {
		log.Fatalf("opening log file failed: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.SetLevel(cfg.App.LogLevel)

	runs, err := runlog.NewStore(cfg.Snapshot.RunLogPath)
	if err != nil {
		log.Fatalf("opening run history failed: %v", err)
	}
	defer runs.Close()

	ctx := context.Background()
	if *history > 0 {
		printHistory(ctx, runs, *history)
		return
	}

	catalog, err := series.LoadCatalog(cfg.BLS.SeriesPath)
	if err != nil {
		log.Fatalf("loading series catalog failed: %v", err)
	}
	client, err := bls.NewClient(cfg.BLS)
	if err != nil {
		log.Fatalf("building BLS client failed: %v", err)
	}
	store := snapshot.NewStore(cfg.Snapshot.Path)
	coll := collector.New(client, store, catalog, cfg.BLS)

	started := time.Now().UTC()
	res, runErr := coll.Run(ctx)

	record := runlog.Run{
		StartedAt:    started,
		FinishedAt:   time.Now().UTC(),
		Action:       res.Action,
		Status:       runlog.StatusOK,
		RowsAdded:    res.RowsAdded,
		Message:      res.Message,
		SeriesCounts: res.SeriesCounts,
	}
	if !res.LatestDate.IsZero() {
		record.LatestDate = res.LatestDate.Format("2006-01-02")
	}
	if runErr != nil {
		record.Status = runlog.StatusFailed
		record.Message = runErr.Error()
	}
	if err := runs.Record(ctx, record); err != nil {
		logger.Warnf("recording run failed: %v", err)
	}
	if runErr != nil {
		logger.Errorf("collector run failed: %v", runErr)
		os.Exit(1)
	}

	if *xlsxPath != "" {
		table, ok, err := store.Load()
		if err != nil || !ok {
			logger.Errorf("reading snapshot back for export failed: %v", err)
			os.Exit(1)
		}
		if err := snapshot.ExportXLSX(table, *xlsxPath); err != nil {
			logger.Errorf("xlsx export failed: %v", err)
			os.Exit(1)
		}
		logger.Infof("exported workbook to %s", *xlsxPath)
	}
}

func printHistory(ctx context.Context, runs *runlog.Store, limit int) {
	recent, err := runs.Recent(ctx, limit)
	if err != nil {
		log.Fatalf("reading run history failed: %v", err)
	}
	if len(recent) == 0 {
		logger.Infof("no recorded runs yet")
		return
	}
	for _, run := range recent {
		logger.Infof("%s %-8s %-6s +%d rows through %s %s",
			run.StartedAt.Format(time.RFC3339), run.Action, run.Status,
			run.RowsAdded, run.LatestDate, run.Message)
	}
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}
