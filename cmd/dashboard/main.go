// Command dashboard serves the interactive chart views over HTTP, or
// exports a single view as a PNG with -export.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"macrostat/internal/config"
	"macrostat/internal/dashboard"
	"macrostat/internal/logger"
	"macrostat/internal/store/snapshot"
)

func main() {
	_ = godotenv.Load()

	exportPath := flag.String("export", "", "render one view to this PNG file and exit")
	viewSlug := flag.String("view", dashboard.DefaultView.Slug, "view to export")
	start := flag.String("start", "", "range start as YYYY-MM")
	end := flag.String("end", "", "range end as YYYY-MM")
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

	data := dashboard.NewDataset(snapshot.NewStore(cfg.Snapshot.Path))
	if err := data.Reload(); err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *exportPath != "" {
		view, ok := dashboard.ViewBySlug(*viewSlug)
		if !ok {
			log.Fatalf("unknown view %q", *viewSlug)
		}
		err := dashboard.ExportPNG(ctx, view, data, *start, *end, cfg.Dashboard.DefaultStart, *exportPath)
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		logger.Infof("wrote %s", *exportPath)
		return
	}

	srv, err := dashboard.NewServer(dashboard.ServerConfig{
		Addr:         cfg.Dashboard.HTTPAddr,
		DefaultStart: cfg.Dashboard.DefaultStart,
		Dataset:      data,
	})
	if err != nil {
		log.Fatalf("starting dashboard failed: %v", err)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error { return srv.Run(ctx) })
	group.Go(func() error { return srv.Watch(ctx) })
	if err := group.Wait(); err != nil {
		log.Fatalf("dashboard exited: %v", err)
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
