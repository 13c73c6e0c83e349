package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"

	"macrostat/internal/logger"
	"macrostat/internal/series"
)

const monthLayout = "2006-01"

// Server serves the chart views over HTTP and keeps the dataset in sync
// with the snapshot file.
type Server struct {
	addr         string
	defaultStart string
	data         *Dataset
	router       *gin.Engine
}

type ServerConfig struct {
	Addr         string
	DefaultStart string // YYYY-MM lower bound when the query omits one
	Dataset      *Dataset
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Dataset == nil {
		return nil, fmt.Errorf("dataset is required")
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		addr:         cfg.Addr,
		defaultStart: cfg.DefaultStart,
		data:         cfg.Dataset,
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.GET("/healthz", s.handleHealth)
	router.GET("/", s.handleIndex)
	router.GET("/view/:name", s.handleView)
	router.GET("/api/summary", s.handleSummary)
	s.router = router
	return s, nil
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("dashboard listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Watch reloads the dataset whenever the snapshot file is rewritten.
// The collector replaces the file atomically, so a rename or create in
// the parent directory is the signal to re-read.
func (s *Server) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(s.data.Path())
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	target := filepath.Clean(s.data.Path())
	logger.Infof("watching %s for snapshot updates", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.data.Reload(); err != nil {
				logger.Warnf("snapshot reload failed: %v", err)
				continue
			}
			if latest, ok := s.data.Table().LatestDate(); ok {
				logger.Infof("snapshot reloaded, data through %s", latest.Format(monthLayout))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("snapshot watcher: %v", err)
		}
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rows": len(s.data.Table().Rows)})
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, "/view/"+DefaultView.Slug)
}

func (s *Server) handleView(c *gin.Context) {
	view, ok := ViewBySlug(c.Param("name"))
	if !ok {
		c.String(http.StatusNotFound, "unknown view %q", c.Param("name"))
		return
	}
	filtered, sum, err := s.selectRange(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	html, err := BuildPageHTML(view, filtered, sum)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) handleSummary(c *gin.Context) {
	_, sum, err := s.selectRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// selectRange applies the start/end query params (YYYY-MM, inclusive)
// to the current table.
func (s *Server) selectRange(c *gin.Context) (series.Table, Summary, error) {
	table := s.data.Table()
	if table.Empty() {
		return series.Table{}, Summary{}, fmt.Errorf("no data loaded yet")
	}

	start, err := parseMonth(c.Query("start"), s.defaultStart)
	if err != nil {
		return series.Table{}, Summary{}, fmt.Errorf("bad start month: %w", err)
	}
	latest, _ := table.LatestDate()
	end, err := parseMonth(c.Query("end"), latest.Format(monthLayout))
	if err != nil {
		return series.Table{}, Summary{}, fmt.Errorf("bad end month: %w", err)
	}
	if end.Before(start) {
		return series.Table{}, Summary{}, fmt.Errorf("end %s is before start %s",
			end.Format(monthLayout), start.Format(monthLayout))
	}

	filtered := FilterRange(table, start, end)
	sum, ok := Summarize(filtered)
	if !ok {
		return series.Table{}, Summary{}, fmt.Errorf("fewer than two months in %s..%s",
			start.Format(monthLayout), end.Format(monthLayout))
	}
	return filtered, sum, nil
}

func parseMonth(raw, fallback string) (time.Time, error) {
	if raw == "" {
		raw = fallback
	}
	return time.Parse(monthLayout, raw)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infof("%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
