// Package runlog keeps a sqlite history of collector runs, one row per
// invocation, for reporting and postmortems.
package runlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	ActionBackfill = "backfill"
	ActionUpdate   = "update"
	ActionNoop     = "noop"

	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Run is one collector invocation.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	Action       string
	Status       string
	RowsAdded    int
	LatestDate   string
	Message      string
	SeriesCounts map[string]int
}

type runModel struct {
	ID           string         `gorm:"column:id;primaryKey"`
	StartedAt    int64          `gorm:"column:started_at;index"`
	FinishedAt   int64          `gorm:"column:finished_at"`
	Action       string         `gorm:"column:action"`
	Status       string         `gorm:"column:status"`
	RowsAdded    int            `gorm:"column:rows_added"`
	LatestDate   string         `gorm:"column:latest_date"`
	Message      string         `gorm:"column:message"`
	SeriesCounts datatypes.JSON `gorm:"column:series_counts"`
}

func (runModel) TableName() string { return "collector_runs" }

// Store wraps the sqlite run history.
type Store struct {
	db *gorm.DB
}

func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("runlog path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&runModel{}); err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}
	return &Store{db: db}, nil
}

// Record persists one run, assigning an id when the caller left it
// empty.
func (s *Store) Record(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		run.ID = uuid.NewString()
	}
	var counts datatypes.JSON
	if len(run.SeriesCounts) > 0 {
		raw, err := json.Marshal(run.SeriesCounts)
		if err != nil {
			return err
		}
		counts = datatypes.JSON(raw)
	}
	model := runModel{
		ID:           run.ID,
		StartedAt:    run.StartedAt.Unix(),
		FinishedAt:   run.FinishedAt.Unix(),
		Action:       run.Action,
		Status:       run.Status,
		RowsAdded:    run.RowsAdded,
		LatestDate:   run.LatestDate,
		Message:      run.Message,
		SeriesCounts: counts,
	}
	return s.db.WithContext(ctx).Create(&model).Error
}

// Recent returns the newest runs, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var models []runModel
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	runs := make([]Run, 0, len(models))
	for _, m := range models {
		run := Run{
			ID:         m.ID,
			StartedAt:  time.Unix(m.StartedAt, 0).UTC(),
			FinishedAt: time.Unix(m.FinishedAt, 0).UTC(),
			Action:     m.Action,
			Status:     m.Status,
			RowsAdded:  m.RowsAdded,
			LatestDate: m.LatestDate,
			Message:    m.Message,
		}
		if len(m.SeriesCounts) > 0 {
			_ = json.Unmarshal(m.SeriesCounts, &run.SeriesCounts)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
