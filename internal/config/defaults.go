package config

import "strings"

const (
	defaultAppEnv        = "dev"
	defaultAppLogLevel   = "info"
	defaultBLSAPIURL     = "https://api.bls.gov/publicAPI/v2/timeseries/data/"
	defaultBLSStartYear  = 2008
	defaultBLSChunkYears = 10
	defaultBLSTimeout    = 30
	defaultSeriesPath    = "configs/series.yaml"
	defaultSnapshotPath  = "data/processed_data.csv"
	defaultRunLogPath    = "data/runs.db"
	defaultHTTPAddr      = ":9980"
	defaultRangeStart    = "2020-01"
)

func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.BLS.applyDefaults()
	c.Snapshot.applyDefaults()
	c.Dashboard.applyDefaults()
}

func (a *AppConfig) applyDefaults() {
	if strings.TrimSpace(a.Env) == "" {
		a.Env = defaultAppEnv
	}
	if strings.TrimSpace(a.LogLevel) == "" {
		a.LogLevel = defaultAppLogLevel
	}
}

func (b *BLSConfig) applyDefaults() {
	if strings.TrimSpace(b.APIURL) == "" {
		b.APIURL = defaultBLSAPIURL
	}
	if b.StartYear == 0 {
		b.StartYear = defaultBLSStartYear
	}
	if b.ChunkYears == 0 {
		b.ChunkYears = defaultBLSChunkYears
	}
	if b.TimeoutSeconds == 0 {
		b.TimeoutSeconds = defaultBLSTimeout
	}
	if strings.TrimSpace(b.SeriesPath) == "" {
		b.SeriesPath = defaultSeriesPath
	}
}

func (s *SnapshotConfig) applyDefaults() {
	if strings.TrimSpace(s.Path) == "" {
		s.Path = defaultSnapshotPath
	}
	if strings.TrimSpace(s.RunLogPath) == "" {
		s.RunLogPath = defaultRunLogPath
	}
}

func (d *DashboardConfig) applyDefaults() {
	if strings.TrimSpace(d.HTTPAddr) == "" {
		d.HTTPAddr = defaultHTTPAddr
	}
	if strings.TrimSpace(d.DefaultStart) == "" {
		d.DefaultStart = defaultRangeStart
	}
}
