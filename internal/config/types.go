package config

// Config is the top-level configuration for macrostat.
type Config struct {
	App       AppConfig       `toml:"app"`
	BLS       BLSConfig       `toml:"bls"`
	Snapshot  SnapshotConfig  `toml:"snapshot"`
	Dashboard DashboardConfig `toml:"dashboard"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

// BLSConfig describes how to reach the BLS public timeseries API.
type BLSConfig struct {
	APIURL          string `toml:"api_url"`
	RegistrationKey string `toml:"registration_key"`
	StartYear       int    `toml:"start_year"`
	ChunkYears      int    `toml:"chunk_years"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	SeriesPath      string `toml:"series_path"`
}

type SnapshotConfig struct {
	Path       string `toml:"path"`
	RunLogPath string `toml:"runlog_path"`
}

type DashboardConfig struct {
	HTTPAddr string `toml:"http_addr"`
	// DefaultStart is the initial range start shown when the request
	// does not carry one, as "YYYY-MM".
	DefaultStart string `toml:"default_start"`
}
