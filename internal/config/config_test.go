package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "app:\n  env: test\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, defaultBLSAPIURL, cfg.BLS.APIURL)
	assert.Equal(t, defaultBLSStartYear, cfg.BLS.StartYear)
	assert.Equal(t, defaultBLSChunkYears, cfg.BLS.ChunkYears)
	assert.Equal(t, defaultSnapshotPath, cfg.Snapshot.Path)
	assert.Equal(t, defaultHTTPAddr, cfg.Dashboard.HTTPAddr)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
app:
  log_level: debug
bls:
  start_year: 1990
  chunk_years: 5
snapshot:
  path: /tmp/econ.csv
dashboard:
  default_start: 2015-06
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 1990, cfg.BLS.StartYear)
	assert.Equal(t, 5, cfg.BLS.ChunkYears)
	assert.Equal(t, "/tmp/econ.csv", cfg.Snapshot.Path)
	assert.Equal(t, "2015-06", cfg.Dashboard.DefaultStart)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"chunk span over api limit": "bls:\n  chunk_years: 11\n",
		"start year too early":      "bls:\n  start_year: 1800\n",
		"bad default range start":   "dashboard:\n  default_start: January\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
