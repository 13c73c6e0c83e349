package series

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	assert.Equal(t, NameUnemployment, cat.DisplayName("LNS14000000"))
	assert.Equal(t, NameCPI, cat.DisplayName("CUUR0000SA0"))
	assert.Equal(t, "UNKNOWN123", cat.DisplayName("UNKNOWN123"))
	assert.Len(t, cat.IDs(), 5)
	assert.Equal(t, []string{
		NameCPI, NameEmployment, NameHourlyEarnings, NameHoursWorked, NameUnemployment,
	}, cat.Columns())
}

func TestLoadCatalogExtends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"series:\n  LNS11300000: Labor Force Participation\n"), 0o644))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "Labor Force Participation", cat.DisplayName("LNS11300000"))
	assert.Len(t, cat.IDs(), 6)
}

func TestLoadCatalogRejectsCollidingNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"series:\n  LNS99999999: CPI\n"), 0o644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestLoadCatalogEmptyPath(t *testing.T) {
	cat, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Len(t, cat.IDs(), 5)
}
