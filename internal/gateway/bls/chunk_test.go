package bls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkYears(t *testing.T) {
	t.Run("17 year span splits at decade", func(t *testing.T) {
		chunks := ChunkYears(2008, 2024, 10)
		assert.Equal(t, []YearRange{{2008, 2017}, {2018, 2024}}, chunks)
	})

	t.Run("exact multiple", func(t *testing.T) {
		chunks := ChunkYears(2000, 2019, 10)
		assert.Equal(t, []YearRange{{2000, 2009}, {2010, 2019}}, chunks)
	})

	t.Run("span within one window", func(t *testing.T) {
		chunks := ChunkYears(2023, 2024, 10)
		assert.Equal(t, []YearRange{{2023, 2024}}, chunks)
	})

	t.Run("single year", func(t *testing.T) {
		chunks := ChunkYears(2024, 2024, 10)
		assert.Equal(t, []YearRange{{2024, 2024}}, chunks)
	})

	t.Run("inverted range", func(t *testing.T) {
		assert.Nil(t, ChunkYears(2024, 2008, 10))
	})

	t.Run("invalid size", func(t *testing.T) {
		assert.Nil(t, ChunkYears(2008, 2024, 0))
	})
}
