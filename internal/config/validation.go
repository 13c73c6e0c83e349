package config

import (
	"fmt"
	"time"
)

// Series for the default catalog begin in the 1940s; anything earlier is
// a typo, anything in the future cannot be fetched.
const minStartYear = 1940

func validate(c *Config) error {
	if c.BLS.StartYear < minStartYear {
		return fmt.Errorf("bls.start_year %d is before %d", c.BLS.StartYear, minStartYear)
	}
	if c.BLS.StartYear > time.Now().Year() {
		return fmt.Errorf("bls.start_year %d is in the future", c.BLS.StartYear)
	}
	// The BLS API rejects requests spanning more than 10 years.
	if c.BLS.ChunkYears < 1 || c.BLS.ChunkYears > 10 {
		return fmt.Errorf("bls.chunk_years must be in 1..10, got %d", c.BLS.ChunkYears)
	}
	if c.BLS.TimeoutSeconds < 1 {
		return fmt.Errorf("bls.timeout_seconds must be positive, got %d", c.BLS.TimeoutSeconds)
	}
	if _, err := time.Parse("2006-01", c.Dashboard.DefaultStart); err != nil {
		return fmt.Errorf("dashboard.default_start must be YYYY-MM: %w", err)
	}
	return nil
}
