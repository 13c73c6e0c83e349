package bls

// YearRange is one inclusive request window.
type YearRange struct {
	Start int
	End   int
}

// ChunkYears splits the inclusive [start, end] span into windows of at
// most size years, oldest first. The API rejects requests spanning more
// than 10 years, so callers fetch one window at a time and concatenate.
func ChunkYears(start, end, size int) []YearRange {
	if end < start || size < 1 {
		return nil
	}
	var chunks []YearRange
	for y := start; y <= end; y += size {
		last := y + size - 1
		if last > end {
			last = end
		}
		chunks = append(chunks, YearRange{Start: y, End: last})
	}
	return chunks
}
