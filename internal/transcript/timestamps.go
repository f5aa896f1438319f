package transcript

import "fmt"

// Synchronize assigns an estimated start time to each of n segments by
// dividing the media duration evenly. The result is a uniform proportional
// estimate, not actual speech timing. When the duration is unknown (zero or
// negative) or n is not positive, no timestamps are returned; timestamps are
// display data and never required for transcript correctness.
func Synchronize(n int, durationSeconds float64) []float64 {
	if n <= 0 || durationSeconds <= 0 {
		return nil
	}

	perSegment := durationSeconds / float64(n)
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * perSegment
	}
	return out
}

// FormatTimestamp renders seconds as MM:SS, switching to H:MM:SS once the
// value reaches a full hour. Minutes and seconds are zero-padded.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
