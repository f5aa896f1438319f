package transcript

import (
	"math"
	"testing"
)

// TestSynchronizeProportionalAssignment checks even division of duration.
func TestSynchronizeProportionalAssignment(t *testing.T) {
	got := Synchronize(3, 90)
	want := []float64{0, 30, 60}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("timestamp[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestSynchronizeMonotonicity checks ordering across counts and durations.
func TestSynchronizeMonotonicity(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100} {
		for _, d := range []float64{0.5, 1, 59.9, 3600, 7265} {
			ts := Synchronize(n, d)
			if len(ts) != n {
				t.Fatalf("n=%d d=%v: len = %d", n, d, len(ts))
			}
			if ts[0] != 0 {
				t.Fatalf("n=%d d=%v: timestamp(0) = %v, want 0", n, d, ts[0])
			}
			for i := 1; i < n; i++ {
				if ts[i] < ts[i-1] {
					t.Fatalf("n=%d d=%v: timestamp decreased at %d: %v < %v", n, d, i, ts[i], ts[i-1])
				}
			}
		}
	}
}

// TestSynchronizeUnknownDuration checks the no-timestamp path.
func TestSynchronizeUnknownDuration(t *testing.T) {
	if got := Synchronize(3, 0); got != nil {
		t.Fatalf("zero duration = %#v, want nil", got)
	}
	if got := Synchronize(3, -5); got != nil {
		t.Fatalf("negative duration = %#v, want nil", got)
	}
	if got := Synchronize(0, 90); got != nil {
		t.Fatalf("zero segments = %#v, want nil", got)
	}
}

// TestFormatTimestampBoundaries pins the hour-rollover formatting.
func TestFormatTimestampBoundaries(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{7, "00:07"},
		{65, "01:05"},
		{599.9, "09:59"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{7265, "2:01:05"},
		{-3, "00:00"},
	}

	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
