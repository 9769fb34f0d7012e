package metrics

import (
	"testing"
	"time"
)

func TestReadMemory(t *testing.T) {
	t.Parallel()
	snap := ReadMemory()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
	if snap.Goroutines < 1 {
		t.Errorf("Goroutines = %d, want >= 1", snap.Goroutines)
	}
}

func TestUsage_Arithmetic(t *testing.T) {
	t.Parallel()
	before := Usage{User: time.Second, System: 500 * time.Millisecond, MaxRSS: 10}
	after := Usage{User: 5 * time.Second, System: time.Second, MaxRSS: 20}

	d := after.Sub(before)
	if d.User != 4*time.Second || d.System != 500*time.Millisecond || d.MaxRSS != 20 {
		t.Errorf("Sub = %+v", d)
	}
	if d.Total() != 4500*time.Millisecond {
		t.Errorf("Total = %v", d.Total())
	}

	tests := []struct {
		wall time.Duration
		want float64
	}{
		{0, 0},
		{-time.Second, 0},
		{4500 * time.Millisecond, 1},
		{1500 * time.Millisecond, 3},
	}
	for _, tt := range tests {
		if got := d.Parallelism(tt.wall); got != tt.want {
			t.Errorf("Parallelism(%v) = %v, want %v", tt.wall, got, tt.want)
		}
	}
}
