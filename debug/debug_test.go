package debug

import (
	"testing"
	"time"
)

func TestTimerAverage(t *testing.T) {
	var tm Timer
	for i := 0; i < samples; i++ {
		tm.Add(10 * time.Millisecond)
	}
	if got := tm.Average(); got != 10*time.Millisecond {
		t.Errorf("Average() = %v, want 10ms", got)
	}
	if got := tm.AveragePerSecond(); got != 100 {
		t.Errorf("AveragePerSecond() = %v, want 100", got)
	}
}

func TestTimerRolls(t *testing.T) {
	var tm Timer
	for i := 0; i < samples; i++ {
		tm.Add(10 * time.Millisecond)
	}
	// Overwrite the full window.
	for i := 0; i < samples; i++ {
		tm.Add(20 * time.Millisecond)
	}
	if got := tm.Average(); got != 20*time.Millisecond {
		t.Errorf("Average() after roll = %v, want 20ms", got)
	}
}
