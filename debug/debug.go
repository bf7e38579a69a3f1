// Package debug provides small helpers for measuring frame times.
//
package debug

import (
	"time"
)

const samples = 32

// Timer keeps a rolling average over the last 32 measured durations.
//
type Timer struct {
	times [samples]time.Duration
	index int
}

func (t *Timer) Add(dt time.Duration) {
	t.times[t.index] = dt
	t.index = (t.index + 1) & (samples - 1)
}

func (t *Timer) Average() time.Duration {
	var avg time.Duration
	for _, dt := range t.times {
		avg += dt
	}
	return avg / time.Duration(len(t.times))
}

func (t *Timer) AveragePerSecond() float64 {
	return float64(time.Second) / float64(t.Average())
}
