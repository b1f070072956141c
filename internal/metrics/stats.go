// Package metrics accumulates training statistics: a rolling window
// for periodic logging and whole-run summaries of the loss curve.
package metrics

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Window accumulates per-step stats between log lines.
type Window struct {
	samples  int
	compute  time.Duration
	steps    int
	lossSum  float64
	lastLoss float64
}

// Record adds one training step to the window.
func (w *Window) Record(batchSize int, computeTime time.Duration, loss float64) {
	w.samples += batchSize
	w.compute += computeTime
	w.steps++
	w.lossSum += loss
	w.lastLoss = loss
}

// Snapshot returns the aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{LastLoss: w.lastLoss}
	if w.compute > 0 {
		snap.SamplesPerSec = float64(w.samples) / w.compute.Seconds()
	}
	if w.steps > 0 {
		snap.AvgLoss = w.lossSum / float64(w.steps)
		snap.AvgComputeMS = (w.compute.Seconds() * 1000) / float64(w.steps)
	}

	*w = Window{}
	return snap
}

// Snapshot is one window of loggable metrics.
type Snapshot struct {
	SamplesPerSec float64
	AvgComputeMS  float64
	AvgLoss       float64
	LastLoss      float64
}

// Summary describes a full loss history.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Final  float64
}

// Summarize computes summary statistics over a loss history.
// Returns the zero Summary for an empty history.
func Summarize(losses []float64) Summary {
	if len(losses) == 0 {
		return Summary{}
	}

	// stat.StdDev uses the n-1 denominator and yields NaN for a single
	// sample.
	stdDev := 0.0
	if len(losses) > 1 {
		stdDev = stat.StdDev(losses, nil)
	}

	return Summary{
		Mean:   stat.Mean(losses, nil),
		StdDev: stdDev,
		Min:    floats.Min(losses),
		Final:  losses[len(losses)-1],
	}
}
