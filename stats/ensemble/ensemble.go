// Package ensemble computes element-wise statistics across repeated,
// equally long acquisitions such as the runs of a spectrum series.
package ensemble

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by ensemble functions.
var (
	ErrEmpty          = errors.New("ensemble: no runs")
	ErrLengthMismatch = errors.New("ensemble: run length mismatch")
)

// Result holds the per-bin statistics of an ensemble.
type Result struct {
	Count  int
	Mean   []float64
	StdDev []float64 // population standard deviation
}

// Accumulator tracks per-bin mean and variance incrementally using
// Welford's online algorithm. Every run added must have the length given
// to NewAccumulator.
type Accumulator struct {
	n    int
	mean []float64
	m2   []float64
}

// NewAccumulator creates an accumulator for runs of the given length.
func NewAccumulator(length int) *Accumulator {
	if length < 0 {
		length = 0
	}

	return &Accumulator{
		mean: make([]float64, length),
		m2:   make([]float64, length),
	}
}

// Len returns the run length the accumulator expects.
func (a *Accumulator) Len() int {
	return len(a.mean)
}

// Count returns the number of runs added so far.
func (a *Accumulator) Count() int {
	return a.n
}

// Add folds one run into the running statistics.
func (a *Accumulator) Add(run []float64) error {
	if len(run) != len(a.mean) {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(run), len(a.mean))
	}

	a.n++
	ni := float64(a.n)

	for i, x := range run {
		delta := x - a.mean[i]
		a.mean[i] += delta / ni
		a.m2[i] += delta * (x - a.mean[i])
	}

	return nil
}

// Mean returns a copy of the per-bin mean.
func (a *Accumulator) Mean() []float64 {
	out := make([]float64, len(a.mean))
	copy(out, a.mean)

	return out
}

// Variance returns the per-bin population variance.
// All bins are zero until at least one run has been added.
func (a *Accumulator) Variance() []float64 {
	out := make([]float64, len(a.m2))
	if a.n == 0 {
		return out
	}

	nf := float64(a.n)
	for i, m2 := range a.m2 {
		out[i] = m2 / nf
	}

	return out
}

// StdDev returns the per-bin population standard deviation.
func (a *Accumulator) StdDev() []float64 {
	out := a.Variance()
	for i, v := range out {
		out[i] = math.Sqrt(v)
	}

	return out
}

// Result returns a snapshot of the accumulated statistics.
func (a *Accumulator) Result() Result {
	return Result{
		Count:  a.n,
		Mean:   a.Mean(),
		StdDev: a.StdDev(),
	}
}

// Reset clears all accumulated data, keeping the run length.
func (a *Accumulator) Reset() {
	a.n = 0
	clear(a.mean)
	clear(a.m2)
}

// Calculate computes per-bin statistics for a complete set of runs.
func Calculate(runs [][]float64) (Result, error) {
	if len(runs) == 0 {
		return Result{}, ErrEmpty
	}

	acc := NewAccumulator(len(runs[0]))
	for i, run := range runs {
		if err := acc.Add(run); err != nil {
			return Result{}, fmt.Errorf("run %d: %w", i, err)
		}
	}

	return acc.Result(), nil
}
