package ensemble

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-uvvis/internal/testutil"
)

const tolerance = 1e-12

func TestCalculate_KnownValues(t *testing.T) {
	runs := [][]float64{
		{1, 2, 10},
		{3, 4, 10},
		{5, 6, 10},
	}

	r, err := Calculate(runs)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if r.Count != 3 {
		t.Errorf("Count: got %d, want 3", r.Count)
	}

	sd := math.Sqrt(8.0 / 3.0)
	testutil.RequireSliceNearlyEqual(t, r.Mean, []float64{3, 4, 10}, tolerance)
	testutil.RequireSliceNearlyEqual(t, r.StdDev, []float64{sd, sd, 0}, tolerance)
}

func TestCalculate_SingleRun(t *testing.T) {
	run := []float64{7, -3, 0.5}

	r, err := Calculate([][]float64{run})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, r.Mean, run, 0)
	testutil.RequireSliceNearlyEqual(t, r.StdDev, []float64{0, 0, 0}, 0)
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name string
		runs [][]float64
		want error
	}{
		{"nil", nil, ErrEmpty},
		{"empty", [][]float64{}, ErrEmpty},
		{"ragged", [][]float64{{1, 2}, {1}}, ErrLengthMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(tc.runs)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Calculate() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAccumulator_MatchesTwoPass(t *testing.T) {
	runs := [][]float64{
		{40000, 41000, 39500},
		{40500, 40100, 39000},
		{39800, 40900, 40200},
		{40200, 40400, 39900},
	}

	acc := NewAccumulator(3)
	for _, run := range runs {
		if err := acc.Add(run); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	for bin := range 3 {
		var mean float64
		for _, run := range runs {
			mean += run[bin]
		}
		mean /= float64(len(runs))

		var ss float64
		for _, run := range runs {
			d := run[bin] - mean
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(len(runs)))

		if got := acc.Mean()[bin]; math.Abs(got-mean) > 1e-9 {
			t.Errorf("bin %d mean: got %v, want %v", bin, got, mean)
		}
		if got := acc.StdDev()[bin]; math.Abs(got-sd) > 1e-9 {
			t.Errorf("bin %d stddev: got %v, want %v", bin, got, sd)
		}
	}
}

func TestAccumulator_LengthMismatch(t *testing.T) {
	acc := NewAccumulator(4)
	if err := acc.Add([]float64{1, 2}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("Add() error = %v, want ErrLengthMismatch", err)
	}
	if acc.Count() != 0 {
		t.Fatalf("Count after rejected run = %d, want 0", acc.Count())
	}
}

func TestAccumulator_EmptyVariance(t *testing.T) {
	acc := NewAccumulator(2)
	testutil.RequireSliceNearlyEqual(t, acc.Variance(), []float64{0, 0}, 0)
}

func TestAccumulator_MeanIsCopy(t *testing.T) {
	acc := NewAccumulator(1)
	_ = acc.Add([]float64{5})

	m := acc.Mean()
	m[0] = 99

	if acc.Mean()[0] != 5 {
		t.Fatal("Mean() exposed internal state")
	}
}

func TestAccumulator_Reset(t *testing.T) {
	acc := NewAccumulator(2)
	_ = acc.Add([]float64{1, 2})
	_ = acc.Add([]float64{3, 4})
	acc.Reset()

	if acc.Count() != 0 || acc.Len() != 2 {
		t.Fatalf("after Reset: count=%d len=%d, want 0 and 2", acc.Count(), acc.Len())
	}

	_ = acc.Add([]float64{8, 9})
	testutil.RequireSliceNearlyEqual(t, acc.Mean(), []float64{8, 9}, 0)
}
