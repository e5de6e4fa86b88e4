package absorbance

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-uvvis/internal/testutil"
	"github.com/cwbudde/algo-uvvis/spectrometer"
)

func TestCompute(t *testing.T) {
	sample := []float64{100, 10, 50}
	reference := []float64{100, 100, 50000}

	got, err := Compute(sample, reference)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 1, 3}, 1e-9)
}

func TestComputeNonPositiveRatio(t *testing.T) {
	got, err := Compute([]float64{0, -1}, []float64{1, 1})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !math.IsInf(got[0], 1) {
		t.Errorf("zero sample: got %v, want +Inf", got[0])
	}
	if !math.IsNaN(got[1]) {
		t.Errorf("negative ratio: got %v, want NaN", got[1])
	}
}

func TestComputeErrors(t *testing.T) {
	if _, err := Compute(nil, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty: error = %v, want ErrEmpty", err)
	}
	if _, err := Compute([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("mismatch: error = %v, want ErrLengthMismatch", err)
	}
}

func TestFindPeak(t *testing.T) {
	abs := []float64{0.1, math.NaN(), math.Inf(1), 0.7, 0.3}
	wl := []float64{400, 410, 420, 430, 440}

	p, err := FindPeak(abs, wl)
	if err != nil {
		t.Fatalf("FindPeak() error = %v", err)
	}
	if p.Index != 3 || p.Wavelength != 430 || p.Absorbance != 0.7 {
		t.Fatalf("FindPeak() = %+v", p)
	}
}

func TestFindPeakErrors(t *testing.T) {
	if _, err := FindPeak([]float64{math.NaN()}, []float64{400}); !errors.Is(err, ErrEmpty) {
		t.Errorf("all NaN: error = %v, want ErrEmpty", err)
	}
	if _, err := FindPeak([]float64{1}, nil); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("mismatch: error = %v, want ErrLengthMismatch", err)
	}
}

func TestFromMeasurementsFindsStrongestDip(t *testing.T) {
	sim := spectrometer.New(spectrometer.WithNoiseStdDev(0))
	sim.Connect()

	ref, err := sim.MeasureSeries(3, spectrometer.WithKind(spectrometer.KindReference))
	if err != nil {
		t.Fatalf("MeasureSeries(reference) error = %v", err)
	}
	smp, err := sim.MeasureSeries(3)
	if err != nil {
		t.Fatalf("MeasureSeries(sample) error = %v", err)
	}

	abs, err := FromMeasurements(smp, ref)
	if err != nil {
		t.Fatalf("FromMeasurements() error = %v", err)
	}

	p, err := FindPeak(abs, smp.Wavelengths)
	if err != nil {
		t.Fatalf("FindPeak() error = %v", err)
	}

	// The 450 nm band is the deepest absorption feature.
	if math.Abs(p.Wavelength-450) > 1 {
		t.Fatalf("peak at %.1f nm, want about 450", p.Wavelength)
	}
	want := -math.Log10((49512.29 - 15000) / 49512.29)
	if math.Abs(p.Absorbance-want) > 0.01 {
		t.Fatalf("peak absorbance = %.4f, want about %.4f", p.Absorbance, want)
	}
}

func TestFromMeasurementsRejectsStack(t *testing.T) {
	sim := spectrometer.New()
	sim.Connect()

	stack, _ := sim.MeasureSeries(2, spectrometer.WithAverage(false))
	single, _ := sim.Measure()

	if _, err := FromMeasurements(stack, single); !errors.Is(err, ErrStacked) {
		t.Fatalf("error = %v, want ErrStacked", err)
	}
}
