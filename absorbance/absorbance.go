// Package absorbance derives absorbance spectra from sample and reference
// intensities, A = -log10(sample / reference).
package absorbance

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-uvvis/spectrometer"
)

// Epsilon is added to the reference before division.
const Epsilon = 1e-10

// Errors returned by absorbance functions.
var (
	ErrEmpty          = errors.New("absorbance: empty input")
	ErrLengthMismatch = errors.New("absorbance: length mismatch")
	ErrStacked        = errors.New("absorbance: measurement holds a stack of runs")
)

// Peak is the position of maximum absorbance.
type Peak struct {
	Index      int
	Wavelength float64 // nm
	Absorbance float64
}

// Compute returns -log10(sample/(reference+Epsilon)) per pixel.
// Non-positive ratios yield NaN or +Inf, matching math.Log10.
func Compute(sample, reference []float64) ([]float64, error) {
	if len(sample) == 0 {
		return nil, ErrEmpty
	}
	if len(sample) != len(reference) {
		return nil, fmt.Errorf("%w: sample %d, reference %d", ErrLengthMismatch, len(sample), len(reference))
	}

	out := make([]float64, len(sample))
	for i, r := range reference {
		out[i] = 1 / (r + Epsilon)
	}
	vecmath.MulBlockInPlace(out, sample)

	// log10(1/ratio) keeps unit ratios at +0.
	for i, ratio := range out {
		out[i] = math.Log10(1 / ratio)
	}

	return out, nil
}

// FromMeasurements computes the absorbance of two single or averaged
// measurements taken on the same wavelength axis.
func FromMeasurements(sample, reference spectrometer.Measurement) ([]float64, error) {
	if sample.Stacked() || reference.Stacked() {
		return nil, ErrStacked
	}
	if len(sample.Wavelengths) != len(reference.Wavelengths) {
		return nil, fmt.Errorf("%w: wavelength axes %d and %d", ErrLengthMismatch,
			len(sample.Wavelengths), len(reference.Wavelengths))
	}

	return Compute(sample.Intensities, reference.Intensities)
}

// FindPeak locates the maximum finite absorbance. NaN and infinite values
// are skipped.
func FindPeak(absorbance, wavelengths []float64) (Peak, error) {
	if len(absorbance) != len(wavelengths) {
		return Peak{}, fmt.Errorf("%w: absorbance %d, wavelengths %d", ErrLengthMismatch,
			len(absorbance), len(wavelengths))
	}

	best := Peak{Index: -1}
	for i, a := range absorbance {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			continue
		}
		if best.Index < 0 || a > best.Absorbance {
			best = Peak{Index: i, Wavelength: wavelengths[i], Absorbance: a}
		}
	}

	if best.Index < 0 {
		return Peak{}, ErrEmpty
	}

	return best, nil
}
