package spectrometer

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
)

// CalibrationIntegrationTimeUS is the exposure at which Profile is
// expressed. Measured intensities scale linearly with
// integrationTime/CalibrationIntegrationTimeUS.
const CalibrationIntegrationTimeUS = 100000

// lampFloor is the constant part of the simulated lamp output in counts.
const lampFloor = 40000.0

// band is a Gaussian feature amplitude*exp(-(lambda-center)^2/width).
// width is used as the whole denominator, not as 2*sigma^2.
type band struct {
	center    float64 // nm
	amplitude float64 // counts
	width     float64 // nm^2
}

func (b band) at(lambda float64) float64 {
	d := lambda - b.center
	return b.amplitude * math.Exp(-d*d/b.width)
}

var (
	lampBands = []band{
		{center: 500, amplitude: 10000, width: 50000},
	}
	absorptionBands = []band{
		{center: 450, amplitude: -15000, width: 500},
		{center: 650, amplitude: -8000, width: 800},
	}
)

// Linspace returns n evenly spaced values over [start, stop]. Both
// endpoints are exact. n < 1 yields nil and n == 1 yields {start}.
func Linspace(start, stop float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}

// Profile returns the noiseless intensity curve of the given kind over
// wavelengths, at CalibrationIntegrationTimeUS. Unknown kinds are treated
// as KindSample.
func Profile(wavelengths []float64, kind Kind) []float64 {
	out := make([]float64, len(wavelengths))
	for i, lambda := range wavelengths {
		v := lampFloor
		for _, b := range lampBands {
			v += b.at(lambda)
		}
		if kind != KindReference {
			for _, b := range absorptionBands {
				v += b.at(lambda)
			}
		}
		out[i] = v
	}
	return out
}

// synthesizer draws noisy spectra around precomputed profiles.
type synthesizer struct {
	reference []float64
	sample    []float64
	noise     []float64
	sigma     float64
	rng       *rand.Rand
}

func newSynthesizer(wavelengths []float64, sigma float64, rng *rand.Rand) *synthesizer {
	return &synthesizer{
		reference: Profile(wavelengths, KindReference),
		sample:    Profile(wavelengths, KindSample),
		noise:     make([]float64, len(wavelengths)),
		sigma:     sigma,
		rng:       rng,
	}
}

// generate returns a fresh spectrum of the given kind at the calibration
// exposure. Noise is redrawn on every call.
func (s *synthesizer) generate(kind Kind) []float64 {
	profile := s.sample
	if kind == KindReference {
		profile = s.reference
	}

	for i := range s.noise {
		s.noise[i] = s.rng.NormFloat64()
	}
	vecmath.ScaleBlockInPlace(s.noise, s.sigma)

	out := make([]float64, len(profile))
	vecmath.AddBlock(out, profile, s.noise)
	return out
}
