package spectrometer

import "time"

// Metadata keys written by the simulator.
const (
	MetaSerialNumber          = "serial_number"
	MetaDarkCorrected         = "dark_corrected"
	MetaNonlinearityCorrected = "nonlinearity_corrected"
	MetaMock                  = "mock"
	MetaCount                 = "n_measurements"
	MetaStdIntensities        = "std_intensities"
	MetaAveraged              = "averaged"
)

// Measurement is the result of one acquisition call. Each call returns
// freshly allocated slices and a fresh metadata map owned by the caller.
type Measurement struct {
	Wavelengths []float64 // nm, copy of the simulator axis
	Intensities []float64 // counts; nil when Stack is set

	// Stack holds every run of a non-averaged series, one row per run.
	Stack [][]float64

	Timestamp         time.Time
	IntegrationTimeUS int
	Metadata          map[string]any
}

// Stacked reports whether the measurement carries a stack of runs
// instead of a single intensity vector.
func (m Measurement) Stacked() bool {
	return m.Stack != nil
}

// StdIntensities returns the per-pixel standard deviation recorded by an
// averaged series.
func (m Measurement) StdIntensities() ([]float64, bool) {
	sd, ok := m.Metadata[MetaStdIntensities].([]float64)
	return sd, ok
}

// Count returns the number of runs behind the measurement; 1 for a
// single acquisition.
func (m Measurement) Count() int {
	if n, ok := m.Metadata[MetaCount].(int); ok {
		return n
	}
	return 1
}

// Peak returns the index and value of the largest intensity, or -1 when
// there are no intensities.
func (m Measurement) Peak() (int, float64) {
	return peak(m.Intensities)
}

func peak(x []float64) (int, float64) {
	if len(x) == 0 {
		return -1, 0
	}
	pos, maxVal := 0, x[0]
	for i, v := range x[1:] {
		if v > maxVal {
			pos, maxVal = i+1, v
		}
	}
	return pos, maxVal
}
