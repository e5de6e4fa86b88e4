package spectrometer

import (
	"fmt"

	"github.com/cwbudde/algo-uvvis/stats/ensemble"
)

// MeasureSeries performs n independent acquisitions with the same
// integration time and kind.
//
// With WithAverage(true), the default, the result holds the per-pixel mean
// and records the per-pixel population standard deviation under
// MetaStdIntensities. With WithAverage(false) the result carries every run
// in Stack. Dark-count, nonlinearity and metadata options are not applied
// to the runs.
func (s *Simulator) MeasureSeries(n int, opts ...MeasureOption) (Measurement, error) {
	if !s.connected {
		return Measurement{}, ErrNotConnected
	}
	if n < 1 {
		return Measurement{}, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	req := applyMeasureOptions(opts)
	us, err := s.resolveIntegrationTime(req)
	if err != nil {
		return Measurement{}, err
	}

	run := measureConfig{kind: req.kind}

	if !req.average {
		stack := make([][]float64, 0, n)
		for range n {
			m, err := s.measure(run, us)
			if err != nil {
				return Measurement{}, err
			}
			stack = append(stack, m.Intensities)
		}

		return Measurement{
			Wavelengths:       s.axis(),
			Stack:             stack,
			Timestamp:         s.now(),
			IntegrationTimeUS: us,
			Metadata: map[string]any{
				MetaCount:    n,
				MetaAveraged: false,
				MetaMock:     true,
			},
		}, nil
	}

	acc := ensemble.NewAccumulator(len(s.wavelengths))
	for range n {
		m, err := s.measure(run, us)
		if err != nil {
			return Measurement{}, err
		}
		if err := acc.Add(m.Intensities); err != nil {
			return Measurement{}, err
		}
	}

	return Measurement{
		Wavelengths:       s.axis(),
		Intensities:       acc.Mean(),
		Timestamp:         s.now(),
		IntegrationTimeUS: us,
		Metadata: map[string]any{
			MetaCount:          n,
			MetaStdIntensities: acc.StdDev(),
			MetaAveraged:       true,
			MetaMock:           true,
		},
	}, nil
}
