package spectrometer

import (
	"fmt"
	"maps"
	"math/rand"
	"time"

	"github.com/cwbudde/algo-vecmath"
)

// OptimalIntegrationTimeUS is the value returned by OptimizeIntegrationTime.
const OptimalIntegrationTimeUS = 120000

// Simulator is a software stand-in for a UV-Vis spectrometer.
//
// A Simulator starts disconnected. Connect and Disconnect toggle the state;
// all measuring operations require the connected state.
//
// A Simulator is not safe for concurrent use.
type Simulator struct {
	cfg         Config
	wavelengths []float64
	synth       *synthesizer
	observer    Observer
	now         func() time.Time
	connected   bool
}

// New creates a disconnected simulator.
func New(opts ...Option) *Simulator {
	cfg := ApplyOptions(opts...)

	seed := cfg.Seed
	if !cfg.Seeded {
		seed = time.Now().UnixNano()
	}

	wavelengths := Linspace(cfg.WavelengthStart, cfg.WavelengthStop, cfg.Points)

	return &Simulator{
		cfg:         cfg,
		wavelengths: wavelengths,
		synth:       newSynthesizer(wavelengths, cfg.NoiseStdDev, rand.New(rand.NewSource(seed))),
		observer:    cfg.Observer,
		now:         cfg.Now,
	}
}

// Config returns the construction parameters.
func (s *Simulator) Config() Config {
	return s.cfg
}

// SerialNumber returns the simulated device identifier.
func (s *Simulator) SerialNumber() string {
	return s.cfg.SerialNumber
}

// DefaultIntegrationTime returns the exposure used when none is requested.
func (s *Simulator) DefaultIntegrationTime() int {
	return s.cfg.DefaultIntegrationTimeUS
}

// Connected reports whether the simulator is connected.
func (s *Simulator) Connected() bool {
	return s.connected
}

// Connect marks the simulator as connected. It always succeeds.
func (s *Simulator) Connect() bool {
	s.connected = true
	s.observer.Connected(s.cfg.SerialNumber)
	return true
}

// Disconnect marks the simulator as disconnected.
func (s *Simulator) Disconnect() {
	s.connected = false
	s.observer.Disconnected(s.cfg.SerialNumber)
}

// Wavelengths returns a copy of the wavelength axis in nm.
func (s *Simulator) Wavelengths() ([]float64, error) {
	if !s.connected {
		return nil, ErrNotConnected
	}
	return s.axis(), nil
}

func (s *Simulator) axis() []float64 {
	out := make([]float64, len(s.wavelengths))
	copy(out, s.wavelengths)
	return out
}

// Measure acquires one simulated spectrum.
//
// Intensities are the kind's profile plus Gaussian noise, scaled by
// integrationTime/CalibrationIntegrationTimeUS. Dark-count and
// nonlinearity flags are only recorded in the metadata.
func (s *Simulator) Measure(opts ...MeasureOption) (Measurement, error) {
	if !s.connected {
		return Measurement{}, ErrNotConnected
	}

	cfg := applyMeasureOptions(opts)
	us, err := s.resolveIntegrationTime(cfg)
	if err != nil {
		return Measurement{}, err
	}

	return s.measure(cfg, us)
}

func (s *Simulator) resolveIntegrationTime(cfg measureConfig) (int, error) {
	if !cfg.hasIntegrationTime {
		return s.cfg.DefaultIntegrationTimeUS, nil
	}
	if cfg.integrationTimeUS <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidIntegrationTime, cfg.integrationTimeUS)
	}
	return cfg.integrationTimeUS, nil
}

func (s *Simulator) measure(cfg measureConfig, integrationTimeUS int) (Measurement, error) {
	if !cfg.kind.valid() {
		return Measurement{}, fmt.Errorf("%w: %v", ErrUnknownKind, cfg.kind)
	}

	intensities := s.synth.generate(cfg.kind)
	vecmath.ScaleBlockInPlace(intensities, float64(integrationTimeUS)/CalibrationIntegrationTimeUS)

	md := make(map[string]any, len(cfg.metadata)+4)
	maps.Copy(md, cfg.metadata)
	md[MetaSerialNumber] = s.cfg.SerialNumber
	md[MetaDarkCorrected] = cfg.correctDarkCounts
	md[MetaNonlinearityCorrected] = cfg.correctNonlinearity
	md[MetaMock] = true

	_, peakVal := peak(intensities)
	s.observer.Measured(MeasureEvent{
		SerialNumber:      s.cfg.SerialNumber,
		Kind:              cfg.kind,
		IntegrationTimeUS: integrationTimeUS,
		PeakIntensity:     peakVal,
	})

	return Measurement{
		Wavelengths:       s.axis(),
		Intensities:       intensities,
		Timestamp:         s.now(),
		IntegrationTimeUS: integrationTimeUS,
		Metadata:          md,
	}, nil
}

// OptimizeIntegrationTime returns an integration time suited to the
// simulated lamp. No search is performed: the result is always
// OptimalIntegrationTimeUS regardless of the arguments or connection state.
func (s *Simulator) OptimizeIntegrationTime(targetCounts float64, maxIterations int) int {
	s.observer.Optimizing(s.cfg.SerialNumber, targetCounts, maxIterations)
	s.observer.Optimized(s.cfg.SerialNumber, OptimalIntegrationTimeUS)
	return OptimalIntegrationTimeUS
}
