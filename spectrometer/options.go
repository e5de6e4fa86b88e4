package spectrometer

import "time"

// Defaults of a freshly constructed Simulator.
const (
	DefaultSerialNumber      = "MOCK-001"
	DefaultWavelengthStart   = 200.0
	DefaultWavelengthStop    = 1100.0
	DefaultPoints            = 2048
	DefaultIntegrationTimeUS = 100000
	DefaultNoiseStdDev       = 500.0
)

// Config holds the construction parameters of a Simulator.
type Config struct {
	SerialNumber             string
	WavelengthStart          float64 // nm
	WavelengthStop           float64 // nm
	Points                   int
	DefaultIntegrationTimeUS int
	NoiseStdDev              float64

	// Seed makes the noise reproducible when Seeded is true.
	Seed   int64
	Seeded bool

	Observer Observer
	Now      func() time.Time
}

// Option mutates a Config. Options given invalid values leave the
// corresponding field unchanged.
type Option func(*Config)

// DefaultConfig returns the configuration of the reference mock device.
func DefaultConfig() Config {
	return Config{
		SerialNumber:             DefaultSerialNumber,
		WavelengthStart:          DefaultWavelengthStart,
		WavelengthStop:           DefaultWavelengthStop,
		Points:                   DefaultPoints,
		DefaultIntegrationTimeUS: DefaultIntegrationTimeUS,
		NoiseStdDev:              DefaultNoiseStdDev,
		Observer:                 NopObserver{},
		Now:                      time.Now,
	}
}

// WithSerialNumber sets the device identifier reported in metadata.
func WithSerialNumber(serial string) Option {
	return func(cfg *Config) {
		if serial != "" {
			cfg.SerialNumber = serial
		}
	}
}

// WithWavelengthRange sets the inclusive wavelength span in nm.
func WithWavelengthRange(start, stop float64) Option {
	return func(cfg *Config) {
		if start < stop {
			cfg.WavelengthStart = start
			cfg.WavelengthStop = stop
		}
	}
}

// WithPoints sets the number of pixels on the wavelength axis.
func WithPoints(n int) Option {
	return func(cfg *Config) {
		if n >= 2 {
			cfg.Points = n
		}
	}
}

// WithDefaultIntegrationTime sets the exposure used when a measurement
// does not specify one.
func WithDefaultIntegrationTime(us int) Option {
	return func(cfg *Config) {
		if us > 0 {
			cfg.DefaultIntegrationTimeUS = us
		}
	}
}

// WithNoiseStdDev sets the standard deviation of the additive Gaussian
// noise, in counts at the reference exposure. Zero disables noise.
func WithNoiseStdDev(sigma float64) Option {
	return func(cfg *Config) {
		if sigma >= 0 {
			cfg.NoiseStdDev = sigma
		}
	}
}

// WithSeed sets a deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
		cfg.Seeded = true
	}
}

// WithObserver sets the receiver of lifecycle and measurement events.
func WithObserver(obs Observer) Option {
	return func(cfg *Config) {
		if obs != nil {
			cfg.Observer = obs
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(cfg *Config) {
		if now != nil {
			cfg.Now = now
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

type measureConfig struct {
	integrationTimeUS   int
	hasIntegrationTime  bool
	correctDarkCounts   bool
	correctNonlinearity bool
	metadata            map[string]any
	kind                Kind
	average             bool
}

// MeasureOption configures a single Measure or MeasureSeries call.
type MeasureOption func(*measureConfig)

func applyMeasureOptions(opts []MeasureOption) measureConfig {
	cfg := measureConfig{
		kind:    KindSample,
		average: true,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithIntegrationTime sets the exposure in microseconds. Without it the
// simulator default is used.
func WithIntegrationTime(us int) MeasureOption {
	return func(cfg *measureConfig) {
		cfg.integrationTimeUS = us
		cfg.hasIntegrationTime = true
	}
}

// WithDarkCorrection records whether dark-count correction was requested.
// The simulator does not alter the spectrum.
func WithDarkCorrection(enabled bool) MeasureOption {
	return func(cfg *measureConfig) {
		cfg.correctDarkCounts = enabled
	}
}

// WithNonlinearityCorrection records whether nonlinearity correction was
// requested. The simulator does not alter the spectrum.
func WithNonlinearityCorrection(enabled bool) MeasureOption {
	return func(cfg *measureConfig) {
		cfg.correctNonlinearity = enabled
	}
}

// WithMetadata adds caller-supplied metadata to the result. The map is
// copied; fixed keys written by the simulator take precedence.
func WithMetadata(md map[string]any) MeasureOption {
	return func(cfg *measureConfig) {
		cfg.metadata = md
	}
}

// WithKind selects a reference or sample acquisition. Default is KindSample.
func WithKind(kind Kind) MeasureOption {
	return func(cfg *measureConfig) {
		cfg.kind = kind
	}
}

// WithAverage selects between an averaged result and the full stack of
// runs in MeasureSeries. Default is true. Measure ignores it.
func WithAverage(average bool) MeasureOption {
	return func(cfg *measureConfig) {
		cfg.average = average
	}
}
