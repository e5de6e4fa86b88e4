// Package config loads the YAML configuration shared by the uvvis tools.
//
// Config file locations (priority order):
//  1. $UVVIS_CONFIG
//  2. ./uvvis-mock.yaml
//  3. $XDG_CONFIG_HOME/uvvis/config.yaml
//  4. ~/.config/uvvis/config.yaml
//
// Missing files are not an error: Load falls back to Default.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-uvvis/spectrometer"
)

// Config is the on-disk configuration.
type Config struct {
	Version int           `yaml:"version"`
	Device  DeviceConfig  `yaml:"device"`
	Noise   NoiseConfig   `yaml:"noise"`
	Logging LoggingConfig `yaml:"logging"`
}

// DeviceConfig describes the simulated spectrometer.
type DeviceConfig struct {
	SerialNumber             string           `yaml:"serial_number"`
	Wavelength               WavelengthConfig `yaml:"wavelength"`
	DefaultIntegrationTimeUS int              `yaml:"default_integration_time_us"`
}

// WavelengthConfig is the pixel axis in nm.
type WavelengthConfig struct {
	Start  float64 `yaml:"start"`
	Stop   float64 `yaml:"stop"`
	Points int     `yaml:"points"`
}

// NoiseConfig controls the additive detector noise.
type NoiseConfig struct {
	// StdDev is a pointer so an explicit 0 (noise off) survives defaults.
	StdDev *float64 `yaml:"stddev"`
	Seed   *int64   `yaml:"seed,omitempty"`
}

// LoggingConfig selects the log level of the tools.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load finds and loads the config file, or returns defaults if none found.
// The returned path is empty when defaults are used.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return Default(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads and validates the config at path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Default returns the configuration of the reference mock device.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Device.SerialNumber == "" {
		c.Device.SerialNumber = spectrometer.DefaultSerialNumber
	}
	if c.Device.Wavelength.Start == 0 && c.Device.Wavelength.Stop == 0 {
		c.Device.Wavelength.Start = spectrometer.DefaultWavelengthStart
		c.Device.Wavelength.Stop = spectrometer.DefaultWavelengthStop
	}
	if c.Device.Wavelength.Points == 0 {
		c.Device.Wavelength.Points = spectrometer.DefaultPoints
	}
	if c.Device.DefaultIntegrationTimeUS == 0 {
		c.Device.DefaultIntegrationTimeUS = spectrometer.DefaultIntegrationTimeUS
	}
	if c.Noise.StdDev == nil {
		sd := spectrometer.DefaultNoiseStdDev
		c.Noise.StdDev = &sd
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	w := c.Device.Wavelength
	if w.Start >= w.Stop {
		errs = append(errs, fmt.Errorf("device.wavelength: start %g must be below stop %g", w.Start, w.Stop))
	}
	if w.Points < 2 {
		errs = append(errs, fmt.Errorf("device.wavelength.points must be >= 2, got %d", w.Points))
	}
	if c.Device.DefaultIntegrationTimeUS < 0 {
		errs = append(errs, fmt.Errorf("device.default_integration_time_us must be > 0, got %d", c.Device.DefaultIntegrationTimeUS))
	}
	if c.Noise.StdDev != nil && *c.Noise.StdDev < 0 {
		errs = append(errs, fmt.Errorf("noise.stddev must be >= 0, got %g", *c.Noise.StdDev))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SimulatorOptions translates the config into simulator options.
func (c *Config) SimulatorOptions() []spectrometer.Option {
	opts := []spectrometer.Option{
		spectrometer.WithSerialNumber(c.Device.SerialNumber),
		spectrometer.WithWavelengthRange(c.Device.Wavelength.Start, c.Device.Wavelength.Stop),
		spectrometer.WithPoints(c.Device.Wavelength.Points),
		spectrometer.WithDefaultIntegrationTime(c.Device.DefaultIntegrationTimeUS),
	}
	if c.Noise.StdDev != nil {
		opts = append(opts, spectrometer.WithNoiseStdDev(*c.Noise.StdDev))
	}
	if c.Noise.Seed != nil {
		opts = append(opts, spectrometer.WithSeed(*c.Noise.Seed))
	}
	return opts
}
