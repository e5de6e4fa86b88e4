package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-uvvis/spectrometer"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Device.SerialNumber != "MOCK-001" {
		t.Errorf("SerialNumber = %q, want MOCK-001", cfg.Device.SerialNumber)
	}
	w := cfg.Device.Wavelength
	if w.Start != 200 || w.Stop != 1100 || w.Points != 2048 {
		t.Errorf("Wavelength = %+v, want 200..1100 x 2048", w)
	}
	if cfg.Device.DefaultIntegrationTimeUS != 100000 {
		t.Errorf("DefaultIntegrationTimeUS = %d, want 100000", cfg.Device.DefaultIntegrationTimeUS)
	}
	if cfg.Noise.StdDev == nil || *cfg.Noise.StdDev != 500 {
		t.Errorf("Noise.StdDev = %v, want 500", cfg.Noise.StdDev)
	}
	if cfg.Noise.Seed != nil {
		t.Errorf("Noise.Seed = %v, want nil", *cfg.Noise.Seed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParsePartialAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
device:
  serial_number: LAB-42
  wavelength:
    points: 512
noise:
  stddev: 0
  seed: 9
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Device.SerialNumber != "LAB-42" {
		t.Errorf("SerialNumber = %q", cfg.Device.SerialNumber)
	}
	if cfg.Device.Wavelength.Start != 200 || cfg.Device.Wavelength.Points != 512 {
		t.Errorf("Wavelength = %+v", cfg.Device.Wavelength)
	}
	if cfg.Noise.StdDev == nil || *cfg.Noise.StdDev != 0 {
		t.Errorf("explicit zero stddev lost: %v", cfg.Noise.StdDev)
	}
	if cfg.Noise.Seed == nil || *cfg.Noise.Seed != 9 {
		t.Errorf("Seed = %v, want 9", cfg.Noise.Seed)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"syntax", "device: [", "parse config"},
		{"reversed range", "device:\n  wavelength:\n    start: 900\n    stop: 300\n", "start 900 must be below stop 300"},
		{"one point", "device:\n  wavelength:\n    points: 1\n", "points must be >= 2"},
		{"negative exposure", "device:\n  default_integration_time_us: -1\n", "default_integration_time_us"},
		{"negative noise", "noise:\n  stddev: -3\n", "noise.stddev"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Parse() error = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestSaveAndLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := Default()
	cfg.Device.SerialNumber = "SAVED-1"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, gotPath, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if gotPath != path {
		t.Errorf("path = %q, want %q", gotPath, path)
	}
	if loaded.Device.SerialNumber != "SAVED-1" {
		t.Errorf("SerialNumber = %q, want SAVED-1", loaded.Device.SerialNumber)
	}
}

func TestLoadFromPathMissing(t *testing.T) {
	_, _, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("LoadFromPath() error = %v, want read config error", err)
	}
}

func TestFindConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv(EnvConfigPath, "")

	if got := FindConfigPath(); got != "" {
		t.Fatalf("FindConfigPath() = %q, want empty", got)
	}

	home := filepath.Join(dir, ".config", DirName, "config.yaml")
	mustWrite(t, home)
	if got := FindConfigPath(); got != home {
		t.Fatalf("FindConfigPath() = %q, want %q", got, home)
	}

	mustWrite(t, filepath.Join(dir, FileName))
	if got := FindConfigPath(); filepath.Base(got) != FileName {
		t.Fatalf("FindConfigPath() = %q, want working-directory file", got)
	}

	explicit := filepath.Join(dir, "explicit.yaml")
	mustWrite(t, explicit)
	t.Setenv(EnvConfigPath, explicit)
	if got := FindConfigPath(); got != explicit {
		t.Fatalf("FindConfigPath() = %q, want %q", got, explicit)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv(EnvConfigPath, "")

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != "" || cfg.Device.SerialNumber != spectrometer.DefaultSerialNumber {
		t.Fatalf("Load() = %+v, %q", cfg, path)
	}
}

func TestSimulatorOptions(t *testing.T) {
	cfg, err := Parse([]byte(`
device:
  serial_number: OPT-1
  wavelength: {start: 300, stop: 700, points: 101}
  default_integration_time_us: 20000
noise: {stddev: 0, seed: 5}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	sc := spectrometer.ApplyOptions(cfg.SimulatorOptions()...)
	if sc.SerialNumber != "OPT-1" || sc.WavelengthStart != 300 || sc.WavelengthStop != 700 ||
		sc.Points != 101 || sc.DefaultIntegrationTimeUS != 20000 || sc.NoiseStdDev != 0 ||
		!sc.Seeded || sc.Seed != 5 {
		t.Fatalf("simulator config = %+v", sc)
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}
