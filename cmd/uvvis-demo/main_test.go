package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-uvvis/internal/config"
	"github.com/cwbudde/algo-uvvis/spectrometer"
)

// isolate keeps config.Load away from files on the host.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
}

func TestRunDefault(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-seed", "1", "-log-level", "off"}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v\nstderr: %s", err, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"Spectrometer MOCK-001: 2048 pixels, 200.0-1100.0 nm",
		"Reference: 3 runs at 100000 µs",
		"Sample:    3 runs at 100000 µs",
		"Peak absorbance: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("log-level off still logged: %s", stderr.String())
	}

	var a, wl float64
	line := out[strings.Index(out, "Peak absorbance: "):]
	if _, err := fmt.Sscanf(line, "Peak absorbance: %f at %f nm", &a, &wl); err != nil {
		t.Fatalf("parse %q: %v", line, err)
	}
	if wl < 435 || wl > 465 {
		t.Errorf("peak wavelength = %.1f, want near 450", wl)
	}
	if a < 0.12 || a > 0.2 {
		t.Errorf("peak absorbance = %.4f, want about 0.157", a)
	}
}

func TestRunWithConfigAndMetrics(t *testing.T) {
	isolate(t)

	cfg := config.Default()
	cfg.Device.SerialNumber = "DEMO-9"
	cfg.Device.Wavelength.Points = 901
	zero := 0.0
	cfg.Noise.StdDev = &zero
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	args := []string{"-config", path, "-n", "2", "-integration", "200000", "-metrics", "-log-level", "info"}
	if err := run(args, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := stdout.String()
	for _, want := range []string{
		"Spectrometer DEMO-9: 901 pixels",
		"Reference: 2 runs at 200000 µs",
		"Peak absorbance: 0.1567 at 450.0 nm",
		"uvvis_measurements_total",
		"kind=reference",
		"uvvis_connected",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if !strings.Contains(stderr.String(), "[MOCK] Connected to simulated spectrometer") {
		t.Errorf("observer log missing:\n%s", stderr.String())
	}
}

func TestRunErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"zero runs", []string{"-n", "0", "-log-level", "off"}},
		{"missing config", []string{"-config", filepath.Join(t.TempDir(), "none.yaml")}},
		{"positional", []string{"extra"}},
		{"unknown flag", []string{"-bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(tt.args, &stdout, &stderr); err == nil {
				t.Fatalf("run(%v) succeeded", tt.args)
			}
		})
	}
}

func TestRunZeroRunsWrapsSentinel(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-n", "0", "-log-level", "off"}, &stdout, &stderr)
	if !errors.Is(err, spectrometer.ErrInvalidCount) {
		t.Fatalf("err = %v, want %v", err, spectrometer.ErrInvalidCount)
	}
	if !strings.HasPrefix(err.Error(), "reference series: ") {
		t.Fatalf("err = %v, want series context", err)
	}
}
