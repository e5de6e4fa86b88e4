// Command uvvis-demo runs an offline acquisition against the simulated
// spectrometer: it averages reference and sample series, computes the
// absorbance spectrum and reports its peak.
//
// Usage:
//
//	uvvis-demo [flags]
//
// Examples:
//
//	uvvis-demo
//	uvvis-demo -n 10 -integration 200000
//	uvvis-demo -config uvvis-mock.yaml -seed 7 -metrics
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/algo-uvvis/absorbance"
	"github.com/cwbudde/algo-uvvis/internal/config"
	"github.com/cwbudde/algo-uvvis/internal/logging"
	"github.com/cwbudde/algo-uvvis/internal/metrics"
	"github.com/cwbudde/algo-uvvis/spectrometer"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("uvvis-demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	n := fs.Int("n", 3, "number of runs averaged per series")
	integration := fs.Int("integration", 0, "integration time in µs (0 uses the configured default)")
	seed := fs.Int64("seed", 0, "noise seed (overrides the config)")
	cfgPath := fs.String("config", "", "config file (default: search the standard locations)")
	showMetrics := fs.Bool("metrics", false, "print a metrics summary at the end")
	level := fs.String("log-level", "", "log level: debug, info, warn, error, off (overrides the config)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: uvvis-demo [flags]\n\n")
		fmt.Fprintf(stderr, "Measures reference and sample spectra on the simulated spectrometer\n")
		fmt.Fprintf(stderr, "and prints the absorbance peak.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Noise.Seed = seed
		case "log-level":
			cfg.Logging.Level = *level
		}
	})

	logger := logging.NewLogger(cfg.Logging.Level, stderr)

	reg := prometheus.NewRegistry()
	prom, err := metrics.NewPromObserver(reg)
	if err != nil {
		return err
	}

	opts := append(cfg.SimulatorOptions(),
		spectrometer.WithObserver(spectrometer.MultiObserver{
			spectrometer.NewLogObserver(logger),
			prom,
		}),
	)
	spec := spectrometer.New(opts...)

	spec.Connect()
	peak, err := acquire(stdout, spec, *n, *integration)
	spec.Disconnect()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Peak absorbance: %.4f at %.1f nm\n", peak.Absorbance, peak.Wavelength)

	if *showMetrics {
		fmt.Fprintln(stdout)
		return metrics.WriteSummary(stdout, reg)
	}

	return nil
}

// acquire measures averaged reference and sample series on a connected
// simulator and returns the absorbance peak.
func acquire(w io.Writer, spec *spectrometer.Simulator, n, integrationUS int) (absorbance.Peak, error) {
	wl, err := spec.Wavelengths()
	if err != nil {
		return absorbance.Peak{}, err
	}
	fmt.Fprintf(w, "Spectrometer %s: %d pixels, %.1f-%.1f nm\n", spec.SerialNumber(), len(wl), wl[0], wl[len(wl)-1])

	var opts []spectrometer.MeasureOption
	if integrationUS > 0 {
		opts = append(opts, spectrometer.WithIntegrationTime(integrationUS))
	}

	reference, err := series(spec, n, spectrometer.KindReference, opts)
	if err != nil {
		return absorbance.Peak{}, err
	}
	printSeries(w, "Reference", reference)

	sample, err := series(spec, n, spectrometer.KindSample, opts)
	if err != nil {
		return absorbance.Peak{}, err
	}
	printSeries(w, "Sample", sample)

	abs, err := absorbance.FromMeasurements(sample, reference)
	if err != nil {
		return absorbance.Peak{}, fmt.Errorf("absorbance: %w", err)
	}
	peak, err := absorbance.FindPeak(abs, sample.Wavelengths)
	if err != nil {
		return absorbance.Peak{}, fmt.Errorf("absorbance peak: %w", err)
	}
	return peak, nil
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, _, err = config.LoadFromPath(path)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func series(spec *spectrometer.Simulator, n int, kind spectrometer.Kind, opts []spectrometer.MeasureOption) (spectrometer.Measurement, error) {
	all := append([]spectrometer.MeasureOption{spectrometer.WithKind(kind)}, opts...)
	m, err := spec.MeasureSeries(n, all...)
	if err != nil {
		return spectrometer.Measurement{}, fmt.Errorf("%s series: %w", kind, err)
	}
	return m, nil
}

func printSeries(w io.Writer, label string, m spectrometer.Measurement) {
	idx, peak := m.Peak()
	fmt.Fprintf(w, "%-10s %d runs at %d µs, max %.0f counts at %.1f nm\n",
		label+":", m.Count(), m.IntegrationTimeUS, peak, m.Wavelengths[idx])
}
