// Package spectrometer simulates a UV-Vis spectrometer so acquisition and
// analysis code can run without hardware.
//
// The simulated device has a fixed, linearly spaced wavelength axis
// (200 to 1100 nm over 2048 pixels by default) and produces two kinds of
// spectra:
//
//   - Reference: a lamp baseline, 40000 counts plus a broad Gaussian
//     centred at 500 nm, with additive Gaussian noise (sigma 500)
//   - Sample: the same baseline with absorption dips at 450 nm and 650 nm
//
// Intensities are calibrated for a 100000 µs exposure and scale linearly
// with the requested integration time. Noise is redrawn on every call;
// use WithSeed for reproducible runs.
//
// # Usage
//
//	sim := spectrometer.New(spectrometer.WithSeed(1))
//	sim.Connect()
//	defer sim.Disconnect()
//
//	ref, _ := sim.MeasureSeries(3, spectrometer.WithKind(spectrometer.KindReference))
//	smp, _ := sim.MeasureSeries(3)
//	// compare smp.Intensities against ref.Intensities ...
//
// Measuring while disconnected returns ErrNotConnected. Diagnostic events
// go to the Observer given with WithObserver; LogObserver renders them as
// "[MOCK]" log records.
package spectrometer
