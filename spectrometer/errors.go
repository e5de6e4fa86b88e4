package spectrometer

import "errors"

// Errors returned by Simulator operations.
var (
	// ErrNotConnected is returned by measuring operations while the
	// simulator is disconnected. Call Connect and retry.
	ErrNotConnected = errors.New("spectrometer: not connected")

	// ErrInvalidCount is returned by MeasureSeries for n < 1.
	ErrInvalidCount = errors.New("spectrometer: invalid measurement count")

	// ErrInvalidIntegrationTime is returned for non-positive integration times.
	ErrInvalidIntegrationTime = errors.New("spectrometer: integration time must be > 0")

	// ErrUnknownKind is returned for an acquisition kind other than
	// KindReference or KindSample.
	ErrUnknownKind = errors.New("spectrometer: unknown spectrum kind")
)
