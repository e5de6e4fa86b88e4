package spectrometer

import "log/slog"

// MeasureEvent describes one completed single acquisition.
type MeasureEvent struct {
	SerialNumber      string
	Kind              Kind
	IntegrationTimeUS int
	PeakIntensity     float64
}

// Observer receives the diagnostic events of a Simulator. Implementations
// must not retain the Simulator or call back into it.
type Observer interface {
	Connected(serial string)
	Disconnected(serial string)
	Measured(ev MeasureEvent)
	Optimizing(serial string, targetCounts float64, maxIterations int)
	Optimized(serial string, integrationTimeUS int)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) Connected(string) {}
func (NopObserver) Disconnected(string) {}
func (NopObserver) Measured(MeasureEvent) {}
func (NopObserver) Optimizing(string, float64, int) {}
func (NopObserver) Optimized(string, int) {}

// LogObserver writes every event as a "[MOCK]"-prefixed record to a
// structured logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver returns a LogObserver writing to logger, or to
// slog.Default() when logger is nil.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Connected(serial string) {
	o.logger.Info("[MOCK] Connected to simulated spectrometer", "serial", serial)
}

func (o *LogObserver) Disconnected(serial string) {
	o.logger.Info("[MOCK] Spectrometer disconnected", "serial", serial)
}

func (o *LogObserver) Measured(ev MeasureEvent) {
	o.logger.Info("[MOCK] Measured spectrum",
		"serial", ev.SerialNumber,
		"kind", ev.Kind.String(),
		"integration_us", ev.IntegrationTimeUS,
		"max_intensity", int64(ev.PeakIntensity),
	)
}

func (o *LogObserver) Optimizing(serial string, targetCounts float64, maxIterations int) {
	o.logger.Info("[MOCK] Optimizing integration time...",
		"serial", serial,
		"target_counts", targetCounts,
		"max_iterations", maxIterations,
	)
}

func (o *LogObserver) Optimized(serial string, integrationTimeUS int) {
	o.logger.Info("[MOCK] Optimized integration time", "serial", serial, "integration_us", integrationTimeUS)
}

// MultiObserver forwards every event to each observer in order.
type MultiObserver []Observer

func (m MultiObserver) Connected(serial string) {
	for _, o := range m {
		o.Connected(serial)
	}
}

func (m MultiObserver) Disconnected(serial string) {
	for _, o := range m {
		o.Disconnected(serial)
	}
}

func (m MultiObserver) Measured(ev MeasureEvent) {
	for _, o := range m {
		o.Measured(ev)
	}
}

func (m MultiObserver) Optimizing(serial string, targetCounts float64, maxIterations int) {
	for _, o := range m {
		o.Optimizing(serial, targetCounts, maxIterations)
	}
}

func (m MultiObserver) Optimized(serial string, integrationTimeUS int) {
	for _, o := range m {
		o.Optimized(serial, integrationTimeUS)
	}
}
