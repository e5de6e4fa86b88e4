// Package metrics exposes simulator activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/algo-uvvis/spectrometer"
)

// Metric names.
const (
	ConnectsTotal      = "uvvis_connects_total"
	DisconnectsTotal   = "uvvis_disconnects_total"
	ConnectionState    = "uvvis_connected"
	MeasurementsTotal  = "uvvis_measurements_total"
	PeakIntensity      = "uvvis_peak_intensity_counts"
	IntegrationTime    = "uvvis_integration_time_microseconds"
	OptimizationsTotal = "uvvis_optimizations_total"
)

// PromObserver is a spectrometer.Observer that records events as
// Prometheus metrics.
type PromObserver struct {
	connects      prometheus.Counter
	disconnects   prometheus.Counter
	connected     prometheus.Gauge
	measurements  *prometheus.CounterVec
	peak          *prometheus.HistogramVec
	integration   prometheus.Gauge
	optimizations prometheus.Counter
}

var _ spectrometer.Observer = (*PromObserver)(nil)

// NewPromObserver creates the collectors and registers them with reg.
// It returns an error if any collector is already registered.
func NewPromObserver(reg prometheus.Registerer) (*PromObserver, error) {
	p := &PromObserver{
		connects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: ConnectsTotal,
			Help: "Number of Connect calls.",
		}),
		disconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: DisconnectsTotal,
			Help: "Number of Disconnect calls.",
		}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: ConnectionState,
			Help: "1 while the simulator is connected, 0 otherwise.",
		}),
		measurements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MeasurementsTotal,
			Help: "Single acquisitions performed, by spectrum kind.",
		}, []string{"kind"}),
		peak: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    PeakIntensity,
			Help:    "Peak intensity of each acquisition in counts.",
			Buckets: prometheus.LinearBuckets(10000, 10000, 12),
		}, []string{"kind"}),
		integration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: IntegrationTime,
			Help: "Integration time of the most recent acquisition.",
		}),
		optimizations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: OptimizationsTotal,
			Help: "Integration time optimizations requested.",
		}),
	}

	for _, c := range []prometheus.Collector{
		p.connects, p.disconnects, p.connected, p.measurements,
		p.peak, p.integration, p.optimizations,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *PromObserver) Connected(string) {
	p.connects.Inc()
	p.connected.Set(1)
}

func (p *PromObserver) Disconnected(string) {
	p.disconnects.Inc()
	p.connected.Set(0)
}

func (p *PromObserver) Measured(ev spectrometer.MeasureEvent) {
	kind := ev.Kind.String()
	p.measurements.WithLabelValues(kind).Inc()
	p.peak.WithLabelValues(kind).Observe(ev.PeakIntensity)
	p.integration.Set(float64(ev.IntegrationTimeUS))
}

func (p *PromObserver) Optimizing(string, float64, int) {
	p.optimizations.Inc()
}

func (p *PromObserver) Optimized(string, int) {}
