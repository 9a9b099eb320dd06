package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineCollector bundles Prometheus metrics for the analysis engine and
// provides a ready-made /metrics handler.
type EngineCollector struct {
	gatherer prometheus.Gatherer

	Runs         *prometheus.CounterVec
	RunDurations *prometheus.HistogramVec
	StepDuration prometheus.Histogram

	CoveragePercent *prometheus.GaugeVec
	FeasibleSamples *prometheus.GaugeVec
	DowntimeMinutes *prometheus.GaugeVec
}

// NewEngineCollector registers engine Prometheus metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewEngineCollector(reg prometheus.Registerer) (*EngineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_runs_total",
		Help: "Total number of completed simulation runs, labeled by architecture and outcome.",
	}, []string{"architecture", "outcome"})
	runs, err := registerCounterVec(reg, runs, "engine_runs_total")
	if err != nil {
		return nil, err
	}

	runDurations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "engine_run_duration_seconds",
		Help:    "Wall-clock duration of a full simulation run in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"architecture"})
	runDurations, err = registerHistogramVec(reg, runDurations, "engine_run_duration_seconds")
	if err != nil {
		return nil, err
	}

	stepDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_step_duration_seconds",
		Help:    "Duration of one simulation time step in seconds.",
		Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
	}), "engine_step_duration_seconds")
	if err != nil {
		return nil, err
	}

	coverage, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "engine_coverage_percent",
		Help: "Coverage percentage from the most recent run, labeled by architecture.",
	}, []string{"architecture"}), "engine_coverage_percent")
	if err != nil {
		return nil, err
	}
	feasible, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "engine_feasible_samples",
		Help: "Feasible link samples from the most recent run, labeled by architecture.",
	}, []string{"architecture"}), "engine_feasible_samples")
	if err != nil {
		return nil, err
	}
	downtime, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "engine_downtime_minutes",
		Help: "Total downtime minutes from the most recent run, labeled by architecture.",
	}, []string{"architecture"}), "engine_downtime_minutes")
	if err != nil {
		return nil, err
	}

	return &EngineCollector{
		gatherer:        gatherer,
		Runs:            runs,
		RunDurations:    runDurations,
		StepDuration:    stepDuration,
		CoveragePercent: coverage,
		FeasibleSamples: feasible,
		DowntimeMinutes: downtime,
	}, nil
}

// ObserveRun records one completed (or failed) run.
func (c *EngineCollector) ObserveRun(architecture, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.Runs != nil {
		c.Runs.WithLabelValues(architecture, outcome).Inc()
	}
	if c.RunDurations != nil && outcome == "ok" {
		c.RunDurations.WithLabelValues(architecture).Observe(elapsed.Seconds())
	}
}

// ObserveStep records the duration of one simulation step.
func (c *EngineCollector) ObserveStep(elapsed time.Duration) {
	if c == nil || c.StepDuration == nil {
		return
	}
	c.StepDuration.Observe(elapsed.Seconds())
}

// SetRunSummary publishes the headline numbers of the most recent run.
func (c *EngineCollector) SetRunSummary(architecture string, coveragePercent float64, feasibleSamples int, downtimeMinutes float64) {
	if c == nil {
		return
	}
	if c.CoveragePercent != nil {
		c.CoveragePercent.WithLabelValues(architecture).Set(coveragePercent)
	}
	if c.FeasibleSamples != nil {
		c.FeasibleSamples.WithLabelValues(architecture).Set(float64(feasibleSamples))
	}
	if c.DowntimeMinutes != nil {
		c.DowntimeMinutes.WithLabelValues(architecture).Set(downtimeMinutes)
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *EngineCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
