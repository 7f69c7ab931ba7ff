package finrag

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/finrag/internal/domain/retrieval/mode"
	"github.com/kailas-cloud/finrag/internal/metrics"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	results    *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finrag",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by type, retrieval mode and status.",
		}, []string{"operation", "mode", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "finrag",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "finrag",
			Subsystem: "sdk",
			Name:      "results",
			Help:      "Documents returned per successful query.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		}, []string{"mode"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.results); err != nil {
		return nil, err
	}
	// Engine collectors are package globals, so an existing registration is kept as is.
	for _, c := range metrics.Collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, fmt.Errorf("finrag: register metric: %w", err)
			}
		}
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("finrag: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("finrag: register metric: %w", err)
	}
	return nil
}

// observer provides logging and metrics for SDK operations.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

// span describes one SDK call. Mode is empty for build.
type span struct {
	op      string
	mode    Mode
	start   time.Time
	results int
}

func startSpan(op string, m Mode) *span {
	return &span{op: op, mode: m, start: time.Now()}
}

// modeLabel keeps caller-supplied mode strings out of label values.
func modeLabel(m Mode) string {
	switch {
	case m == "":
		return "none"
	case mode.Mode(m).IsValid():
		return string(m)
	default:
		return "invalid"
	}
}

func (o *observer) observe(sp *span, err error) {
	if o == nil {
		return
	}
	dur := time.Since(sp.start)
	label := modeLabel(sp.mode)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(sp.op, label, status).Inc()
		o.metrics.duration.WithLabelValues(sp.op).Observe(dur.Seconds())
		if err == nil && sp.mode != "" {
			o.metrics.results.WithLabelValues(label).Observe(float64(sp.results))
		}
	}

	if o.logger == nil {
		return
	}
	attrs := []any{"op", sp.op, "duration", dur}
	if sp.mode != "" {
		attrs = append(attrs, "mode", string(sp.mode))
	}
	if err != nil {
		o.logger.Warn("operation failed", append(attrs, "error", err)...)
		return
	}
	if sp.mode != "" {
		attrs = append(attrs, "results", sp.results)
	}
	o.logger.Debug("operation completed", attrs...)
}
