// Package metrics exposes daemon counters and gauges in the Prometheus
// text format.
package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for Operations.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the daemon's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	Windows           *prometheus.GaugeVec
	Fullscreen        prometheus.Gauge
	Reloads           *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates the collectors on a fresh registry, so several instances can
// coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stackwm_operations_total",
				Help: "Window manager operations by name and result",
			},
			[]string{"op", "result"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stackwm_operation_duration_seconds",
				Help:    "Time spent applying an operation, including pushing the layout to the display",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"op"},
		),
		Windows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stackwm_windows",
				Help: "Managed windows by state",
			},
			[]string{"state"},
		),
		Fullscreen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stackwm_fullscreen",
			Help: "1 while a window is fullscreen",
		}),
		Reloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stackwm_config_reloads_total",
				Help: "Configuration reloads by result",
			},
			[]string{"result"},
		),
	}
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// ObserveOperation records one operation and how long it took.
func (m *Metrics) ObserveOperation(op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, result(err)).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(d.Seconds())
}

// ObserveReload records a configuration reload.
func (m *Metrics) ObserveReload(err error) {
	if m == nil {
		return
	}
	m.Reloads.WithLabelValues(result(err)).Inc()
}

// SetWindows publishes the current window counts.
func (m *Metrics) SetWindows(tiled, floating, minimised int, fullscreen bool) {
	if m == nil {
		return
	}
	m.Windows.WithLabelValues("tiled").Set(float64(tiled))
	m.Windows.WithLabelValues("floating").Set(float64(floating))
	m.Windows.WithLabelValues("minimised").Set(float64(minimised))
	if fullscreen {
		m.Fullscreen.Set(1)
	} else {
		m.Fullscreen.Set(0)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Metrics listening on http://%s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
