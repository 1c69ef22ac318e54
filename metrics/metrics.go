// Package metrics exposes Prometheus instrumentation for the dashboard.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	sessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backview_replay_sessions_active",
			Help: "Number of live replay sessions",
		},
	)

	ticksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backview_replay_ticks_total",
			Help: "Total number of replay timer ticks delivered",
		},
	)

	framesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backview_frames_total",
			Help: "Total number of frames composed",
		},
		[]string{"trigger"}, // trigger: ws, http
	)

	runsIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backview_runs_ingested_total",
			Help: "Total number of backtest results ingested",
		},
	)

	runsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backview_runs_deleted_total",
			Help: "Total number of backtest runs deleted",
		},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backview_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"method", "path", "status"},
	)
)

// SessionOpened records a websocket replay session coming up.
func SessionOpened() {
	sessionsActive.Inc()
}

// SessionClosed records a websocket replay session going away.
func SessionClosed() {
	sessionsActive.Dec()
}

// TickDelivered records one replay timer tick.
func TickDelivered() {
	ticksTotal.Inc()
}

// FrameComposed records one frame sent to a client. trigger says which
// surface produced it: "ws" or "http".
func FrameComposed(trigger string) {
	framesTotal.WithLabelValues(trigger).Inc()
}

// RunIngested records one backtest result accepted into the store.
func RunIngested() {
	runsIngestedTotal.Inc()
}

// RunDeleted records one backtest run removed from the store.
func RunDeleted() {
	runsDeletedTotal.Inc()
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, path, status string, duration time.Duration) {
	requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
