// Package metrics registers the Prometheus instruments fed by the
// metrics middleware and exposes them over a scrape endpoint.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "vex"
	subsystem = "server"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// RequestStatus counts handled requests by method and response status.
var RequestStatus *prometheus.CounterVec

// RequestDuration tracks the time spent handling a request.
var RequestDuration *prometheus.HistogramVec

func init() {
	RequestStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "Count of requests handled, by method and status code.",
		},
		[]string{"method", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Time required to handle a request.",
			Buckets:   durationBuckets,
		},
		[]string{"method"},
	)
	prometheus.MustRegister(RequestStatus)
	prometheus.MustRegister(RequestDuration)
}

// Serve exposes /metrics on its own port, separate from the serving
// listener.
func Serve(port int, lg log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			level.Error(lg).Log("event", "metrics endpoint failed", "detail", err)
		}
	}()
}
