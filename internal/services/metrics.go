package services

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AccessMetrics holds the Prometheus counters for the gateway.
type AccessMetrics struct {
	RedirectsTotal    prometheus.Counter
	PassthroughsTotal prometheus.Counter
	LogWritesTotal    *prometheus.CounterVec
}

var (
	accessMetrics     *AccessMetrics
	accessMetricsOnce sync.Once
)

// NewAccessMetrics registers the Prometheus metrics once per process and
// returns the shared set on later calls.
func NewAccessMetrics() *AccessMetrics {
	accessMetricsOnce.Do(func() {
		accessMetrics = &AccessMetrics{
			RedirectsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "landing",
				Subsystem: "access",
				Name:      "redirects_total",
				Help:      "Total number of affiliate redirects served.",
			}),
			PassthroughsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "landing",
				Subsystem: "access",
				Name:      "passthroughs_total",
				Help:      "Total number of requests proxied to the origin.",
			}),
			LogWritesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "landing",
				Subsystem: "log",
				Name:      "writes_total",
				Help:      "Total number of log write attempts by namespace and status.",
			}, []string{"namespace", "status"}),
		}
	})
	return accessMetrics
}
