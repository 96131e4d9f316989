package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// QueriesTotal counts closest-rink queries by outcome.
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rinkfinder",
			Name:      "queries_total",
			Help:      "Total number of closest rink queries by outcome",
		},
		[]string{"outcome"},
	)

	// CatalogRequestsTotal counts requests made to the open-data catalog.
	CatalogRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rinkfinder",
			Name:      "catalog_requests_total",
			Help:      "Total number of open-data catalog requests by endpoint and status code",
		},
		[]string{"endpoint", "code"},
	)

	// CatalogRequestDuration observes catalog round trip latency.
	CatalogRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rinkfinder",
			Name:      "catalog_request_duration_seconds",
			Help:      "Open-data catalog request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	once sync.Once
)

// InitMetrics registers all collectors with the default Prometheus registry.
// Safe to call more than once; a registration conflict panics on the first call.
func InitMetrics() {
	once.Do(func() {
		prometheus.MustRegister(QueriesTotal, CatalogRequestsTotal, CatalogRequestDuration)
	})
}
