package obs

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestInitMetricsRegistersOnce(t *testing.T) {
	InitMetrics()
	InitMetrics()

	for name, c := range map[string]prometheus.Collector{
		"queries_total":                    QueriesTotal,
		"catalog_requests_total":           CatalogRequestsTotal,
		"catalog_request_duration_seconds": CatalogRequestDuration,
	} {
		var are prometheus.AlreadyRegisteredError
		if err := prometheus.Register(c); !errors.As(err, &are) {
			t.Fatalf("%s: register again = %v, want AlreadyRegisteredError", name, err)
		}
	}
}
