package api

import (
	"fmt"
	"net/http"
	"rink-finder-service/internal/api/handlers"
	"rink-finder-service/internal/platform/obs"
	"rink-finder-service/internal/ports"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(source ports.RinkSource) (http.Handler, error) {
	page, err := handlers.LoadPage()
	if err != nil {
		return nil, fmt.Errorf("new router: load page template: %w", err)
	}

	obs.InitMetrics()

	rinkHandler := &handlers.RinkHandler{Source: source, Page: page}

	r := mux.NewRouter()
	r.HandleFunc("/", rinkHandler.Index).Methods(http.MethodGet)
	r.HandleFunc("/closest_rink", rinkHandler.ClosestRink).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/api/closest", rinkHandler.APIClosest).Methods(http.MethodGet)
	r.HandleFunc("/api/rinks", rinkHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return otelhttp.NewHandler(requestIDMiddleware(loggingMiddleware(r)), "rink-finder"), nil
}
