package main

import (
	"context"
	"log"
	"net/http"
	"rink-finder-service/internal/adapters/catalog"
	"rink-finder-service/internal/api"
	"rink-finder-service/internal/config"
	"rink-finder-service/internal/platform/obs"
	"time"

	"github.com/joho/godotenv"
)

var version = "dev"

// main is the application composition root.
// It wires the CKAN catalog adapter behind the RinkSource port and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	shutdown, err := obs.InitTracer(context.Background(), cfg.TraceStdout, version)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("tracer shutdown failed: %v", err)
		}
	}()

	source, err := catalog.NewClient(cfg.CatalogBaseURL)
	if err != nil {
		log.Fatal(err)
	}

	router, err := api.NewRouter(source)
	if err != nil {
		log.Fatal(err)
	}

	// Upstream calls carry no timeout of their own, so the write timeout bounds a slow catalog.
	log.Printf("Server listening addr=:%s catalog=%s", cfg.Port, cfg.CatalogBaseURL)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Printf("server stopped: %v", err)
	}
}
