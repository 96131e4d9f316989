package main

import (
	"context"
	"io"
	"log"
	"os"
	"rink-finder-service/internal/adapters/catalog"
	"rink-finder-service/internal/cli"
	"rink-finder-service/internal/config"
	"rink-finder-service/internal/platform/obs"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	// Missing .env is the normal case for the CLI, so it is not reported.
	_ = godotenv.Load()

	cfg := config.Load()

	shutdown, err := obs.InitTracer(context.Background(), cfg.TraceStdout, version)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	client, err := catalog.NewClient(cfg.CatalogBaseURL)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	// Timing lines go to stderr only when asked for; stdout carries the answer.
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}

	deps := cli.Dependencies{
		Source:  client,
		Catalog: client,
		Version: version,
	}

	exitCode := cli.Execute(context.Background(), os.Args[1:], deps, os.Stdin, os.Stdout, os.Stderr)
	_ = shutdown(context.Background())
	os.Exit(exitCode)
}
