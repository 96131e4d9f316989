package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"rink-finder-service/internal/adapters/catalog"
	"rink-finder-service/internal/ports"
)

// CatalogBrowser exposes the catalog package beyond the parsed rink records.
type CatalogBrowser interface {
	Resources(ctx context.Context) ([]catalog.Resource, error)
	ResourceMetadata(ctx context.Context, resourceID string) (catalog.Resource, error)
	DumpCSV(ctx context.Context, resourceID string, w io.Writer) error
}

// Dependencies wires runtime services.
type Dependencies struct {
	Source  ports.RinkSource
	// Catalog is optional; list names the backing resource and csv/resources need it.
	Catalog CatalogBrowser
	Version string
}

// exitError ends the run with code after the command already reported the failure.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// Execute runs the CLI with injected dependencies and returns the process exit code.
func Execute(ctx context.Context, args []string, deps Dependencies, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}
	return 1
}
