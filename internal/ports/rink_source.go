package ports

import (
	"context"
	"rink-finder-service/internal/domain"
)

// Port: a boundary for retrieving the outdoor rink dataset.
type RinkSource interface {
	// Retrieve every rink record, freshly fetched on each call.
	FetchRinks(ctx context.Context) ([]*domain.Rink, error)
}
