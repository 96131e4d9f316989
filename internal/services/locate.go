package services

import (
	"context"
	"errors"
	"fmt"
	"rink-finder-service/internal/domain"
	"rink-finder-service/internal/platform/obs"
	"rink-finder-service/internal/ports"
)

// LocateClosestRink runs the full query: parse the coordinate text, fetch the
// dataset, and scan it for the nearest rink.
//
// Input is validated before any network call. Errors keep their kind
// (domain.ErrFormat, domain.ErrUpstream, domain.ErrEmptyDataset) for errors.Is.
func LocateClosestRink(
	ctx context.Context,
	text string,
	source ports.RinkSource,
) (_ domain.ClosestRink, err error) {
	ctx, done := obs.Trace(ctx, "services.LocateClosestRink")
	defer func() {
		obs.QueriesTotal.WithLabelValues(Outcome(err)).Inc()
		done(&err)
	}()

	coord, err := domain.ParseCoordinates(text)
	if err != nil {
		return domain.ClosestRink{}, err
	}

	rinks, err := source.FetchRinks(ctx)
	if err != nil {
		return domain.ClosestRink{}, fmt.Errorf("locate closest rink: %w", err)
	}

	result, err := FindClosest(coord, rinks)
	if err != nil {
		return domain.ClosestRink{}, fmt.Errorf("locate closest rink: %w", err)
	}

	return result, nil
}

// FormatResult renders the user-facing sentence for a query result.
func FormatResult(r domain.ClosestRink) string {
	loc, _ := r.Rink.Location()
	return fmt.Sprintf(
		"The closest rink is %s, %.2f km away at (%g, %g).",
		r.Rink.Name(), r.DistanceKm, loc.Lat, loc.Lon,
	)
}

// Outcome classifies a query error into a short metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrFormat):
		return "format_error"
	case errors.Is(err, domain.ErrEmptyDataset):
		return "empty_dataset"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}

// UserMessage converts a query error into the text shown to the user.
func UserMessage(err error) string {
	var fe *domain.FormatError
	switch {
	case errors.As(err, &fe):
		return fe.Error()
	case errors.Is(err, domain.ErrEmptyDataset):
		return "No rinks are currently listed in the open-data catalog."
	case errors.Is(err, domain.ErrUpstream):
		return "Could not retrieve rink data: " + err.Error()
	default:
		return "Something went wrong: " + err.Error()
	}
}
