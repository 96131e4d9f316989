package services

import (
	"fmt"
	"rink-finder-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// DistanceKm returns the great-circle (haversine) distance between two
// coordinates in kilometers.
func DistanceKm(a, b domain.Coordinates) float64 {
	return geo.DistanceHaversine(
		orb.Point{a.Lon, a.Lat},
		orb.Point{b.Lon, b.Lat},
	) / 1000
}

// Find the rink closest to coord with a single linear scan.
//
// Each rink's geometry is normalized in place before measuring. The first rink
// seeds the running minimum and only a strictly smaller distance replaces it,
// so the earliest rink wins ties. A rink with unusable geometry fails the whole
// query as malformed upstream data.
func FindClosest(coord domain.Coordinates, rinks []*domain.Rink) (domain.ClosestRink, error) {
	if len(rinks) == 0 {
		return domain.ClosestRink{}, domain.ErrEmptyDataset
	}

	var best domain.ClosestRink
	for i, rink := range rinks {
		loc, err := rink.Location()
		if err != nil {
			return domain.ClosestRink{}, fmt.Errorf("find closest: record %d: %w: %w", i, domain.ErrUpstream, err)
		}

		d := DistanceKm(coord, loc)
		if i == 0 || d < best.DistanceKm {
			best = domain.ClosestRink{Rink: rink, DistanceKm: d}
		}
	}

	return best, nil
}
