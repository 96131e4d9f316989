package catalog

import (
	"context"
	"maps"
	"rink-finder-service/internal/domain"
)

// StaticSource serves a fixed list of rink records.
// Each call hands out fresh copies so normalization never leaks between queries.
type StaticSource struct {
	records []map[string]any
	err     error
}

func NewStaticSource(records []map[string]any) *StaticSource {
	return &StaticSource{records: records}
}

// NewFailingSource returns a source whose every fetch fails with err.
func NewFailingSource(err error) *StaticSource {
	return &StaticSource{err: err}
}

func (s *StaticSource) FetchRinks(ctx context.Context) ([]*domain.Rink, error) {
	if s.err != nil {
		return nil, s.err
	}

	rinks := make([]*domain.Rink, 0, len(s.records))
	for _, rec := range s.records {
		rinks = append(rinks, domain.NewRink(maps.Clone(rec)))
	}
	return rinks, nil
}
