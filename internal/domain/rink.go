package domain

import "fmt"

const (
	FieldPublicName = "Public Name"
	FieldGeometry   = "geometry"

	// Display name used when a record carries no "Public Name".
	UnnamedRink = "Unnamed rink"
)

// Represents one outdoor rink record from the open-data catalog.
// Fields holds every dataset-defined column as received. The "geometry"
// column arrives as GeoJSON text and is replaced by its structured form
// the first time Normalize runs; a Rink lives for a single query.
type Rink struct {
	Fields   map[string]any
	Geometry *Geometry
}

func NewRink(fields map[string]any) *Rink {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Rink{Fields: fields}
}

// Name returns the rink's "Public Name", or UnnamedRink when absent.
func (r *Rink) Name() string {
	if s, ok := r.Fields[FieldPublicName].(string); ok && s != "" {
		return s
	}
	return UnnamedRink
}

// Normalize decodes the geometry column in place. Later calls are no-ops.
func (r *Rink) Normalize() error {
	if r.Geometry != nil {
		return nil
	}

	raw, ok := r.Fields[FieldGeometry]
	if !ok || raw == nil {
		return fmt.Errorf("%w: %q has no %q field", ErrInvalidRecord, r.Name(), FieldGeometry)
	}

	g, err := decodeGeometry(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidRecord, r.Name(), err)
	}

	r.Geometry = g
	r.Fields[FieldGeometry] = g
	return nil
}

// Location returns the rink position in (lat, lon) order.
func (r *Rink) Location() (Coordinates, error) {
	if err := r.Normalize(); err != nil {
		return Coordinates{}, err
	}
	return r.Geometry.Coordinates(), nil
}

// ClosestRink pairs a rink with its distance from the query coordinates.
type ClosestRink struct {
	Rink       *Rink
	DistanceKm float64
}
