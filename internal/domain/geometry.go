package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

const (
	GeometryPoint      = "Point"
	GeometryMultiPoint = "MultiPoint"
)

// Geometry is the structured form of a rink's GeoJSON "geometry" column.
// Point is stored as [lon, lat], the GeoJSON axis order. A MultiPoint keeps
// only its first member.
type Geometry struct {
	Type  string
	Point orb.Point
}

// MarshalJSON writes GeoJSON, nesting the position for MultiPoint.
func (g Geometry) MarshalJSON() ([]byte, error) {
	var coordinates any = g.Point
	if g.Type == GeometryMultiPoint {
		coordinates = []orb.Point{g.Point}
	}
	return json.Marshal(struct {
		Type        string `json:"type"`
		Coordinates any    `json:"coordinates"`
	}{g.Type, coordinates})
}

func (g *Geometry) UnmarshalJSON(b []byte) error {
	parsed, err := ParseGeometry(string(b))
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

// Coordinates returns the point flipped into (lat, lon) order.
func (g *Geometry) Coordinates() Coordinates {
	return Coordinates{Lat: g.Point.Lat(), Lon: g.Point.Lon()}
}

// ParseGeometry decodes GeoJSON geometry text.
// Point and MultiPoint (first member) are supported; a missing type means Point.
func ParseGeometry(text string) (*Geometry, error) {
	var raw struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	if len(raw.Coordinates) == 0 {
		return nil, errors.New("decode geometry: coordinates missing")
	}

	switch strings.ToLower(raw.Type) {
	case "", "point":
		var pos []float64
		if err := json.Unmarshal(raw.Coordinates, &pos); err != nil {
			return nil, fmt.Errorf("decode point coordinates: %w", err)
		}
		p, err := toPoint(pos)
		if err != nil {
			return nil, err
		}
		return &Geometry{Type: GeometryPoint, Point: p}, nil

	case "multipoint":
		var positions [][]float64
		if err := json.Unmarshal(raw.Coordinates, &positions); err != nil {
			return nil, fmt.Errorf("decode multipoint coordinates: %w", err)
		}
		if len(positions) == 0 {
			return nil, errors.New("decode geometry: multipoint has no members")
		}
		p, err := toPoint(positions[0])
		if err != nil {
			return nil, err
		}
		return &Geometry{Type: GeometryMultiPoint, Point: p}, nil

	default:
		return nil, fmt.Errorf("decode geometry: unsupported type %q", raw.Type)
	}
}

func toPoint(pos []float64) (orb.Point, error) {
	if len(pos) < 2 {
		return orb.Point{}, fmt.Errorf("decode geometry: position needs [lon, lat], got %d values", len(pos))
	}
	return orb.Point{pos[0], pos[1]}, nil
}

// decodeGeometry accepts the geometry column as text, as an already decoded
// JSON object, or as a previously normalized *Geometry.
func decodeGeometry(v any) (*Geometry, error) {
	switch g := v.(type) {
	case *Geometry:
		return g, nil
	case string:
		return ParseGeometry(g)
	case map[string]any:
		b, err := json.Marshal(g)
		if err != nil {
			return nil, fmt.Errorf("encode geometry object: %w", err)
		}
		return ParseGeometry(string(b))
	default:
		return nil, fmt.Errorf("decode geometry: unexpected value of type %T", v)
	}
}
