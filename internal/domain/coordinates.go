package domain

import (
	"math"
	"strconv"
	"strings"
)

// Immutable geographic coordinates (latitude, longitude).
// Values outside ±90/±180 are accepted as-is.
type Coordinates struct {
	Lat float64
	Lon float64
}

// ParseCoordinates parses user input of the form "latitude, longitude".
//
// One pair of enclosing quotes and any surrounding whitespace are ignored.
// Exactly one comma must separate two finite numbers; anything else yields a *FormatError.
func ParseCoordinates(text string) (Coordinates, error) {
	s := unquote(strings.TrimSpace(text))

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}, &FormatError{
			Input:  text,
			Reason: `expected "latitude, longitude" separated by a single comma`,
		}
	}

	lat, err := parseComponent(parts[0])
	if err != nil {
		return Coordinates{}, err
	}
	lon, err := parseComponent(parts[1])
	if err != nil {
		return Coordinates{}, err
	}

	return Coordinates{Lat: lat, Lon: lon}, nil
}

func parseComponent(part string) (float64, error) {
	p := strings.TrimSpace(part)
	v, err := strconv.ParseFloat(p, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FormatError{
			Input:  p,
			Reason: "could not convert " + strconv.Quote(p) + " to a number",
		}
	}
	return v, nil
}

// unquote strips a single pair of matching enclosing quotes.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
