package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Coordinates
	}{
		{name: "plain", in: "43.7, -79.4", want: Coordinates{Lat: 43.7, Lon: -79.4}},
		{name: "quoted without space", in: `"43.7,-79.4"`, want: Coordinates{Lat: 43.7, Lon: -79.4}},
		{name: "single quotes", in: `'43.7 , -79.4'`, want: Coordinates{Lat: 43.7, Lon: -79.4}},
		{name: "surrounding whitespace", in: "  \t43.65107,-79.347015 \n", want: Coordinates{Lat: 43.65107, Lon: -79.347015}},
		{name: "out of range accepted", in: "123, 456", want: Coordinates{Lat: 123, Lon: 456}},
		{name: "exponent", in: "4.37e1, -7.94e1", want: Coordinates{Lat: 43.7, Lon: -79.4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCoordinates(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseCoordinates(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseCoordinatesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		offending string
	}{
		{name: "missing comma", in: "43.7"},
		{name: "too many commas", in: "1,2,3"},
		{name: "empty", in: ""},
		{name: "quotes only", in: `""`},
		{name: "non numeric latitude", in: "a, 2", offending: "a"},
		{name: "non numeric longitude", in: "43.7, west", offending: "west"},
		{name: "empty component", in: "43.7,", offending: ""},
		{name: "nan", in: "NaN, 1", offending: "NaN"},
		{name: "infinity", in: "1, -Inf", offending: "-Inf"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCoordinates(tc.in)
			if err == nil {
				t.Fatalf("ParseCoordinates(%q) succeeded, want error", tc.in)
			}
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("error = %v, want ErrFormat", err)
			}

			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error %T is not *FormatError", err)
			}
			if tc.offending != "" {
				if fe.Input != tc.offending {
					t.Fatalf("offending input = %q, want %q", fe.Input, tc.offending)
				}
				if !strings.Contains(err.Error(), `"`+tc.offending+`"`) {
					t.Fatalf("error %q does not name %q", err.Error(), tc.offending)
				}
			}
		})
	}
}
