package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"rink-finder-service/internal/adapters/catalog"
	"rink-finder-service/internal/domain"
	"rink-finder-service/internal/ports"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	resources []catalog.Resource
	err       error
	// metadata is keyed by resource id; missing ids fail.
	metadata  map[string]catalog.Resource
	dump      string
	dumped    []string
}

func (f *fakeCatalog) Resources(context.Context) ([]catalog.Resource, error) {
	return f.resources, f.err
}

func (f *fakeCatalog) ResourceMetadata(_ context.Context, id string) (catalog.Resource, error) {
	res, ok := f.metadata[id]
	if !ok {
		return catalog.Resource{}, fmt.Errorf("resource_show: %w: Not found", domain.ErrUpstream)
	}
	return res, nil
}

func (f *fakeCatalog) DumpCSV(_ context.Context, id string, w io.Writer) error {
	f.dumped = append(f.dumped, id)
	_, err := io.WriteString(w, f.dump)
	return err
}

func packageCatalog() *fakeCatalog {
	return &fakeCatalog{
		resources: []catalog.Resource{
			{ID: "csv", Name: "rinks.csv", Format: "CSV"},
			{ID: "rinks-4326", Name: "Outdoor Rinks", Format: "JSON", DatastoreActive: true},
		},
		metadata: map[string]catalog.Resource{
			"csv": {ID: "csv", Name: "rinks.csv", Format: "CSV", URL: "https://example.test/rinks.csv"},
		},
		dump: "_id,Public Name\n1,A\n",
	}
}

func scenarioSource() *catalog.StaticSource {
	return catalog.NewStaticSource([]map[string]any{
		{"Public Name": "A", "geometry": "{\"coordinates\":[-79.4,43.7]}"},
		{"Public Name": "B", "geometry": "{\"coordinates\":[-79.0,43.6]}"},
	})
}

func run(t *testing.T, deps Dependencies, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, deps, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestInteractiveClosestRink(t *testing.T) {
	code, stdout, stderr := run(t, Dependencies{Source: scenarioSource()}, "43.70, -79.40\n")

	require.Equal(t, 0, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, prompt))
	assert.Contains(t, stdout, "The closest rink is A, 0.00 km away at (43.7, -79.4).")
	assert.Empty(t, stderr)
}

func TestInteractiveAcceptsLineWithoutNewline(t *testing.T) {
	code, stdout, _ := run(t, Dependencies{Source: scenarioSource()}, `"43.6,-79.0"`)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "The closest rink is B")
}

func TestInteractiveFailures(t *testing.T) {
	tests := []struct {
		name       string
		source     ports.RinkSource
		stdin      string
		wantStdout string
	}{
		{name: "format", source: scenarioSource(), stdin: "a, 2\n", wantStdout: `could not convert "a" to a number`},
		{name: "too many commas", source: scenarioSource(), stdin: "1,2,3\n", wantStdout: "single comma"},
		{
			name:       "upstream",
			source:     catalog.NewFailingSource(errors.Join(domain.ErrUpstream, errors.New("no such host"))),
			stdin:      "43.7, -79.4\n",
			wantStdout: "Could not retrieve rink data",
		},
		{name: "empty", source: catalog.NewStaticSource(nil), stdin: "43.7, -79.4\n", wantStdout: "No rinks"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, stderr := run(t, Dependencies{Source: tc.source}, tc.stdin)

			assert.Equal(t, 1, code)
			assert.True(t, strings.HasPrefix(stdout, prompt))
			assert.Contains(t, stdout, tc.wantStdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestInteractiveReadFailure(t *testing.T) {
	code, _, stderr := run(t, Dependencies{Source: scenarioSource()}, "")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "read coordinates")
}

func TestListFormats(t *testing.T) {
	deps := Dependencies{Source: scenarioSource(), Catalog: packageCatalog()}

	t.Run("table", func(t *testing.T) {
		code, stdout, stderr := run(t, deps, "", "list")
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stdout, "resource: Outdoor Rinks (rinks-4326)")
		assert.Contains(t, stdout, "NAME")
		assert.Contains(t, stdout, "43.7")
		assert.Contains(t, stdout, "-79.4")
	})

	t.Run("json", func(t *testing.T) {
		code, stdout, stderr := run(t, deps, "", "list", "--format", "json")
		require.Equal(t, 0, code, stderr)

		var payload listPayload
		require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
		require.NotNil(t, payload.Resource)
		assert.Equal(t, "rinks-4326", payload.Resource.ID)
		assert.Equal(t, []rinkRow{
			{Name: "A", Latitude: 43.7, Longitude: -79.4},
			{Name: "B", Latitude: 43.6, Longitude: -79},
		}, payload.Rinks)
	})

	t.Run("yaml", func(t *testing.T) {
		code, stdout, stderr := run(t, deps, "", "list", "--format", "yaml")
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stdout, "- name: A")
		assert.Contains(t, stdout, "id: rinks-4326")
	})
}

func TestListCSVStreamsDump(t *testing.T) {
	cat := packageCatalog()

	code, stdout, stderr := run(t, Dependencies{Source: scenarioSource(), Catalog: cat}, "", "list", "--format", "csv")

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "_id,Public Name\n1,A\n", stdout)
	assert.Equal(t, []string{"rinks-4326"}, cat.dumped)
}

func TestListCSVFailures(t *testing.T) {
	code, _, stderr := run(t, Dependencies{Source: scenarioSource()}, "", "list", "--format", "csv")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "needs the catalog client")

	noDatastore := &fakeCatalog{resources: []catalog.Resource{{ID: "csv"}}}
	code, _, stderr = run(t, Dependencies{Source: scenarioSource(), Catalog: noDatastore}, "", "list", "--format", "csv")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Could not retrieve rink data")
	assert.Contains(t, stderr, "no datastore_active resource")
	assert.Empty(t, noDatastore.dumped)
}

func TestListMalformedRecordIsUpstreamFailure(t *testing.T) {
	source := catalog.NewStaticSource([]map[string]any{
		{"Public Name": "A", "geometry": "{\"coordinates\":[-79.4,43.7]}"},
		{"Public Name": "Broken", "geometry": "not json"},
	})

	code, stdout, stderr := run(t, Dependencies{Source: source}, "", "list")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Could not retrieve rink data")
	assert.NotContains(t, stderr, "Something went wrong")
}

func TestResourcesCommand(t *testing.T) {
	deps := Dependencies{Source: scenarioSource(), Catalog: packageCatalog()}

	t.Run("table", func(t *testing.T) {
		code, stdout, stderr := run(t, deps, "", "resources")
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stdout, "ID")
		assert.Contains(t, stdout, "https://example.test/rinks.csv")
		assert.Contains(t, stdout, "rinks-4326")
	})

	t.Run("json", func(t *testing.T) {
		code, stdout, stderr := run(t, deps, "", "resources", "--format", "json")
		require.Equal(t, 0, code, stderr)

		var got []catalog.Resource
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, []catalog.Resource{
			{ID: "csv", Name: "rinks.csv", Format: "CSV", URL: "https://example.test/rinks.csv"},
			{ID: "rinks-4326", Name: "Outdoor Rinks", Format: "JSON", DatastoreActive: true},
		}, got)
	})
}

func TestResourcesCommandErrors(t *testing.T) {
	code, _, stderr := run(t, Dependencies{Source: scenarioSource()}, "", "resources")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "needs the catalog client")

	missing := packageCatalog()
	missing.metadata = nil
	code, _, stderr = run(t, Dependencies{Source: scenarioSource(), Catalog: missing}, "", "resources")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Could not retrieve rink data")

	code, _, stderr = run(t, Dependencies{Source: scenarioSource(), Catalog: packageCatalog()}, "", "resources", "--format", "csv")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `unsupported format "csv"`)
}

func TestListErrors(t *testing.T) {
	code, _, stderr := run(t, Dependencies{Source: scenarioSource()}, "", "list", "--format", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `unsupported format "xml"`)

	failing := Dependencies{
		Source:  scenarioSource(),
		Catalog: &fakeCatalog{err: errors.Join(domain.ErrUpstream, errors.New("down"))},
	}
	code, _, stderr = run(t, failing, "", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Could not retrieve rink data")
}

func TestVersionFlag(t *testing.T) {
	code, stdout, _ := run(t, Dependencies{Source: scenarioSource(), Version: "1.2.3"}, "", "--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "1.2.3")
}
