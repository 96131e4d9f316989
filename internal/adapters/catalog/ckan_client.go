package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"rink-finder-service/internal/domain"
	"rink-finder-service/internal/platform/obs"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// PackageID names the outdoor rink dataset in the City of Toronto catalog.
	PackageID = "outdoor-artificial-ice-rinks"

	actionPath = "/api/3/action/"
	dumpPath   = "/datastore/dump/"

	actionPackageShow     = "package_show"
	actionDatastoreSearch = "datastore_search"
	actionResourceShow    = "resource_show"

	// endpointDump labels dump requests in metrics and timing logs.
	endpointDump = "datastore_dump"
)

// Resource describes one data source inside a catalog package.
type Resource struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Format          string `json:"format" yaml:"format"`
	DatastoreActive bool   `json:"datastore_active" yaml:"datastore_active"`
	// URL is the download location of files that are not loaded into the datastore.
	URL             string `json:"url,omitempty" yaml:"url,omitempty"`
}

type packageShowResult struct {
	Resources []Resource `json:"resources"`
}

type datastoreSearchResult struct {
	Records []map[string]any `json:"records"`
	Total   int              `json:"total"`
}

// Client implements ports.RinkSource against a CKAN open-data catalog.
//
// Every FetchRinks call performs two sequential round trips (package metadata,
// then records). There is no caching, retry, or pagination: the datastore's
// default page size bounds the result.
type Client struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog base url is empty")
	}

	client := &Client{
		session:   &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		baseURL:   baseURL,
		userAgent: "rink-finder-service/1.0",
	}

	return client, nil
}

// Resources returns the resource descriptors of the rink package, in catalog order.
func (c *Client) Resources(ctx context.Context) ([]Resource, error) {
	params := url.Values{}
	params.Set("id", PackageID)

	result, err := callAction[packageShowResult](ctx, c, actionPackageShow, params)
	if err != nil {
		return nil, fmt.Errorf("package metadata %q: %w", PackageID, err)
	}

	return result.Resources, nil
}

// SearchRecords returns the records of a datastore resource. No paging cursor is followed.
func (c *Client) SearchRecords(ctx context.Context, resourceID string) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("id", resourceID)

	result, err := callAction[datastoreSearchResult](ctx, c, actionDatastoreSearch, params)
	if err != nil {
		return nil, fmt.Errorf("search records of resource %q: %w", resourceID, err)
	}

	return result.Records, nil
}

// ResourceMetadata returns the full descriptor of one resource, including its download URL.
func (c *Client) ResourceMetadata(ctx context.Context, resourceID string) (Resource, error) {
	params := url.Values{}
	params.Set("id", resourceID)

	result, err := callAction[Resource](ctx, c, actionResourceShow, params)
	if err != nil {
		return Resource{}, fmt.Errorf("resource metadata %q: %w", resourceID, err)
	}

	return result, nil
}

// DumpCSV streams every record of a datastore resource as CSV into w.
// Bytes already copied stay written when the transfer fails midway.
func (c *Client) DumpCSV(ctx context.Context, resourceID string, w io.Writer) (err error) {
	defer obs.Time(ctx, "catalog."+endpointDump)(&err)

	endpoint := c.baseURL + dumpPath + url.PathEscape(resourceID)

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("dump resource %q: %w: %v", resourceID, domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.do(req, endpointDump)
	if err != nil {
		return fmt.Errorf("dump resource %q: %w: %v", resourceID, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("dump resource %q: %w: read body: %v", resourceID, domain.ErrUpstream, err)
	}

	return nil
}

// FetchRinks retrieves all rink records from the first queryable resource of the package.
func (c *Client) FetchRinks(ctx context.Context) (_ []*domain.Rink, err error) {
	defer obs.Time(ctx, "catalog.FetchRinks")(&err)

	resources, err := c.Resources(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch rinks: %w", err)
	}

	res, ok := FirstQueryable(resources)
	if !ok {
		return nil, fmt.Errorf(
			"fetch rinks: %w: package %q has no datastore_active resource",
			domain.ErrUpstream, PackageID,
		)
	}

	records, err := c.SearchRecords(ctx, res.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch rinks: %w", err)
	}

	rinks := make([]*domain.Rink, 0, len(records))
	for _, rec := range records {
		rinks = append(rinks, domain.NewRink(rec))
	}

	return rinks, nil
}

// FirstQueryable returns the first resource flagged datastore_active.
func FirstQueryable(resources []Resource) (Resource, bool) {
	for _, r := range resources {
		if r.DatastoreActive {
			return r, true
		}
	}
	return Resource{}, false
}
