package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"rink-finder-service/internal/domain"
	"rink-finder-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// ckanError is the "error" member of a failed CKAN action response.
type ckanError struct {
	Message string `json:"message"`
	Type    string `json:"__type"`
}

// envelope is the wrapper CKAN puts around every action result.
type envelope[T any] struct {
	Success bool       `json:"success"`
	Error   *ckanError `json:"error"`
	Result  T          `json:"result"`
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	endpoint string,
	params url.Values,
) (*http.Request, error) {
	u := endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	return req, nil
}

// do executes req once. Responses with status >= 400 become *httpStatusError.
func (c *Client) do(req *http.Request, action string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.session.Do(req)
	obs.CatalogRequestDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	if err != nil {
		obs.CatalogRequestsTotal.WithLabelValues(action, "error").Inc()
		return nil, err
	}
	obs.CatalogRequestsTotal.WithLabelValues(action, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// callAction performs GET {base}/api/3/action/{action} and unwraps the CKAN envelope.
// Every failure is reported as domain.ErrUpstream.
func callAction[T any](ctx context.Context, c *Client, action string, params url.Values) (_ T, err error) {
	defer obs.Time(ctx, "catalog."+action)(&err)

	var zero T
	endpoint := c.baseURL + actionPath + action

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, params)
	if err != nil {
		return zero, fmt.Errorf("%w: %s: %v", domain.ErrUpstream, action, err)
	}

	resp, err := c.do(req, action)
	if err != nil {
		return zero, fmt.Errorf("%w: %s: %v", domain.ErrUpstream, action, err)
	}
	defer resp.Body.Close()

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("%w: %s: decode response: %v", domain.ErrUpstream, action, err)
	}

	if !env.Success {
		msg := "request was not successful"
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return zero, fmt.Errorf("%w: %s: %s", domain.ErrUpstream, action, msg)
	}

	return env.Result, nil
}
