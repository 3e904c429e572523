package gtfsrt

import (
	"context"
	"io"
	"net/http"
	"sync"
)

// Client is an HTTP client for fetching GTFS-RT protobuf data. A header map
// (API keys and the like) is attached to every request.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
}

// NewClient creates a new GTFS-RT HTTP client. The httpClient may be nil,
// in which case http.DefaultClient is used; callers that want timeouts
// should pass their own.
func NewClient(httpClient *http.Client, headers map[string]string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, headers: headers}
}

// Fetch fetches a single GTFS-RT feed from a URL and returns raw protobuf
// bytes. Returns nil if url is empty (allows optional feeds).
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}

// FetchAll fetches the three GTFS-RT feeds (trip updates, vehicle positions,
// service alerts) concurrently and waits for all of them. Empty URLs are
// skipped and return nil for that feed. Any single failure fails the whole
// fetch; no partial results are returned.
func (c *Client) FetchAll(ctx context.Context, tripUpdatesURL, vehiclePositionsURL, serviceAlertsURL string) ([]byte, []byte, []byte, error) {
	var (
		wg         sync.WaitGroup
		tu, vp, sa []byte
		errs       [3]error
	)

	get := func(url string, dst *[]byte, errSlot *error) {
		defer wg.Done()
		*dst, *errSlot = c.Fetch(ctx, url)
	}

	wg.Add(3)
	go get(tripUpdatesURL, &tu, &errs[0])
	go get(vehiclePositionsURL, &vp, &errs[1])
	go get(serviceAlertsURL, &sa, &errs[2])
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return tu, vp, sa, nil
}

// FetchStatic fetches a static GTFS archive from a single URL and returns the
// raw body. It makes no guarantee about the content beyond GET-and-return.
func (c *Client) FetchStatic(ctx context.Context, url string) ([]byte, error) {
	return c.Fetch(ctx, url)
}
