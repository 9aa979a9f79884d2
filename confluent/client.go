// Package confluent is a minimal read-only client for the Confluent
// Cloud management and telemetry REST APIs.
package confluent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/yairfalse/tutka/config"
)

// maxPages caps cursor following in case a server ever links pages in
// a cycle.
const maxPages = 1000

// Client talks to the Confluent Cloud APIs with basic auth. One value
// per run; no global session state.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	telemetryURL string
	key          string
	secret       string
}

// NewClient builds a client from config. The transport comes from
// cleanhttp so no defaults are shared with other packages, and there
// are no implicit retries.
func NewClient(cfg *config.Config) *Client {
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = cfg.HTTPTimeout

	return &Client{
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		telemetryURL: strings.TrimRight(cfg.TelemetryURL, "/"),
		key:          cfg.APIKey,
		secret:       cfg.APISecret,
	}
}

// URL joins the control-plane base URL with a path
func (c *Client) URL(path string) string {
	return c.baseURL + path
}

// TelemetryURL joins the telemetry base URL with a path
func (c *Client) TelemetryURL(path string) string {
	return c.telemetryURL + path
}

// TelemetryHost returns the telemetry endpoint host, the scrape target
// written into every generated file.
func (c *Client) TelemetryHost() string {
	u, err := url.Parse(c.telemetryURL)
	if err != nil || u.Host == "" {
		return c.telemetryURL
	}
	return u.Host
}

// StatusError is a non-2xx API response.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// NotFound reports whether the response was a 404
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Get performs one authenticated GET and decodes the JSON response
// into v. Non-2xx responses become a *StatusError.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values, v any) error {
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.key, c.secret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			StatusCode: resp.StatusCode,
			URL:        rawURL,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

// page is the standard list envelope shared by the org, cmk, srcm,
// ksqldbcm and fcpm APIs.
type page struct {
	Metadata struct {
		Next string `json:"next"`
	} `json:"metadata"`
	Data []json.RawMessage `json:"data"`
}

// GetPaged fetches a list endpoint and follows metadata.next cursors
// until the server stops returning one. Items come back raw, in
// arrival order, each exactly once. Cursor URLs are absolute and carry
// their own query.
func (c *Client) GetPaged(ctx context.Context, rawURL string, query url.Values) ([]json.RawMessage, error) {
	var items []json.RawMessage

	next := rawURL
	for i := 0; next != "" && i < maxPages; i++ {
		var p page
		if err := c.Get(ctx, next, query, &p); err != nil {
			return nil, err
		}
		items = append(items, p.Data...)
		next = p.Metadata.Next
		query = nil
	}
	return items, nil
}
