package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrFetchFailed covers network failures, non-2xx responses and undecodable
// payloads from the upstream catalog API.
var ErrFetchFailed = fmt.Errorf("catalog fetch failed")

type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch returns a fresh normalized snapshot of the upstream catalog.
// A limit <= 0 requests the whole catalog.
func (c *Client) Fetch(ctx context.Context, limit int) ([]Product, error) {
	target := c.BaseURL + "/products"
	if limit > 0 {
		target += "?limit=" + strconv.Itoa(limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status=%d", ErrFetchFailed, resp.StatusCode)
	}

	var raw []rawProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFetchFailed, err)
	}

	out := make([]Product, 0, len(raw))
	for i, r := range raw {
		p, err := r.normalize()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrFetchFailed, i, err)
		}
		out = append(out, p)
	}
	return out, nil
}
