// Package web holds the HTTP plumbing shared by source adapters.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html"
)

const (
	DefaultUserAgent = "ImageFetcher/1.0"
	maxBodyBytes     = 8 << 20
)

// ErrUnexpectedStatus is returned for any non-200 upstream response.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Client performs single-attempt GET requests against upstream sources.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client whose requests are bounded by timeout.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// GetJSON fetches url and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetHTML fetches url and parses the body as an HTML document.
func (c *Client) GetHTML(ctx context.Context, url string) (*html.Node, error) {
	body, err := c.get(ctx, url, "text/html")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := html.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func (c *Client) get(ctx context.Context, url, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return limitedBody{Reader: io.LimitReader(resp.Body, maxBodyBytes), Closer: resp.Body}, nil
}

type limitedBody struct {
	io.Reader
	io.Closer
}
