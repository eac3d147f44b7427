package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"sample-tracker-client/config"
)

// Client talks to the tracker server's read and push endpoints.
type Client struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	stream  *http.Client
}

// NewClient builds a client for the configured remote server.
func NewClient(cfg *config.RemoteConfig) *Client {
	transport := newTransport(cfg.HTTPProxy)

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		headers: cfg.Headers,
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		// The event stream stays open indefinitely, so it gets no overall timeout.
		stream: &http.Client{Transport: transport},
	}
}

// newTransport starts from the default transport, keeping its environment proxy and
// dial timeouts. A configured proxy replaces the environment one.
func newTransport(proxy string) *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy == "" {
		return transport
	}
	proxyURL, err := url.Parse(proxy)
	if err != nil {
		log.Printf("Warning: Invalid proxy URL %q: %v. Sync will use the environment proxy settings.", proxy, err)
		return transport
	}
	transport.Proxy = http.ProxyURL(proxyURL)
	return transport
}

// apiError is the body the server sends with a failed request.
type apiError struct {
	Error string `json:"error"`
}

// getJSON fetches path and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-200 status code %d: %s", resp.StatusCode, errorMessage(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// openStream opens the server-sent event stream at path.
func (c *Client) openStream(ctx context.Context, path string) (*http.Response, error) {
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("received non-200 status code %d: %s", resp.StatusCode, errorMessage(body))
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	if c.baseURL == "" {
		return nil, errors.New("remote base URL is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

// errorMessage extracts a readable message from an error body. The server answers
// with {"error": "..."} or, for some endpoints, a bare JSON string.
func errorMessage(body []byte) string {
	var structured apiError
	if err := json.Unmarshal(body, &structured); err == nil && structured.Error != "" {
		return structured.Error
	}
	var plain string
	if err := json.Unmarshal(body, &plain); err == nil {
		return plain
	}
	return strings.TrimSpace(string(body))
}
