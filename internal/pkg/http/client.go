package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"sync"
	"time"
)

const (
	// DefaultTimeout bounds every outgoing request
	DefaultTimeout = 10 * time.Second
)

// Client is a generic JSON HTTP client for communicating with services.
// Default headers set on the client are attached to every outgoing request.
type Client struct {
	BaseURL    string
	HTTPClient *nethttp.Client

	mu             sync.RWMutex
	defaultHeaders map[string]string
}

// NewClient creates a new HTTP client
func NewClient(serviceURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		BaseURL: serviceURL,
		HTTPClient: &nethttp.Client{
			Timeout: timeout,
		},
		defaultHeaders: make(map[string]string),
	}
}

// SetDefaultHeader sets a header attached to every subsequent request
func (c *Client) SetDefaultHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultHeaders[key] = value
}

// RemoveDefaultHeader removes a default header
func (c *Client) RemoveDefaultHeader(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.defaultHeaders, key)
}

// DefaultHeader returns the current value of a default header
func (c *Client) DefaultHeader(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultHeaders[key]
}

// Post performs a POST request with a JSON body and returns the raw response
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}) (*nethttp.Response, error) {
	return c.doRequest(ctx, nethttp.MethodPost, endpoint, body)
}

// Get performs a GET request and returns the raw response
func (c *Client) Get(ctx context.Context, endpoint string) (*nethttp.Response, error) {
	return c.doRequest(ctx, nethttp.MethodGet, endpoint, nil)
}

// PostJSON performs a POST request and returns the status code and response body
func (c *Client) PostJSON(ctx context.Context, endpoint string, body interface{}) (int, []byte, error) {
	resp, err := c.Post(ctx, endpoint, body)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}) (*nethttp.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	c.mu.RLock()
	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}
	c.mu.RUnlock()

	return c.HTTPClient.Do(req)
}
