package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps HTTP calls to a running kinoscout server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new kinoscout API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// StatusResponse is the server status.
type StatusResponse struct {
	Status    string        `json:"status"`
	Version   string        `json:"version"`
	Providers int           `json:"providers"`
	Checks    []StatusCheck `json:"checks,omitempty"`
}

// StatusCheck is one backing service probed by the server.
type StatusCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ProvidersResponse lists the server's providers in display order.
type ProvidersResponse struct {
	Providers []string `json:"providers"`
}

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Providers() (*ProvidersResponse, error) {
	var resp ProvidersResponse
	if err := c.get("/api/v1/providers", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
