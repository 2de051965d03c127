package client

import (
	"net/http"
	"strings"

	"presskit/config"
)

// GatewayClient is a thin HTTP client for the gateway's process API
type GatewayClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGatewayClient creates a new gateway client for baseURL, as resolved
// by config.Load. An empty baseURL means config.DefaultGatewayURL. No
// timeout is set: a run can take several minutes and is bounded by the
// caller's context only.
func NewGatewayClient(baseURL string) *GatewayClient {
	if baseURL == "" {
		baseURL = config.DefaultGatewayURL
	}
	return &GatewayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// BaseURL returns the gateway address requests are sent to
func (c *GatewayClient) BaseURL() string {
	return c.baseURL
}
