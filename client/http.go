package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"presskit/config"
	"presskit/types"
)

// Process posts req to the gateway and returns the HTTP status together
// with the decoded body. A non-2xx status is not an error: the body still
// carries the backend's verdict. An error means no decodable response was
// obtained.
func (c *GatewayClient) Process(ctx context.Context, req types.RunRequest) (int, *types.RunResult, error) {
	var result types.RunResult
	status, err := c.doJSONRequest(ctx, http.MethodPost, config.ProcessPath, req, &result)
	if err != nil {
		return status, nil, err
	}
	return status, &result, nil
}

// doJSONRequest marshals payload, sends it and decodes the response body
// into result whatever the status code.
func (c *GatewayClient) doJSONRequest(ctx context.Context, method, path string, payload, result interface{}) (int, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}
