// Package gemini is a minimal REST client for the Google Generative
// Language API. It is deliberately loose about response shapes: callers
// receive the raw status code and body and decide what to make of them.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com"
	DefaultAPIVersion = "v1beta2"
	DefaultTimeout    = 10 * time.Second
)

// Client talks to the Generative Language REST API, authenticating with
// an API key passed as the `key` query parameter.
type Client struct {
	apiKey     string
	baseURL    string
	apiVersion string
	httpClient *http.Client
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the client
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAPIVersion sets the API version for the client
func WithAPIVersion(apiVersion string) ClientOption {
	return func(c *Client) {
		c.apiVersion = apiVersion
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Generative Language API client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	client := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		apiVersion: DefaultAPIVersion,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// RawResponse is an HTTP response as received, with no judgement applied.
// Any status code counts as a response; only transport failures are errors.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Endpoint returns the full URL for path with the key query parameter
// masked, suitable for display.
func (c *Client) Endpoint(path string) string {
	return fmt.Sprintf("%s/%s%s?key=REDACTED", c.baseURL, c.apiVersion, path)
}

// do performs a single request attempt. There is no retry: these tools
// make exactly one network call per invocation.
func (c *Client) do(ctx context.Context, method, path string, reqBody any) (*RawResponse, error) {
	var body io.Reader
	if reqBody != nil {
		jsonBody, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = u.Path + "/" + c.apiVersion + path
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &RawResponse{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// ListModels fetches the available-models listing. The caller classifies
// the status code and body shape; a non-2xx status is not an error here.
func (c *Client) ListModels(ctx context.Context) (*RawResponse, error) {
	return c.do(ctx, http.MethodGet, "/models", nil)
}

// generateTextRequest is the legacy text-generation request body.
type generateTextRequest struct {
	Input string `json:"input"`
}

// GenerateText posts a single prompt to the legacy generateText endpoint
// for the given model and returns whatever came back.
func (c *Client) GenerateText(ctx context.Context, model, prompt string) (*RawResponse, error) {
	path := fmt.Sprintf("/models/%s:generateText", model)
	return c.do(ctx, http.MethodPost, path, &generateTextRequest{Input: prompt})
}
