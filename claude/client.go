package claude

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Model names for the Claude API
// https://docs.anthropic.com/claude/docs/models-overview#model-comparison
const (
	OPUS   = "claude-3-opus-20240229"
	SONNET = "claude-sonnet-4-20250514"
	HAIKU  = "claude-3-haiku-20240307"
)

type Client struct {
	config     *Config
	httpClient *http.Client
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     1 * time.Minute,
			},
		},
	}
}

// CreateMessage sends one request to the Messages API and decodes the reply.
// An error body from the API comes back as *APIError; transport failures
// propagate as-is. There is no retry and no streaming.
func (c *Client) CreateMessage(request Request) (*Response, error) {
	reqBody, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/%s", c.config.baseURL, "v1/messages"), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("building POST request: %w", err)
	}

	req.Header.Set("x-api-key", c.config.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("content-type", "application/json")

	rsp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return parseResponse(rsp.StatusCode, body)
}

func parseResponse(statusCode int, body []byte) (*Response, error) {
	head := struct {
		Type string `json:"type"`
	}{}
	if err := json.Unmarshal(body, &head); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	// The API reports failures through a JSON error body rather than
	// the status code alone.
	if head.Type == "error" {
		errRsp := errResponseBody{}
		if err := json.Unmarshal(body, &errRsp); err != nil {
			return nil, fmt.Errorf("decoding error body: %w", err)
		}
		return nil, &errRsp.Error
	}

	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from Claude API", statusCode)
	}

	okRsp := Response{}
	if err := json.Unmarshal(body, &okRsp); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	return &okRsp, nil
}
