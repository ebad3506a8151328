package supadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.supadata.ai"
	DefaultTimeout = 60 * time.Second

	transcriptPath = "/v1/youtube/transcript"
	apiKeyHeader   = "x-api-key"
)

// Transcript is the payload returned by the hosted transcript endpoint.
type Transcript struct {
	Content        string   `json:"content"`
	Lang           string   `json:"lang"`
	AvailableLangs []string `json:"availableLangs"`
}

// Client talks to the Supadata transcript API. The zero value is not usable;
// at minimum APIKey must be set.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Fetch requests the transcript for rawURL in the given language as plain
// text. The request is issued exactly once; any transport error, non-200
// status, or decode failure is returned to the caller so it can fall back.
func (c *Client) Fetch(ctx context.Context, rawURL, lang string) (*Transcript, error) {
	query := url.Values{}
	query.Set("url", rawURL)
	query.Set("lang", lang)
	query.Set("text", "true")

	endpoint := c.baseURL() + transcriptPath + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.APIKey)

	c.log().Debug("requesting transcript from supadata", zap.String("url", rawURL), zap.String("lang", lang))

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("supadata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		c.log().Debug("supadata error response", zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return nil, fmt.Errorf("supadata api error: %d - %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var transcript Transcript
	if err := json.NewDecoder(resp.Body).Decode(&transcript); err != nil {
		return nil, fmt.Errorf("decode supadata response: %w", err)
	}

	return &transcript, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}

func (c *Client) log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
