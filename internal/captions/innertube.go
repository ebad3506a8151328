package captions

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Innertube wire format. The player endpoint is the same one the YouTube web
// client calls; it lists the caption tracks for a video, each pointing at a
// timedtext URL that serves the actual subtitle events.

const (
	playerPath       = "/youtubei/v1/player"
	webClientName    = "WEB"
	webClientVersion = "2.20250925.01.00"
	webUserAgent     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.5 Safari/605.1.15,gzip(gfe)"
)

type playerRequest struct {
	Context        playerContext `json:"context"`
	VideoID        string        `json:"videoId"`
	ContentCheckOK bool          `json:"contentCheckOk"`
	RacyCheckOK    bool          `json:"racyCheckOk"`
}

type playerContext struct {
	Client webClient `json:"client"`
}

type webClient struct {
	ClientName       string `json:"clientName"`
	ClientVersion    string `json:"clientVersion"`
	UserAgent        string `json:"userAgent"`
	HL               string `json:"hl"`
	TimeZone         string `json:"timeZone"`
	UTCOffsetMinutes int    `json:"utcOffsetMinutes"`
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

// JSON3 subtitle format served by the timedtext endpoint.

type subtitleResponse struct {
	Events []subtitleEvent `json:"events"`
}

type subtitleEvent struct {
	TStartMs int           `json:"tStartMs"`
	Segs     []subtitleSeg `json:"segs,omitempty"`
}

type subtitleSeg struct {
	UTF8 string `json:"utf8"`
}

// doWithRetry issues the request built by build, retrying 5xx and 429
// responses with exponential backoff. The request is rebuilt for every
// attempt so POST bodies can be re-read.
func (c *Client) doWithRetry(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var resp *http.Response

	operation := func() error {
		req, err := build()
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err = c.httpClient().Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}

		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(c.retryPolicy(), ctx)); err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) retryPolicy() backoff.BackOff {
	if c.newBackOff != nil {
		return c.newBackOff()
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	return policy
}
