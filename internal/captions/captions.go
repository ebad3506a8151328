package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://www.youtube.com"
	DefaultTimeout = 30 * time.Second
)

var (
	ErrNoCaptions          = errors.New("no caption tracks")
	ErrLanguageUnavailable = errors.New("no caption track in requested languages")
)

// Segment is a timed fragment of transcript text.
type Segment struct {
	Start float64 `json:"start"`
	Text  string  `json:"text"`
}

// Transcript is the caption track of a video, joined into normalized plain
// text. Segments keeps the per-fragment timing for callers that want it.
type Transcript struct {
	VideoID   string
	Text      string
	Language  string
	Generated bool
	Segments  []Segment
}

// Client extracts caption data straight from YouTube's Innertube endpoints.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger

	// newBackOff replaces the default retry policy in tests.
	newBackOff func() backoff.BackOff
}

// Fetch downloads the transcript of videoID, preferring the given language
// codes in order. Manually created tracks win over auto-generated ones.
func (c *Client) Fetch(ctx context.Context, videoID string, langs []string) (*Transcript, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, ok := pickTrack(tracks, langs)
	if !ok {
		return nil, fmt.Errorf("%w: tried %s", ErrLanguageUnavailable, strings.Join(langs, ", "))
	}

	c.log().Debug("selected caption track",
		zap.String("video_id", videoID),
		zap.String("language", track.LanguageCode),
		zap.String("kind", track.Kind),
	)

	segments, err := c.fetchSegments(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}

	var joined strings.Builder
	for _, segment := range segments {
		if joined.Len() > 0 {
			joined.WriteByte(' ')
		}
		joined.WriteString(segment.Text)
	}

	return &Transcript{
		VideoID:   videoID,
		Text:      Normalize(joined.String()),
		Language:  track.LanguageCode,
		Generated: track.Kind == "asr",
		Segments:  segments,
	}, nil
}

// Languages lists the caption language codes available for videoID.
func (c *Client) Languages(ctx context.Context, videoID string) ([]string, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(tracks))
	langs := make([]string, 0, len(tracks))
	for _, track := range tracks {
		if seen[track.LanguageCode] {
			continue
		}
		seen[track.LanguageCode] = true
		langs = append(langs, track.LanguageCode)
	}

	return langs, nil
}

func (c *Client) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	payload, err := json.Marshal(playerRequest{
		Context: playerContext{
			Client: webClient{
				ClientName:       webClientName,
				ClientVersion:    webClientVersion,
				UserAgent:        webUserAgent,
				HL:               "en",
				TimeZone:         "UTC",
				UTCOffsetMinutes: 0,
			},
		},
		VideoID:        videoID,
		ContentCheckOK: true,
		RacyCheckOK:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal player request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+playerPath+"?prettyPrint=false", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", webUserAgent)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("player request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player api returned status %d", resp.StatusCode)
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}

	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", player.PlayabilityStatus.Reason)
		}
		return nil, ErrNoCaptions
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, ErrNoCaptions
	}

	return tracks, nil
}

func (c *Client) fetchSegments(ctx context.Context, trackURL string) ([]Segment, error) {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, trackURL+"&fmt=json3", nil)
	})
	if err != nil {
		return nil, fmt.Errorf("subtitle request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("subtitle api returned status %d", resp.StatusCode)
	}

	var subtitles subtitleResponse
	if err := json.NewDecoder(resp.Body).Decode(&subtitles); err != nil {
		return nil, fmt.Errorf("decode subtitle response: %w", err)
	}

	var segments []Segment
	for _, event := range subtitles.Events {
		if len(event.Segs) == 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			if seg.UTF8 != "\n" {
				text.WriteString(seg.UTF8)
			}
		}

		trimmed := strings.TrimSpace(text.String())
		if trimmed == "" {
			continue
		}

		segments = append(segments, Segment{
			Start: float64(event.TStartMs) / 1000.0,
			Text:  trimmed,
		})
	}

	return segments, nil
}

// pickTrack prefers manually created tracks in requested-language order,
// then auto-generated tracks in the same order.
func pickTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	for _, lang := range langs {
		for _, track := range tracks {
			if track.LanguageCode == lang && track.Kind != "asr" {
				return track, true
			}
		}
	}

	for _, lang := range langs {
		for _, track := range tracks {
			if track.LanguageCode == lang {
				return track, true
			}
		}
	}

	return captionTrack{}, false
}

// Normalize collapses every run of whitespace into a single space and trims
// leading and trailing whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
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
