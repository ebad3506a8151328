package transcript

import (
	"context"
	"errors"
	"fmt"

	"github.com/fmueller/ytt/internal/captions"
	"github.com/fmueller/ytt/internal/supadata"
	"github.com/fmueller/ytt/internal/video"
	"go.uber.org/zap"
)

// DefaultLanguages is the preference list used when the caller names none.
var DefaultLanguages = []string{"en", "ru"}

// ErrInvalidInput means the input string is neither a YouTube URL nor a
// bare video identifier. It is fatal before any network activity.
var ErrInvalidInput = errors.New("invalid YouTube URL or video ID")

// noCredentials is reported as the primary tier's outcome when no API key
// was available and the primary attempt was skipped.
const noCredentials = "no credentials"

// PrimaryFetcher is the hosted transcript API tier.
type PrimaryFetcher interface {
	Fetch(ctx context.Context, rawURL, lang string) (*supadata.Transcript, error)
}

// FallbackFetcher is the local extraction tier.
type FallbackFetcher interface {
	Fetch(ctx context.Context, videoID string, langs []string) (*captions.Transcript, error)
	Languages(ctx context.Context, videoID string) ([]string, error)
}

// RetrievalError is returned when no tier produced a transcript. Err holds
// the terminal (secondary) error; PrimaryErr preserves what went wrong with
// the primary tier so both are visible to the caller.
type RetrievalError struct {
	Err                error
	PrimaryErr         string
	AvailableLanguages []string
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("transcript retrieval failed: %v (primary: %s)", e.Err, e.PrimaryErr)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

func (e *RetrievalError) Failure() *Failure {
	return &Failure{
		Error:              e.Err.Error(),
		PrimaryError:       e.PrimaryErr,
		AvailableLanguages: e.AvailableLanguages,
	}
}

// Retriever runs the two-tier fetch. Primary may be nil, which means no
// credentials; the run then goes straight to the fallback. The two tiers are
// strictly sequential, the fallback is attempted only after the primary was
// skipped or definitively failed.
type Retriever struct {
	Primary  PrimaryFetcher
	Fallback FallbackFetcher
	Logger   *zap.Logger
}

// Fetch resolves input into a video identifier and retrieves its transcript.
func (r *Retriever) Fetch(ctx context.Context, input string, langs []string) (*Result, error) {
	if len(langs) == 0 {
		langs = DefaultLanguages
	}

	id, ok := video.ExtractID(input)
	if !ok {
		return nil, ErrInvalidInput
	}

	primaryErr := noCredentials
	if r.Primary != nil {
		result, err := r.fetchPrimary(ctx, id, input, langs[0])
		if err == nil {
			return result, nil
		}
		primaryErr = err.Error()
		r.log().Warn("primary transcript fetch failed, falling back",
			zap.String("video_id", id),
			zap.Error(err),
		)
	}

	fetched, err := r.Fallback.Fetch(ctx, id, langs)
	if err != nil {
		rerr := &RetrievalError{Err: err, PrimaryErr: primaryErr}
		if available, lerr := r.Fallback.Languages(ctx, id); lerr == nil {
			rerr.AvailableLanguages = available
		} else {
			r.log().Debug("could not enumerate caption languages",
				zap.String("video_id", id),
				zap.Error(lerr),
			)
		}
		return nil, rerr
	}

	generated := fetched.Generated
	return &Result{
		VideoID:    id,
		Transcript: fetched.Text,
		Language:   fetched.Language,
		Source:     SourceSecondary,
		Generated:  &generated,
	}, nil
}

func (r *Retriever) fetchPrimary(ctx context.Context, id, input, lang string) (*Result, error) {
	fetched, err := r.Primary.Fetch(ctx, input, lang)
	if err != nil {
		return nil, err
	}

	language := fetched.Lang
	if language == "" {
		language = lang
	}

	return &Result{
		VideoID:            id,
		Transcript:         fetched.Content,
		Language:           language,
		Source:             SourcePrimary,
		AvailableLanguages: fetched.AvailableLangs,
	}, nil
}

func (r *Retriever) log() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
