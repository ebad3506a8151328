package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fmueller/ytt/internal/transcript"
	"github.com/stretchr/testify/require"
)

func TestRunSuccessPrintsResultJSON(t *testing.T) {
	t.Parallel()

	generated := true
	cmd := stubbedApp(func(_ context.Context, input string, langs []string) (*transcript.Result, error) {
		require.Equal(t, "dQw4w9WgXcQ", input)
		require.Equal(t, []string{"en", "ru"}, langs)
		return &transcript.Result{
			VideoID:    "dQw4w9WgXcQ",
			Transcript: "never gonna give you up",
			Language:   "en",
			Source:     transcript.SourceSecondary,
			Generated:  &generated,
		}, nil
	})

	stdout, _, err := executeCommand(cmd, []string{"dQw4w9WgXcQ"})
	require.NoError(t, err)

	var result transcript.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Equal(t, "never gonna give you up", result.Transcript)
	require.Equal(t, transcript.SourceSecondary, result.Source)
}

func TestRunSplitsLanguageArgument(t *testing.T) {
	t.Parallel()

	var gotLangs []string
	cmd := stubbedApp(func(_ context.Context, _ string, langs []string) (*transcript.Result, error) {
		gotLangs = langs
		return &transcript.Result{Source: transcript.SourcePrimary}, nil
	})

	_, _, err := executeCommand(cmd, []string{"dQw4w9WgXcQ", "de, fr,ja"})
	require.NoError(t, err)
	require.Equal(t, []string{"de", " fr", "ja"}, gotLangs, "codes are split on commas without trimming")
}

func TestRunFailurePrintsFailureJSONAndErrFailure(t *testing.T) {
	t.Parallel()

	cmd := stubbedApp(func(_ context.Context, _ string, _ []string) (*transcript.Result, error) {
		return nil, &transcript.RetrievalError{
			Err:                errors.New("no caption tracks"),
			PrimaryErr:         "no credentials",
			AvailableLanguages: []string{"de"},
		}
	})

	stdout, _, err := executeCommand(cmd, []string{"dQw4w9WgXcQ"})
	require.ErrorIs(t, err, ErrFailure)

	var failure transcript.Failure
	require.NoError(t, json.Unmarshal([]byte(stdout), &failure))
	require.Equal(t, "no caption tracks", failure.Error)
	require.Equal(t, "no credentials", failure.PrimaryError)
	require.Equal(t, []string{"de"}, failure.AvailableLanguages)
}

func TestRunInvalidInput(t *testing.T) {
	t.Parallel()

	cmd := stubbedApp(func(_ context.Context, _ string, _ []string) (*transcript.Result, error) {
		return nil, transcript.ErrInvalidInput
	})

	stdout, _, err := executeCommand(cmd, []string{"not-a-video"})
	require.ErrorIs(t, err, ErrFailure)

	var failure transcript.Failure
	require.NoError(t, json.Unmarshal([]byte(stdout), &failure))
	require.Equal(t, "invalid YouTube URL or video ID", failure.Error)
	require.Empty(t, failure.PrimaryError)
}

func TestRunMissingArgument(t *testing.T) {
	t.Parallel()

	fetchCalled := false
	cmd := stubbedApp(func(_ context.Context, _ string, _ []string) (*transcript.Result, error) {
		fetchCalled = true
		return nil, nil
	})

	stdout, _, err := executeCommand(cmd, []string{})
	require.ErrorIs(t, err, ErrFailure)
	require.False(t, fetchCalled)

	var failure transcript.Failure
	require.NoError(t, json.Unmarshal([]byte(stdout), &failure))
	require.Equal(t, "URL or video ID required", failure.Error)
}
