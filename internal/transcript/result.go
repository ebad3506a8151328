package transcript

import (
	"encoding/json"
	"errors"
	"io"
)

// Source names the tier a transcript came from.
type Source string

const (
	SourcePrimary   Source = "primary"
	SourceSecondary Source = "secondary"
)

// Result is the success outcome of a retrieval. Exactly one of Result or
// Failure is produced per invocation; a run never yields both.
type Result struct {
	VideoID            string   `json:"video_id"`
	Transcript         string   `json:"transcript"`
	Language           string   `json:"language"`
	Source             Source   `json:"source"`
	AvailableLanguages []string `json:"available_languages,omitempty"`
	Generated          *bool    `json:"is_generated,omitempty"`
}

// Failure is the error outcome. PrimaryError carries the primary tier's
// error message (or "no credentials") when both tiers were exhausted;
// AvailableLanguages is filled only when the diagnostic enumeration of
// caption languages succeeded.
type Failure struct {
	Error              string   `json:"error"`
	PrimaryError       string   `json:"primary_error,omitempty"`
	AvailableLanguages []string `json:"available_languages,omitempty"`
}

// FailureFromError shapes any retrieval error into a Failure.
func FailureFromError(err error) *Failure {
	var rerr *RetrievalError
	if errors.As(err, &rerr) {
		return rerr.Failure()
	}
	return &Failure{Error: err.Error()}
}

// EncodeJSON writes v as a single JSON object followed by a newline.
// Non-ASCII characters are left unescaped.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
