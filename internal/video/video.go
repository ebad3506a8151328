package video

import "regexp"

var (
	urlPattern  = regexp.MustCompile(`(?:v=|/v/|youtu\.be/)([A-Za-z0-9_-]{11})`)
	barePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ExtractID pulls the 11-character video identifier out of a YouTube watch
// or share URL. A string that already is a bare identifier is returned
// unchanged. The second return value is false when neither form matches.
func ExtractID(s string) (string, bool) {
	if m := urlPattern.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	if barePattern.MatchString(s) {
		return s, true
	}
	return "", false
}
