package secrets

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvAPIKey overrides the secrets file when set.
const EnvAPIKey = "SUPADATA_API_KEY"

type secretsFile struct {
	APIKey string `json:"api_key"`
}

// APIKey resolves the Supadata API key. A .env file in the working directory
// is loaded first (best effort, never overrides real environment variables),
// then the SUPADATA_API_KEY environment variable is consulted, then the
// api_key field of the JSON file at path. Any failure along the way means
// "no credentials" and yields the empty string; callers treat that as a
// signal to skip the primary service, not as an error.
func APIKey(path string) string {
	_ = godotenv.Load()

	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key
	}

	return fileAPIKey(path)
}

func fileAPIKey(path string) string {
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var parsed secretsFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return ""
	}

	return strings.TrimSpace(parsed.APIKey)
}
