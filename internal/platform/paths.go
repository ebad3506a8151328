package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const secretsFileName = "supadata.json"

func DefaultSecretsPathFor(goos, homeDir, xdgConfigHome string) (string, error) {
	if homeDir == "" {
		return "", errors.New("home directory is empty")
	}

	switch goos {
	case "linux":
		if xdgConfigHome != "" {
			return filepath.Join(xdgConfigHome, "ytt", secretsFileName), nil
		}
		return filepath.Join(homeDir, ".config", "ytt", secretsFileName), nil
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "ytt", secretsFileName), nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", goos)
	}
}

func ResolveSecretsPath(override string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}

	return DefaultSecretsPathFor(runtime.GOOS, homeDir, os.Getenv("XDG_CONFIG_HOME"))
}
