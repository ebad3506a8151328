package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSecretsPathLinux(t *testing.T) {
	t.Parallel()

	path, err := DefaultSecretsPathFor("linux", "/home/alex", "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/home/alex", ".config", "ytt", "supadata.json"), path)
}

func TestDefaultSecretsPathLinuxXDG(t *testing.T) {
	t.Parallel()

	path, err := DefaultSecretsPathFor("linux", "/home/alex", "/custom/config")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/custom/config", "ytt", "supadata.json"), path)
}

func TestDefaultSecretsPathDarwin(t *testing.T) {
	t.Parallel()

	path, err := DefaultSecretsPathFor("darwin", "/Users/alex", "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/Users/alex", "Library", "Application Support", "ytt", "supadata.json"), path)
}

func TestDefaultSecretsPathErrors(t *testing.T) {
	t.Parallel()

	_, err := DefaultSecretsPathFor("linux", "", "")
	require.Error(t, err)

	_, err = DefaultSecretsPathFor("plan9", "/home/alex", "")
	require.Error(t, err)
}

func TestResolveSecretsPathOverride(t *testing.T) {
	t.Parallel()

	path, err := ResolveSecretsPath("/tmp/./secrets.json")
	require.NoError(t, err)
	require.Equal(t, filepath.Clean("/tmp/secrets.json"), path)
}
