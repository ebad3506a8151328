package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersFlags(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	require.NotNil(t, cmd.Flags().Lookup("verbose"))
	require.NotNil(t, cmd.Flags().Lookup("json-logs"))
	require.NotNil(t, cmd.Flags().Lookup("no-progress"))
	require.NotNil(t, cmd.Flags().Lookup("timeout"))
	require.NotNil(t, cmd.Flags().Lookup("secrets-file"))
	require.Equal(t, "1m0s", cmd.Flags().Lookup("timeout").DefValue)
	require.Equal(t, "false", cmd.Flags().Lookup("verbose").DefValue)
	require.Equal(t, "", cmd.Flags().Lookup("secrets-file").DefValue)
}

func TestRootHelpParsesSuccessfully(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, []string{"--help"})
	require.NoError(t, err)
	require.Contains(t, stdout, "ytt <url-or-id> [languages]")
	require.Contains(t, stdout, "version")
}

func TestVersionSubcommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, []string{"version"})
	require.NoError(t, err)
	require.Contains(t, stdout, "ytt v")
}
