package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/fmueller/ytt/internal/transcript"
	"github.com/spf13/cobra"
)

func runCommand(t *testing.T, args []string) (stdout string, stderr string, err error) {
	t.Helper()

	cmd := NewRootCmd()
	return executeCommand(cmd, args)
}

func executeCommand(cmd *cobra.Command, args []string) (stdout string, stderr string, err error) {
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)

	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// stubbedApp rebuilds the root command around an appState whose fetch and
// key-loading behavior is fixed, mirroring how the commands inject their
// dependencies in production.
func stubbedApp(fetch func(ctx context.Context, input string, langs []string) (*transcript.Result, error)) *cobra.Command {
	cmd := NewRootCmd()

	app := &appState{
		noProgress: true,
		loadKeyFn:  func() string { return "" },
		fetchFn:    fetch,
	}

	cmd.RunE = func(c *cobra.Command, args []string) error {
		return app.run(c.Context(), c.OutOrStdout(), args)
	}
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error { return nil }

	return cmd
}
