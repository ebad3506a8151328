package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fmueller/ytt/internal/captions"
	"github.com/fmueller/ytt/internal/logging"
	"github.com/fmueller/ytt/internal/platform"
	"github.com/fmueller/ytt/internal/secrets"
	"github.com/fmueller/ytt/internal/supadata"
	"github.com/fmueller/ytt/internal/transcript"
	"github.com/fmueller/ytt/internal/version"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// ErrFailure signals that a failure object has already been written to
// stdout. The caller exits non-zero without printing anything further.
var ErrFailure = errors.New("transcript retrieval failed")

type appState struct {
	verbose     bool
	jsonLogs    bool
	noProgress  bool
	timeout     time.Duration
	secretsFile string

	logger *zap.Logger

	loadKeyFn func() string
	fetchFn   func(ctx context.Context, input string, langs []string) (*transcript.Result, error)
}

func NewRootCmd() *cobra.Command {
	app := &appState{
		timeout: supadata.DefaultTimeout,
	}
	app.loadKeyFn = app.loadAPIKey
	app.fetchFn = app.fetchTranscript

	cmd := &cobra.Command{
		Use:   "ytt <url-or-id> [languages]",
		Short: "Fetch the transcript of a YouTube video as JSON",
		Long: "Fetch the text transcript of a YouTube video and print it as a single JSON object.\n\n" +
			"The hosted Supadata API is tried first when an API key is configured; otherwise the\n" +
			"transcript is extracted directly from YouTube. Languages is a comma-separated\n" +
			"preference list and defaults to \"en,ru\".",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Resolve(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Options{Verbose: app.verbose, JSON: app.jsonLogs})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			app.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}

	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	bindLoggingFlags(cmd, app)
	bindProgressFlag(cmd, app)
	cmd.Flags().DurationVar(&app.timeout, "timeout", app.timeout, "Timeout for the hosted transcript API request")
	cmd.Flags().StringVar(&app.secretsFile, "secrets-file", "", "Path to the JSON secrets file holding the Supadata api_key")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func bindLoggingFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.verbose, "verbose", app.verbose, "Enable verbose logs")
	cmd.Flags().BoolVar(&app.jsonLogs, "json-logs", app.jsonLogs, "Enable JSON logging on stderr")
}

func bindProgressFlag(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.noProgress, "no-progress", app.noProgress, "Disable progress indicators")
}

func (a *appState) run(ctx context.Context, out io.Writer, args []string) error {
	if len(args) == 0 {
		return a.emitFailure(out, &transcript.Failure{Error: "URL or video ID required"})
	}

	langs := transcript.DefaultLanguages
	if len(args) > 1 {
		// Split verbatim; codes are passed through without trimming or validation.
		langs = strings.Split(args[1], ",")
	}

	fetchFn := a.fetchFn
	if fetchFn == nil {
		fetchFn = a.fetchTranscript
	}

	stop := startSpinner(a.progressEnabled(), "fetching transcript")
	result, err := fetchFn(ctx, args[0], langs)
	stop()

	if err != nil {
		return a.emitFailure(out, transcript.FailureFromError(err))
	}

	if err := transcript.EncodeJSON(out, result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// emitFailure writes the failure object to stdout and returns ErrFailure so
// the process exits with a non-zero status. The JSON object on stdout is the
// only user-facing output for a failed run.
func (a *appState) emitFailure(out io.Writer, failure *transcript.Failure) error {
	if err := transcript.EncodeJSON(out, failure); err != nil {
		return fmt.Errorf("encode failure: %w", err)
	}
	return ErrFailure
}

func (a *appState) fetchTranscript(ctx context.Context, input string, langs []string) (*transcript.Result, error) {
	loadKey := a.loadKeyFn
	if loadKey == nil {
		loadKey = a.loadAPIKey
	}

	retriever := &transcript.Retriever{
		Fallback: &captions.Client{Logger: a.log()},
		Logger:   a.log(),
	}

	if key := loadKey(); key != "" {
		retriever.Primary = &supadata.Client{
			APIKey:     key,
			HTTPClient: &http.Client{Timeout: a.timeout},
			Logger:     a.log(),
		}
	} else {
		a.log().Debug("no api key configured, skipping hosted transcript service")
	}

	return retriever.Fetch(ctx, input, langs)
}

func (a *appState) loadAPIKey() string {
	path, err := platform.ResolveSecretsPath(a.secretsFile)
	if err != nil {
		a.log().Debug("could not resolve secrets path", zap.Error(err))
		return secrets.APIKey("")
	}
	return secrets.APIKey(path)
}

func (a *appState) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func (a *appState) progressEnabled() bool {
	if a.noProgress {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
