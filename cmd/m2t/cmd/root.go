package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mp3-to-text/cmd/m2t/cmd/check"
	"mp3-to-text/cmd/m2t/cmd/options"
	"mp3-to-text/cmd/m2t/cmd/version"
	"mp3-to-text/internal/app"
	"mp3-to-text/internal/app/converter"
	apperrors "mp3-to-text/internal/app/errors"
	"mp3-to-text/internal/app/input"
	"mp3-to-text/internal/app/logging"
	"mp3-to-text/internal/config"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInputError  = 2
	ExitInterrupted = 130
)

const bannerRule = "========================================"

// NewRootCmd builds the m2t command tree.
func NewRootCmd() *cobra.Command {
	opts := &options.Options{}

	rootCmd := &cobra.Command{
		Use:   "m2t [path-to-mp3]",
		Short: "Convert an MP3 file to text, trying several methods until one works",
		Long: `Convert a single MP3 file to text.
- First decode the MP3 in-process and recognize the WAV
- Then transcode it with ffmpeg to 16 kHz mono and recognize that
- Finally send the MP3 to the recognition engine as is
The text is printed and saved next to the input as <name>_transcript.txt.
Without a path argument the path is read from standard input.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return convert(cmd, opts, args)
		},
	}

	opts.Register(rootCmd)
	rootCmd.AddCommand(version.Cmd)
	rootCmd.AddCommand(check.NewCmd(opts))

	return rootCmd
}

func convert(cmd *cobra.Command, opts *options.Options, args []string) error {
	cfg, err := opts.LoadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	out := cmd.OutOrStdout()
	printBanner(out)

	// A bad path argument is reported before the engine needs its key.
	if len(args) > 0 {
		if err := input.Validate(input.Clean(args[0])); err != nil {
			fmt.Fprintf(out, "❌ Error: %v\n", err)
			return err
		}
	}

	conv, err := app.InitializeConverter(cmd.Context(), cfg, converter.Options{
		In:          cmd.InOrStdin(),
		Out:         out,
		OutputPath:  opts.Output,
		Progress:    converter.ShouldShowProgress(opts.Progress, os.Stderr),
		MetricsFile: opts.MetricsFile,
	}, logger)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingAPIKey) {
			return fmt.Errorf("%w; set %s in the environment or in .env", err, config.APIKeyEnv(cfg.Engine))
		}
		return err
	}
	defer func() {
		if err := conv.Close(); err != nil {
			logger.Warn("could not write metrics", zap.Error(err))
		}
	}()

	logger.Debug("converter ready",
		zap.String("engine", cfg.Engine),
		zap.String("language", cfg.Language),
		zap.String("ffmpeg", cfg.FFmpegPath))

	_, err = conv.Do(cmd.Context(), args)
	return err
}

func printBanner(out io.Writer) {
	fmt.Fprintln(out, "🎵 Reliable MP3 to Text")
	fmt.Fprintln(out, bannerRule)
	fmt.Fprintln(out, "🔧 Works with several methods")
	fmt.Fprintln(out, bannerRule)
}

// Execute runs the root command with the process arguments and standard
// streams. It is called by main.main() and returns the process exit code.
func Execute(ctx context.Context) int {
	return Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes the command tree with explicit arguments and streams.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(out, "\n❌ Unexpected error: %v\n", r)
			printHints(out)
			code = ExitFailure
		}
	}()

	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	err := rootCmd.ExecuteContext(ctx)
	return exitCode(ctx, out, err)
}

// exitCode reports err to the user unless it was already reported and maps
// it to a process exit code.
func exitCode(ctx context.Context, out io.Writer, err error) int {
	switch {
	case err == nil:
		return ExitOK
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		fmt.Fprintln(out, "\n👋 Interrupted, goodbye.")
		return ExitInterrupted
	case apperrors.IsInputError(err):
		return ExitInputError
	case errors.Is(err, apperrors.ErrAllStrategiesFailed):
		return ExitFailure
	case errors.Is(err, apperrors.ErrMissingAPIKey):
		fmt.Fprintf(out, "❌ %v\n", err)
		fmt.Fprintln(out, "💡 Copy .env.example to .env and add your API key, or run 'm2t check'.")
		return ExitFailure
	default:
		fmt.Fprintf(out, "❌ %v\n", err)
		return ExitFailure
	}
}

func printHints(out io.Writer) {
	fmt.Fprintln(out, "💡 Check that:")
	for _, hint := range []string{
		"the file is a readable MP3",
		"ffmpeg is installed and on PATH",
		"the API key of the selected engine is set",
	} {
		fmt.Fprintf(out, "   - %s\n", hint)
	}
	fmt.Fprintln(out, "Run 'm2t check' for details.")
}
