package check

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"mp3-to-text/cmd/m2t/cmd/options"
	"mp3-to-text/internal/app/api/provider"
	"mp3-to-text/internal/app/audio"
	apperrors "mp3-to-text/internal/app/errors"
	"mp3-to-text/internal/config"
)

// NewCmd creates the check command reading the shared flags from opts.
func NewCmd(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check ffmpeg, the recognition engine and its API key",
		Long: `Reports whether the environment can run every conversion strategy:
- ffmpeg is needed by the ffmpeg-transcode strategy
- the selected engine must be registered and have an API key`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return Run(cmd.OutOrStdout(), cfg)
		},
	}
}

type finding struct {
	label  string
	ok     bool
	fatal  bool
	detail string
}

// Run prints one line per check and fails if the converter could not start.
func Run(out io.Writer, cfg *config.Config) error {
	findings := []finding{
		checkEngine(cfg),
		checkAPIKey(cfg),
		checkBaseURL(cfg),
		checkFFmpeg(cfg),
		checkTempDir(cfg),
	}

	fmt.Fprintln(out, "🔧 m2t environment check")
	for _, f := range findings {
		mark := "✅"
		if !f.ok {
			mark = "⚠️ "
			if f.fatal {
				mark = "❌"
			}
		}
		fmt.Fprintf(out, "%s %-10s %s\n", mark, f.label+":", f.detail)
	}

	fatal := lo.Filter(findings, func(f finding, _ int) bool { return f.fatal })
	if len(fatal) > 0 {
		labels := lo.Map(fatal, func(f finding, _ int) string { return f.label })
		return fmt.Errorf("%w: check failed: %s", apperrors.ErrInvalidConfig, strings.Join(labels, ", "))
	}
	return nil
}

func checkEngine(cfg *config.Config) finding {
	registered := provider.ListRegisteredProviders()
	if !provider.IsRegistered(cfg.Engine) {
		return finding{label: "engine", fatal: true,
			detail: fmt.Sprintf("%q is not available (registered: %s)", cfg.Engine, strings.Join(registered, ", "))}
	}
	return finding{label: "engine", ok: true,
		detail: fmt.Sprintf("%s, language %s (registered: %s)", cfg.Engine, cfg.Language, strings.Join(registered, ", "))}
}

func checkAPIKey(cfg *config.Config) finding {
	envName := config.APIKeyEnv(cfg.Engine)
	key := cfg.APIKey()
	if key == "" {
		return finding{label: "api key", fatal: true, detail: fmt.Sprintf("%s is not set", envName)}
	}
	if err := config.ValidateAPIKey(key, cfg.Engine); err != nil {
		return finding{label: "api key", detail: fmt.Sprintf("%s is set but %v", envName, err)}
	}
	return finding{label: "api key", ok: true, detail: fmt.Sprintf("%s is set (%s)", envName, mask(key))}
}

func checkBaseURL(cfg *config.Config) finding {
	var baseURL string
	switch cfg.Engine {
	case config.EngineGoogle:
		baseURL = cfg.Google.BaseURL
	case config.EngineOpenAI:
		baseURL = cfg.OpenAI.BaseURL
	}
	if baseURL == "" {
		return finding{label: "endpoint", ok: true, detail: "library default"}
	}
	if err := config.ValidateURL(baseURL, cfg.Engine); err != nil {
		return finding{label: "endpoint", fatal: true, detail: err.Error()}
	}
	return finding{label: "endpoint", ok: true, detail: baseURL}
}

func checkFFmpeg(cfg *config.Config) finding {
	tr := audio.NewTranscoder(cfg.FFmpegPath)
	path, err := tr.LookPath()
	if err != nil {
		return finding{label: "ffmpeg", detail: fmt.Sprintf("%s not found, the ffmpeg-transcode strategy will be skipped", tr.Binary())}
	}
	return finding{label: "ffmpeg", ok: true, detail: path}
}

func checkTempDir(cfg *config.Config) finding {
	info, err := os.Stat(cfg.TempDir)
	if err != nil || !info.IsDir() {
		return finding{label: "temp dir", fatal: true, detail: fmt.Sprintf("%s is not a directory", cfg.TempDir)}
	}
	return finding{label: "temp dir", ok: true, detail: cfg.TempDir}
}

// mask keeps the first and last four characters of a key.
func mask(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
