package options

import (
	"github.com/spf13/cobra"

	"mp3-to-text/internal/config"
)

// Options holds the persistent command-line flags shared by all commands.
type Options struct {
	ConfigFile  string
	Engine      string
	Language    string
	Output      string
	FFmpeg      string
	TempDir     string
	MetricsFile string
	Progress    bool
	Verbose     bool
}

// Register binds the persistent flags of cmd to o.
func (o *Options) Register(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVarP(&o.ConfigFile, "config", "c", "", "YAML config file")
	fs.StringVarP(&o.Engine, "engine", "e", "", "recognition engine: google, openai or gemini (default google)")
	fs.StringVarP(&o.Language, "language", "l", "", "BCP-47 language of the speech (default tr-TR)")
	fs.StringVarP(&o.Output, "output", "o", "", "write the text here instead of next to the input")
	fs.StringVar(&o.FFmpeg, "ffmpeg", "", "ffmpeg executable (default ffmpeg on PATH)")
	fs.StringVar(&o.TempDir, "temp-dir", "", "directory for intermediate WAV files")
	fs.StringVar(&o.MetricsFile, "metrics-file", "", "write Prometheus textfile metrics here on exit")
	fs.BoolVar(&o.Progress, "progress", false, "show a progress bar on a terminal")
	fs.BoolVarP(&o.Verbose, "verbose", "V", false, "verbose output")
}

// LoadConfig loads the config file and environment, then applies the flags
// that were set explicitly on cmd and validates the result.
func (o *Options) LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Engine = o.Engine
	}
	if flags.Changed("language") {
		cfg.Language = o.Language
	}
	if flags.Changed("ffmpeg") {
		cfg.FFmpegPath = o.FFmpeg
	}
	if flags.Changed("temp-dir") {
		cfg.TempDir = o.TempDir
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.Verbose
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
