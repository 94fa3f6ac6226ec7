package app

import (
	"context"
	"os"

	"go.uber.org/zap"

	"mp3-to-text/internal/app/api"
	"mp3-to-text/internal/app/api/provider"
	"mp3-to-text/internal/app/audio"
	"mp3-to-text/internal/app/converter"
	"mp3-to-text/internal/app/input"
	"mp3-to-text/internal/app/metrics"
	"mp3-to-text/internal/app/output"
	"mp3-to-text/internal/app/strategy"
	"mp3-to-text/internal/config"
)

// provideSettings maps the selected engine's config section to provider settings.
func provideSettings(cfg *config.Config) provider.Settings {
	settings := provider.Settings{
		APIKey:   cfg.APIKey(),
		Language: cfg.Language,
		Timeout:  cfg.RequestTimeout,
	}
	switch cfg.Engine {
	case config.EngineGoogle:
		settings.BaseURL = cfg.Google.BaseURL
	case config.EngineOpenAI:
		settings.BaseURL = cfg.OpenAI.BaseURL
		settings.Model = cfg.OpenAI.Model
	case config.EngineGemini:
		settings.Model = cfg.Gemini.Model
	}
	return settings
}

// provideRecognizer builds the configured engine; a missing key fails here,
// before any input is read.
func provideRecognizer(ctx context.Context, cfg *config.Config, settings provider.Settings) (api.Transcriber, error) {
	return provider.CreateProvider(ctx, cfg.Engine, settings)
}

func provideTranscoder(cfg *config.Config) *audio.Transcoder {
	return audio.NewTranscoder(cfg.FFmpegPath)
}

func provideStrategyDeps(recognizer api.Transcriber, decoder strategy.WavDecoder, transcoder strategy.WavTranscoder, cfg *config.Config, logger *zap.Logger) strategy.Deps {
	return strategy.Deps{
		Recognizer: recognizer,
		Decoder:    decoder,
		Transcoder: transcoder,
		TempDir:    cfg.TempDir,
		Logger:     logger,
	}
}

func provideProgress(opts converter.Options) *converter.ProgressManager {
	return converter.NewProgressManager(converter.ProgressConfig{
		Enabled: opts.Progress,
		Writer:  os.Stderr,
	})
}

func provideObservers(opts converter.Options, progress *converter.ProgressManager, recorder *metrics.Recorder) []strategy.Observer {
	return []strategy.Observer{
		converter.NewConsoleReporter(opts.Out),
		progress,
		recorder,
	}
}

func provideSequencer(logger *zap.Logger, strategies []strategy.Strategy, observers []strategy.Observer) *strategy.Sequencer {
	return strategy.NewSequencer(logger, strategies, observers...)
}

func provideResolver(opts converter.Options, logger *zap.Logger) *input.Resolver {
	return input.NewResolver(opts.In, opts.Out, logger)
}

func provideWriter(cfg *config.Config, opts converter.Options) *output.Writer {
	return output.NewWriter(cfg.OutputSuffix, opts.OutputPath)
}
