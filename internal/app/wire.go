//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"mp3-to-text/internal/app/audio"
	"mp3-to-text/internal/app/converter"
	"mp3-to-text/internal/app/metrics"
	"mp3-to-text/internal/app/strategy"
	"mp3-to-text/internal/config"
)

var audioSet = wire.NewSet(
	audio.NewDecoder,
	provideTranscoder,
	wire.Bind(new(strategy.WavDecoder), new(*audio.Decoder)),
	wire.Bind(new(strategy.WavTranscoder), new(*audio.Transcoder)),
)

var strategySet = wire.NewSet(
	provideStrategyDeps,
	strategy.Default,
	provideObservers,
	provideSequencer,
)

// InitializeConverter builds a converter for one run. The engine selected in
// cfg must have its API key configured.
func InitializeConverter(ctx context.Context, cfg *config.Config, opts converter.Options, logger *zap.Logger) (*converter.Converter, error) {
	wire.Build(
		provideSettings,
		provideRecognizer,
		audioSet,
		strategySet,
		metrics.NewRecorder,
		provideProgress,
		provideResolver,
		provideWriter,
		converter.NewConverter,
	)
	return &converter.Converter{}, nil
}
