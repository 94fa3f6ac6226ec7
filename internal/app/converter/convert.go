package converter

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	apperrors "mp3-to-text/internal/app/errors"
	"mp3-to-text/internal/app/input"
	"mp3-to-text/internal/app/metrics"
	"mp3-to-text/internal/app/output"
	"mp3-to-text/internal/app/strategy"
)

// Options are per-invocation settings that do not belong in the config file.
type Options struct {
	In          io.Reader
	Out         io.Writer
	OutputPath  string
	Progress    bool
	MetricsFile string
}

type Converter struct {
	resolver    *input.Resolver
	sequencer   *strategy.Sequencer
	writer      *output.Writer
	recorder    *metrics.Recorder
	progress    *ProgressManager
	out         io.Writer
	logger      *zap.Logger
	metricsFile string
}

func NewConverter(
	resolver *input.Resolver,
	sequencer *strategy.Sequencer,
	writer *output.Writer,
	recorder *metrics.Recorder,
	progress *ProgressManager,
	opts Options,
	logger *zap.Logger,
) *Converter {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		resolver:    resolver,
		sequencer:   sequencer,
		writer:      writer,
		recorder:    recorder,
		progress:    progress,
		out:         out,
		logger:      logger,
		metricsFile: opts.MetricsFile,
	}
}

// Close flushes metrics to the configured textfile, if any.
func (c *Converter) Close() error {
	if c.metricsFile == "" || c.recorder == nil {
		return nil
	}
	if err := c.recorder.WriteTextfile(c.metricsFile); err != nil {
		return fmt.Errorf("write metrics %s: %w", c.metricsFile, err)
	}
	c.logger.Debug("metrics written", zap.String("path", c.metricsFile))
	return nil
}

// Do converts one MP3 file: resolve the path, try the strategies in order,
// print the winning text and save it next to the input.
//
// A failure to save is reported but not returned; the transcription itself
// succeeded.
func (c *Converter) Do(ctx context.Context, args []string) (*strategy.Result, error) {
	path, err := c.resolver.Resolve(ctx, args)
	if err != nil {
		// Other resolver failures are left to the caller to report.
		if apperrors.IsInputError(err) {
			fmt.Fprintf(c.out, "❌ Error: %v\n", err)
		}
		return nil, err
	}

	fmt.Fprintf(c.out, "🎵 Processing MP3 file: %s\n", path)
	fmt.Fprintln(c.out, output.Separator)

	result, err := c.sequencer.Run(ctx, path)
	if c.progress != nil {
		c.progress.Finish()
	}
	if err != nil {
		if ctx.Err() != nil {
			c.recordRun(metrics.OutcomeInterrupted)
			return nil, err
		}
		c.recordRun(metrics.OutcomeFailure)
		c.logger.Error("all strategies failed", zap.String("path", path), zap.Error(err))
		PrintFailure(c.out)
		return nil, err
	}
	c.recordRun(metrics.OutcomeSuccess)

	c.writer.Print(c.out, result.Text)

	saved, err := c.writer.Save(path, result.Text)
	if err != nil {
		c.logger.Error("could not save transcription", zap.String("path", saved), zap.Error(err))
		fmt.Fprintf(c.out, "❌ Could not save the text file: %v\n", err)
		return result, nil
	}
	fmt.Fprintf(c.out, "\n💾 Text saved to file: %s\n", saved)
	return result, nil
}

func (c *Converter) recordRun(outcome string) {
	if c.recorder != nil {
		c.recorder.RecordRun(outcome)
	}
}
