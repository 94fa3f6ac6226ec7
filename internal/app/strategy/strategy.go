package strategy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	apperrors "mp3-to-text/internal/app/errors"
)

// Func turns the input file into text.
type Func func(ctx context.Context, inputPath string) (string, error)

// Strategy is one self-contained way of producing a transcription.
type Strategy struct {
	Name        string
	Description string
	Run         Func
}

// Observer is notified around every strategy invocation.
type Observer interface {
	StrategyStarted(index, total int, s Strategy)
	StrategyFinished(index, total int, s Strategy, elapsed time.Duration, err error)
}

// Attempt records the outcome of one strategy invocation.
type Attempt struct {
	Strategy string
	Elapsed  time.Duration
	Err      error
}

// Result is the first successful transcription.
type Result struct {
	Text     string
	Strategy string
	Attempts []Attempt
}

// Sequencer tries strategies in order until one yields text.
type Sequencer struct {
	logger     *zap.Logger
	strategies []Strategy
	observers  []Observer
}

// NewSequencer creates a sequencer over a fixed, ordered strategy list.
func NewSequencer(logger *zap.Logger, strategies []Strategy, observers ...Observer) *Sequencer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sequencer{
		logger:     logger,
		strategies: strategies,
		observers:  observers,
	}
}

// Run executes the strategies sequentially and returns the first non-blank
// result unmodified. Later strategies are never started once one succeeds.
// When every strategy fails the error wraps ErrAllStrategiesFailed and each
// individual failure. A cancelled ctx stops the sequence with ctx.Err().
func (s *Sequencer) Run(ctx context.Context, inputPath string) (*Result, error) {
	var (
		merr     *multierror.Error
		attempts []Attempt
		total    = len(s.strategies)
	)

	for i, st := range s.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log := s.logger.With(zap.String("strategy", st.Name), zap.Int("attempt", i+1))
		log.Debug("starting strategy", zap.String("path", inputPath))
		s.notifyStarted(i, total, st)

		start := time.Now()
		text, err := invoke(ctx, st, inputPath)
		if err == nil && strings.TrimSpace(text) == "" {
			err = apperrors.ErrEmptyTranscription
		}
		elapsed := time.Since(start)

		attempts = append(attempts, Attempt{Strategy: st.Name, Elapsed: elapsed, Err: err})
		s.notifyFinished(i, total, st, elapsed, err)

		if err == nil {
			log.Info("strategy succeeded", zap.Duration("elapsed", elapsed), zap.Int("chars", len(text)))
			return &Result{Text: text, Strategy: st.Name, Attempts: attempts}, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Debug("strategy interrupted", zap.Error(err))
			return nil, ctxErr
		}

		log.Warn("strategy failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", st.Name, err))
	}

	if merr == nil {
		return nil, apperrors.ErrAllStrategiesFailed
	}
	return nil, fmt.Errorf("%w: %w", apperrors.ErrAllStrategiesFailed, merr.ErrorOrNil())
}

// invoke runs one strategy, turning a panic into an error.
func invoke(ctx context.Context, st Strategy, inputPath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("strategy %s panicked: %v", st.Name, r)
		}
	}()
	if st.Run == nil {
		return "", fmt.Errorf("strategy %s has no implementation", st.Name)
	}
	return st.Run(ctx, inputPath)
}

func (s *Sequencer) notifyStarted(i, total int, st Strategy) {
	for _, o := range s.observers {
		o.StrategyStarted(i, total, st)
	}
}

func (s *Sequencer) notifyFinished(i, total int, st Strategy, elapsed time.Duration, err error) {
	for _, o := range s.observers {
		o.StrategyFinished(i, total, st, elapsed, err)
	}
}
