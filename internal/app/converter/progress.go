package converter

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"mp3-to-text/internal/app/strategy"
)

type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

// ProgressManager renders one bar advancing per finished strategy.
type ProgressManager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
	bar       *ProgressBar
	current   string
}

type ProgressBar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewProgressManager(config ProgressConfig) *ProgressManager {
	if !config.Enabled {
		return &ProgressManager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	return &ProgressManager{
		container: container,
		enabled:   true,
	}
}

func (pm *ProgressManager) Enabled() bool {
	return pm != nil && pm.enabled
}

func (pm *ProgressManager) CreateBar(total int, description string) *ProgressBar {
	if !pm.Enabled() || pm.container == nil {
		return &ProgressBar{enabled: false}
	}

	bar := pm.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Any(func(decor.Statistics) string {
				pm.mu.Lock()
				defer pm.mu.Unlock()
				return pm.current
			}, decor.WCSyncSpace),
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncSpace), " ✓"),
		),
	)

	return &ProgressBar{
		bar:     bar,
		enabled: true,
	}
}

func (pb *ProgressBar) Increment() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Increment()
	}
}

// Complete marks the bar finished even if not every step ran.
func (pb *ProgressBar) Complete() {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetTotal(pb.bar.Current(), true)
	}
}

// Abort stops the bar without completing it.
func (pb *ProgressBar) Abort() {
	if pb.enabled && pb.bar != nil && !pb.bar.Completed() {
		pb.bar.Abort(false)
	}
}

// StrategyStarted implements strategy.Observer.
func (pm *ProgressManager) StrategyStarted(index, total int, s strategy.Strategy) {
	if !pm.Enabled() {
		return
	}
	pm.mu.Lock()
	pm.current = s.Name
	create := pm.bar == nil
	pm.mu.Unlock()

	if create {
		bar := pm.CreateBar(total, "Converting")
		pm.mu.Lock()
		pm.bar = bar
		pm.mu.Unlock()
	}
}

// StrategyFinished implements strategy.Observer.
func (pm *ProgressManager) StrategyFinished(index, total int, s strategy.Strategy, elapsed time.Duration, err error) {
	if !pm.Enabled() {
		return
	}
	pm.mu.Lock()
	bar := pm.bar
	pm.mu.Unlock()
	if bar == nil {
		return
	}

	bar.Increment()
	if err == nil {
		bar.Complete()
	}
}

// Finish stops rendering and waits for the final frame.
func (pm *ProgressManager) Finish() {
	if !pm.Enabled() || pm.container == nil {
		return
	}
	pm.mu.Lock()
	bar := pm.bar
	pm.mu.Unlock()
	if bar != nil {
		bar.Abort()
	}
	pm.container.Wait()
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ShouldShowProgress reports whether a bar makes sense on writer.
func ShouldShowProgress(requested bool, writer io.Writer) bool {
	return requested && IsTTY(writer)
}

var _ strategy.Observer = (*ProgressManager)(nil)
