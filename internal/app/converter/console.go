package converter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"mp3-to-text/internal/app/strategy"
)

// Suggestions are printed when no strategy worked.
var Suggestions = []string{
	"Try a different MP3 file",
	"Check the file format (is it really MP3 audio?)",
	"Check the network connection and the API key (m2t check)",
	"Install ffmpeg or set FFMPEG_PATH",
}

// ConsoleReporter prints one line per strategy start and finish.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = io.Discard
	}
	return &ConsoleReporter{out: out}
}

func (r *ConsoleReporter) StrategyStarted(index, total int, s strategy.Strategy) {
	fmt.Fprintf(r.out, "\n🔄 Trying %s (%d/%d, %s)...\n", s.Name, index+1, total, s.Description)
}

func (r *ConsoleReporter) StrategyFinished(index, total int, s strategy.Strategy, elapsed time.Duration, err error) {
	if err != nil {
		fmt.Fprintf(r.out, "❌ %s failed: %v\n", s.Name, firstLine(err.Error()))
		return
	}
	fmt.Fprintf(r.out, "✅ %s succeeded! (%s)\n", s.Name, elapsed.Round(time.Millisecond))
}

// PrintFailure prints the total-failure message and the suggestions.
func PrintFailure(out io.Writer) {
	fmt.Fprintln(out, "\n❌ No method worked!")
	fmt.Fprintln(out, "💡 Suggestions:")
	for _, s := range Suggestions {
		fmt.Fprintf(out, "   - %s\n", s)
	}
}

// ffmpeg stderr can span many lines; the console only needs the first.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

var _ strategy.Observer = (*ConsoleReporter)(nil)
