package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "mp3-to-text/internal/app/errors"
)

// Separator frames the printed transcription.
var Separator = strings.Repeat("=", 50)

const fileMode = 0o644

// Writer prints transcriptions and saves them next to the input.
type Writer struct {
	suffix   string
	override string
}

// NewWriter creates a writer. suffix replaces the input extension; a
// non-empty override is used verbatim as the output path.
func NewWriter(suffix, override string) *Writer {
	return &Writer{suffix: suffix, override: override}
}

// DerivePath returns the output path for inputPath.
func (w *Writer) DerivePath(inputPath string) string {
	if w.override != "" {
		return w.override
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + w.suffix
}

// Print writes the framed success block to out.
func (w *Writer) Print(out io.Writer, text string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, Separator)
	fmt.Fprintln(out, "✅ SUCCESS!")
	fmt.Fprintln(out, Separator)
	fmt.Fprintln(out, text)
	fmt.Fprintln(out, Separator)
}

// Save writes text as UTF-8 to the derived path and returns that path.
// Invalid byte sequences are replaced with U+FFFD.
func (w *Writer) Save(inputPath, text string) (string, error) {
	path := w.DerivePath(inputPath)
	data := []byte(strings.ToValidUTF8(text, "�"))
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return path, fmt.Errorf("%w: %s: %v", apperrors.ErrFileWriteFailed, path, err)
	}
	return path, nil
}
