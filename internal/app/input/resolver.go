package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	apperrors "mp3-to-text/internal/app/errors"
	"mp3-to-text/internal/app/util/files"
)

// Prompt is shown when no path argument is given.
const Prompt = "Enter the path of the MP3 file: "

const mp3Extension = ".mp3"

// Resolver obtains and validates the input file path.
type Resolver struct {
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
}

// NewResolver creates a resolver that prompts on out and reads answers from in.
func NewResolver(in io.Reader, out io.Writer, logger *zap.Logger) *Resolver {
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{in: in, out: out, logger: logger}
}

// Resolve returns the first argument if present, otherwise asks the user for a
// path. The returned path has been validated.
func (r *Resolver) Resolve(ctx context.Context, args []string) (string, error) {
	var path string
	if len(args) > 0 {
		path = Clean(args[0])
	} else {
		answer, err := r.prompt(ctx)
		if err != nil {
			return "", err
		}
		path = answer
	}

	if path == "" {
		return "", apperrors.ErrNoInput
	}
	if err := Validate(path); err != nil {
		return "", err
	}
	r.sniff(path)
	return path, nil
}

// prompt reads one line in a goroutine so an interrupt can abandon it.
func (r *Resolver) prompt(ctx context.Context) (string, error) {
	fmt.Fprint(r.out, Prompt)

	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(r.in).ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-ch:
		if a.err != nil && a.err != io.EOF {
			return "", apperrors.Wrap(a.err, "read input path")
		}
		line := Clean(a.line)
		if line == "" {
			return "", apperrors.ErrNoInput
		}
		return line, nil
	}
}

// Clean trims whitespace and one pair of matching surrounding quotes, as left
// by drag-and-drop into a terminal.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

// Validate checks that path names an existing regular file with an .mp3
// extension. Every failure wraps ErrInvalidInput.
func Validate(path string) error {
	if !strings.EqualFold(filepath.Ext(path), mp3Extension) {
		return apperrors.Invalid(apperrors.ErrUnsupportedExtension, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.Invalid(apperrors.ErrFileNotFound, path)
		}
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}
	if !info.Mode().IsRegular() {
		return apperrors.Invalid(apperrors.ErrNotRegularFile, path)
	}
	return nil
}

// sniff warns when the content does not look like MPEG audio. The strategies
// decide whether the file is usable.
func (r *Resolver) sniff(path string) {
	if ce := r.logger.Check(zap.DebugLevel, "input file"); ce != nil {
		if fp, err := files.FingerprintOf(path); err == nil {
			ce.Write(zap.String("path", path), zap.Int64("size", fp.Size), zap.String("sha256", fp.SHA256))
		}
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		r.logger.Debug("could not detect content type", zap.String("path", path), zap.Error(err))
		return
	}
	if !mt.Is("audio/mpeg") {
		r.logger.Warn("file content does not look like MP3",
			zap.String("path", path),
			zap.String("detected", mt.String()))
	}
}
