package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	apperrors "mp3-to-text/internal/app/errors"
)

// Target format of the transcoder: 16-bit PCM, 16 kHz, mono.
const (
	TargetCodec      = "pcm_s16le"
	TargetSampleRate = 16000
	TargetChannels   = 1
)

// Transcoder converts audio files with an external ffmpeg binary.
type Transcoder struct {
	binary string
}

// NewTranscoder creates a Transcoder that runs binary, either a name looked up
// on PATH or an absolute path.
func NewTranscoder(binary string) *Transcoder {
	return &Transcoder{binary: binary}
}

// Binary returns the configured ffmpeg executable.
func (t *Transcoder) Binary() string {
	return t.binary
}

// LookPath resolves the ffmpeg executable.
func (t *Transcoder) LookPath() (string, error) {
	path, err := exec.LookPath(t.binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", apperrors.ErrTranscoderMissing, t.binary, err)
	}
	return path, nil
}

// Args returns the fixed ffmpeg arguments for converting input to a 16 kHz
// mono WAV at output, overwriting it.
func Args(input, output string) []string {
	return []string{
		"-i", input,
		"-acodec", TargetCodec,
		"-ar", fmt.Sprint(TargetSampleRate),
		"-ac", fmt.Sprint(TargetChannels),
		"-y", output,
	}
}

// ConvertTo16kHzWav runs ffmpeg to convert input into a 16 kHz mono WAV at
// output. The process is killed when ctx is cancelled.
func (t *Transcoder) ConvertTo16kHzWav(ctx context.Context, input, output string) error {
	path, err := t.LookPath()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, path, Args(input, output)...)

	// Capture stderr so the failure reason reaches the caller
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v, stderr: %s", apperrors.ErrTranscodeFailed, err, strings.TrimSpace(stderr.String()))
	}

	return nil
}
