package strategy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mp3-to-text/internal/app/api"
)

// Built-in strategy names, in execution order.
const (
	NameLibraryDecode   = "library-decode"
	NameFFmpegTranscode = "ffmpeg-transcode"
	NameDirectRead      = "direct-read"
)

const tempPrefix = "m2t_"

// WavDecoder decodes an MP3 into a WAV file in-process.
type WavDecoder interface {
	DecodeToWav(input, output string) error
}

// WavTranscoder converts an audio file into a 16 kHz mono WAV.
type WavTranscoder interface {
	ConvertTo16kHzWav(ctx context.Context, input, output string) error
}

// Deps are the collaborators of the built-in strategies.
type Deps struct {
	Recognizer api.Transcriber
	Decoder    WavDecoder
	Transcoder WavTranscoder
	TempDir    string
	Logger     *zap.Logger
}

// Default returns the three built-in strategies in their fixed order.
func Default(deps Deps) []Strategy {
	return []Strategy{
		LibraryDecode(deps),
		ExternalTranscode(deps),
		DirectRead(deps),
	}
}

// LibraryDecode decodes the MP3 in-process and recognizes the exported WAV.
func LibraryDecode(deps Deps) Strategy {
	return Strategy{
		Name:        NameLibraryDecode,
		Description: "decode with the audio library",
		Run: func(ctx context.Context, inputPath string) (string, error) {
			return withTempWav(deps, NameLibraryDecode, func(wavPath string) (string, error) {
				if err := deps.Decoder.DecodeToWav(inputPath, wavPath); err != nil {
					return "", err
				}
				return deps.Recognizer.Transcript(ctx, wavPath)
			})
		},
	}
}

// ExternalTranscode converts with ffmpeg and recognizes the resulting WAV.
func ExternalTranscode(deps Deps) Strategy {
	return Strategy{
		Name:        NameFFmpegTranscode,
		Description: "convert with ffmpeg",
		Run: func(ctx context.Context, inputPath string) (string, error) {
			return withTempWav(deps, NameFFmpegTranscode, func(wavPath string) (string, error) {
				if err := deps.Transcoder.ConvertTo16kHzWav(ctx, inputPath, wavPath); err != nil {
					return "", err
				}
				return deps.Recognizer.Transcript(ctx, wavPath)
			})
		},
	}
}

// DirectRead submits the original MP3 to the recognizer unchanged.
func DirectRead(deps Deps) Strategy {
	return Strategy{
		Name:        NameDirectRead,
		Description: "send the MP3 directly",
		Run: func(ctx context.Context, inputPath string) (string, error) {
			return deps.Recognizer.Transcript(ctx, inputPath)
		},
	}
}

// TempWavPath returns a unique intermediate file name for strategy.
func TempWavPath(dir, strategy string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, fmt.Sprintf("%s%s_%s.wav", tempPrefix, strategy, uuid.NewString()[:8]))
}

// withTempWav runs fn with a fresh temp WAV path and removes the file
// afterwards whatever the outcome. Removal failures are only logged.
func withTempWav(deps Deps, strategy string, fn func(wavPath string) (string, error)) (string, error) {
	wavPath := TempWavPath(deps.TempDir, strategy)
	defer func() {
		if err := os.Remove(wavPath); err != nil && !os.IsNotExist(err) {
			logger(deps).Warn("could not remove temporary file",
				zap.String("strategy", strategy),
				zap.String("path", wavPath),
				zap.Error(err))
		}
	}()
	return fn(wavPath)
}

func logger(deps Deps) *zap.Logger {
	if deps.Logger == nil {
		return zap.NewNop()
	}
	return deps.Logger
}
