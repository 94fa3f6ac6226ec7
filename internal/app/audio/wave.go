package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"

	apperrors "mp3-to-text/internal/app/errors"
)

// WaveInfo describes a WAV file header.
type WaveInfo struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// ReadWaveInfo parses the header of the WAV file at path. Files that are not
// RIFF/WAVE fail with ErrUnsupportedAudio.
func ReadWaveInfo(path string) (*WaveInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a WAV file", apperrors.ErrUnsupportedAudio, path)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, apperrors.Wrapf(err, "locate wav data %s", path)
	}

	info := &WaveInfo{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
	if bytesPerSec := info.SampleRate * info.Channels * info.BitDepth / 8; bytesPerSec > 0 {
		info.Duration = time.Duration(float64(dec.PCMSize) / float64(bytesPerSec) * float64(time.Second))
	}
	return info, nil
}
