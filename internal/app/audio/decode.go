package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	apperrors "mp3-to-text/internal/app/errors"
)

// go-mp3 always produces interleaved 16-bit little-endian stereo.
const (
	decodedChannels = 2
	decodedBitDepth = 16
	wavFormatPCM    = 1

	// frame-aligned read size: 4 bytes per stereo sample pair
	decodeChunkSize = 4 * 4096
)

// Decoder decodes MP3 files in-process and exports them as WAV.
type Decoder struct{}

// NewDecoder creates an MP3 decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeToWav decodes the MP3 at input and writes a WAV to output using the
// decoder's native parameters: source sample rate, stereo, 16-bit PCM.
func (d *Decoder) DecodeToWav(input, output string) (err error) {
	src, err := os.Open(input)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrDecodeFailed.Error())
	}
	defer src.Close()

	dec, err := mp3.NewDecoder(src)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrDecodeFailed.Error())
	}

	dst, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close wav: %w", cerr)
		}
	}()

	sampleRate := dec.SampleRate()
	enc := wav.NewEncoder(dst, sampleRate, decodedBitDepth, decodedChannels, wavFormatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: decodedChannels, SampleRate: sampleRate},
		SourceBitDepth: decodedBitDepth,
	}
	raw := make([]byte, decodeChunkSize)
	total := 0

	for {
		n, readErr := io.ReadFull(dec, raw)
		if n > 0 {
			buf.Data = pcm16ToInts(raw[:n-n%2], buf.Data[:0])
			if werr := enc.Write(buf); werr != nil {
				return fmt.Errorf("write wav samples: %w", werr)
			}
			total += len(buf.Data)
		}
		if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			return apperrors.Wrap(readErr, apperrors.ErrDecodeFailed.Error())
		}
	}

	if total == 0 {
		return fmt.Errorf("%w: no audio frames in %s", apperrors.ErrDecodeFailed, input)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// pcm16ToInts converts little-endian 16-bit PCM bytes to samples, reusing dst.
func pcm16ToInts(raw []byte, dst []int) []int {
	for i := 0; i+1 < len(raw); i += 2 {
		dst = append(dst, int(int16(uint16(raw[i])|uint16(raw[i+1])<<8)))
	}
	return dst
}
