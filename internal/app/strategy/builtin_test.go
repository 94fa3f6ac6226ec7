package strategy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "mp3-to-text/internal/app/errors"
	"mp3-to-text/internal/app/testutil"
)

// fakeDecoder writes a placeholder WAV or fails.
type fakeDecoder struct {
	err     error
	outputs []string
	// asDir creates a non-empty directory instead of a file.
	asDir bool
}

func (d *fakeDecoder) DecodeToWav(input, output string) error {
	d.outputs = append(d.outputs, output)
	if d.err != nil {
		return d.err
	}
	if d.asDir {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(output, "keep"), []byte("x"), 0o644)
	}
	return os.WriteFile(output, []byte("RIFF"), 0o644)
}

type fakeTranscoder struct {
	err     error
	outputs []string
}

func (f *fakeTranscoder) ConvertTo16kHzWav(ctx context.Context, input, output string) error {
	f.outputs = append(f.outputs, output)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(output, []byte("RIFF"), 0o644)
}

func TestDefault_Order(t *testing.T) {
	names := []string{}
	for _, s := range Default(Deps{}) {
		names = append(names, s.Name)
		assert.NotEmpty(t, s.Description)
	}
	assert.Equal(t, []string{NameLibraryDecode, NameFFmpegTranscode, NameDirectRead}, names)
}

func TestLibraryDecode(t *testing.T) {
	tests := []struct {
		name           string
		decoderErr     error
		recognizerErr  error
		wantText       string
		wantErr        error
		wantRecognized bool
	}{
		{
			name:           "success",
			wantText:       "This is a mock transcription result.",
			wantRecognized: true,
		},
		{
			name:           "recognition fails",
			recognizerErr:  apperrors.ErrNoMatch,
			wantErr:        apperrors.ErrNoMatch,
			wantRecognized: true,
		},
		{
			name:       "decode fails",
			decoderErr: apperrors.ErrDecodeFailed,
			wantErr:    apperrors.ErrDecodeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			dec := &fakeDecoder{err: tt.decoderErr}
			rec := testutil.NewMockTranscriber()
			if tt.recognizerErr != nil {
				rec.SetErrorForExt(".wav", tt.recognizerErr)
			}

			s := LibraryDecode(Deps{Recognizer: rec, Decoder: dec, TempDir: tempDir})
			text, err := s.Run(context.Background(), "/music/song.mp3")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantText, text)
			}

			require.Len(t, dec.outputs, 1)
			assert.Equal(t, tempDir, filepath.Dir(dec.outputs[0]))
			assert.Equal(t, tt.wantRecognized, rec.WasCalledWith(dec.outputs[0]))
			if tt.wantRecognized {
				assert.True(t, rec.GetLastCall().Existed, "wav must exist while it is recognized")
			}
			assert.NoFileExists(t, dec.outputs[0])
			assert.Empty(t, testutil.TempFiles(t, tempDir, tempPrefix))
		})
	}
}

func TestExternalTranscode(t *testing.T) {
	t.Run("recognizes converted wav and cleans up", func(t *testing.T) {
		tempDir := t.TempDir()
		tr := &fakeTranscoder{}
		rec := testutil.NewMockTranscriber().WithDefaultResponse("ffmpeg text")

		text, err := ExternalTranscode(Deps{Recognizer: rec, Transcoder: tr, TempDir: tempDir}).
			Run(context.Background(), "/music/song.mp3")

		require.NoError(t, err)
		assert.Equal(t, "ffmpeg text", text)
		require.Len(t, tr.outputs, 1)
		assert.True(t, rec.GetLastCall().Existed)
		assert.NoFileExists(t, tr.outputs[0])
	})

	t.Run("recognition failure still removes wav", func(t *testing.T) {
		tempDir := t.TempDir()
		tr := &fakeTranscoder{}
		rec := testutil.NewMockTranscriber().SetErrorForExt(".wav", apperrors.ErrNoMatch)

		_, err := ExternalTranscode(Deps{Recognizer: rec, Transcoder: tr, TempDir: tempDir}).
			Run(context.Background(), "/music/song.mp3")

		assert.ErrorIs(t, err, apperrors.ErrNoMatch)
		require.Len(t, tr.outputs, 1)
		assert.True(t, rec.WasCalledWith(tr.outputs[0]))
		assert.True(t, rec.GetLastCall().Existed, "wav must exist while it is recognized")
		assert.NoFileExists(t, tr.outputs[0])
		assert.Empty(t, testutil.TempFiles(t, tempDir, tempPrefix))
	})

	t.Run("transcoder failure skips recognition", func(t *testing.T) {
		tempDir := t.TempDir()
		tr := &fakeTranscoder{err: apperrors.ErrTranscoderMissing}
		rec := testutil.NewMockTranscriber()

		_, err := ExternalTranscode(Deps{Recognizer: rec, Transcoder: tr, TempDir: tempDir}).
			Run(context.Background(), "/music/song.mp3")

		assert.ErrorIs(t, err, apperrors.ErrTranscoderMissing)
		assert.Zero(t, rec.GetCallCount())
		assert.Empty(t, testutil.TempFiles(t, tempDir, tempPrefix))
	})
}

func TestDirectRead(t *testing.T) {
	rec := testutil.NewMockTranscriber().SetResponseForFile("/music/song.mp3", "direct text")

	text, err := DirectRead(Deps{Recognizer: rec}).Run(context.Background(), "/music/song.mp3")
	require.NoError(t, err)
	assert.Equal(t, "direct text", text)
	assert.Equal(t, 1, rec.GetCallCount())
}

func TestWithTempWav_LogsRemovalFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	tempDir := t.TempDir()
	dec := &fakeDecoder{asDir: true}
	rec := testutil.NewMockTranscriber().WithDefaultError(errors.New("recognizer down"))

	_, err := LibraryDecode(Deps{Recognizer: rec, Decoder: dec, TempDir: tempDir, Logger: zap.New(core)}).
		Run(context.Background(), "/music/song.mp3")

	// the strategy error is the recognizer's, not the cleanup's
	require.Error(t, err)
	assert.Equal(t, "recognizer down", err.Error())

	entries := logs.FilterMessage("could not remove temporary file").All()
	require.Len(t, entries, 1)
	assert.Equal(t, NameLibraryDecode, entries[0].ContextMap()["strategy"])
	assert.Equal(t, dec.outputs[0], entries[0].ContextMap()["path"])
}

func TestTempWavPath(t *testing.T) {
	dir := t.TempDir()
	a := TempWavPath(dir, NameFFmpegTranscode)
	b := TempWavPath(dir, NameFFmpegTranscode)

	assert.NotEqual(t, a, b)
	assert.Equal(t, dir, filepath.Dir(a))
	assert.Regexp(t, regexp.MustCompile(`^m2t_ffmpeg-transcode_[0-9a-f]{8}\.wav$`), filepath.Base(a))
}
