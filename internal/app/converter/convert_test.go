package converter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "mp3-to-text/internal/app/errors"
	"mp3-to-text/internal/app/input"
	"mp3-to-text/internal/app/metrics"
	"mp3-to-text/internal/app/output"
	"mp3-to-text/internal/app/strategy"
	"mp3-to-text/internal/app/testutil"
)

type fakeDecoder struct {
	err   error
	calls int
}

func (d *fakeDecoder) DecodeToWav(input, output string) error {
	d.calls++
	if d.err != nil {
		return d.err
	}
	return os.WriteFile(output, []byte("RIFF"), 0o644)
}

type fakeTranscoder struct {
	err   error
	calls int
}

func (f *fakeTranscoder) ConvertTo16kHzWav(ctx context.Context, input, output string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(output, []byte("RIFF"), 0o644)
}

type harness struct {
	dir        string
	out        *bytes.Buffer
	decoder    *fakeDecoder
	transcoder *fakeTranscoder
	recognizer *testutil.MockTranscriber
	recorder   *metrics.Recorder
	converter  *Converter
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		dir:        t.TempDir(),
		out:        &bytes.Buffer{},
		decoder:    &fakeDecoder{},
		transcoder: &fakeTranscoder{},
		recognizer: testutil.NewMockTranscriber(),
		recorder:   metrics.NewRecorder(),
	}
	opts.Out = h.out
	if opts.In == nil {
		opts.In = strings.NewReader("")
	}

	logger := zap.NewNop()
	deps := strategy.Deps{
		Recognizer: h.recognizer,
		Decoder:    h.decoder,
		Transcoder: h.transcoder,
		TempDir:    h.dir,
		Logger:     logger,
	}
	sequencer := strategy.NewSequencer(logger, strategy.Default(deps), NewConsoleReporter(h.out), h.recorder)

	h.converter = NewConverter(
		input.NewResolver(opts.In, h.out, logger),
		sequencer,
		output.NewWriter("_transcript.txt", opts.OutputPath),
		h.recorder,
		NewProgressManager(ProgressConfig{Enabled: false}),
		opts,
		logger,
	)
	return h
}

func (h *harness) tempFilesLeft(t *testing.T) []string {
	return testutil.TempFiles(t, h.dir, "m2t_")
}

func TestConverter_LibraryDecodeSucceeds(t *testing.T) {
	h := newHarness(t, Options{})
	h.recognizer.WithDefaultResponse("merhaba dünya")
	song := testutil.WriteFakeMP3(t, h.dir, "song.mp3")

	result, err := h.converter.Do(context.Background(), []string{song})
	require.NoError(t, err)

	assert.Equal(t, strategy.NameLibraryDecode, result.Strategy)
	assert.Equal(t, 1, h.decoder.calls)
	assert.Zero(t, h.transcoder.calls, "subprocess strategy must not run")
	assert.Equal(t, 1, h.recognizer.GetCallCount())

	data, err := os.ReadFile(filepath.Join(h.dir, "song_transcript.txt"))
	require.NoError(t, err)
	assert.Equal(t, "merhaba dünya", string(data))

	assert.Contains(t, h.out.String(), "✅ SUCCESS!")
	assert.Contains(t, h.out.String(), "💾 Text saved to file: "+filepath.Join(h.dir, "song_transcript.txt"))
	assert.Empty(t, h.tempFilesLeft(t))
}

func TestConverter_FallsBackToTranscoder(t *testing.T) {
	h := newHarness(t, Options{})
	h.decoder.err = apperrors.ErrDecodeFailed
	h.recognizer.WithDefaultResponse("ikinci yöntem")
	song := testutil.WriteFakeMP3(t, h.dir, "song.mp3")

	result, err := h.converter.Do(context.Background(), []string{song})
	require.NoError(t, err)

	assert.Equal(t, strategy.NameFFmpegTranscode, result.Strategy)
	require.Len(t, result.Attempts, 2)
	assert.ErrorIs(t, result.Attempts[0].Err, apperrors.ErrDecodeFailed)
	assert.Equal(t, 1, h.transcoder.calls)
	assert.Contains(t, filepath.Base(h.recognizer.GetLastCall().InputFilePath), "m2t_ffmpeg-transcode_")

	data, err := os.ReadFile(filepath.Join(h.dir, "song_transcript.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ikinci yöntem", string(data))
	assert.Contains(t, h.out.String(), "❌ library-decode failed")
	assert.Empty(t, h.tempFilesLeft(t))
}

func TestConverter_AllStrategiesFail(t *testing.T) {
	h := newHarness(t, Options{})
	h.decoder.err = apperrors.ErrDecodeFailed
	h.transcoder.err = errors.New("ffmpeg exited with status 1")
	h.recognizer.SetErrorForExt(".mp3", apperrors.ErrNoMatch)
	song := testutil.WriteFakeMP3(t, h.dir, "song.mp3")

	result, err := h.converter.Do(context.Background(), []string{song})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrAllStrategiesFailed)
	assert.NoFileExists(t, filepath.Join(h.dir, "song_transcript.txt"))
	assert.Contains(t, h.out.String(), "❌ No method worked!")
	assert.Contains(t, h.out.String(), "💡 Suggestions:")
	assert.Equal(t, 1, h.recognizer.GetCallCount(), "only direct-read reaches the recognizer")
	assert.Empty(t, h.tempFilesLeft(t))
}

func TestConverter_RejectsWrongExtension(t *testing.T) {
	h := newHarness(t, Options{})
	notes := testutil.WriteFile(t, h.dir, "notes.txt", "not audio")

	result, err := h.converter.Do(context.Background(), []string{notes})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedExtension)
	assert.True(t, apperrors.IsInputError(err))
	assert.Zero(t, h.decoder.calls)
	assert.Zero(t, h.transcoder.calls)
	assert.Zero(t, h.recognizer.GetCallCount())
	assert.Contains(t, h.out.String(), "❌ Error:")
	assert.NotContains(t, h.out.String(), "Processing MP3 file")
}

func TestConverter_RejectsMissingFile(t *testing.T) {
	h := newHarness(t, Options{})

	_, err := h.converter.Do(context.Background(), []string{filepath.Join(h.dir, "gone.mp3")})
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
	assert.Zero(t, h.decoder.calls)
	assert.Zero(t, h.recognizer.GetCallCount())
}

func TestConverter_PromptsForPath(t *testing.T) {
	dir := t.TempDir()
	song := testutil.WriteFakeMP3(t, dir, "prompted.mp3")
	h := newHarness(t, Options{In: strings.NewReader("'" + song + "'\n")})

	result, err := h.converter.Do(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, strategy.NameLibraryDecode, result.Strategy)
	assert.True(t, strings.HasPrefix(h.out.String(), input.Prompt))
	assert.FileExists(t, filepath.Join(dir, "prompted_transcript.txt"))
}

func TestConverter_SaveFailureStillSucceeds(t *testing.T) {
	h := newHarness(t, Options{OutputPath: filepath.Join(t.TempDir(), "no-such-dir", "out.txt")})
	song := testutil.WriteFakeMP3(t, h.dir, "song.mp3")

	result, err := h.converter.Do(context.Background(), []string{song})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, h.out.String(), "✅ SUCCESS!")
	assert.Contains(t, h.out.String(), "❌ Could not save the text file")
}

func TestConverter_Interrupted(t *testing.T) {
	h := newHarness(t, Options{})
	h.decoder.err = apperrors.ErrDecodeFailed
	h.recognizer.WithDefaultLatency(5 * time.Second)
	song := testutil.WriteFakeMP3(t, h.dir, "song.mp3")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result, err := h.converter.Do(ctx, []string{song})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotContains(t, h.out.String(), "No method worked")
	assert.NoFileExists(t, filepath.Join(h.dir, "song_transcript.txt"))
	assert.Empty(t, h.tempFilesLeft(t))
}

func TestConverter_CloseWritesMetrics(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "m2t.prom")
	h := newHarness(t, Options{MetricsFile: metricsFile})
	song := testutil.WriteFakeMP3(t, h.dir, "song.mp3")

	_, err := h.converter.Do(context.Background(), []string{song})
	require.NoError(t, err)
	require.NoError(t, h.converter.Close())

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `m2t_runs_total{outcome="success"} 1`)
	assert.Contains(t, string(data), `m2t_strategy_attempts_total{outcome="success",strategy="library-decode"} 1`)
}

func TestConverter_CloseWithoutMetricsFile(t *testing.T) {
	h := newHarness(t, Options{})
	assert.NoError(t, h.converter.Close())
}
