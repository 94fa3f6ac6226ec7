// Package testutil provides shared helpers for the m2t package tests.
//
// Recognizer mock (mock_transcriber.go):
//   - MockTranscriber implements api.Transcriber with configurable latency,
//     per-file and per-extension errors, canned responses and a call history.
//     When testify expectations are registered with On it defers to them.
//
// Fixtures (fixtures.go):
//   - WriteWav writes a real 16-bit PCM sine tone with go-audio/wav.
//   - WriteFakeMP3 writes a file named like an MP3 that no decoder accepts.
//   - FakeFFmpegCopying, FakeFFmpegFailing and FakeFFmpegRecording write
//     /bin/sh stand-ins for ffmpeg; tests using them are skipped on Windows.
//   - TempFiles lists leftover intermediate files so tests can assert cleanup.
//
// # Usage
//
//	func TestFallback(t *testing.T) {
//	    dir := t.TempDir()
//	    song := testutil.WriteFakeMP3(t, dir, "song.mp3")
//	    rec := testutil.NewMockTranscriber().
//	        SetErrorForExt(".mp3", apperrors.ErrNoMatch)
//	    // build strategies around rec and run them on song
//	    assert.Empty(t, testutil.TempFiles(t, dir, "m2t_"))
//	}
package testutil
