package testutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

// WriteWav writes a 16-bit PCM sine tone to dir/name and returns its path.
func WriteWav(t testing.TB, dir, name string, sampleRate, channels int, seconds float64) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	frames := int(float64(sampleRate) * seconds)
	data := make([]int, 0, frames*channels)
	for i := 0; i < frames; i++ {
		v := int(8000 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
		for c := 0; c < channels; c++ {
			data = append(data, v)
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	return path
}

// WriteFile writes content to dir/name and returns its path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteFakeMP3 writes a file named like an MP3 whose bytes no decoder accepts.
func WriteFakeMP3(t testing.TB, dir, name string) string {
	t.Helper()
	return WriteFile(t, dir, name, "ID3 this is not really audio")
}

// SkipWithoutShell skips tests that rely on executable shell scripts.
func SkipWithoutShell(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake ffmpeg scripts need a POSIX shell")
	}
}

// WriteScript writes an executable /bin/sh script and returns its path.
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()
	SkipWithoutShell(t)

	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// FakeFFmpegCopying returns a stand-in for ffmpeg that copies wavPath to its
// last argument and exits 0.
func FakeFFmpegCopying(t testing.TB, dir, wavPath string) string {
	t.Helper()
	body := fmt.Sprintf(`for last; do :; done
cp %q "$last"`, wavPath)
	return WriteScript(t, dir, "ffmpeg-ok", body)
}

// FakeFFmpegFailing returns a stand-in for ffmpeg that prints stderr and exits
// with code.
func FakeFFmpegFailing(t testing.TB, dir, stderr string, code int) string {
	t.Helper()
	body := fmt.Sprintf("echo %q >&2\nexit %d", stderr, code)
	return WriteScript(t, dir, "ffmpeg-fail", body)
}

// FakeFFmpegRecording returns a stand-in for ffmpeg that writes its arguments,
// one per line, to logPath and creates an empty output file.
func FakeFFmpegRecording(t testing.TB, dir, logPath string) string {
	t.Helper()
	body := fmt.Sprintf(`: > %q
for a; do echo "$a" >> %q; last="$a"; done
: > "$last"`, logPath, logPath)
	return WriteScript(t, dir, "ffmpeg-rec", body)
}

// ReadLines reads path and splits it into non-empty lines.
func ReadLines(t testing.TB, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// TempFiles lists files in dir whose names start with prefix.
func TempFiles(t testing.TB, dir, prefix string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"*"))
	require.NoError(t, err)
	return matches
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
