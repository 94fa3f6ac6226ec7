package api

import "context"

// Transcriber converts an audio file to text through a recognition engine.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string) (string, error)
	// Name identifies the engine in logs and reports.
	Name() string
}
