package gemini

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"google.golang.org/genai"

	apperrors "mp3-to-text/internal/app/errors"
)

const DefaultModel = "gemini-2.0-flash"

const transcriptionPrompt = "Transcribe the speech in this audio verbatim. The spoken language is %s. " +
	"Reply with the transcription only, without commentary, timestamps or speaker labels. " +
	"If there is no intelligible speech, reply with an empty message."

// Transcriber asks a Gemini model to transcribe inline audio.
type Transcriber struct {
	client   *genai.Client
	model    string
	language string
}

// NewTranscriber creates a Gemini-backed transcriber. baseURL is only set by
// tests and proxies.
func NewTranscriber(ctx context.Context, apiKey, baseURL, model, language string, timeout time.Duration) (*Transcriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini", apperrors.ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if baseURL != "" {
		cfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Transcriber{client: client, model: model, language: language}, nil
}

// Name returns the engine name.
func (g *Transcriber) Name() string {
	return "gemini"
}

// Transcript sends the file as inline data together with the instruction.
func (g *Transcriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	data, err := os.ReadFile(inputFilePath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(fmt.Sprintf(transcriptionPrompt, g.language)),
			genai.NewPartFromBytes(data, audioMIMEType(inputFilePath, data)),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: gemini generate content: %v", apperrors.ErrRequestFailed, err)
	}

	var textBuilder strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				textBuilder.WriteString(part.Text)
			}
		}
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", apperrors.ErrNoMatch
	}
	return text, nil
}

// audioMIMEType sniffs data and falls back to the file extension.
func audioMIMEType(path string, data []byte) string {
	mt := mimetype.Detect(data)
	if strings.HasPrefix(mt.String(), "audio/") {
		return mt.String()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	default:
		return "audio/mpeg"
	}
}
