package whisper

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	apperrors "mp3-to-text/internal/app/errors"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client   *openai.Client
	model    string
	language string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance. locale is a
// BCP-47 tag; Whisper only takes its primary language subtag.
func NewRemoteTranscriber(client *openai.Client, model, locale string) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &RemoteTranscriber{
		client:   client,
		model:    model,
		language: PrimaryLanguage(locale),
	}
}

// Name returns the engine name.
func (rt *RemoteTranscriber) Name() string {
	return "openai"
}

// Transcript uses the OpenAI API for remote transcription.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
		Language: rt.language,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: createTranscription failed: %v", apperrors.ErrRequestFailed, err)
	}

	if strings.TrimSpace(resp.Text) == "" {
		return "", apperrors.ErrNoMatch
	}
	return resp.Text, nil
}

// PrimaryLanguage returns the lower-cased language subtag of locale:
// "tr-TR" becomes "tr".
func PrimaryLanguage(locale string) string {
	lang, _, _ := strings.Cut(locale, "-")
	lang, _, _ = strings.Cut(lang, "_")
	return strings.ToLower(lang)
}
