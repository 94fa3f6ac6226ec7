package whisper

import (
	"context"
	"fmt"

	"mp3-to-text/internal/app/api"
	oa "mp3-to-text/internal/app/api/openai"
	"mp3-to-text/internal/app/api/provider"
	apperrors "mp3-to-text/internal/app/errors"
)

func init() {
	// Register openai provider with the factory
	provider.RegisterProvider("openai", createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI Whisper provider from configuration
func createOpenAIProvider(ctx context.Context, settings provider.Settings) (api.Transcriber, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("%w: openai", apperrors.ErrMissingAPIKey)
	}
	client := oa.NewClient(settings.APIKey, settings.BaseURL)
	return NewRemoteTranscriber(client, settings.Model, settings.Language), nil
}
