package gemini

import (
	"context"

	"mp3-to-text/internal/app/api"
	"mp3-to-text/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider("gemini", createGeminiProvider)
}

func createGeminiProvider(ctx context.Context, settings provider.Settings) (api.Transcriber, error) {
	t, err := NewTranscriber(ctx, settings.APIKey, settings.BaseURL, settings.Model, settings.Language, settings.Timeout)
	if err != nil {
		return nil, err
	}
	return t, nil
}
