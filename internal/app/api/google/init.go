package google

import (
	"context"

	"mp3-to-text/internal/app/api"
	"mp3-to-text/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider("google", createGoogleProvider)
}

func createGoogleProvider(ctx context.Context, settings provider.Settings) (api.Transcriber, error) {
	t, err := NewSpeechTranscriber(settings.APIKey, settings.BaseURL, settings.Language, settings.Timeout)
	if err != nil {
		return nil, err
	}
	return t, nil
}
