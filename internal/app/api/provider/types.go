package provider

import (
	"context"
	"time"

	"mp3-to-text/internal/app/api"
)

// Settings carries everything an engine needs to build a client.
type Settings struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
	Timeout  time.Duration
}

// ProviderCreator builds a transcriber from settings.
type ProviderCreator func(ctx context.Context, settings Settings) (api.Transcriber, error)
