package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mp3-to-text/internal/app/api"
	apperrors "mp3-to-text/internal/app/errors"
)

type stubTranscriber struct {
	name     string
	settings Settings
}

func (s *stubTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	return "stub", nil
}

func (s *stubTranscriber) Name() string { return s.name }

func withCleanRegistry(t *testing.T) {
	t.Helper()
	registryMutex.Lock()
	saved := providerRegistry
	providerRegistry = make(map[string]ProviderCreator)
	registryMutex.Unlock()

	t.Cleanup(func() {
		registryMutex.Lock()
		providerRegistry = saved
		registryMutex.Unlock()
	})
}

func TestCreateProvider(t *testing.T) {
	withCleanRegistry(t)

	RegisterProvider("stub", func(ctx context.Context, settings Settings) (api.Transcriber, error) {
		return &stubTranscriber{name: "stub", settings: settings}, nil
	})
	RegisterProvider("broken", func(ctx context.Context, settings Settings) (api.Transcriber, error) {
		return nil, apperrors.ErrMissingAPIKey
	})

	t.Run("registered", func(t *testing.T) {
		tr, err := CreateProvider(context.Background(), "stub", Settings{APIKey: "k", Language: "tr-TR"})
		require.NoError(t, err)
		assert.Equal(t, "stub", tr.Name())
		assert.Equal(t, "tr-TR", tr.(*stubTranscriber).settings.Language)
	})

	t.Run("creator error is wrapped", func(t *testing.T) {
		_, err := CreateProvider(context.Background(), "broken", Settings{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrMissingAPIKey))
		assert.Contains(t, err.Error(), "broken")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := CreateProvider(context.Background(), "nope", Settings{})
		assert.ErrorIs(t, err, apperrors.ErrProviderNotFound)
		assert.Contains(t, err.Error(), "broken")
	})
}

func TestListRegisteredProviders(t *testing.T) {
	withCleanRegistry(t)

	assert.Empty(t, ListRegisteredProviders())

	creator := func(ctx context.Context, settings Settings) (api.Transcriber, error) { return nil, nil }
	RegisterProvider("openai", creator)
	RegisterProvider("gemini", creator)
	RegisterProvider("google", creator)

	assert.Equal(t, []string{"gemini", "google", "openai"}, ListRegisteredProviders())
	assert.True(t, IsRegistered("google"))
	assert.False(t, IsRegistered("whisper_cpp"))
}
