package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"

	"mp3-to-text/internal/app/api"
	apperrors "mp3-to-text/internal/app/errors"
)

// providerRegistry stores provider creation functions
var (
	providerRegistry = make(map[string]ProviderCreator)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function. Engines call it
// from init.
func RegisterProvider(providerType string, creator ProviderCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[providerType] = creator
}

// GetProviderCreator returns the creator function for a provider type
func GetProviderCreator(providerType string) (ProviderCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := providerRegistry[providerType]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", apperrors.ErrProviderNotFound, providerType, listLocked())
	}
	return creator, nil
}

// CreateProvider builds the named engine.
func CreateProvider(ctx context.Context, providerType string, settings Settings) (api.Transcriber, error) {
	creator, err := GetProviderCreator(providerType)
	if err != nil {
		return nil, err
	}
	t, err := creator(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("create %s engine: %w", providerType, err)
	}
	return t, nil
}

// ListRegisteredProviders returns all registered provider types, sorted.
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	return listLocked()
}

// IsRegistered reports whether providerType has a creator.
func IsRegistered(providerType string) bool {
	return lo.Contains(ListRegisteredProviders(), providerType)
}

func listLocked() []string {
	providers := lo.Keys(providerRegistry)
	sort.Strings(providers)
	return providers
}
