package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient creates an OpenAI client; an empty baseURL keeps the library
// default.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}
