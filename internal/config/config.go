package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperrors "mp3-to-text/internal/app/errors"
)

// Config is the runtime configuration of m2t.
//
// Precedence, lowest first: defaults, YAML file, environment, command-line flags.
type Config struct {
	Engine         string        `yaml:"engine" env:"M2T_ENGINE" validate:"required"`
	Language       string        `yaml:"language" env:"M2T_LANGUAGE" validate:"required,bcp47_language_tag"`
	FFmpegPath     string        `yaml:"ffmpeg_path" env:"FFMPEG_PATH" validate:"required"`
	TempDir        string        `yaml:"temp_dir" env:"M2T_TEMP_DIR" validate:"required"`
	OutputSuffix   string        `yaml:"output_suffix" env:"M2T_OUTPUT_SUFFIX" validate:"required"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"M2T_REQUEST_TIMEOUT" validate:"gt=0"`
	Verbose        bool          `yaml:"verbose" env:"M2T_VERBOSE"`

	Google GoogleConfig `yaml:"google" envPrefix:"GOOGLE_SPEECH_"`
	OpenAI OpenAIConfig `yaml:"openai" envPrefix:"OPENAI_"`
	Gemini GeminiConfig `yaml:"gemini" envPrefix:"GEMINI_"`
}

// GoogleConfig holds Google Cloud Speech-to-Text settings.
type GoogleConfig struct {
	APIKey  string `yaml:"api_key" env:"API_KEY"`
	BaseURL string `yaml:"base_url" env:"BASE_URL" validate:"omitempty,url"`
}

// OpenAIConfig holds OpenAI Whisper settings.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" env:"API_KEY"`
	BaseURL string `yaml:"base_url" env:"BASE_URL" validate:"omitempty,url"`
	Model   string `yaml:"model" env:"MODEL"`
}

// GeminiConfig holds Google Gemini settings.
type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"API_KEY"`
	Model  string `yaml:"model" env:"MODEL"`
}

// Load reads the optional YAML file at path, applies environment overrides and
// fills defaults. The result is not validated; call Validate after applying
// command-line overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		path = os.ExpandEnv(path)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Engine == "" {
		c.Engine = DefaultEngine
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.FFmpegPath == "" {
		c.FFmpegPath = DefaultFFmpegPath
	}
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.OutputSuffix == "" {
		c.OutputSuffix = DefaultOutputSuffix
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.Google.BaseURL == "" {
		c.Google.BaseURL = DefaultGoogleBaseURL
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = DefaultOpenAIModel
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultGeminiModel
	}
	c.Normalize()
}

// Normalize canonicalizes fields that command-line flags may override.
func (c *Config) Normalize() {
	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if apperrors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return apperrors.Wrap(fmt.Errorf("%s", strings.Join(msgs, "; ")), apperrors.ErrInvalidConfig.Error())
		}
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig.Error())
	}
	if err := ValidateTimeout(c.RequestTimeout, "request"); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig.Error())
	}
	return nil
}

// APIKey returns the API key configured for the selected engine.
func (c *Config) APIKey() string {
	switch c.Engine {
	case EngineGoogle:
		return c.Google.APIKey
	case EngineOpenAI:
		return c.OpenAI.APIKey
	case EngineGemini:
		return c.Gemini.APIKey
	}
	return ""
}
