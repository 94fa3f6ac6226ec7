package config

import "time"

// Default configuration constants
const (
	DefaultEngine         = "google"
	DefaultLanguage       = "tr-TR"
	DefaultFFmpegPath     = "ffmpeg"
	DefaultOutputSuffix   = "_transcript.txt"
	DefaultRequestTimeout = 60 * time.Second

	DefaultGoogleBaseURL = "https://speech.googleapis.com"
	DefaultOpenAIModel   = "whisper-1"
	DefaultGeminiModel   = "gemini-2.0-flash"
)

// Engine names understood by the recognizer registry.
const (
	EngineGoogle = "google"
	EngineOpenAI = "openai"
	EngineGemini = "gemini"
)

// apiKeyEnv maps an engine to the environment variable holding its key.
var apiKeyEnv = map[string]string{
	EngineGoogle: "GOOGLE_SPEECH_API_KEY",
	EngineOpenAI: "OPENAI_API_KEY",
	EngineGemini: "GEMINI_API_KEY",
}

// APIKeyEnv returns the environment variable name that holds the API key of engine.
func APIKeyEnv(engine string) string {
	if name, ok := apiKeyEnv[engine]; ok {
		return name
	}
	return ""
}
