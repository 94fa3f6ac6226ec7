package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mp3-to-text/internal/app/audio"
	apperrors "mp3-to-text/internal/app/errors"
)

const (
	DefaultBaseURL = "https://speech.googleapis.com"
	recognizePath  = "/v1/speech:recognize"
)

// SpeechTranscriber calls the Cloud Speech-to-Text v1 recognize endpoint.
type SpeechTranscriber struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
}

// NewSpeechTranscriber creates a transcriber for language, e.g. "tr-TR".
// An empty baseURL selects the public endpoint.
func NewSpeechTranscriber(apiKey, baseURL, language string, timeout time.Duration) (*SpeechTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: google", apperrors.ErrMissingAPIKey)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &SpeechTranscriber{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

type recognitionConfig struct {
	Encoding                   string `json:"encoding"`
	SampleRateHertz            int    `json:"sampleRateHertz,omitempty"`
	AudioChannelCount          int    `json:"audioChannelCount,omitempty"`
	LanguageCode               string `json:"languageCode"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
}

type recognizeRequest struct {
	Config recognitionConfig `json:"config"`
	Audio  struct {
		Content string `json:"content"`
	} `json:"audio"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Name returns the engine name.
func (g *SpeechTranscriber) Name() string {
	return "google"
}

// Transcript sends the whole file in one synchronous recognize request.
// WAV files are labelled LINEAR16 with the rate and channel count from their
// header; anything else is sent as MP3.
func (g *SpeechTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	cfg, err := g.configFor(inputFilePath)
	if err != nil {
		return "", err
	}

	audioData, err := os.ReadFile(inputFilePath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	var reqBody recognizeRequest
	reqBody.Config = cfg
	reqBody.Audio.Content = base64.StdEncoding.EncodeToString(audioData)

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := g.baseURL + recognizePath + "?key=" + url.QueryEscape(g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrRequestFailed, redact(err.Error(), g.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("%w: google API error (status %d): %s", apperrors.ErrRequestFailed, resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("%w: google API error: status %d", apperrors.ErrRequestFailed, resp.StatusCode)
	}

	var result recognizeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	var transcripts []string
	for _, r := range result.Results {
		if len(r.Alternatives) > 0 && r.Alternatives[0].Transcript != "" {
			transcripts = append(transcripts, strings.TrimSpace(r.Alternatives[0].Transcript))
		}
	}
	if len(transcripts) == 0 {
		return "", apperrors.ErrNoMatch
	}

	return strings.Join(transcripts, " "), nil
}

func (g *SpeechTranscriber) configFor(path string) (recognitionConfig, error) {
	cfg := recognitionConfig{
		Encoding:                   "MP3",
		LanguageCode:               g.language,
		EnableAutomaticPunctuation: true,
	}

	if strings.EqualFold(filepath.Ext(path), ".wav") {
		info, err := audio.ReadWaveInfo(path)
		if err != nil {
			return cfg, err
		}
		cfg.Encoding = "LINEAR16"
		cfg.SampleRateHertz = info.SampleRate
		cfg.AudioChannelCount = info.Channels
	}
	return cfg, nil
}

// redact strips the key from transport errors, which quote the request URL.
func redact(msg, key string) string {
	if key == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(key), "REDACTED")
	return strings.ReplaceAll(msg, key, "REDACTED")
}
