package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"mp3-to-text/internal/app/api"
)

// MockTranscriber is a configurable api.Transcriber for tests.
// Expectations registered through testify's On are honoured; without any the
// per-file maps and defaults decide the outcome.
type MockTranscriber struct {
	mock.Mock
	mu sync.RWMutex

	// Configuration options
	DefaultLatency  time.Duration
	DefaultError    error
	DefaultResponse string

	// State tracking
	CallCount   int
	CallHistory []TranscriptionCall
	ErrorMap    map[string]error
	ResponseMap map[string]string
	// ExtErrors fails every file with the given extension, e.g. ".wav".
	ExtErrors map[string]error
}

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	InputFilePath string
	Timestamp     time.Time
	Duration      time.Duration
	Response      string
	Error         error
	// Existed records whether the file was present when the call was made.
	Existed bool
}

// NewMockTranscriber creates a new MockTranscriber with sensible defaults
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		DefaultResponse: "This is a mock transcription result.",
		ErrorMap:        make(map[string]error),
		ResponseMap:     make(map[string]string),
		ExtErrors:       make(map[string]error),
		CallHistory:     make([]TranscriptionCall, 0),
	}
}

// Name implements api.Transcriber.
func (m *MockTranscriber) Name() string { return "mock" }

// Transcript implements the api.Transcriber interface
func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	startTime := time.Now()
	existed := fileExists(inputFilePath)

	m.mu.Lock()
	m.CallCount++
	response, err := m.resolve(inputFilePath)
	latency := m.DefaultLatency
	hasExpectations := len(m.ExpectedCalls) > 0
	m.mu.Unlock()

	if hasExpectations {
		args := m.Called(inputFilePath)
		response, err = args.String(0), args.Error(1)
	}

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			err = ctx.Err()
			response = ""
		}
	}

	m.mu.Lock()
	m.CallHistory = append(m.CallHistory, TranscriptionCall{
		InputFilePath: inputFilePath,
		Timestamp:     startTime,
		Duration:      time.Since(startTime),
		Response:      response,
		Error:         err,
		Existed:       existed,
	})
	m.mu.Unlock()

	if err != nil {
		return "", err
	}
	return response, nil
}

func (m *MockTranscriber) resolve(path string) (string, error) {
	if err, ok := m.ErrorMap[path]; ok {
		return "", err
	}
	if err, ok := m.ExtErrors[filepath.Ext(path)]; ok {
		return "", err
	}
	if m.DefaultError != nil {
		return "", m.DefaultError
	}
	if resp, ok := m.ResponseMap[path]; ok {
		return resp, nil
	}
	return m.DefaultResponse, nil
}

// WithDefaultLatency sets the default processing latency
func (m *MockTranscriber) WithDefaultLatency(latency time.Duration) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultLatency = latency
	return m
}

// WithDefaultError sets the default error to return
func (m *MockTranscriber) WithDefaultError(err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultError = err
	return m
}

// WithDefaultResponse sets the default response text
func (m *MockTranscriber) WithDefaultResponse(response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultResponse = response
	return m
}

// SetErrorForFile sets a specific error for a given file path
func (m *MockTranscriber) SetErrorForFile(filePath string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[filePath] = err
	return m
}

// SetResponseForFile sets a specific response for a given file path
func (m *MockTranscriber) SetResponseForFile(filePath string, response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[filePath] = response
	return m
}

// SetErrorForExt fails every file carrying ext.
func (m *MockTranscriber) SetErrorForExt(ext string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExtErrors[ext] = err
	return m
}

// GetCallCount returns the total number of calls made
func (m *MockTranscriber) GetCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.CallCount
}

// GetCallHistory returns the complete call history
func (m *MockTranscriber) GetCallHistory() []TranscriptionCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	history := make([]TranscriptionCall, len(m.CallHistory))
	copy(history, m.CallHistory)
	return history
}

// GetLastCall returns the last transcription call
func (m *MockTranscriber) GetLastCall() *TranscriptionCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.CallHistory) == 0 {
		return nil
	}
	call := m.CallHistory[len(m.CallHistory)-1]
	return &call
}

// WasCalledWith checks if the transcriber was called with a specific file path
func (m *MockTranscriber) WasCalledWith(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, call := range m.CallHistory {
		if call.InputFilePath == filePath {
			return true
		}
	}
	return false
}

// Interface compliance check
var _ api.Transcriber = (*MockTranscriber)(nil)
