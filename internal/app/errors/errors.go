package errors

import (
	stderrors "errors"
	"fmt"
)

// Common error types
var (
	// Input errors
	ErrInvalidInput         = New("invalid input")
	ErrNoInput              = New("no file path given")
	ErrUnsupportedExtension = New("unsupported file extension, expected .mp3")
	ErrFileNotFound         = New("file not found")
	ErrNotRegularFile       = New("not a regular file")

	// Configuration errors
	ErrInvalidConfig    = New("invalid configuration")
	ErrMissingAPIKey    = New("API key is required")
	ErrProviderNotFound = New("recognition engine not found")

	// Audio errors
	ErrDecodeFailed      = New("audio decode failed")
	ErrUnsupportedAudio  = New("unsupported audio data")
	ErrTranscoderMissing = New("transcoder not found")
	ErrTranscodeFailed   = New("transcode failed")

	// Recognition errors
	ErrNoMatch            = New("speech could not be recognized")
	ErrEmptyTranscription = New("empty transcription")
	ErrRequestFailed      = New("recognition request failed")

	// Flow errors
	ErrAllStrategiesFailed = New("all strategies failed")
	ErrFileWriteFailed     = New("file write failed")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message && t.cause == nil
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Invalid reports path as rejected for the given kind of validation failure.
func Invalid(kind error, path string) error {
	return fmt.Errorf("%w: %w: %s", ErrInvalidInput, kind, path)
}

// IsInputError reports whether err was raised while resolving or validating the input path.
func IsInputError(err error) bool {
	return err != nil && (Is(err, ErrInvalidInput) || Is(err, ErrNoInput))
}
