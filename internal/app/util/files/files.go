package files

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Fingerprint identifies the content of a file.
type Fingerprint struct {
	Size   int64
	SHA256 string
}

// CalculateFileHash calculates SHA256 hash of a file
func CalculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// GetFileSize returns the size of a file in bytes
func GetFileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}
	return fileInfo.Size(), nil
}

// FingerprintOf returns the size and SHA-256 of filePath.
func FingerprintOf(filePath string) (Fingerprint, error) {
	size, err := GetFileSize(filePath)
	if err != nil {
		return Fingerprint{}, err
	}
	sum, err := CalculateFileHash(filePath)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{Size: size, SHA256: sum}, nil
}
