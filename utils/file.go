package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
)

var ErrFileTooLarge = errors.New("file too large")

// ReadUploadedFile reads a multipart file into memory, refusing anything
// larger than maxSize bytes.
func ReadUploadedFile(header *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if maxSize > 0 && header.Size > maxSize {
		return nil, ErrFileTooLarge
	}
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()
	return readLimited(file, maxSize)
}

// ReadLocalFile reads a file from disk with the same size limit as uploads.
func ReadLocalFile(path string, maxSize int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return readLimited(file, maxSize)
}

func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
