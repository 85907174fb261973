package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) *FileError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	target := filepath.Join(targetPath...)
	if err := os.MkdirAll(target, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// ReadFile reads the file at path, classifying a missing file separately
// from other read failures so callers can map it to their own "does not
// exist" semantics. Reading a directory is reported as not found.
func ReadFile(path string) ([]byte, *FileError) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileError{
				Message:   fmt.Sprintf("%v", err),
				Retryable: false,
				Cause:     ErrCauseNotFound,
			}
		}
		return nil, &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: true,
			Cause:     ErrCauseReadFailure,
		}
	}
	if info.IsDir() {
		return nil, &FileError{
			Message:   fmt.Sprintf("%s is a directory", path),
			Retryable: false,
			Cause:     ErrCauseNotFound,
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: true,
			Cause:     ErrCauseReadFailure,
		}
	}
	return data, nil
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) *FileError {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
		}
	}
	return nil
}
