package fs

import (
	"os"
	"path/filepath"

	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// FileWriterAdapter reads and writes export artifacts on the local disk
type FileWriterAdapter struct{}

// NewFileWriterAdapter creates a new file writer adapter
func NewFileWriterAdapter() *FileWriterAdapter {
	return &FileWriterAdapter{}
}

// ReadFile reads the file at path
func (f *FileWriterAdapter) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces the file at path, creating parent directories
func (f *FileWriterAdapter) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Remove deletes the file at path
func (f *FileWriterAdapter) Remove(path string) error {
	return os.Remove(path)
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactFiles = (*FileWriterAdapter)(nil)
