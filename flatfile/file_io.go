package flatfile

import (
	"errors"
	"os"
)

// FileIO is the file system surface used by the Gateway, defaulting to package os.
type FileIO interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
	AppendFile(name string, data []byte, perm os.FileMode) error
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
}

// DefaultFileIO implements FileIO with the os package.
type DefaultFileIO struct{}

// NewDefaultFileIO returns the os backed FileIO.
func NewDefaultFileIO() FileIO {
	return DefaultFileIO{}
}

// WriteFile replaces the content of name.
func (DefaultFileIO) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// AppendFile adds data to the end of name, creating it if needed, and syncs before closing.
func (DefaultFileIO) AppendFile(name string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, perm)
	if err != nil {
		return err
	}

	_, writeErr := f.Write(data)
	if writeErr == nil {
		writeErr = f.Sync()
	}

	return errors.Join(writeErr, f.Close())
}

// ReadFile returns the content of name.
func (DefaultFileIO) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// MkdirAll creates path and any missing parents.
func (DefaultFileIO) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
