package helper

import (
	"errors"
	"os"
	"sync"

	"github.com/AntonStoeckl/flatfile-library-go/flatfile"
)

// ErrInjected is returned by FileIOSpy for operations that were told to fail.
var ErrInjected = errors.New("injected file io failure")

// FileIOSpy wraps the os backed FileIO, counts writes per file and fails on demand.
type FileIOSpy struct {
	inner      flatfile.FileIO
	mu         sync.Mutex
	writes     map[string]int
	appends    map[string]int
	failWrite  bool
	failAppend bool
	failRead   bool
}

// NewFileIOSpy creates a FileIOSpy that delegates to the os file system.
func NewFileIOSpy() *FileIOSpy {
	return &FileIOSpy{
		inner:   flatfile.NewDefaultFileIO(),
		writes:  make(map[string]int),
		appends: make(map[string]int),
	}
}

// FailWrites makes every following WriteFile fail (or succeed again).
func (s *FileIOSpy) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrite = fail
}

// FailAppends makes every following AppendFile fail (or succeed again).
func (s *FileIOSpy) FailAppends(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAppend = fail
}

// FailReads makes every following ReadFile fail with a non "not exist" error.
func (s *FileIOSpy) FailReads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRead = fail
}

// WriteCount returns how many successful snapshot writes went to name.
func (s *FileIOSpy) WriteCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writes[name]
}

// AppendCount returns how many successful appends went to name.
func (s *FileIOSpy) AppendCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appends[name]
}

// WriteFile implements flatfile.FileIO.
func (s *FileIOSpy) WriteFile(name string, data []byte, perm os.FileMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrite {
		return ErrInjected
	}

	if err := s.inner.WriteFile(name, data, perm); err != nil {
		return err
	}
	s.writes[name]++

	return nil
}

// AppendFile implements flatfile.FileIO.
func (s *FileIOSpy) AppendFile(name string, data []byte, perm os.FileMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAppend {
		return ErrInjected
	}

	if err := s.inner.AppendFile(name, data, perm); err != nil {
		return err
	}
	s.appends[name]++

	return nil
}

// ReadFile implements flatfile.FileIO.
func (s *FileIOSpy) ReadFile(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failRead {
		return nil, ErrInjected
	}

	return s.inner.ReadFile(name)
}

// MkdirAll implements flatfile.FileIO.
func (s *FileIOSpy) MkdirAll(path string, perm os.FileMode) error {
	return s.inner.MkdirAll(path, perm)
}
