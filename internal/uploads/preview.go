package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// PreviewStore owns preview handles for staged files. Every handle
// created must be released exactly once; Live exposes the outstanding
// count so leaks are testable.
type PreviewStore interface {
	Create(name string, r io.Reader) (string, error)
	Release(handle string) error
	Live() int
}

// TempPreviewStore writes previews as uuid-named files under a directory
// (os.TempDir by default) and deletes them on release.
type TempPreviewStore struct {
	dir  string
	mu   sync.Mutex
	live map[string]struct{}
}

func NewTempPreviewStore(dir string) *TempPreviewStore {
	if dir == "" {
		dir = os.TempDir()
	}
	return &TempPreviewStore{
		dir:  dir,
		live: make(map[string]struct{}),
	}
}

func (s *TempPreviewStore) Create(name string, r io.Reader) (string, error) {
	handle := filepath.Join(s.dir, uuid.NewString()+filepath.Ext(name))
	f, err := os.Create(handle)
	if err != nil {
		return "", fmt.Errorf("failed to create preview file: %v", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(handle)
		return "", fmt.Errorf("failed to write preview file: %v", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(handle)
		return "", err
	}

	s.mu.Lock()
	s.live[handle] = struct{}{}
	s.mu.Unlock()
	return handle, nil
}

func (s *TempPreviewStore) Release(handle string) error {
	s.mu.Lock()
	delete(s.live, handle)
	s.mu.Unlock()
	return os.Remove(handle)
}

// Live returns the number of unreleased handles.
func (s *TempPreviewStore) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}
