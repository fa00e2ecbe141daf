// Package uploads stages listing images before multipart submission.
// Staging owns the lifecycle of every preview handle it creates: removal
// releases the handle immediately and Close releases the rest. A leaked
// handle is a defect, not a cleanup nicety.
package uploads

import (
	"io"
	"strings"
	"sync"
)

// MaxStaged is the hard cap on staged files.
const MaxStaged = 10

// StagedFile is one accepted file with its preview handle.
type StagedFile struct {
	Name        string
	Size        int64
	ContentType string
	Preview     string
}

// Incoming is a candidate file from the picker or a drag-and-drop batch.
type Incoming struct {
	Name        string
	Size        int64
	ContentType string
	Data        io.Reader
}

// AddResult reports what happened to a batch.
type AddResult struct {
	Accepted     int
	RejectedType int // not an image
	RejectedFull int // over the remaining capacity
}

// Rejected is the total number of dropped files.
func (r AddResult) Rejected() int {
	return r.RejectedType + r.RejectedFull
}

// StagingList is the ordered staging area for one submission form.
type StagingList struct {
	store PreviewStore

	mu    sync.Mutex
	files []StagedFile
}

func NewStagingList(store PreviewStore) *StagingList {
	return &StagingList{store: store}
}

// Add stages files from a batch in order. Non-image MIME types are
// rejected outright; of the remaining candidates, exactly
// MaxStaged - len(current) are accepted and the rest dropped, with the
// counts reported so the caller can notify rather than truncate silently.
func (l *StagingList) Add(batch []Incoming) (AddResult, error) {
	var result AddResult

	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := MaxStaged - len(l.files)
	for _, in := range batch {
		if !strings.HasPrefix(in.ContentType, "image/") {
			result.RejectedType++
			continue
		}
		if remaining <= 0 {
			result.RejectedFull++
			continue
		}

		preview, err := l.store.Create(in.Name, in.Data)
		if err != nil {
			return result, err
		}
		l.files = append(l.files, StagedFile{
			Name:        in.Name,
			Size:        in.Size,
			ContentType: in.ContentType,
			Preview:     preview,
		})
		remaining--
		result.Accepted++
	}
	return result, nil
}

// Remove unstages the file at index and releases its preview handle
// immediately.
func (l *StagingList) Remove(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.files) {
		return nil
	}
	handle := l.files[index].Preview
	l.files = append(l.files[:index], l.files[index+1:]...)
	return l.store.Release(handle)
}

// Files returns a snapshot of the staged files in order.
func (l *StagingList) Files() []StagedFile {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]StagedFile, len(l.files))
	copy(out, l.files)
	return out
}

func (l *StagingList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.files)
}

// Close releases every remaining preview handle. Call on teardown; the
// list is unusable afterwards only by convention, a later Add still works
// for a fresh form.
func (l *StagingList) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, f := range l.files {
		if err := l.store.Release(f.Preview); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.files = nil
	return firstErr
}
