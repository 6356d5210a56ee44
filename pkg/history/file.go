package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/fileops"
)

// appName is the directory name under the data root.
const appName = "filemerge"

// FileStore keeps merge history as one JSON file.
type FileStore struct {
	mu    sync.Mutex
	path  string
	limit int
}

// NewFileStore creates a file-backed history store. An empty path selects
// the default location under the user data directory; a limit below one
// selects DefaultLimit.
func NewFileStore(path string, limit int) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return &FileStore{path: path, limit: limit}, nil
}

// DefaultPath returns the standard history file location,
// $XDG_DATA_HOME/filemerge/history.json or ~/.local/share/filemerge/history.json.
func DefaultPath() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "history.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "get home dir")
	}
	return filepath.Join(home, ".local", "share", appName, "history.json"), nil
}

// Path returns the history file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Append(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}

	entries = append(entries, stamp(e))
	if len(entries) > s.limit {
		entries = entries[len(entries)-s.limit:]
	}
	return s.write(entries)
}

func (s *FileStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}

	// Stored oldest first; shown most recent first.
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out, nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "remove history %s", s.path)
	}
	return nil
}

// read loads the entries in storage order. A missing or corrupt file
// yields an empty history rather than an error, so one bad write never
// wedges the application.
func (s *FileStore) read() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read history %s", s.path)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}

func (s *FileStore) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode history")
	}
	if err := fileops.AtomicWrite(s.path, data); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write history %s", s.path)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
