package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore keeps the command line session in a YAML file readable only by
// the current user.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFilePath is <user config dir>/task-desk/session.yaml.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "task-desk", "session.yaml"), nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load() (*Session, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var sess Session
	if err := yaml.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	return &sess, nil
}

func (f *FileStore) Save(sess *Session) error {
	raw, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(sess *Session) error {
	sess.Clear()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
