package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/periferia/periferia-social/internal/model"
)

// PersistedSession is what survives across restarts: token and user only.
// Transient flags (loading, errors) are never persisted.
type PersistedSession struct {
	Token string              `json:"token"`
	User  *model.UserResponse `json:"user"`
}

// SessionStorage reads and writes the persisted session file.
type SessionStorage struct {
	path string
}

// NewSessionStorage creates a SessionStorage at the given file path.
func NewSessionStorage(path string) *SessionStorage {
	return &SessionStorage{path: path}
}

// DefaultSessionPath returns the session file location under the user's
// config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "periferia", "session.json"), nil
}

// Load reads the persisted session. A missing file is an empty session,
// not an error.
func (s *SessionStorage) Load() (PersistedSession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return PersistedSession{}, nil
		}
		return PersistedSession{}, err
	}

	var session PersistedSession
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt session file is treated as no session.
		return PersistedSession{}, nil
	}
	return session, nil
}

// Save writes the session to disk, creating parent directories as needed.
func (s *SessionStorage) Save(session PersistedSession) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the persisted session file. A missing file is a no-op.
func (s *SessionStorage) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
