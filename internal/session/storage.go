package session

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenStorage persists the access token between runs. Implementations are
// best-effort: the store swallows every storage failure and keeps the
// in-memory token authoritative for the current process.
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
	Delete() error
}

// FileStorage keeps the token in a single file, created with owner-only
// permissions.
type FileStorage struct {
	path string
}

// NewFileStorage stores the token at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultTokenPath returns the conventional token location under the user's
// config directory.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "shopfront", "access_token"), nil
}

func (s *FileStorage) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStorage) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

func (s *FileStorage) Delete() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ TokenStorage = (*FileStorage)(nil)
