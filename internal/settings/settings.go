// Package settings persists the single user secret: the generation API key.
// The key is read-only from the pipeline's perspective and is never logged.
package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/imjacoblopez/replypilot/internal/config"
)

// ErrMissingCredential is returned when no API key has been saved yet.
var ErrMissingCredential = errors.New("no API key saved - set one with `rp set-key`")

// Store holds the persisted API key
type Store struct {
	path string
}

type storedKey struct {
	APIKey  string    `json:"api_key"`
	SavedAt time.Time `json:"saved_at"`
}

// NewStore creates a settings store at the given path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the default path for the settings file
func DefaultPath() (string, error) {
	configDir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

// SetAPIKey persists the API key to disk
func (s *Store) SetAPIKey(key string) error {
	if key == "" {
		return errors.New("API key must not be empty")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(storedKey{APIKey: key, SavedAt: time.Now()}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// APIKey returns the stored API key, or ErrMissingCredential if none is saved
func (s *Store) APIKey() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrMissingCredential
		}
		return "", err
	}

	var stored storedKey
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", err
	}

	if stored.APIKey == "" {
		return "", ErrMissingCredential
	}

	return stored.APIKey, nil
}

// HasAPIKey reports whether an API key is saved
func (s *Store) HasAPIKey() bool {
	_, err := s.APIKey()
	return err == nil
}

// ClearAPIKey removes the stored API key
func (s *Store) ClearAPIKey() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
