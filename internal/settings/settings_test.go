package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "settings.json"))
}

func TestAPIKeyRoundTrip(t *testing.T) {
	s := tempStore(t)

	if err := s.SetAPIKey("test-key-123"); err != nil {
		t.Fatalf("SetAPIKey() error: %v", err)
	}

	key, err := s.APIKey()
	if err != nil {
		t.Fatalf("APIKey() error: %v", err)
	}
	if key != "test-key-123" {
		t.Errorf("APIKey() = %q", key)
	}
	if !s.HasAPIKey() {
		t.Error("HasAPIKey() = false after save")
	}
}

func TestAPIKeyMissing(t *testing.T) {
	s := tempStore(t)

	if _, err := s.APIKey(); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("APIKey() error = %v, want ErrMissingCredential", err)
	}
	if s.HasAPIKey() {
		t.Error("HasAPIKey() = true with nothing saved")
	}
}

func TestSetAPIKeyRejectsEmpty(t *testing.T) {
	if err := tempStore(t).SetAPIKey(""); err == nil {
		t.Error("SetAPIKey(\"\") succeeded")
	}
}

func TestClearAPIKey(t *testing.T) {
	s := tempStore(t)
	if err := s.SetAPIKey("test-key"); err != nil {
		t.Fatal(err)
	}

	if err := s.ClearAPIKey(); err != nil {
		t.Fatalf("ClearAPIKey() error: %v", err)
	}
	if s.HasAPIKey() {
		t.Error("key still present after clear")
	}

	// Clearing twice is not an error.
	if err := s.ClearAPIKey(); err != nil {
		t.Errorf("second ClearAPIKey() error: %v", err)
	}
}

func TestKeyFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewStore(path)
	if err := s.SetAPIKey("secret"); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("settings file mode = %o, want 0600", perm)
	}
}
