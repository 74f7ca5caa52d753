package config

import (
	"os"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Generation.Provider != ProviderGemini {
		t.Errorf("default provider = %q", cfg.Generation.Provider)
	}
	if cfg.Generation.Temperature != 0.7 || cfg.Generation.MaxOutputTokens != 150 {
		t.Errorf("generation params = %+v", cfg.Generation)
	}
	if cfg.Injection.PollAttempts != 25 || cfg.Injection.PollIntervalMs != 200 {
		t.Errorf("poll budget = %d x %dms", cfg.Injection.PollAttempts, cfg.Injection.PollIntervalMs)
	}
	if cfg.Schedule.PruneSchedule == "" || cfg.Schedule.HistoryKeepDays <= 0 {
		t.Errorf("schedule defaults = %+v", cfg.Schedule)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	// Redirect os.UserConfigDir into the test sandbox.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Browser.Headless = true
	cfg.Generation.Model = "gemini-2.0-flash"
	cfg.Catalog.Enabled = false

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !loaded.Browser.Headless {
		t.Error("Headless not persisted")
	}
	if loaded.Generation.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q", loaded.Generation.Model)
	}
	if loaded.Catalog.Enabled {
		t.Error("Catalog.Enabled not persisted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load(); !os.IsNotExist(err) {
		t.Errorf("Load() error = %v, want not-exist", err)
	}
}
