package store

import (
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndRecentGenerations(t *testing.T) {
	s := tempStore(t)

	first := &Generation{
		Kind:      "reply",
		PostID:    1,
		Author:    "someone",
		Output:    "first reply",
		Success:   true,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	second := &Generation{
		Kind:    "quote",
		PostID:  2,
		Output:  "second reply",
		Success: false,
		Error:   "generation failed",
	}

	if err := s.SaveGeneration(first); err != nil {
		t.Fatalf("SaveGeneration() error: %v", err)
	}
	if err := s.SaveGeneration(second); err != nil {
		t.Fatalf("SaveGeneration() error: %v", err)
	}
	if first.ID == 0 || second.ID == 0 {
		t.Error("SaveGeneration did not backfill IDs")
	}

	gens, err := s.RecentGenerations(10)
	if err != nil {
		t.Fatalf("RecentGenerations() error: %v", err)
	}
	if len(gens) != 2 {
		t.Fatalf("got %d generations, want 2", len(gens))
	}
	// Newest first.
	if gens[0].Kind != "quote" || gens[1].Kind != "reply" {
		t.Errorf("order = [%s, %s], want newest first", gens[0].Kind, gens[1].Kind)
	}
	if gens[0].Error != "generation failed" {
		t.Errorf("Error = %q", gens[0].Error)
	}
}

func TestRecentGenerationsLimit(t *testing.T) {
	s := tempStore(t)

	for i := 0; i < 5; i++ {
		if err := s.SaveGeneration(&Generation{Kind: "reply", Success: true}); err != nil {
			t.Fatal(err)
		}
	}

	gens, err := s.RecentGenerations(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(gens) != 3 {
		t.Errorf("got %d generations, want 3", len(gens))
	}
}

func TestPruneOlderThan(t *testing.T) {
	s := tempStore(t)

	old := &Generation{Kind: "reply", Success: true, CreatedAt: time.Now().AddDate(0, 0, -60)}
	recent := &Generation{Kind: "reply", Success: true}
	if err := s.SaveGeneration(old); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveGeneration(recent); err != nil {
		t.Fatal(err)
	}

	n, err := s.PruneOlderThan(time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("PruneOlderThan() error: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d rows, want 1", n)
	}

	gens, err := s.RecentGenerations(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(gens) != 1 {
		t.Errorf("%d rows remain, want 1", len(gens))
	}
}
