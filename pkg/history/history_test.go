package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	h, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed for missing file: %v", err)
	}
	if len(h.Records) != 0 {
		t.Errorf("Expected empty history, got %d records", len(h.Records))
	}
}

func TestAddAndFinalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	h, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	id := h.Add(4242, 5173)
	if id == "" {
		t.Fatal("Expected a record ID")
	}
	if len(h.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(h.Records))
	}
	if h.Records[0].Status != "running" {
		t.Errorf("Expected status 'running', got %s", h.Records[0].Status)
	}

	h.Finalize(id, "failed", errors.New("spawn failed"))
	if h.Records[0].Status != "failed" {
		t.Errorf("Expected status 'failed', got %s", h.Records[0].Status)
	}
	if h.Records[0].Error != "spawn failed" {
		t.Errorf("Expected error message recorded, got %q", h.Records[0].Error)
	}
	if h.Records[0].EndTime.IsZero() {
		t.Error("Expected end time to be set")
	}
}

func TestSaveAndReload(t *testing.T) {
	// Path with a not-yet-existing parent directory
	path := filepath.Join(t.TempDir(), "kijko", "history.json")

	h, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	id := h.Add(100, 5173)
	h.Finalize(id, "completed", nil)

	if err := h.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected history file to exist: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if len(reloaded.Records) != 1 {
		t.Fatalf("Expected 1 record after reload, got %d", len(reloaded.Records))
	}
	if reloaded.Records[0].ID != id {
		t.Errorf("Expected record ID %s, got %s", id, reloaded.Records[0].ID)
	}
	if reloaded.Records[0].Status != "completed" {
		t.Errorf("Expected status 'completed', got %s", reloaded.Records[0].Status)
	}
}

func TestRecent(t *testing.T) {
	h := &History{path: filepath.Join(t.TempDir(), "history.json")}

	first := h.Add(1, 5173)
	h.Add(2, 5173)
	last := h.Add(3, 5173)

	recent := h.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recent))
	}
	if recent[0].ID != last {
		t.Error("Expected newest record first")
	}

	// Asking for more than exists returns everything
	all := h.Recent(10)
	if len(all) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(all))
	}
	if all[2].ID != first {
		t.Error("Expected oldest record last")
	}
}

func TestGetStats(t *testing.T) {
	h := &History{path: filepath.Join(t.TempDir(), "history.json")}

	a := h.Add(1, 5173)
	b := h.Add(2, 5173)
	h.Add(3, 5173) // left running

	h.Finalize(a, "completed", nil)
	h.Finalize(b, "failed", errors.New("exit status 1"))

	stats := h.GetStats()
	if stats.TotalLaunches != 3 {
		t.Errorf("Expected 3 total launches, got %d", stats.TotalLaunches)
	}
	if stats.Completed != 1 {
		t.Errorf("Expected 1 completed, got %d", stats.Completed)
	}
	if stats.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", stats.Failed)
	}
}
