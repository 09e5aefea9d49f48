package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LaunchRecord represents a single dev-server launch
type LaunchRecord struct {
	ID        string    `json:"id"`
	PID       int       `json:"pid"`
	Port      int       `json:"port"`
	Status    string    `json:"status"` // "running", "completed", "failed"
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"`
	Duration  int64     `json:"duration_ms,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// History manages the persisted launch log
type History struct {
	Records []LaunchRecord `json:"records"`
	mu      sync.Mutex
	path    string
}

// Stats contains aggregate launch statistics
type Stats struct {
	TotalLaunches int
	Completed     int
	Failed        int
}

// Load reads launch history from path, returning an empty history if the
// file does not exist yet.
func Load(path string) (*History, error) {
	h := &History{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return h, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	if err := json.Unmarshal(data, h); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", path, err)
	}
	return h, nil
}

// Add appends a new launch record with status "running" and returns its ID
func (h *History) Add(pid, port int) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	record := LaunchRecord{
		ID:        uuid.New().String(),
		PID:       pid,
		Port:      port,
		Status:    "running",
		StartTime: time.Now(),
	}
	h.Records = append(h.Records, record)
	return record.ID
}

// Finalize marks a launch record as finished
func (h *History) Finalize(id, status string, runErr error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.Records {
		if h.Records[i].ID != id {
			continue
		}
		h.Records[i].Status = status
		h.Records[i].EndTime = time.Now()
		h.Records[i].Duration = h.Records[i].EndTime.Sub(h.Records[i].StartTime).Milliseconds()
		if runErr != nil {
			h.Records[i].Error = runErr.Error()
		}
		return
	}
}

// Save writes the history back to disk, creating the parent directory if
// needed
func (h *History) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(h.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// Recent returns the last n records, newest first
func (h *History) Recent(n int) []LaunchRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n > len(h.Records) {
		n = len(h.Records)
	}

	recent := make([]LaunchRecord, 0, n)
	for i := len(h.Records) - 1; i >= len(h.Records)-n; i-- {
		recent = append(recent, h.Records[i])
	}
	return recent
}

// GetStats calculates aggregate statistics over all records
func (h *History) GetStats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	stats := Stats{TotalLaunches: len(h.Records)}
	for _, r := range h.Records {
		switch r.Status {
		case "completed":
			stats.Completed++
		case "failed":
			stats.Failed++
		}
	}
	return stats
}
