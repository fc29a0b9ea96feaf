package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

/*
Processing status checkpoint.

A flat JSON map keyed "model_scenario_year" records the outcome of every
task, so an interrupted batch can be rerun and skip work that already
succeeded. The file is shared by all workers behind one mutex.
*/

// Outcome of one processed task.
type TaskStatus struct {
	Status string `json:"status"` // "success" or "error"
	Year   int    `json:"year"`
	Error  string `json:"error,omitempty"`
	Output string `json:"output,omitempty"`
}

type StatusFile struct {
	path    string
	mu      sync.Mutex
	entries map[string]TaskStatus
}

// Checkpoint key of one task.
func StatusKey(model, scenario string, year int) string {
	return fmt.Sprintf("%s_%s_%d", model, scenario, year)
}

/*
Load a status file, creating an empty one when the path does not exist
yet.
*/
func LoadStatus(path string) (*StatusFile, error) {
	s := &StatusFile{path: path, entries: map[string]TaskStatus{}}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.entries); err != nil {
		return nil, fmt.Errorf("status file %s: %w", path, err)
	}
	return s, nil
}

// Whether the task behind key already completed successfully.
func (s *StatusFile) IsDone(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[key].Status == "success"
}

// Record the outcome of one task.
func (s *StatusFile) Set(key string, st TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = st
}

// Persist the current entries. Written atomically via a temp file so a
// crash mid-write never corrupts the checkpoint.
func (s *StatusFile) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
