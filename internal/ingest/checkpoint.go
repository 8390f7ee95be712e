package ingest

import (
	"encoding/json"
	"os"
)

// Checkpoint records how much of one export file has been consumed: the
// number of data rows already ingested and the file size at the last
// successful read.
type Checkpoint struct {
	Rows     int   `json:"rows"`
	FileSize int64 `json:"fileSize"`
}

// CheckpointStore persists per-file ingestion progress as a single JSON
// document keyed by filename. Keying by filename (not by month) keeps
// historical export files tracked indefinitely.
type CheckpointStore struct {
	path string
}

func NewCheckpointStore(path string) *CheckpointStore {
	return &CheckpointStore{path: path}
}

// Load returns the persisted checkpoint map. A missing or corrupt document
// is an empty map, never an error: full reingestion is always safe because
// punches dedupe at the store level.
func (s *CheckpointStore) Load() map[string]Checkpoint {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]Checkpoint{}
	}

	var state map[string]Checkpoint
	if err := json.Unmarshal(data, &state); err != nil || state == nil {
		return map[string]Checkpoint{}
	}
	return state
}

// Save persists the full checkpoint map.
func (s *CheckpointStore) Save(state map[string]Checkpoint) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
