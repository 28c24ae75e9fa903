package follow

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// State records how far into a stream file the follower has read.
// It is saved after every batch of merged fragments so a restarted follower
// can resume at the last fragment boundary instead of re-printing the whole
// stream.
type State struct {
	// Path is the absolute path of the stream file being followed.
	Path string `json:"path"`

	// Offset is the byte offset right behind the last merged fragment.
	Offset int64 `json:"offset"`

	// Fragments is the number of fragments merged so far.
	Fragments int `json:"fragments"`

	// UpdatedAt is the timestamp of the last save.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsEmpty returns true if the state has not been initialized.
func (s State) IsEmpty() bool {
	return s.Path == ""
}

// StateFile persists State as a JSON file next to the stream (or in a
// configured state directory).
type StateFile struct {
	path string
}

// NewStateFile creates a StateFile for the given stream file. The state
// lives at <dir>/<stream base>.status.json.
func NewStateFile(dir, stream string) *StateFile {
	return &StateFile{path: filepath.Join(dir, filepath.Base(stream)+".status.json")}
}

// Load retrieves the last saved state from disk.
// Returns an empty state and nil error if no state file exists.
func (r *StateFile) Load() (State, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Save persists the current state atomically.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (r *StateFile) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

// Path returns the full path to the state file.
func (r *StateFile) Path() string {
	return r.path
}
