package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"focuscal/internal/model"
)

// blobVersion is the current shape of the persisted record. Older blobs
// without a version field are read as version 0 and accepted; a newer
// version than we know how to read is treated as unreadable.
const blobVersion = 1

// blob is the on-disk record: a single JSON object holding the whole
// collection.
type blob struct {
	Version   int                   `json:"version"`
	Schedules []model.ScheduleEntry `json:"schedules"`
}

// FileBlob persists the collection as one JSON file, written atomically via
// a temp file and rename so a crash mid-write leaves the previous blob
// intact.
type FileBlob struct {
	path string
}

// NewFileBlob returns a persister writing to path.
func NewFileBlob(path string) *FileBlob {
	return &FileBlob{path: path}
}

// DefaultPath places the blob under XDG_DATA_HOME (or ~/.local/share).
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(dataHome, "focuscal")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "schedules.json"), nil
}

// Load reads the persisted collection. A missing file is "no data", not an
// error; a corrupt or future-versioned blob is an error the store treats
// the same way.
func (f *FileBlob) Load() ([]model.ScheduleEntry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	if b.Version > blobVersion {
		return nil, fmt.Errorf("decode %s: unsupported version %d", f.path, b.Version)
	}
	if b.Schedules == nil {
		b.Schedules = []model.ScheduleEntry{}
	}
	return b.Schedules, nil
}

// Save writes the whole collection, atomically.
func (f *FileBlob) Save(entries []model.ScheduleEntry) error {
	if entries == nil {
		entries = []model.ScheduleEntry{}
	}
	data, err := json.MarshalIndent(blob{Version: blobVersion, Schedules: entries}, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".schedules-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, f.path)
}
