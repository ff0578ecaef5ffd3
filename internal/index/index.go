// Package index keeps the persistent list of log files known to devlog.
// Entries are addressed by their ordinal position, which is what the shell
// shows the user and what `remove <n>` accepts.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/NikitaCOEUR/devlog/internal/derrors"
)

// Entry represents an indexed log file
type Entry struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	AddedAt time.Time `json:"added_at"`
}

// DisplayName returns the short name shown next to the entry's number
func (e Entry) DisplayName() string {
	return filepath.Base(e.Path)
}

// Index manages the persistent, ordered list of log files
type Index struct {
	path    string // empty keeps the index in memory only
	mu      sync.RWMutex
	entries []Entry
}

// New creates a new index backed by the given file.
// An empty path creates an in-memory index.
func New(path string) (*Index, error) {
	idx := &Index{path: path}
	if path == "" {
		return idx, nil
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, derrors.NewSessionError("index", "failed to create index directory", err)
	}

	if err := idx.load(); err != nil && !os.IsNotExist(err) {
		return nil, derrors.NewSessionError("index", "failed to load index", err)
	}

	return idx, nil
}

// Add stats the file at path and appends it to the index
func (i *Index) Add(path string) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Entry{}, err
	}
	if info.IsDir() {
		return Entry{}, derrors.NewValidationError("path", fmt.Sprintf("%s is a directory", abs), nil)
	}

	entry := Entry{
		Path:    abs,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		AddedAt: time.Now(),
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	for _, existing := range i.entries {
		if existing.Path == abs {
			return Entry{}, derrors.NewAlreadyExistsError(abs, "file already indexed")
		}
	}

	i.entries = append(i.entries, entry)
	return entry, i.persist()
}

// Remove deletes the entry at the given ordinal position
func (i *Index) Remove(pos int) (Entry, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if pos < 0 || pos >= len(i.entries) {
		return Entry{}, derrors.NewNotFoundError("source", fmt.Sprintf("no indexed file at position %d", pos))
	}

	removed := i.entries[pos]
	i.entries = append(i.entries[:pos:pos], i.entries[pos+1:]...)
	return removed, i.persist()
}

// Get returns the entry at the given ordinal position
func (i *Index) Get(pos int) (Entry, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if pos < 0 || pos >= len(i.entries) {
		return Entry{}, false
	}
	return i.entries[pos], true
}

// List returns a copy of all entries in ordinal order
func (i *Index) List() []Entry {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]Entry, len(i.entries))
	copy(out, i.entries)
	return out
}

// Len returns the number of indexed files
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Clear removes all entries
func (i *Index) Clear() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.entries = nil
	return i.persist()
}

// load reads the index from disk
func (i *Index) load() error {
	data, err := os.ReadFile(i.path)
	if err != nil {
		return err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	i.entries = entries
	return nil
}

// persist writes the index to disk
func (i *Index) persist() error {
	if i.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(i.entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(i.path, data, 0600)
}
