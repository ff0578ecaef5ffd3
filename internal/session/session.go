// Package session holds the mutable state of one devlog shell session:
// the last analysis results, the current settings and the file index.
//
// Readers never see shared slices or maps: every accessor returns a copy, so
// the completion engine can work from a consistent snapshot while commands
// keep mutating the session.
package session

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/NikitaCOEUR/devlog/internal/config"
	"github.com/NikitaCOEUR/devlog/internal/derrors"
	"github.com/NikitaCOEUR/devlog/internal/index"
	"gopkg.in/yaml.v3"
)

// Record is one structured analysis result (event, status, confidence, ...)
type Record map[string]any

// String returns the field as text, or "" when absent
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// DataSource is a known log file as presented to the user
type DataSource struct {
	Path string
	Name string
}

// State is the session shared by the shell and the completion engine
type State struct {
	mu       sync.RWMutex
	results  []Record
	settings *config.Settings
	index    *index.Index
}

// New creates a session over the given settings and index
func New(settings *config.Settings, idx *index.Index) *State {
	return &State{
		settings: settings,
		index:    idx,
	}
}

// LastResults returns a copy of the records from the last analysis
func (s *State) LastResults() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.results))
	for i, r := range s.results {
		out[i] = copyRecord(r)
	}
	return out, nil
}

// SetResults replaces the last results
func (s *State) SetResults(records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = make([]Record, len(records))
	for i, r := range records {
		s.results[i] = copyRecord(r)
	}
}

// Config returns the current settings as a key/value mapping
func (s *State) Config() (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, derrors.NewSessionError("config", "settings not loaded", nil)
	}
	return s.settings.Values(), nil
}

// Settings returns a copy of the current settings
func (s *State) Settings() *config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return config.Defaults()
	}
	return s.settings.Clone()
}

// SetConfig updates one setting from its textual form
func (s *State) SetConfig(key, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		return derrors.NewSessionError("config", "settings not loaded", nil)
	}
	next := s.settings.Clone()
	if err := next.Set(key, raw); err != nil {
		return err
	}
	s.settings = next
	return nil
}

// ListDataSources returns the indexed files in ordinal order
func (s *State) ListDataSources() ([]DataSource, error) {
	if s.index == nil {
		return nil, derrors.NewSessionError("index", "file index not initialized", nil)
	}

	entries := s.index.List()
	out := make([]DataSource, 0, len(entries))
	for _, e := range entries {
		out = append(out, DataSource{Path: e.Path, Name: e.DisplayName()})
	}
	return out, nil
}

// Index returns the session's file index, or nil when none is attached
func (s *State) Index() *index.Index {
	return s.index
}

// Snapshot captures the session at this instant. The snapshot implements the
// same read accessors and never changes afterwards.
func (s *State) Snapshot() *Snapshot {
	results, _ := s.LastResults()
	cfg, cfgErr := s.Config()
	sources, srcErr := s.ListDataSources()

	return &Snapshot{
		results:   results,
		config:    cfg,
		configErr: cfgErr,
		sources:   sources,
		sourceErr: srcErr,
	}
}

// LoadResults reads records from a JSON or YAML file into the session.
// Both a top-level list and a {results: [...]} document are accepted.
func (s *State) LoadResults(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	records, err := decodeRecords(data)
	if err != nil {
		return 0, derrors.NewValidationError(path, "not a list of result records", err)
	}

	s.SetResults(records)
	return len(records), nil
}

// decodeRecords parses YAML, which also covers JSON documents
func decodeRecords(data []byte) ([]Record, error) {
	var list []Record
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var doc struct {
		Results []Record `yaml:"results"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Results, nil
}

// Snapshot is an immutable view of a session
type Snapshot struct {
	results   []Record
	config    map[string]any
	configErr error
	sources   []DataSource
	sourceErr error
}

// LastResults returns the captured records
func (s *Snapshot) LastResults() ([]Record, error) {
	return s.results, nil
}

// Config returns the captured settings mapping
func (s *Snapshot) Config() (map[string]any, error) {
	return s.config, s.configErr
}

// ListDataSources returns the captured data sources
func (s *Snapshot) ListDataSources() ([]DataSource, error) {
	return s.sources, s.sourceErr
}

// CountBy tallies records by the given field, skipping records without it.
// Keys are returned in alphabetical order.
func CountBy(records []Record, field string) ([]string, map[string]int) {
	counts := make(map[string]int)
	for _, r := range records {
		v := r.String(field)
		if v == "" {
			continue
		}
		counts[v]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, counts
}

func copyRecord(r Record) Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
