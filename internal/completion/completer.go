// Package completion provides context-aware completion for the devlog shell.
//
// A request is the text before the cursor. It is tokenized with shell quoting
// rules, classified into a Stage, and routed through a DispatchTable to the
// providers that know how to complete that position. Results are streamed as
// an iter.Seq of Candidate values.
package completion

import (
	"github.com/NikitaCOEUR/devlog/internal/registry"
	"github.com/NikitaCOEUR/devlog/internal/session"
)

// Suggestion is a raw value produced by a provider
type Suggestion struct {
	Value       string // The actual value to complete
	Description string // Optional description/help text
}

// Candidate is a completion ready for the line editor
type Candidate struct {
	Value string
	// ReplaceFrom is the offset, from the cursor, where Value starts.
	// Always <= 0; it never reaches past the word being typed.
	ReplaceFrom int
	Meta        string
}

// Registry is the read-only view of the command set
type Registry interface {
	Lookup(name string) (registry.Command, bool)
	All() []registry.Command
}

// Session is the read-only view of the shell state
type Session interface {
	LastResults() ([]session.Record, error)
	Config() (map[string]any, error)
	ListDataSources() ([]session.DataSource, error)
}

// PathCompleter completes filesystem paths. Failures yield no suggestions.
type PathCompleter interface {
	CandidatesFor(prefix string) []Suggestion
}
