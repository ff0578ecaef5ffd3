package completion

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/NikitaCOEUR/devlog/internal/derrors"
	"github.com/NikitaCOEUR/devlog/internal/session"
)

// MatchRule decides whether a suggestion fits the word being typed
type MatchRule int

const (
	// MatchPrefix is a case-sensitive prefix match
	MatchPrefix MatchRule = iota
	// MatchFoldPrefix is a case-insensitive prefix match
	MatchFoldPrefix
)

// Matches reports whether value starts with prefix under the rule
func (m MatchRule) Matches(value, prefix string) bool {
	if m == MatchFoldPrefix {
		return strings.HasPrefix(strings.ToLower(value), strings.ToLower(prefix))
	}
	return strings.HasPrefix(value, prefix)
}

// Input is what a provider may read while serving a request
type Input struct {
	Request  *Request
	Registry Registry
	Session  Session
	Paths    PathCompleter
}

// Provider produces raw suggestions for one kind of completion
type Provider struct {
	Name    string
	Match   MatchRule
	Suggest func(in Input) ([]Suggestion, error)
}

// Status values accepted by the filter command
var statusKeywords = []string{"success", "warning", "failed"}

// Sort orders accepted by list --sort
var sortOptions = []string{"size", "name"}

// hintDescriptions annotates flag hints; unknown flags show "flag"
var hintDescriptions = map[string]string{
	"--recursive":  "include subdirs",
	"-r":           "recursive",
	"--pattern":    "file pattern",
	"-p":           "pattern",
	"--sort":       "sort by",
	"-s":           "sort/summary",
	"--detailed":   "detailed view",
	"-d":           "detailed",
	"--confirm":    "skip confirmation",
	"-y":           "yes",
	"--conf":       "confidence",
	"-c":           "conf/case/clear",
	"--limit":      "max results",
	"-l":           "limit/last/live",
	"--file":       "specific file",
	"-f":           "file/filter/field",
	"--no-plugins": "disable plugins",
	"--show":       "show config",
	"--set":        "set value",
	"--event":      "event type",
	"--field":      "result field",
}

// HintDescription returns the meta text shown next to a flag
func HintDescription(flag string) string {
	if desc, ok := hintDescriptions[flag]; ok {
		return desc
	}
	return "flag"
}

// CommandNames suggests every command name in registry order
var CommandNames = Provider{
	Name:  "command-names",
	Match: MatchFoldPrefix,
	Suggest: func(in Input) ([]Suggestion, error) {
		commands := in.Registry.All()
		out := make([]Suggestion, 0, len(commands))
		for _, cmd := range commands {
			out = append(out, Suggestion{Value: cmd.Name, Description: cmd.Summary()})
		}
		return out, nil
	},
}

// CommandAliases suggests every alias, annotated with its command
var CommandAliases = Provider{
	Name:  "command-aliases",
	Match: MatchFoldPrefix,
	Suggest: func(in Input) ([]Suggestion, error) {
		commands := in.Registry.All()
		names := make(map[string]bool, len(commands))
		for _, cmd := range commands {
			names[cmd.Name] = true
		}

		var out []Suggestion
		for _, cmd := range commands {
			for _, alias := range cmd.Aliases {
				if names[alias] {
					continue
				}
				out = append(out, Suggestion{Value: alias, Description: "→ " + cmd.Name})
			}
		}
		return out, nil
	},
}

// FlagHints suggests the resolved command's flags
var FlagHints = Provider{
	Name:  "flag-hints",
	Match: MatchPrefix,
	Suggest: func(in Input) ([]Suggestion, error) {
		hints := in.Request.Command.Hints
		out := make([]Suggestion, 0, len(hints))
		for _, hint := range hints {
			out = append(out, Suggestion{Value: hint, Description: HintDescription(hint)})
		}
		return out, nil
	},
}

// Paths delegates to the path completer
var Paths = Provider{
	Name:  "paths",
	Match: MatchPrefix,
	Suggest: func(in Input) ([]Suggestion, error) {
		if in.Paths == nil {
			return nil, nil
		}
		return in.Paths.CandidatesFor(in.Request.Current), nil
	},
}

// FileIndex suggests the ordinal of every known data source
var FileIndex = Provider{
	Name:  "file-index",
	Match: MatchPrefix,
	Suggest: func(in Input) ([]Suggestion, error) {
		if in.Session == nil {
			return nil, derrors.NewSessionError("data-sources", "no session", nil)
		}
		sources, err := in.Session.ListDataSources()
		if err != nil {
			return nil, err
		}

		out := make([]Suggestion, 0, len(sources))
		for i, src := range sources {
			out = append(out, Suggestion{Value: strconv.Itoa(i), Description: src.Name})
		}
		return out, nil
	},
}

// StatusKeywords suggests the filter status vocabulary
var StatusKeywords = Provider{
	Name:    "status-keywords",
	Match:   MatchPrefix,
	Suggest: fixed(statusKeywords, "status"),
}

// EventTypes suggests the distinct events of the last results with their counts
var EventTypes = Provider{
	Name:  "event-types",
	Match: MatchPrefix,
	Suggest: func(in Input) ([]Suggestion, error) {
		if in.Session == nil {
			return nil, derrors.NewSessionError("results", "no session", nil)
		}
		results, err := in.Session.LastResults()
		if err != nil {
			return nil, err
		}

		events, counts := session.CountBy(results, "event")
		out := make([]Suggestion, 0, len(events))
		for _, event := range events {
			out = append(out, Suggestion{
				Value:       event,
				Description: fmt.Sprintf("%d events", counts[event]),
			})
		}
		return out, nil
	},
}

// SortOptions suggests the list sort orders
var SortOptions = Provider{
	Name:    "sort-options",
	Match:   MatchPrefix,
	Suggest: fixed(sortOptions, "sort by"),
}

// ConfigKeys suggests "key=" assignments for config --set
var ConfigKeys = Provider{
	Name:  "config-keys",
	Match: MatchPrefix,
	Suggest: func(in Input) ([]Suggestion, error) {
		if in.Session == nil {
			return nil, derrors.NewSessionError("config", "no session", nil)
		}
		cfg, err := in.Session.Config()
		if err != nil {
			return nil, err
		}

		keys := make([]string, 0, len(cfg))
		for k := range cfg {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make([]Suggestion, 0, len(keys))
		for _, k := range keys {
			out = append(out, Suggestion{
				Value:       k + "=",
				Description: fmt.Sprintf("= %v", cfg[k]),
			})
		}
		return out, nil
	},
}

func fixed(values []string, description string) func(Input) ([]Suggestion, error) {
	return func(Input) ([]Suggestion, error) {
		out := make([]Suggestion, len(values))
		for i, v := range values {
			out[i] = Suggestion{Value: v, Description: description}
		}
		return out, nil
	}
}
