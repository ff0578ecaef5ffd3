package completion

import (
	"fmt"
	"slices"

	"github.com/NikitaCOEUR/devlog/internal/derrors"
)

// Rule routes a request to its providers
type Rule struct {
	// Stage the request must be in
	Stage Stage
	// Commands restricts the rule to these resolved commands; empty matches any
	Commands []string
	// When is an extra predicate over the request; nil always holds
	When func(req *Request) bool
	// Providers run in order and their output is concatenated
	Providers []Provider
}

// Matches reports whether the rule applies to req
func (r Rule) Matches(req *Request) bool {
	if r.Stage != req.Stage {
		return false
	}
	if len(r.Commands) > 0 && !slices.Contains(r.Commands, req.Command.Name) {
		return false
	}
	return r.When == nil || r.When(req)
}

// DispatchTable is an ordered rule list; the first matching rule wins
type DispatchTable []Rule

// Select returns the first rule matching req
func (t DispatchTable) Select(req *Request) (Rule, bool) {
	for _, rule := range t {
		if rule.Matches(req) {
			return rule, true
		}
	}
	return Rule{}, false
}

func hasPrior(tokens ...string) func(*Request) bool {
	return func(req *Request) bool {
		return req.HasPrior(tokens...)
	}
}

// FileCommands take a filesystem path as their argument
var FileCommands = []string{"add", "predict"}

// DefaultTable is the devlog shell's completion routing
func DefaultTable() DispatchTable {
	return DispatchTable{
		{Stage: StageEmpty, Providers: []Provider{CommandNames}},
		{Stage: StageCommand, Providers: []Provider{CommandNames, CommandAliases}},
		{Stage: StageFlag, Providers: []Provider{FlagHints}},

		{Stage: StageContextValue, Commands: FileCommands, Providers: []Provider{Paths}},
		{Stage: StageContextValue, Commands: []string{"remove"}, Providers: []Provider{FileIndex}},
		{
			Stage:     StageContextValue,
			Commands:  []string{"filter"},
			When:      func(req *Request) bool { return !req.HasPrior("--event") },
			Providers: []Provider{StatusKeywords},
		},
		{
			Stage:     StageContextValue,
			Commands:  []string{"filter"},
			When:      hasPrior("--event"),
			Providers: []Provider{EventTypes},
		},
		{
			Stage:     StageContextValue,
			Commands:  []string{"list"},
			When:      hasPrior("--sort", "-s"),
			Providers: []Provider{SortOptions},
		},
		{
			Stage:     StageContextValue,
			Commands:  []string{"config"},
			When:      hasPrior("--set"),
			Providers: []Provider{ConfigKeys},
		},
	}
}

// invoke runs a provider, absorbing errors and panics into a ProviderError
func invoke(p Provider, in Input) (suggestions []Suggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			suggestions = nil
			err = derrors.NewProviderError(p.Name, fmt.Sprintf("panic: %v", r), nil)
		}
	}()

	suggestions, err = p.Suggest(in)
	if err != nil {
		return nil, derrors.NewProviderError(p.Name, "provider failed", err)
	}
	return suggestions, nil
}
