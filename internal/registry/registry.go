// Package registry holds the shell's command table: names, aliases, flag
// hints and help text for every command the devlog shell understands.
package registry

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/devlog/internal/derrors"
)

// Command describes a shell command. Commands are immutable once registered.
type Command struct {
	Name    string   // Unique lowercase name
	Aliases []string // Alternative names, unique across the registry
	Hints   []string // Flag strings offered during flag completion
	Help    string   // Help text, first line is the summary
}

// Summary returns the first line of the help text
func (c Command) Summary() string {
	first, _, _ := strings.Cut(c.Help, "\n")
	return strings.TrimSpace(first)
}

// Registry is an ordered set of commands with alias resolution
type Registry struct {
	commands []Command
	byName   map[string]int // name or alias -> index in commands
}

// New creates a registry from the given commands, in order
func New(commands ...Command) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]int),
	}
	for _, cmd := range commands {
		if err := r.Register(cmd); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a command. Names and aliases are lowercased and must be
// unique across the registry; an alias may not repeat its own command name.
func (r *Registry) Register(cmd Command) error {
	name := strings.ToLower(strings.TrimSpace(cmd.Name))
	if name == "" {
		return derrors.NewValidationError("name", "command name must not be empty", nil)
	}
	if strings.ContainsAny(name, " \t\n") {
		return derrors.NewValidationError("name", fmt.Sprintf("command name %q contains whitespace", name), nil)
	}
	if _, exists := r.byName[name]; exists {
		return derrors.NewAlreadyExistsError(name, fmt.Sprintf("command or alias %q already registered", name))
	}

	aliases := make([]string, 0, len(cmd.Aliases))
	seen := map[string]bool{name: true}
	for _, alias := range cmd.Aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == name {
			return derrors.NewValidationError("aliases", fmt.Sprintf("alias %q repeats its command name", alias), nil)
		}
		if alias == "" || seen[alias] {
			return derrors.NewValidationError("aliases", fmt.Sprintf("alias %q of %q is empty or repeated", alias, name), nil)
		}
		if _, exists := r.byName[alias]; exists {
			return derrors.NewAlreadyExistsError(alias, fmt.Sprintf("command or alias %q already registered", alias))
		}
		seen[alias] = true
		aliases = append(aliases, alias)
	}

	stored := Command{
		Name:    name,
		Aliases: aliases,
		Hints:   append([]string(nil), cmd.Hints...),
		Help:    cmd.Help,
	}

	idx := len(r.commands)
	r.commands = append(r.commands, stored)
	r.byName[name] = idx
	for _, alias := range aliases {
		r.byName[alias] = idx
	}
	return nil
}

// Lookup resolves a command by name or alias, case-insensitively
func (r *Registry) Lookup(name string) (Command, bool) {
	idx, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Command{}, false
	}
	return r.commands[idx], true
}

// All returns every command in registration order
func (r *Registry) All() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Names returns every command name in registration order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for _, cmd := range r.commands {
		names = append(names, cmd.Name)
	}
	return names
}
