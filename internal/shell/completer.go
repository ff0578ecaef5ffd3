package shell

import (
	"strings"

	"github.com/NikitaCOEUR/devlog/internal/completion"
	"github.com/NikitaCOEUR/devlog/internal/session"
	"github.com/chzyer/readline"
)

// Completer adapts the completion engine to readline's TAB handling
type Completer struct {
	engine   *completion.Engine
	registry completion.Registry
	state    *session.State
}

var _ readline.AutoCompleter = (*Completer)(nil)

// NewCompleter creates a readline completer over a session
func NewCompleter(engine *completion.Engine, reg completion.Registry, state *session.State) *Completer {
	return &Completer{engine: engine, registry: reg, state: state}
}

// Do implements readline.AutoCompleter.
//
// readline inserts suffixes after the typed text, so each candidate is
// returned without the part already typed; length is how many runes
// before the cursor the candidates share. Complete words get a trailing
// space; directories and "key=" assignments do not.
//
// The typed text is never rewritten: "FI" completes to "FIlter", which
// resolves like "filter" since command lookup ignores case. For escaped
// words length counts the unescaped runes.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	if pos > len(line) {
		pos = len(line)
	}
	if pos < 0 {
		return nil, 0
	}

	limit := c.state.Settings().MaxDisplay
	var suffixes [][]rune
	length := 0

	for cand := range c.engine.Complete(string(line[:pos]), c.registry, c.state.Snapshot()) {
		typed := -cand.ReplaceFrom
		value := []rune(cand.Value)
		if typed > len(value) {
			continue
		}

		suffix := string(value[typed:])
		if !strings.HasSuffix(cand.Value, "/") && !strings.HasSuffix(cand.Value, "=") {
			suffix += " "
		}
		suffixes = append(suffixes, []rune(suffix))
		length = typed

		if limit > 0 && len(suffixes) >= limit {
			break
		}
	}

	return suffixes, length
}
