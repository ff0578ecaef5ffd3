package completion

import (
	"slices"
	"strings"

	"github.com/NikitaCOEUR/devlog/internal/registry"
)

// Stage is the grammatical position of the cursor
type Stage int

const (
	// StageNone means nothing can be completed (unknown command)
	StageNone Stage = iota
	// StageEmpty is an empty line
	StageEmpty
	// StageCommand is the first word, still being typed
	StageCommand
	// StageFlag is a word starting with "-" after a known command
	StageFlag
	// StageContextValue is any other word after a known command
	StageContextValue
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageCommand:
		return "command"
	case StageFlag:
		return "flag"
	case StageContextValue:
		return "context-value"
	default:
		return "none"
	}
}

// Classify maps the token list to a stage. It does not resolve the command;
// StageFlag and StageContextValue still require tokens[0] to be known.
func Classify(tokens []string, trailingSpace bool) Stage {
	switch {
	case len(tokens) == 0:
		return StageEmpty
	case len(tokens) == 1 && !trailingSpace:
		return StageCommand
	}

	if strings.HasPrefix(currentWord(tokens, trailingSpace), "-") {
		return StageFlag
	}
	return StageContextValue
}

// Request is one classified completion request
type Request struct {
	Text          string
	Tokens        []string
	TrailingSpace bool
	Stage         Stage
	// Current is the word being typed, "" after trailing whitespace
	Current string
	// Prior holds the words before Current
	Prior []string
	// Command is the resolved first word, set for StageFlag and StageContextValue
	Command registry.Command
}

// NewRequest tokenizes and classifies text. An unknown command yields
// StageNone; malformed input returns the tokenizer error.
func NewRequest(text string, reg Registry) (*Request, error) {
	tokens, trailing, err := Tokenize(text)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Text:          text,
		Tokens:        tokens,
		TrailingSpace: trailing,
		Stage:         Classify(tokens, trailing),
		Current:       currentWord(tokens, trailing),
	}
	if trailing {
		req.Prior = tokens
	} else if len(tokens) > 0 {
		req.Prior = tokens[:len(tokens)-1]
	}

	if req.Stage == StageFlag || req.Stage == StageContextValue {
		cmd, ok := reg.Lookup(tokens[0])
		if !ok {
			req.Stage = StageNone
			return req, nil
		}
		req.Command = cmd
	}

	return req, nil
}

// HasPrior reports whether any of the given tokens was typed before the
// current word. Matching is literal: "--event" does not match "--e".
func (r *Request) HasPrior(tokens ...string) bool {
	for _, t := range tokens {
		if slices.Contains(r.Prior, t) {
			return true
		}
	}
	return false
}

func currentWord(tokens []string, trailingSpace bool) string {
	if trailingSpace || len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}
