// Package shell implements the interactive devlog prompt: a readline loop
// with context-aware TAB completion and the built-in utility commands.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/devlog/internal/completion"
	"github.com/NikitaCOEUR/devlog/internal/logger"
	"github.com/NikitaCOEUR/devlog/internal/registry"
	"github.com/NikitaCOEUR/devlog/internal/session"
	"github.com/chzyer/readline"
)

// Prompt is shown before every input line
const Prompt = "❯ "

const clearScreen = "\033[H\033[2J"

// errExit stops the read loop
var errExit = errors.New("exit")

// handlerFunc runs one command with its arguments (command word excluded)
type handlerFunc func(s *Shell, args []string) error

// Shell reads commands and dispatches them to handlers
type Shell struct {
	registry *registry.Registry
	state    *session.State
	engine   *completion.Engine
	log      *logger.Logger
	out      io.Writer
	handlers map[string]handlerFunc
}

// New creates a shell over the given registry and session
func New(reg *registry.Registry, state *session.State, engine *completion.Engine, log *logger.Logger, out io.Writer) *Shell {
	if log == nil {
		log = logger.Discard()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Shell{
		registry: reg,
		state:    state,
		engine:   engine,
		log:      log,
		out:      out,
		handlers: defaultHandlers(),
	}
}

// Completer returns the readline adapter for this shell
func (s *Shell) Completer() *Completer {
	return NewCompleter(s.engine, s.registry, s.state)
}

// Execute runs one input line. It reports whether the shell should exit.
func (s *Shell) Execute(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	words, _, err := completion.Tokenize(line)
	if err != nil {
		return false, err
	}
	if len(words) == 0 {
		return false, nil
	}

	cmd, ok := s.registry.Lookup(words[0])
	if !ok {
		s.println(warningLine(fmt.Sprintf("Unknown command '%s'. Type 'help' to list commands.", words[0])))
		return false, nil
	}

	handler, ok := s.handlers[cmd.Name]
	if !ok {
		handler = needsEngine
	}

	s.log.Debug().Str("command", cmd.Name).Strs("args", words[1:]).Msg("Executing command")
	err = handler(s, words[1:])
	if errors.Is(err, errExit) {
		return true, nil
	}
	return false, err
}

// Run reads lines until EOF, an exit command, or ctx is cancelled
func (s *Shell) Run(ctx context.Context) error {
	settings := s.state.Settings()
	if settings.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(settings.HistoryFile), 0755); err != nil {
			s.log.Warn().Err(err).Msg("Cannot create history directory")
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		HistoryFile:     settings.HistoryFile,
		AutoComplete:    s.Completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start line editor: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.out = rl.Stdout()
	s.println(subtleStyle.Render("Type 'help' for commands, TAB to complete, Ctrl+D to quit."))

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		exit, err := s.Execute(line)
		if err != nil {
			s.println(errorLine(err.Error()))
		}
		if exit {
			return nil
		}
	}
}

func (s *Shell) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}
