package completion

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/NikitaCOEUR/devlog/internal/logger"
	"github.com/NikitaCOEUR/devlog/internal/timing"
	"github.com/NikitaCOEUR/devlog/internal/trace"
)

// DefaultBudget is the latency above which a request is logged as slow
const DefaultBudget = 50 * time.Millisecond

// Engine answers completion requests from a dispatch table
type Engine struct {
	table  DispatchTable
	paths  PathCompleter
	log    *logger.Logger
	budget time.Duration
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for debug output
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithPathCompleter replaces the filesystem path completer
func WithPathCompleter(p PathCompleter) Option {
	return func(e *Engine) {
		e.paths = p
	}
}

// WithTable replaces the dispatch table
func WithTable(t DispatchTable) Option {
	return func(e *Engine) {
		e.table = t
	}
}

// WithBudget sets the slow-request threshold; zero disables the warning
func WithBudget(d time.Duration) Option {
	return func(e *Engine) {
		e.budget = d
	}
}

// NewEngine creates an engine with the default table and path completer
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		table:  DefaultTable(),
		paths:  NewFSPathCompleter(),
		log:    logger.Discard(),
		budget: DefaultBudget,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Complete returns the candidates for the text before the cursor.
//
// The sequence is computed as it is consumed and can be abandoned at any
// point. Every range over it recomputes from the registry and session as
// they are at that moment. It never panics and never reports errors:
// malformed input, unknown commands and failing providers all produce
// fewer (possibly zero) candidates.
func (e *Engine) Complete(text string, reg Registry, sess Session) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		ctx := context.Background()
		defer trace.Region(ctx, "completion")()

		timer := timing.NewTimer()
		emitted := 0
		stage := StageNone
		command := ""
		defer func() {
			if trace.IsEnabled() {
				trace.Log(ctx, "completion", fmt.Sprintf("stage=%s candidates=%d", stage, emitted))
			}
			if e.log.Enabled("debug") {
				e.log.Debug().
					Str("text", text).
					Str("stage", stage.String()).
					Str("command", command).
					Int("candidates", emitted).
					Str("timing", timer.Summary()).
					Msg("Completion request")
			}
			if timer.Exceeds(e.budget) {
				e.log.Warn().Dur("elapsed", timer.Elapsed()).Str("text", text).Msg("Slow completion request")
			}
		}()

		req, err := NewRequest(text, reg)
		timer.Mark("classify")
		if err != nil {
			e.log.Debug().Err(err).Msg("Completion input not tokenizable")
			return
		}
		stage = req.Stage
		command = req.Command.Name

		rule, ok := e.table.Select(req)
		if !ok {
			return
		}

		in := Input{Request: req, Registry: reg, Session: sess, Paths: e.paths}
		type key struct {
			value string
			from  int
		}
		emittedKeys := make(map[key]bool)

		for _, p := range rule.Providers {
			var suggestions []Suggestion
			trace.WithRegion(ctx, "completion.provider."+p.Name, func() {
				suggestions, err = invoke(p, in)
			})
			timer.Mark(p.Name)
			if err != nil {
				trace.Log(ctx, "completion.provider", p.Name+" failed")
				e.log.Debug().Str("provider", p.Name).Err(err).Msg("Completion provider failed")
				continue
			}

			for _, s := range suggestions {
				if !p.Match.Matches(s.Value, req.Current) {
					continue
				}
				c := annotate(s, req.Current)
				k := key{c.Value, c.ReplaceFrom}
				if emittedKeys[k] {
					continue
				}
				emittedKeys[k] = true
				emitted++
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Collect materializes Complete
func (e *Engine) Collect(text string, reg Registry, sess Session) []Candidate {
	var out []Candidate
	for c := range e.Complete(text, reg, sess) {
		out = append(out, c)
	}
	return out
}
