package completion

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NikitaCOEUR/devlog/internal/logger"
	"github.com/NikitaCOEUR/devlog/internal/registry"
	"github.com/NikitaCOEUR/devlog/internal/session"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	results []session.Record
	config  map[string]any
	sources []session.DataSource
	err     error
}

func (f *fakeSession) LastResults() ([]session.Record, error) {
	return f.results, f.err
}

func (f *fakeSession) Config() (map[string]any, error) {
	return f.config, f.err
}

func (f *fakeSession) ListDataSources() ([]session.DataSource, error) {
	return f.sources, f.err
}

type fakePaths struct {
	calls    []string
	suggests []Suggestion
}

func (f *fakePaths) CandidatesFor(prefix string) []Suggestion {
	f.calls = append(f.calls, prefix)
	return f.suggests
}

func newSession() *fakeSession {
	return &fakeSession{
		results: []session.Record{
			{"event": "login", "status": "success"},
			{"event": "logout", "status": "success"},
			{"event": "login", "status": "warning"},
			{"status": "failed"},
			{"event": "login", "status": "failed"},
		},
		config: map[string]any{
			"max_display":     20,
			"auto_save":       false,
			"show_confidence": true,
		},
		sources: []session.DataSource{
			{Path: "/var/log/app.log", Name: "app.log"},
			{Path: "/var/log/auth.log", Name: "auth.log"},
		},
	}
}

func values(cands []Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Value)
	}
	return out
}

func TestComplete_EmptyText(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()

	cands := engine.Collect("", reg, newSession())

	assert.Equal(t, reg.Names(), values(cands))
	for _, c := range cands {
		assert.Equal(t, 0, c.ReplaceFrom, c.Value)
	}

	help, ok := reg.Lookup("help")
	require.True(t, ok)
	assert.Equal(t, help.Summary(), cands[0].Meta)
}

func TestComplete_CommandPrefix(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()

	cands := engine.Collect("fi", reg, newSession())
	assert.Equal(t, []string{"filter", "find"}, values(cands))
	for _, c := range cands {
		assert.Equal(t, -2, c.ReplaceFrom)
	}

	upper := engine.Collect("FI", reg, newSession())
	assert.Equal(t, []string{"filter", "find"}, values(upper), "command names match case-insensitively")
}

func TestComplete_Aliases(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()

	cands := engine.Collect("r", reg, newSession())
	assert.Equal(t, []string{"remove", "rm", "run"}, values(cands), "names before aliases")
	assert.Equal(t, "→ remove", cands[1].Meta)
	assert.Equal(t, "→ analyze", cands[2].Meta)

	cands = engine.Collect("a", reg, newSession())
	assert.Equal(t, []string{"add", "analyze", "a"}, values(cands))
	assert.Equal(t, "→ add", cands[2].Meta)
}

func TestComplete_Flags(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()

	cands := engine.Collect("filter --e", reg, newSession())
	require.Len(t, cands, 1)
	assert.Equal(t, Candidate{Value: "--event", ReplaceFrom: -3, Meta: "event type"}, cands[0])

	cands = engine.Collect("list -", reg, newSession())
	assert.Equal(t, []string{"--sort", "-s", "--detailed", "-d"}, values(cands))

	cands = engine.Collect("filter --E", reg, newSession())
	assert.Empty(t, cands, "flags match case-sensitively")

	cands = engine.Collect("cls -", reg, newSession())
	assert.Empty(t, cands, "no hints")
}

func TestComplete_UnknownFlagDescription(t *testing.T) {
	reg, err := registry.New(registry.Command{Name: "tail", Hints: []string{"--follow"}})
	require.NoError(t, err)

	cands := NewEngine().Collect("tail --f", reg, newSession())
	require.Len(t, cands, 1)
	assert.Equal(t, "flag", cands[0].Meta)
}

func TestComplete_EventTypes(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()

	cands := engine.Collect("filter --event ", reg, newSession())
	assert.Equal(t, []Candidate{
		{Value: "login", ReplaceFrom: 0, Meta: "3 events"},
		{Value: "logout", ReplaceFrom: 0, Meta: "1 events"},
	}, cands)

	cands = engine.Collect("filter --event logo", reg, newSession())
	assert.Equal(t, []Candidate{{Value: "logout", ReplaceFrom: -4, Meta: "1 events"}}, cands)
}

func TestComplete_StatusKeywords(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()

	cands := engine.Collect("filter ", reg, newSession())
	assert.Equal(t, []string{"success", "warning", "failed"}, values(cands))
	for _, c := range cands {
		assert.Equal(t, "status", c.Meta)
	}

	cands = engine.Collect("filter --e x", reg, newSession())
	assert.Empty(t, cands, "--e is not the --event flag")

	cands = engine.Collect("filter --e ", reg, newSession())
	assert.Equal(t, []string{"success", "warning", "failed"}, values(cands))
}

func TestComplete_ConfigKeys(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()

	cands := engine.Collect("config --set ma", reg, newSession())
	assert.Equal(t, []Candidate{{Value: "max_display=", ReplaceFrom: -2, Meta: "= 20"}}, cands)

	cands = engine.Collect("config --set ", reg, newSession())
	assert.Equal(t, []string{"auto_save=", "max_display=", "show_confidence="}, values(cands))

	cands = engine.Collect("config ", reg, newSession())
	assert.Empty(t, cands, "values only after --set")
}

func TestComplete_FileIndex(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()

	cands := engine.Collect("remove ", reg, newSession())
	assert.Equal(t, []Candidate{
		{Value: "0", ReplaceFrom: 0, Meta: "app.log"},
		{Value: "1", ReplaceFrom: 0, Meta: "auth.log"},
	}, cands)

	cands = engine.Collect("rm 1", reg, newSession())
	assert.Equal(t, []Candidate{{Value: "1", ReplaceFrom: -1, Meta: "auth.log"}}, cands)
}

func TestComplete_SortOptions(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()

	assert.Equal(t, []string{"size", "name"}, values(engine.Collect("list --sort ", reg, newSession())))
	assert.Equal(t, []string{"name"}, values(engine.Collect("ls -s n", reg, newSession())))
	assert.Empty(t, engine.Collect("list ", reg, newSession()))
}

func TestComplete_PathsUseCollaborator(t *testing.T) {
	reg := registry.Default()
	paths := &fakePaths{suggests: []Suggestion{
		{Value: "~/logs/", Description: "dir"},
		{Value: "~/logbook.txt", Description: "file"},
		{Value: "/elsewhere", Description: "file"},
	}}
	engine := NewEngine(WithPathCompleter(paths))

	cands := engine.Collect("predict ~/log", reg, newSession())
	assert.Equal(t, []string{"~/log"}, paths.calls)
	assert.Equal(t, []Candidate{
		{Value: "~/logs/", ReplaceFrom: -5, Meta: "dir"},
		{Value: "~/logbook.txt", ReplaceFrom: -5, Meta: "file"},
	}, cands, "values not extending the typed word are dropped")
}

func TestComplete_PathsFromFilesystem(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "app.log"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(home, "archive"), 0o755))

	cands := NewEngine().Collect("add ~/a", registry.Default(), newSession())
	assert.Equal(t, []Candidate{
		{Value: "~/app.log", ReplaceFrom: -3, Meta: "file"},
		{Value: "~/archive/", ReplaceFrom: -3, Meta: "dir"},
	}, cands)
}

func TestComplete_NoCandidates(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()

	for _, text := range []string{
		`add "unterminated`,
		"unknown ",
		"unknown --fl",
		"help ",
		"zzz",
	} {
		assert.Empty(t, engine.Collect(text, reg, newSession()), text)
	}
}

func TestComplete_ShellOperatorsAreLiteral(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()
	sess := newSession()
	sess.results = append(sess.results, session.Record{"event": "#tagged", "status": "success"})

	assert.Empty(t, engine.Collect("find #", reg, sess))
	assert.Empty(t, engine.Collect("find a|b", reg, sess))
	assert.Empty(t, engine.Collect("#", reg, sess))

	cands := engine.Collect("filter --event #", reg, sess)
	assert.Equal(t, []Candidate{{Value: "#tagged", ReplaceFrom: -1, Meta: "1 events"}}, cands)

	cands = engine.Collect("filter --event #tag", reg, sess)
	assert.Equal(t, []Candidate{{Value: "#tagged", ReplaceFrom: -4, Meta: "1 events"}}, cands)
}

func TestComplete_SessionFailure(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()
	broken := &fakeSession{err: errors.New("session not initialized")}

	assert.Empty(t, engine.Collect("remove ", reg, broken))
	assert.Empty(t, engine.Collect("filter --event ", reg, broken))
	assert.Empty(t, engine.Collect("config --set ", reg, broken))
	assert.Empty(t, engine.Collect("remove ", reg, nil))

	// Stages that do not read the session are unaffected
	assert.Equal(t, []string{"success", "warning", "failed"}, values(engine.Collect("filter ", reg, broken)))
}

func TestComplete_ProviderFailureIsolated(t *testing.T) {
	reg, err := registry.New(registry.Command{Name: "probe"})
	require.NoError(t, err)

	panicking := Provider{Name: "panics", Suggest: func(Input) ([]Suggestion, error) {
		panic("boom")
	}}
	failing := Provider{Name: "fails", Suggest: func(Input) ([]Suggestion, error) {
		return []Suggestion{{Value: "ignored"}}, errors.New("backend down")
	}}
	working := Provider{Name: "works", Suggest: fixed([]string{"ok"}, "fine")}

	engine := NewEngine(WithTable(DispatchTable{
		{Stage: StageContextValue, Providers: []Provider{panicking, failing, working}},
	}))

	cands := engine.Collect("probe ", reg, newSession())
	assert.Equal(t, []Candidate{{Value: "ok", Meta: "fine"}}, cands)
}

func TestComplete_Deduplicates(t *testing.T) {
	reg, err := registry.New(registry.Command{Name: "probe"})
	require.NoError(t, err)

	dup := Provider{Name: "dup", Suggest: fixed([]string{"x", "y", "x"}, "")}
	engine := NewEngine(WithTable(DispatchTable{
		{Stage: StageContextValue, Providers: []Provider{dup, dup}},
	}))

	assert.Equal(t, []string{"x", "y"}, values(engine.Collect("probe ", reg, newSession())))
}

func TestComplete_FirstRuleWins(t *testing.T) {
	reg, err := registry.New(registry.Command{Name: "probe"})
	require.NoError(t, err)

	engine := NewEngine(WithTable(DispatchTable{
		{Stage: StageContextValue, Commands: []string{"other"}, Providers: []Provider{{Name: "a", Suggest: fixed([]string{"a"}, "")}}},
		{Stage: StageContextValue, Providers: []Provider{{Name: "b", Suggest: fixed([]string{"b"}, "")}}},
		{Stage: StageContextValue, Providers: []Provider{{Name: "c", Suggest: fixed([]string{"c"}, "")}}},
	}))

	assert.Equal(t, []string{"b"}, values(engine.Collect("probe ", reg, newSession())))
}

func TestComplete_EarlyStop(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()

	var got []Candidate
	for c := range engine.Complete("", reg, newSession()) {
		got = append(got, c)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)

	// A fresh range starts over
	assert.Len(t, engine.Collect("", reg, newSession()), len(reg.Names()))
}

func TestComplete_Idempotent(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine()
	sess := newSession()

	for _, text := range []string{"", "f", "filter --event ", "config --set ", "remove ", "list -"} {
		first := engine.Collect(text, reg, sess)
		second := engine.Collect(text, reg, sess)
		assert.Equal(t, first, second, text)
	}
}

func TestComplete_Invariants(t *testing.T) {
	reg := registry.Default()
	engine := NewEngine(WithPathCompleter(&fakePaths{}))
	sess := newSession()

	texts := []string{
		"", "f", "FI", "r", "q", "filter ", "filter s", "filter --", "filter --event l",
		"config --set s", "remove 0", "list --sort s", "help", "ex",
		"find #", "filter --event #", "find a|b", "#",
	}
	for _, text := range texts {
		req, err := NewRequest(text, reg)
		require.NoError(t, err, text)

		seen := make(map[string]bool)
		for _, c := range engine.Collect(text, reg, sess) {
			key := c.Value + "\x00" + string(rune(-c.ReplaceFrom))
			assert.False(t, seen[key], "duplicate %q for %q", c.Value, text)
			seen[key] = true

			assert.LessOrEqual(t, c.ReplaceFrom, 0)
			assert.Equal(t, -len([]rune(req.Current)), c.ReplaceFrom)
			assert.True(t, strings.HasPrefix(strings.ToLower(c.Value), strings.ToLower(req.Current)),
				"%q does not extend %q", c.Value, req.Current)
			assert.LessOrEqual(t, len([]rune(c.Meta)), MaxMetaWidth)
		}
	}
}

func TestComplete_DebugLogging(t *testing.T) {
	reg := registry.Default()

	var debugOut bytes.Buffer
	engine := NewEngine(WithLogger(logger.New("debug", &debugOut)))
	engine.Collect("fi", reg, newSession())
	assert.Contains(t, debugOut.String(), "Completion request")
	assert.Contains(t, debugOut.String(), "candidates")

	var warnOut bytes.Buffer
	engine = NewEngine(WithLogger(logger.New("warn", &warnOut)), WithBudget(0))
	engine.Collect("fi", reg, newSession())
	assert.Empty(t, warnOut.String())
}
