package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/NikitaCOEUR/devlog/internal/derrors"
	"github.com/NikitaCOEUR/devlog/internal/index"
	"github.com/NikitaCOEUR/devlog/internal/session"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
)

// defaultPattern selects files when a directory is added
const defaultPattern = "*.log"

func defaultHandlers() map[string]handlerFunc {
	return map[string]handlerFunc{
		"help":   runHelp,
		"exit":   runExit,
		"cls":    runClear,
		"config": runConfig,
		"add":    runAdd,
		"remove": runRemove,
		"list":   runList,
		"load":   runLoad,
		"filter": runFilter,
		"find":   runFind,
		"stats":  runStats,
	}
}

func runHelp(s *Shell, args []string) error {
	if len(args) == 0 {
		out, err := renderHelp(s.registry.All())
		if err != nil {
			return err
		}
		s.println(out)
		return nil
	}

	cmd, ok := s.registry.Lookup(args[0])
	if !ok {
		return derrors.NewNotFoundError(args[0], fmt.Sprintf("no command named '%s'", args[0]))
	}
	out, err := renderCommandHelp(cmd)
	if err != nil {
		return err
	}
	s.println(out)
	return nil
}

func runExit(_ *Shell, _ []string) error {
	return errExit
}

func runClear(s *Shell, _ []string) error {
	_, _ = fmt.Fprint(s.out, clearScreen)
	return nil
}

func needsEngine(s *Shell, _ []string) error {
	s.println(warningLine("This command needs the analysis engine, which is not part of this shell. Use 'load <file>' to import results."))
	return nil
}

func runConfig(s *Shell, raw []string) error {
	fs := newFlagSet("config")
	fs.Bool("show", false, "show the current settings")
	set := fs.String("set", "", "update a setting (key=value)")
	if err := parseFlags(fs, raw); err != nil {
		return err
	}

	if !fs.Changed("set") {
		values, err := s.state.Config()
		if err != nil {
			return err
		}
		s.println(renderConfig(values))
		return nil
	}

	key, value, ok := strings.Cut(*set, "=")
	if !ok || key == "" {
		return derrors.NewValidationError("set", "expected key=value", nil)
	}
	if err := s.state.SetConfig(key, value); err != nil {
		return err
	}

	values, _ := s.state.Config()
	s.println(successLine(fmt.Sprintf("%s = %v", key, values[key])))
	return nil
}

func runAdd(s *Shell, raw []string) error {
	fs := newFlagSet("add")
	recursive := fs.BoolP("recursive", "r", false, "descend into subdirectories")
	pattern := fs.StringP("pattern", "p", defaultPattern, "glob selecting files in directories")
	if err := parseFlags(fs, raw); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return derrors.NewValidationError("path", "usage: add <path> [--recursive] [--pattern GLOB]", nil)
	}

	idx, err := s.index()
	if err != nil {
		return err
	}

	if _, err := filepath.Match(*pattern, ""); err != nil {
		return derrors.NewValidationError("pattern", "invalid glob", err)
	}

	added, skipped := 0, 0
	for _, target := range fs.Args() {
		files, err := collectFiles(target, *pattern, *recursive)
		if err != nil {
			return err
		}
		for _, f := range files {
			_, err := idx.Add(f)
			var exists *derrors.AlreadyExistsError
			switch {
			case errors.As(err, &exists):
				skipped++
			case err != nil:
				return err
			default:
				added++
			}
		}
	}

	msg := fmt.Sprintf("Added %d file(s)", added)
	if skipped > 0 {
		msg += fmt.Sprintf(", %d already indexed", skipped)
	}
	s.println(successLine(msg))
	return nil
}

// collectFiles expands target into the files to index. A file is taken as
// is; a directory contributes the files matching pattern.
func collectFiles(target, pattern string, recursive bool) ([]string, error) {
	path, err := homedir.Expand(target)
	if err != nil {
		return nil, derrors.NewValidationError(target, "cannot expand path", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, derrors.NewNotFoundError(target, fmt.Sprintf("cannot access %s", target))
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func runRemove(s *Shell, raw []string) error {
	fs := newFlagSet("remove")
	confirm := fs.BoolP("confirm", "y", false, "remove without asking")
	if err := parseFlags(fs, raw); err != nil {
		return err
	}

	pos, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return derrors.NewValidationError("n", "usage: remove <n> [--confirm]", err)
	}

	idx, err := s.index()
	if err != nil {
		return err
	}

	entry, ok := idx.Get(pos)
	if !ok {
		return derrors.NewNotFoundError(strconv.Itoa(pos), fmt.Sprintf("no indexed file #%d", pos))
	}
	if !*confirm {
		s.println(warningLine(fmt.Sprintf("Run 'remove %d --confirm' to remove %s", pos, entry.DisplayName())))
		return nil
	}

	if _, err := idx.Remove(pos); err != nil {
		return err
	}
	s.println(successLine("Removed " + entry.DisplayName()))
	return nil
}

func runList(s *Shell, raw []string) error {
	fs := newFlagSet("list")
	sortBy := fs.StringP("sort", "s", "", "sort by size or name")
	detailed := fs.BoolP("detailed", "d", false, "show size and modification time")
	if err := parseFlags(fs, raw); err != nil {
		return err
	}

	idx, err := s.index()
	if err != nil {
		return err
	}

	entries := idx.List()
	files := make([]indexedFile, len(entries))
	for i, e := range entries {
		files[i] = indexedFile{Pos: i, Entry: e}
	}

	switch *sortBy {
	case "":
	case "size":
		sort.SliceStable(files, func(i, j int) bool { return files[i].Entry.Size > files[j].Entry.Size })
	case "name":
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].Entry.DisplayName() < files[j].Entry.DisplayName()
		})
	default:
		return derrors.NewValidationError("sort", "expected size or name", nil)
	}

	s.println(renderIndex(files, *detailed))
	return nil
}

func runLoad(s *Shell, raw []string) error {
	fs := newFlagSet("load")
	file := fs.StringP("file", "f", "", "results file")
	if err := parseFlags(fs, raw); err != nil {
		return err
	}

	path := *file
	if path == "" {
		path = fs.Arg(0)
	}
	if path == "" {
		return derrors.NewValidationError("file", "usage: load <path>", nil)
	}
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	n, err := s.state.LoadResults(path)
	if err != nil {
		return err
	}
	s.println(successLine(fmt.Sprintf("Loaded %d result(s) from %s", n, filepath.Base(path))))
	return nil
}

func runFilter(s *Shell, raw []string) error {
	fs := newFlagSet("filter")
	event := fs.String("event", "", "event type")
	minConf := fs.Float64P("conf", "c", 0, "minimum confidence")
	limit := fs.IntP("limit", "l", 0, "maximum results shown")
	if err := parseFlags(fs, raw); err != nil {
		return err
	}

	status := fs.Arg(0)
	return s.showMatching(fs, *limit, func(r session.Record) bool {
		if status != "" && r.String("status") != status {
			return false
		}
		if *event != "" && r.String("event") != *event {
			return false
		}
		if *minConf > 0 {
			conf, ok := confidence(r)
			return ok && conf >= *minConf
		}
		return true
	})
}

func runFind(s *Shell, raw []string) error {
	fs := newFlagSet("find")
	field := fs.StringP("field", "f", "", "search a single field")
	limit := fs.IntP("limit", "l", 0, "maximum results shown")
	if err := parseFlags(fs, raw); err != nil {
		return err
	}

	needle := strings.ToLower(strings.Join(fs.Args(), " "))
	if needle == "" {
		return derrors.NewValidationError("text", "usage: find <text> [--field NAME]", nil)
	}
	return s.showMatching(fs, *limit, func(r session.Record) bool {
		if *field != "" {
			return strings.Contains(strings.ToLower(r.String(*field)), needle)
		}
		for k := range r {
			if strings.Contains(strings.ToLower(r.String(k)), needle) {
				return true
			}
		}
		return false
	})
}

// showMatching prints the last results accepted by keep, honouring --limit
// and the max_display setting
func (s *Shell) showMatching(fs *pflag.FlagSet, limit int, keep func(session.Record) bool) error {
	results, err := s.state.LastResults()
	if err != nil {
		return err
	}
	if len(results) == 0 {
		s.println(warningLine("No results yet. Run 'load <file>' first."))
		return nil
	}

	settings := s.state.Settings()
	if !fs.Changed("limit") {
		limit = settings.MaxDisplay
	} else if limit < 1 {
		return derrors.NewValidationError("limit", "expected a positive integer", nil)
	}

	var matched []session.Record
	total := 0
	for _, r := range results {
		if !keep(r) {
			continue
		}
		total++
		if len(matched) < limit {
			matched = append(matched, r)
		}
	}

	s.println(renderResults(matched, total, settings.ShowConfidence))
	return nil
}

func runStats(s *Shell, raw []string) error {
	fs := newFlagSet("stats")
	detailed := fs.BoolP("detailed", "d", false, "break down by event")
	if err := parseFlags(fs, raw); err != nil {
		return err
	}

	results, err := s.state.LastResults()
	if err != nil {
		return err
	}
	if len(results) == 0 {
		s.println(warningLine("No results yet. Run 'load <file>' first."))
		return nil
	}

	s.println(sectionStyle.Render(fmt.Sprintf("Total results: %d", len(results))))
	keys, counts := session.CountBy(results, "status")
	s.println(renderCounts("By status:", keys, counts))
	if *detailed {
		keys, counts = session.CountBy(results, "event")
		s.println(renderCounts("By event:", keys, counts))
	}
	return nil
}

func (s *Shell) index() (*index.Index, error) {
	idx := s.state.Index()
	if idx == nil {
		return nil, derrors.NewSessionError("index", "file index not initialized", nil)
	}
	return idx, nil
}

// confidence reads the numeric confidence of a record
func confidence(r session.Record) (float64, bool) {
	switch v := r["confidence"].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
