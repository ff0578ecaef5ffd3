package completion

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// MaxPathEntries bounds the suggestions of one directory listing
const MaxPathEntries = 200

// FSPathCompleter completes paths from the local filesystem.
// Values keep the prefix as typed ("~/lo" completes to "~/logs/").
type FSPathCompleter struct {
	MaxEntries int
}

// NewFSPathCompleter creates a path completer with the default bound
func NewFSPathCompleter() *FSPathCompleter {
	return &FSPathCompleter{MaxEntries: MaxPathEntries}
}

// CandidatesFor lists the entries matching prefix. Directories end in "/".
// Hidden entries are only listed when the typed name starts with ".".
func (c *FSPathCompleter) CandidatesFor(prefix string) []Suggestion {
	if prefix == "~" {
		return []Suggestion{{Value: "~/", Description: "dir"}}
	}

	expanded, err := homedir.Expand(prefix)
	if err != nil {
		return nil
	}

	typedDir, base := splitPath(prefix)
	listDir, _ := splitPath(expanded)
	if listDir == "" {
		listDir = "."
	}

	entries, err := os.ReadDir(listDir)
	if err != nil {
		return nil
	}

	limit := c.MaxEntries
	if limit <= 0 {
		limit = MaxPathEntries
	}

	var out []Suggestion
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}

		s := Suggestion{Value: typedDir + name, Description: "file"}
		if isDir(listDir, entry) {
			s.Value += "/"
			s.Description = "dir"
		}
		out = append(out, s)

		if len(out) >= limit {
			break
		}
	}
	return out
}

// splitPath splits after the last separator: "a/b/c" -> "a/b/", "c"
func splitPath(p string) (string, string) {
	i := strings.LastIndex(p, "/")
	return p[:i+1], p[i+1:]
}

func isDir(dir string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}
