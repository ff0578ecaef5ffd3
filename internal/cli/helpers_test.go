package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeSettings writes a settings file whose index and history live in dir
func writeSettings(t *testing.T, dir, extra string) string {
	t.Helper()
	content := "index_file: " + filepath.Join(dir, "index.json") + "\n" +
		"history_file: " + filepath.Join(dir, "history") + "\n" + extra
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
