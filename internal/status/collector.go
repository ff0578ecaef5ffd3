// Package status provides status information collection and display for devlog.
package status

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/NikitaCOEUR/devlog/internal/config"
	"github.com/NikitaCOEUR/devlog/internal/index"
	"github.com/NikitaCOEUR/devlog/internal/registry"
	"github.com/NikitaCOEUR/devlog/pkg/version"
)

// Collect gathers status information for the given settings file.
// An empty path reports the built-in defaults.
func Collect(configPath string) (*Data, error) {
	data := &Data{
		Version:    version.Version,
		ConfigDir:  config.Dir(),
		ConfigPath: configPath,
	}

	collectSettings(data)

	info, err := index.GetInfo(data.Settings.IndexFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	data.Index = info

	data.HistoryEntries = countLines(data.Settings.HistoryFile)

	for _, cmd := range registry.Default().All() {
		data.Commands++
		data.Aliases += len(cmd.Aliases)
	}

	return data, nil
}

// collectSettings validates the settings file and falls back to the
// defaults when it cannot be loaded
func collectSettings(data *Data) {
	if data.ConfigPath != "" {
		result, err := config.Validate(data.ConfigPath)
		switch {
		case err != nil:
			data.ConfigErrors = []config.ValidationError{{Field: "file", Message: err.Error()}}
		case !result.Valid:
			data.ConfigErrors = result.Errors
		}
	}

	settings, err := config.Load(data.ConfigPath)
	if err != nil {
		settings = config.Defaults()
	}
	data.Settings = settings
}

// countLines counts non-empty lines, 0 when the file is unreadable
func countLines(path string) int {
	file, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer func() { _ = file.Close() }()

	n := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			n++
		}
	}
	return n
}
