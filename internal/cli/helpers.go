// Package cli implements the actions behind the devlog command line.
package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/devlog/internal/completion"
	"github.com/NikitaCOEUR/devlog/internal/config"
	"github.com/NikitaCOEUR/devlog/internal/index"
	"github.com/NikitaCOEUR/devlog/internal/logger"
	"github.com/NikitaCOEUR/devlog/internal/registry"
	"github.com/NikitaCOEUR/devlog/internal/session"
)

// components holds initialized devlog components
type components struct {
	configPath string
	settings   *config.Settings
	registry   *registry.Registry
	state      *session.State
	engine     *completion.Engine
	log        *logger.Logger
}

// resolveConfigPath returns the explicit path, or the settings file found in
// the devlog config directory, or "" for built-in defaults
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return config.FindConfigFile(config.Dir())
}

// initializeComponents loads settings and wires the session together.
// logLevel overrides the log_level setting when not empty.
func initializeComponents(configPath, logLevel string, logOut io.Writer) (*components, error) {
	path := resolveConfigPath(configPath)

	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if logLevel == "" {
		logLevel = settings.LogLevel
	}
	log := logger.New(logLevel, logOut)
	log.Debug().Str("config", path).Str("index", settings.IndexFile).Msg("Settings loaded")

	idx, err := index.New(settings.IndexFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize index: %w", err)
	}

	return &components{
		configPath: path,
		settings:   settings,
		registry:   registry.Default(),
		state:      session.New(settings, idx),
		engine:     completion.NewEngine(completion.WithLogger(log)),
		log:        log,
	}, nil
}
