// Package config handles loading and updating devlog shell settings.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NikitaCOEUR/devlog/internal/derrors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"
)

//go:embed defaults.yml
var defaultsYAML []byte

// SupportedConfigNames contains supported settings file names (in order of preference)
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// Setting keys
const (
	KeyMaxDisplay     = "max_display"
	KeyAutoSave       = "auto_save"
	KeyShowConfidence = "show_confidence"
	KeyHistoryFile    = "history_file"
	KeyIndexFile      = "index_file"
	KeyLogLevel       = "log_level"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Settings holds the shell's runtime options
type Settings struct {
	MaxDisplay     int    `koanf:"max_display"`
	AutoSave       bool   `koanf:"auto_save"`
	ShowConfidence bool   `koanf:"show_confidence"`
	HistoryFile    string `koanf:"history_file"`
	IndexFile      string `koanf:"index_file"`
	LogLevel       string `koanf:"log_level"`
}

// Defaults returns the built-in settings
func Defaults() *Settings {
	s, err := Load("")
	if err != nil {
		// defaults.yml is embedded; failing to parse it is a build defect
		panic(err)
	}
	return s
}

// Load reads the embedded defaults and overlays the settings file at path.
// An empty path returns the defaults.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, derrors.NewConfigurationError("defaults.yml", "failed to load defaults", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, derrors.NewConfigurationError(path, "failed to load config", err)
		}
	}

	s := &Settings{}
	if err := k.Unmarshal("", s); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}

	s.HistoryFile = expandHome(s.HistoryFile)
	s.IndexFile = expandHome(s.IndexFile)

	return s, nil
}

// parserFor picks the koanf parser from the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, derrors.NewConfigurationError(path, fmt.Sprintf("unsupported config format: %s", filepath.Ext(path)), nil)
	}
}

func expandHome(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// Dir returns the devlog settings directory, honouring XDG_CONFIG_HOME
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := homedir.Dir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "devlog")
}

// FindConfigFile returns the first supported settings file in dir, or "" if none
func FindConfigFile(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Values returns the settings as the key/value mapping shown by
// `config --show` and offered by `config --set` completion
func (s *Settings) Values() map[string]any {
	return map[string]any{
		KeyMaxDisplay:     s.MaxDisplay,
		KeyAutoSave:       s.AutoSave,
		KeyShowConfidence: s.ShowConfidence,
		KeyHistoryFile:    s.HistoryFile,
		KeyIndexFile:      s.IndexFile,
		KeyLogLevel:       s.LogLevel,
	}
}

// Set parses raw and assigns it to the setting named key
func (s *Settings) Set(key, raw string) error {
	raw = strings.TrimSpace(raw)

	switch key {
	case KeyMaxDisplay:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return derrors.NewValidationError(key, "expected an integer", err)
		}
		if n < 1 {
			return derrors.NewValidationError(key, "must be at least 1", nil)
		}
		s.MaxDisplay = n
	case KeyAutoSave, KeyShowConfidence:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return derrors.NewValidationError(key, "expected true or false", err)
		}
		if key == KeyAutoSave {
			s.AutoSave = b
		} else {
			s.ShowConfidence = b
		}
	case KeyHistoryFile, KeyIndexFile:
		if raw == "" {
			return derrors.NewValidationError(key, "must not be empty", nil)
		}
		if key == KeyHistoryFile {
			s.HistoryFile = expandHome(raw)
		} else {
			s.IndexFile = expandHome(raw)
		}
	case KeyLogLevel:
		level := strings.ToLower(raw)
		for _, valid := range logLevels {
			if level == valid {
				s.LogLevel = level
				return nil
			}
		}
		return derrors.NewValidationError(key, fmt.Sprintf("expected one of %s", strings.Join(logLevels, ", ")), nil)
	default:
		return derrors.NewNotFoundError(key, fmt.Sprintf("unknown setting %q", key))
	}

	return nil
}

// Clone returns an independent copy of the settings
func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}
