package status

import (
	"github.com/NikitaCOEUR/devlog/internal/config"
	"github.com/NikitaCOEUR/devlog/internal/index"
)

// Data contains all the information to display in status
type Data struct {
	// Header
	Version string

	// Settings
	ConfigDir    string
	ConfigPath   string // empty when running on built-in defaults
	ConfigErrors []config.ValidationError
	Settings     *config.Settings

	// Index
	Index *index.Info

	// History
	HistoryEntries int

	// Commands
	Commands int
	Aliases  int
}

// ConfigValid reports whether the settings file passed validation
func (d *Data) ConfigValid() bool {
	return len(d.ConfigErrors) == 0
}
