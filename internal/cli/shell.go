package cli

import (
	"context"
	"os"

	"github.com/NikitaCOEUR/devlog/internal/shell"
)

// ShellParams contains parameters for the interactive shell
type ShellParams struct {
	ConfigPath  string
	LogLevel    string
	ResultsFile string
}

// Shell starts the interactive prompt
func Shell(ctx context.Context, params ShellParams) error {
	c, err := initializeComponents(params.ConfigPath, params.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	if params.ResultsFile != "" {
		if _, err := c.state.LoadResults(params.ResultsFile); err != nil {
			return err
		}
	}

	sh := shell.New(c.registry, c.state, c.engine, c.log, os.Stdout)
	return sh.Run(ctx)
}
