package shell

import (
	"io"

	"github.com/NikitaCOEUR/devlog/internal/derrors"
	"github.com/spf13/pflag"
)

// newFlagSet creates the flag set for one in-shell command. Flags may appear
// anywhere among the arguments, as completion suggests them after positional
// values too. Parse errors are returned, never printed.
func newFlagSet(command string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(command, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(true)
	return fs
}

// parseFlags parses raw into fs; "--name=value" and "--name value" are both
// accepted and "--" ends flags
func parseFlags(fs *pflag.FlagSet, raw []string) error {
	if err := fs.Parse(raw); err != nil {
		return derrors.NewValidationError(fs.Name(), err.Error(), err)
	}
	return nil
}
