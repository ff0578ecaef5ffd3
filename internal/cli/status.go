package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/devlog/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	ConfigPath string
	Out        io.Writer
}

// Status displays where devlog keeps its settings, index and history
func Status(params StatusParams) error {
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	data, err := status.Collect(resolveConfigPath(params.ConfigPath))
	if err != nil {
		return fmt.Errorf("failed to collect status data: %w", err)
	}

	_, _ = fmt.Fprintln(out, status.Render(data))
	return nil
}
