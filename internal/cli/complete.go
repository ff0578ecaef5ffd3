package cli

import (
	"fmt"
	"io"
	"os"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	ConfigPath  string
	LogLevel    string
	ResultsFile string
	Text        string
	Out         io.Writer
}

// Complete prints the candidates for Text, one per line, as
// value<TAB>replace_from<TAB>meta
func Complete(params CompleteParams) error {
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	c, err := initializeComponents(params.ConfigPath, params.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	if params.ResultsFile != "" {
		if _, err := c.state.LoadResults(params.ResultsFile); err != nil {
			return err
		}
	}

	for cand := range c.engine.Complete(params.Text, c.registry, c.state.Snapshot()) {
		if _, err := fmt.Fprintf(out, "%s\t%d\t%s\n", cand.Value, cand.ReplaceFrom, cand.Meta); err != nil {
			return err
		}
	}
	return nil
}
