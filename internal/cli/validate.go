package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/devlog/internal/config"
)

// Validate validates a devlog settings file and prints the findings to out.
// An empty path validates the file found in the devlog config directory.
func Validate(configPath string, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	configPath = resolveConfigPath(configPath)
	if configPath == "" {
		return fmt.Errorf("no settings file found in %s", config.Dir())
	}

	_, _ = fmt.Fprintf(out, "Validating: %s\n\n", configPath)

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		_, _ = fmt.Fprintln(out, "✅ Settings are valid!")
		return nil
	}

	_, _ = fmt.Fprintln(out, "❌ Settings have errors:")
	for i, validationErr := range result.Errors {
		_, _ = fmt.Fprintf(out, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}
	_, _ = fmt.Fprintf(out, "\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
