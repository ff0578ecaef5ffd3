// Package main is the entry point for the devlog CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	devcli "github.com/NikitaCOEUR/devlog/internal/cli"
	"github.com/NikitaCOEUR/devlog/internal/trace"
	"github.com/NikitaCOEUR/devlog/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	stopTrace := trace.Init()

	err := newApp().Run(context.Background(), os.Args)
	stopTrace()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "devlog",
		Usage:                 "Interactive shell for indexing and exploring log analysis results",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error), overrides the log_level setting",
				Sources: cli.EnvVars("DEVLOG_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Settings file (defaults to the devlog config directory)",
				Sources: cli.EnvVars("DEVLOG_CONFIG"),
			},
			resultsFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return devcli.Shell(ctx, devcli.ShellParams{
				ConfigPath:  cmd.String("config"),
				LogLevel:    cmd.String("log-level"),
				ResultsFile: cmd.String("results"),
			})
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "Print completion candidates for a shell line",
				ArgsUsage: "<line>",
				Flags:     []cli.Flag{resultsFlag()},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return devcli.Complete(devcli.CompleteParams{
						ConfigPath:  cmd.String("config"),
						LogLevel:    cmd.String("log-level"),
						ResultsFile: cmd.String("results"),
						Text:        strings.Join(cmd.Args().Slice(), " "),
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show where devlog keeps its settings, index and history",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return devcli.Status(devcli.StatusParams{
						ConfigPath: cmd.String("config"),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a devlog settings file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.String("config")
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return devcli.Validate(configPath, nil)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for devlog settings files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return devcli.Schema(outputPath, nil)
				},
			},
		},
	}
}

func resultsFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "results",
		Aliases: []string{"r"},
		Usage:   "Load analysis results (YAML) into the session",
	}
}
