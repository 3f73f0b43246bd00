package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/clonehound/clonehound/internal/output"
	"github.com/clonehound/clonehound/internal/scanner"
	"github.com/clonehound/clonehound/pkg/analyzer"
	"github.com/clonehound/clonehound/pkg/config"
)

// getPaths returns paths from positional args, defaulting to ["."].
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig loads the configured or discovered config file.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// scanFiles discovers source files under the positional paths.
func scanFiles(c *cli.Context, cfg *config.Config) ([]string, error) {
	scan := scanner.New(cfg)
	files, err := scan.ScanPaths(getPaths(c))
	if err != nil {
		return nil, fmt.Errorf("failed to scan paths: %w", err)
	}
	return files, nil
}

// newFormatter builds a formatter from the global flags, falling back to
// config for anything not set on the command line.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := cfg.Output.Format
	if c.IsSet("format") {
		format = c.String("format")
	}
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), cfg.Output.Color)
}

// reportEvents prints skipped files/functions when verbose is on.
func reportEvents(c *cli.Context, cfg *config.Config, events []analyzer.Event) {
	verbose := cfg.Output.Verbose || c.Bool("verbose")
	if !verbose || len(events) == 0 {
		return
	}
	color.Yellow("Skipped %d unit(s):", len(events))
	for _, ev := range events {
		loc := ev.File
		if ev.Function != "" {
			loc += " " + ev.Function
		}
		fmt.Printf("  [%s] %s: %s\n", ev.Stage, loc, ev.Message)
	}
}

// truncate shortens code for table display.
func truncate(code string, max int) string {
	if len(code) <= max {
		return code
	}
	return code[:max-3] + "..."
}
