package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/clonehound/clonehound/internal/output"
	"github.com/clonehound/clonehound/internal/progress"
	"github.com/clonehound/clonehound/pkg/analyzer/exact"
	"github.com/clonehound/clonehound/pkg/source"
)

func exactCmd() *cli.Command {
	return &cli.Command{
		Name:      "exact",
		Aliases:   []string{"ex"},
		Usage:     "Find byte-identical functions across files",
		ArgsUsage: "[path...]",
		Action:    runExactCmd,
	}
}

func runExactCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if !cfg.Analysis.Exact {
		color.Yellow("Exact analysis is disabled in config")
		return nil
	}

	files, err := scanFiles(c, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	tracker := progress.NewTracker("Finding exact duplicates...", len(files))
	a := exact.New(exact.WithProgress(tracker.Tick))
	analysis, err := a.Analyze(c.Context, files, source.NewFilesystem())
	tracker.FinishSuccess()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	reportEvents(c, cfg, analysis.Events)

	if len(analysis.Groups) == 0 && formatter.Format() == output.FormatText {
		color.Green("No exact duplicates found in %d function(s)", analysis.TotalFunctions)
		return nil
	}

	var rows [][]string
	for _, group := range analysis.Groups {
		rows = append(rows, []string{
			truncate(group.Code, 60),
			fmt.Sprintf("%d", len(group.Files)),
			strings.Join(group.Files, ", "),
		})
	}

	table := output.NewTable(
		"Exact Duplicate Functions",
		[]string{"Code", "Files", "Locations"},
		rows,
		[]string{
			fmt.Sprintf("Groups: %d", len(analysis.Groups)),
			fmt.Sprintf("Functions: %d", analysis.TotalFunctions),
			fmt.Sprintf("Files Scanned: %d", analysis.TotalFilesScanned),
		},
		analysis,
	)

	return formatter.Output(table)
}
