package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/clonehound/clonehound/internal/output"
	"github.com/clonehound/clonehound/internal/progress"
	"github.com/clonehound/clonehound/pkg/analyzer/structural"
	"github.com/clonehound/clonehound/pkg/source"
)

func structuralCmd() *cli.Command {
	return &cli.Command{
		Name:      "structural",
		Aliases:   []string{"st"},
		Usage:     "Find functions with identical shape after renaming and literal changes",
		ArgsUsage: "[path...]",
		Action:    runStructuralCmd,
	}
}

func runStructuralCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if !cfg.Analysis.Structural {
		color.Yellow("Structural analysis is disabled in config")
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

	tracker := progress.NewTracker("Finding structural duplicates...", len(files))
	a := structural.New(structural.WithProgress(tracker.Tick))
	defer a.Close()
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
		color.Green("No structural duplicates found in %d function(s)", analysis.TotalFunctions)
		return nil
	}

	var rows [][]string
	for _, group := range analysis.Groups {
		locations := make([]string, 0, len(group.Occurrences))
		for _, occ := range group.Occurrences {
			locations = append(locations, occ.File)
		}
		rows = append(rows, []string{
			truncate(group.CanonicalCode, 60),
			fmt.Sprintf("%d", len(group.Occurrences)),
			strings.Join(locations, ", "),
		})
	}

	table := output.NewTable(
		"Structural Duplicate Functions",
		[]string{"Canonical Form", "Occurrences", "Locations"},
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
