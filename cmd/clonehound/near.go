package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/clonehound/clonehound/internal/output"
	"github.com/clonehound/clonehound/internal/progress"
	"github.com/clonehound/clonehound/pkg/analyzer/near"
	"github.com/clonehound/clonehound/pkg/source"
)

func nearCmd() *cli.Command {
	return &cli.Command{
		Name:      "near",
		Aliases:   []string{"nr"},
		Usage:     "Find textually near-identical functions",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:    "threshold",
				Aliases: []string{"t"},
				Usage:   "Similarity threshold (0.0-1.0); defaults to config",
			},
		},
		Action: runNearCmd,
	}
}

func runNearCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if !cfg.Analysis.Near {
		color.Yellow("Near analysis is disabled in config")
		return nil
	}

	threshold := cfg.Thresholds.NearSimilarity
	if c.IsSet("threshold") {
		threshold = c.Float64("threshold")
	}
	if threshold <= 0 || threshold > 1 {
		return fmt.Errorf("threshold must be in (0,1], got %v", threshold)
	}

	files, err := scanFiles(c, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	tracker := progress.NewTracker("Finding near duplicates...", len(files))
	a := near.New(near.WithThreshold(threshold), near.WithProgress(tracker.Tick))
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

	if len(analysis.Matches) == 0 && formatter.Format() == output.FormatText {
		color.Green("No near duplicates found in %d function(s) at threshold %.2f",
			analysis.TotalFunctions, threshold)
		return nil
	}

	var rows [][]string
	for _, match := range analysis.Matches {
		for _, cand := range match.Matches {
			rows = append(rows, []string{
				match.File,
				truncate(match.Function, 40),
				cand.File,
				truncate(cand.Function, 40),
				fmt.Sprintf("%.0f%%", cand.Score*100),
			})
		}
	}

	table := output.NewTable(
		"Near Duplicate Functions",
		[]string{"Source File", "Function", "Match File", "Match", "Similarity"},
		rows,
		[]string{
			fmt.Sprintf("Matches: %d", analysis.Summary.TotalMatches),
			fmt.Sprintf("Mean: %.0f%%", analysis.Summary.MeanScore*100),
			fmt.Sprintf("P95: %.0f%%", analysis.Summary.P95Score*100),
			fmt.Sprintf("Threshold: %.0f%%", threshold*100),
		},
		analysis,
	)

	return formatter.Output(table)
}
