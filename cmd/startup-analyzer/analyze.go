// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/startup-analyzer/internal/analysis"
	"github.com/pdiddy/startup-analyzer/internal/report"
	"github.com/pdiddy/startup-analyzer/internal/workflow"
	"github.com/pdiddy/startup-analyzer/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <idea>",
	Short: "Analyze a startup idea with the full nine-role pipeline",
	Long: `Analyze runs the startup idea through the six specialists, the strategist
synthesis, the critic review, and the final refinement. All nine calls run
in order; any failure aborts the analysis and nothing partial is printed.

Progress goes to stderr, the report to stdout. With --save the idea and its
result are stored as a project.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("market", "", "optional target market")
	analyzeCmd.Flags().String("output", "text", "output format: text, markdown, yaml, json")
	analyzeCmd.Flags().Bool("save", false, "store the idea and result as a project")
	analyzeCmd.Flags().Bool("quiet", false, "suppress progress output")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	idea := strings.Join(args, " ")
	market, _ := cmd.Flags().GetString("market")
	output, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")
	quiet, _ := cmd.Flags().GetBool("quiet")

	if err := checkOutput(output); err != nil {
		return err
	}

	var observer func(workflow.Event)
	if !quiet {
		observer = analysis.Progress(os.Stderr)
	}
	p, err := newPipeline(ctx, observer)
	if err != nil {
		return err
	}
	defer p.shutdown(context.WithoutCancel(ctx))

	var proj types.Project
	if save {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		proj, err = store.Create(ctx, idea, market)
		if err != nil {
			return err
		}
		if err := store.SetStatus(ctx, proj.ID, types.StatusAnalyzing, ""); err != nil {
			return err
		}

		res, runErr := p.analyzer.Run(ctx, idea, market)
		if runErr != nil {
			if err := store.SetStatus(context.WithoutCancel(ctx), proj.ID, types.StatusFailed, runErr.Error()); err != nil {
				logger.Error("recording failure", "project", proj.ID, "error", err)
			}
			return runErr
		}
		if err := store.SaveResult(ctx, proj.ID, res.Analysis); err != nil {
			return err
		}
		if proj, err = store.Get(ctx, proj.ID); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved project %s\n", proj.ID)
	} else {
		start := time.Now().UTC()
		res, err := p.analyzer.Run(ctx, idea, market)
		if err != nil {
			return err
		}
		proj = types.Project{
			StartupIdea:  res.StartupIdea,
			TargetMarket: res.TargetMarket,
			Analysis:     res.Analysis,
			Status:       types.StatusCompleted,
			CreatedAt:    start,
			UpdatedAt:    time.Now().UTC(),
		}
	}

	if !quiet {
		u := p.tracker.Usage()
		fmt.Fprintf(os.Stderr, "%d model calls, %d input tokens, %d output tokens\n",
			u.Calls, u.InputTokens, u.OutputTokens)
	}
	return render(os.Stdout, output, proj)
}

func checkOutput(output string) error {
	switch output {
	case "text", "markdown", "yaml", "json":
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, markdown, yaml, or json)", output)
}

// render writes proj to w. "text" is the Markdown report with formatting
// flattened for the terminal.
func render(w io.Writer, output string, proj types.Project) error {
	if output == "text" {
		_, err := fmt.Fprintln(w, report.PlainText(report.Markdown(proj)))
		return err
	}
	return report.Write(w, types.ReportFormat(output), proj)
}
