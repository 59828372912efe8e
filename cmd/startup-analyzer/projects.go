// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/startup-analyzer/internal/project"
	"github.com/pdiddy/startup-analyzer/internal/report"
	"github.com/pdiddy/startup-analyzer/pkg/types"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage saved analysis projects (list, show, delete, export)",
	Long: `Projects manages the local SQLite database of saved analyses. Projects
are created by "analyze --save" or by POST /projects on the API server.`,
}

// --- list subcommand ---

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, newest first",
	Args:  cobra.NoArgs,
	RunE:  runProjectsList,
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")
	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	projects, err := store.List(cmd.Context(), project.ListOptions{
		Status: types.ProjectStatus(status),
		Query:  query,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return formatProjectList(os.Stdout, projects, jsonOutput)
}

func formatProjectList(w io.Writer, projects []types.Project, jsonOutput bool) error {
	if jsonOutput {
		if projects == nil {
			projects = []types.Project{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	}

	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects found.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-10s  %-16s  %s\n", "ID", "Status", "Created", "Idea")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, p := range projects {
		idea := []rune(p.StartupIdea)
		if len(idea) > 40 {
			idea = append(idea[:37], []rune("...")...)
		}
		fmt.Fprintf(w, "%-36s  %-10s  %-16s  %s\n",
			p.ID, p.Status, p.CreatedAt.Local().Format("2006-01-02 15:04"), string(idea))
	}
	fmt.Fprintf(w, "\n%d projects\n", len(projects))
	return nil
}

// --- show subcommand ---

var projectsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if err := checkOutput(output); err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		p, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(os.Stdout, output, p)
	},
}

// --- delete subcommand ---

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted project %s\n", args[0])
		return nil
	},
}

// --- export subcommand ---

var projectsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a project report to a file",
	Long: `Export writes a project as Markdown, YAML, or JSON. The default output
file is <id>.<ext> in the current directory; "-" writes to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectsExport,
}

func runProjectsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	ext := map[string]string{"markdown": "md", "yaml": "yaml", "json": "json"}[format]
	if ext == "" {
		return fmt.Errorf("%w: %q", report.ErrUnknownFormat, format)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if out == "-" {
		return report.Write(os.Stdout, types.ReportFormat(format), p)
	}
	if out == "" {
		out = p.ID + "." + ext
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := report.Write(f, types.ReportFormat(format), p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
	return nil
}

func init() {
	projectsListCmd.Flags().String("status", "", "filter by status: pending, analyzing, completed, failed")
	projectsListCmd.Flags().String("query", "", "filter by text in the startup idea")
	projectsListCmd.Flags().Int("limit", 0, "maximum number of projects (0 = all)")
	projectsListCmd.Flags().Bool("json", false, "output as JSON")

	projectsShowCmd.Flags().String("output", "text", "output format: text, markdown, yaml, json")

	projectsExportCmd.Flags().String("format", "markdown", "export format: markdown, yaml, json")
	projectsExportCmd.Flags().String("out", "", `output file ("-" for stdout)`)

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	projectsCmd.AddCommand(projectsExportCmd)
	rootCmd.AddCommand(projectsCmd)
}
