// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/startup-analyzer/internal/prompts"
	"github.com/pdiddy/startup-analyzer/pkg/types"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Inspect the built-in role instructions",
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pipeline stages in execution order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for i, id := range prompts.Stages() {
			fmt.Printf("%d. %-22s %s\n", i+1, id, prompts.Title(id))
		}
	},
}

// promptEntry is the YAML form of one role instruction.
type promptEntry struct {
	Stage       types.StageID `yaml:"stage"`
	Title       string        `yaml:"title"`
	Instruction string        `yaml:"instruction"`
}

var promptsShowCmd = &cobra.Command{
	Use:   "show <stage>",
	Short: "Print the role instruction for a stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := types.StageID(args[0])
		text, err := prompts.Lookup(id)
		if err != nil {
			return err
		}

		asYAML, _ := cmd.Flags().GetBool("yaml")
		if !asYAML {
			fmt.Println(text)
			return nil
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(promptEntry{Stage: id, Title: prompts.Title(id), Instruction: text}); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	promptsShowCmd.Flags().Bool("yaml", false, "print stage, title, and instruction as YAML")

	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsShowCmd)
	rootCmd.AddCommand(promptsCmd)
}
