package cmd

import (
	"fmt"

	"github.com/nais/projectsync/internal/message"
	"github.com/nais/projectsync/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docDir string

var docCmd = &cobra.Command{
	Use:   "gendoc",
	Short: "Generate Markdown documentation",
	Long:  `Generate Markdown documentation for projectsync and its subcommands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		excludedCmds := []string{"gendoc", "completion"}
		for _, c := range rootCmd.Commands() {
			for _, e := range excludedCmds {
				if c.Name() == e {
					rootCmd.RemoveCommand(c)
					break
				}
			}
		}

		if err := utils.EnsureDirectoryExists(docDir); err != nil {
			return fmt.Errorf("failed to create %s: %w", docDir, err)
		}
		rootCmd.DisableAutoGenTag = true
		if err := doc.GenMarkdownTree(rootCmd, docDir); err != nil {
			return fmt.Errorf("failed to generate documentation: %w", err)
		}
		message.Success("Documentation generated in %s", docDir)
		return nil
	},
}

func init() {
	docCmd.Flags().StringVar(&docDir, "dir", "./docs", "output directory")
	rootCmd.AddCommand(docCmd)
}
