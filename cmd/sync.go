package cmd

import (
	"fmt"

	"github.com/nais/projectsync/internal/config"
	"github.com/nais/projectsync/internal/jq"
	"github.com/nais/projectsync/internal/message"
	gcperrors "github.com/nais/projectsync/pkg/gcp/errors"
	"github.com/nais/projectsync/pkg/outputters"
	"github.com/nais/projectsync/pkg/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dryRun       bool
	outFile      string
	outputFormat string
	jqFilter     string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync and exit",
	Long: `Walk the organization's folders, list their projects and replace the
destination table. With --dry-run the records are written to stdout or
--out instead of BigQuery, optionally reduced through a --jq expression.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.FromViper(viper.GetViper())

		if jqFilter != "" && !dryRun {
			return fmt.Errorf("--jq requires --dry-run")
		}

		runner, closeClients, err := pipeline.Build(ctx, cfg, dryRun)
		if err != nil {
			return err
		}
		defer closeClients()

		message.Info("Syncing projects below %s", message.Emphasize(cfg.OrganizationID))
		result, err := runner.Run(ctx)
		if err != nil {
			message.Error("%v", err)
			if hint := gcperrors.Hint(err); hint != "" {
				message.Warning("%s", hint)
			}
			return err
		}

		if dryRun {
			if err := writeDryRun(result); err != nil {
				return err
			}
		}
		printSummary(result)
		return nil
	},
}

func writeDryRun(result *pipeline.Result) error {
	if jqFilter == "" {
		if err := outputters.WriteRecordsFile(outFile, outputFormat, result.Records); err != nil {
			return fmt.Errorf("failed to write records: %w", err)
		}
		return nil
	}
	filtered, err := jq.Apply(result.Records, jqFilter)
	if err != nil {
		return err
	}
	var out any = filtered
	if len(filtered) == 1 {
		out = filtered[0]
	}
	if err := outputters.WriteValueFile(outFile, outputFormat, out); err != nil {
		return fmt.Errorf("failed to write filtered records: %w", err)
	}
	return nil
}

func printSummary(result *pipeline.Result) {
	message.Section("Summary")
	message.Info("run:      %s", result.RunID)
	message.Info("folders:  %d", result.Folders)
	message.Info("projects: %d", result.Projects)
	message.Info("duration: %s", result.Duration)
	switch {
	case result.WriteErr != nil:
		message.Warning("rows were not written: %v", result.WriteErr)
	case result.Written:
		message.Success("replaced %s", result.Table)
	default:
		message.Info("dry run, %s not modified", result.Table)
	}
}

func init() {
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "enumerate projects without writing to BigQuery")
	syncCmd.Flags().StringVarP(&outFile, "out", "o", "-", "dry-run output file (- for stdout)")
	syncCmd.Flags().StringVarP(&outputFormat, "format", "f", outputters.FormatJSON, "dry-run output format: json or yaml")
	syncCmd.Flags().StringVar(&jqFilter, "jq", "", "jq expression applied to the dry-run records before writing")
	rootCmd.AddCommand(syncCmd)
}
