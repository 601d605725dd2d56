package cmd

import (
	"fmt"

	"github.com/nais/projectsync/internal/config"
	"github.com/nais/projectsync/internal/server"
	"github.com/nais/projectsync/pkg/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sync as an HTTP trigger",
	Long: `Start an HTTP server. Every request to / runs one sync and answers
{"success": true}. Configuration, including the secret, is resolved once at
startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.FromViper(viper.GetViper())

		runner, closeClients, err := pipeline.Build(ctx, cfg, false)
		if err != nil {
			return err
		}
		defer closeClients()

		return server.New(runner).ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port))
	},
}

func init() {
	serveCmd.Flags().Int(config.KeyPort, config.DefaultPort, "port to listen on ($PORT is honoured)")
	cobra.CheckErr(viper.BindPFlag(config.KeyPort, serveCmd.Flags().Lookup(config.KeyPort)))
	rootCmd.AddCommand(serveCmd)
}
