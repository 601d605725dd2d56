package cmd

import (
	"fmt"
	"os"

	"github.com/nais/projectsync/internal/config"
	"github.com/nais/projectsync/internal/logs"
	"github.com/nais/projectsync/internal/message"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	quiet   bool
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "projectsync",
	Short: "Mirror GCP project metadata from an organization into BigQuery.",
	Long: `projectsync walks every folder below a GCP organization, lists the
projects in each folder and replaces a BigQuery table with one row per
project (name, id and the team, tenant and environment labels).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		message.SetQuiet(quiet)
		message.SetNoColor(noColor)
		_, err := logs.Setup(os.Stderr, viper.GetString(config.KeyLogLevel), viper.GetString(config.KeyLogFormat))
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.projectsync.yaml)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")

	flags.String(config.KeyOrganizationID, "", "GCP organization id (123456789 or organizations/123456789)")
	flags.String(config.KeyTableID, config.DefaultTableID, "destination BigQuery table (project.dataset.table)")
	flags.String(config.KeySecretName, "", "Secret Manager secret holding KEY=VALUE configuration (projects/p/secrets/s[/versions/v])")
	flags.String(config.KeyCredentialsFile, "", "path to a GCP credentials file (default: application default credentials)")
	flags.String(config.KeyBillingProject, "", "project BigQuery jobs are billed to (default: the table's project)")
	flags.Bool(config.KeyIncludeSysProjects, true, "include Google-managed system projects (sys-, gcf-, ...)")
	flags.Bool(config.KeyActiveOnly, false, "skip projects that are not ACTIVE")
	flags.Bool(config.KeyStrictWrite, false, "fail the run when inserting rows fails")
	flags.String(config.KeyReplaceMode, "recreate", "how the table is replaced: recreate (drop, create, insert) or truncate (single load job)")
	flags.String(config.KeyLogLevel, "info", "log level: debug, info, warn, error")
	flags.String(config.KeyLogFormat, "text", "log format: text or json")

	cobra.CheckErr(viper.BindPFlags(flags))
	config.SetDefaults(viper.GetViper())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".projectsync")
	}

	cobra.CheckErr(config.BindEnv(viper.GetViper()))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
