package cmd

import (
	"testing"

	"github.com/nais/projectsync/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"sync", "serve", "version", "gendoc"})
}

func TestPersistentFlagsMatchConfigKeys(t *testing.T) {
	for _, key := range []string{
		config.KeyOrganizationID,
		config.KeyTableID,
		config.KeySecretName,
		config.KeyCredentialsFile,
		config.KeyBillingProject,
		config.KeyIncludeSysProjects,
		config.KeyActiveOnly,
		config.KeyStrictWrite,
		config.KeyReplaceMode,
		config.KeyLogLevel,
		config.KeyLogFormat,
	} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(key), key)
	}
	require.NotNil(t, serveCmd.Flags().Lookup(config.KeyPort))
	assert.Equal(t, config.DefaultTableID, rootCmd.PersistentFlags().Lookup(config.KeyTableID).DefValue)
}

func TestSyncFlags(t *testing.T) {
	assert.Equal(t, "false", syncCmd.Flags().Lookup("dry-run").DefValue)
	assert.Equal(t, "-", syncCmd.Flags().Lookup("out").DefValue)
	assert.Equal(t, "json", syncCmd.Flags().Lookup("format").DefValue)
	assert.Equal(t, "", syncCmd.Flags().Lookup("jq").DefValue)
}
