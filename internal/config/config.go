package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyOrganizationID     = "organization-id"
	KeyTableID            = "table-id"
	KeySecretName         = "secret-name"
	KeyCredentialsFile    = "creds-file"
	KeyBillingProject     = "billing-project"
	KeyIncludeSysProjects = "include-sys-projects"
	KeyActiveOnly         = "active-only"
	KeyStrictWrite        = "strict-write"
	KeyReplaceMode        = "replace-mode"
	KeyPort               = "port"
	KeyLogLevel           = "log-level"
	KeyLogFormat          = "log-format"

	EnvPrefix = "PROJECTSYNC"

	DefaultTableID = "nais-analyse-prod-2dcc.navbilling.gcp_projects"
	DefaultPort    = 8080
)

// secretKeys maps KEY=VALUE names found in the secret payload to config
// keys. When several names map to the same key, the earlier name wins.
var secretKeys = []struct {
	name string
	key  string
}{
	{"ORGANIZATION_ID", KeyOrganizationID},
	{"ORG_ID", KeyOrganizationID},
	{"TABLE_ID", KeyTableID},
	{"BILLING_PROJECT", KeyBillingProject},
}

func isSecretKey(name string) bool {
	for _, sk := range secretKeys {
		if sk.name == name {
			return true
		}
	}
	return false
}

// Config is resolved once at startup and passed to the pipeline.
type Config struct {
	OrganizationID     string
	TableID            string
	SecretName         string
	CredentialsFile    string
	BillingProject     string
	IncludeSysProjects bool
	ActiveOnly         bool
	StrictWrite        bool
	ReplaceMode        string
	Port               int
	LogLevel           string
	LogFormat          string

	// Extra holds secret values that do not map to a known key.
	Extra map[string]string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTableID, DefaultTableID)
	v.SetDefault(KeyIncludeSysProjects, true)
	v.SetDefault(KeyReplaceMode, "recreate")
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// BindEnv makes every key readable from PROJECTSYNC_<KEY> with dashes as
// underscores. PORT is honoured for serverless runtimes.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyPort, EnvPrefix+"_PORT", "PORT"); err != nil {
		return fmt.Errorf("failed to bind port env: %w", err)
	}
	return nil
}

// FromViper reads a Config out of v.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		OrganizationID:     v.GetString(KeyOrganizationID),
		TableID:            v.GetString(KeyTableID),
		SecretName:         v.GetString(KeySecretName),
		CredentialsFile:    v.GetString(KeyCredentialsFile),
		BillingProject:     v.GetString(KeyBillingProject),
		IncludeSysProjects: v.GetBool(KeyIncludeSysProjects),
		ActiveOnly:         v.GetBool(KeyActiveOnly),
		StrictWrite:        v.GetBool(KeyStrictWrite),
		ReplaceMode:        v.GetString(KeyReplaceMode),
		Port:               v.GetInt(KeyPort),
		LogLevel:           v.GetString(KeyLogLevel),
		LogFormat:          v.GetString(KeyLogFormat),
		Extra:              map[string]string{},
	}
}

// ApplySecret merges values loaded from the secret payload. Secret values
// only fill settings that are still empty, so flags and env win.
func (c *Config) ApplySecret(values map[string]string) {
	if c.Extra == nil {
		c.Extra = map[string]string{}
	}
	known := make(map[string]string, len(secretKeys))
	for k, val := range values {
		name := strings.ToUpper(k)
		if !isSecretKey(name) {
			c.Extra[k] = val
			continue
		}
		// an exact upper-case spelling beats other casings of the same name
		if _, seen := known[name]; !seen || k == name {
			known[name] = val
		}
	}
	for _, sk := range secretKeys {
		val, ok := known[sk.name]
		if !ok {
			continue
		}
		switch sk.key {
		case KeyOrganizationID:
			if c.OrganizationID == "" {
				c.OrganizationID = strings.TrimSpace(val)
			}
		case KeyTableID:
			if c.TableID == "" || c.TableID == DefaultTableID {
				c.TableID = strings.TrimSpace(val)
			}
		case KeyBillingProject:
			if c.BillingProject == "" {
				c.BillingProject = strings.TrimSpace(val)
			}
		}
	}
}

// Validate checks the settings a sync run needs.
func (c *Config) Validate() error {
	if c.OrganizationID == "" {
		return fmt.Errorf("%s is required (flag, %s_ORGANIZATION_ID or ORGANIZATION_ID in the secret)", KeyOrganizationID, EnvPrefix)
	}
	if c.TableID == "" {
		return fmt.Errorf("%s is required", KeyTableID)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid %s %d", KeyPort, c.Port)
	}
	return nil
}

// QuotaProject returns the project BigQuery jobs are billed to: the billing
// project when set, else the destination table's project.
func (c *Config) QuotaProject(tableProject string) string {
	if c.BillingProject != "" {
		return c.BillingProject
	}
	return tableProject
}
