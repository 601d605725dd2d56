package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nais/projectsync/internal/config"
	"github.com/nais/projectsync/pkg/gcp/base"
	"github.com/nais/projectsync/pkg/gcp/hierarchy"
	"github.com/nais/projectsync/pkg/gcp/secrets"
	"github.com/nais/projectsync/pkg/warehouse"
	"google.golang.org/api/option"
)

// ResolveSecret loads cfg.SecretName, if set, and merges its values into cfg.
func ResolveSecret(ctx context.Context, cfg *config.Config, clientOptions ...option.ClientOption) error {
	if cfg.SecretName == "" {
		return nil
	}
	src, err := secrets.NewSource(ctx, clientOptions...)
	if err != nil {
		return err
	}
	defer src.Close()
	return applySecret(ctx, src, cfg)
}

func applySecret(ctx context.Context, src *secrets.Source, cfg *config.Config) error {
	values, err := src.Values(ctx, cfg.SecretName)
	if err != nil {
		return err
	}
	cfg.ApplySecret(values)
	slog.Debug("applied secret configuration", "secret", secrets.VersionName(cfg.SecretName), "extra", len(cfg.Extra))
	return nil
}

// Build resolves credentials and the secret, validates cfg and wires a Runner
// against the real Resource Manager and BigQuery APIs. With dryRun no
// BigQuery client is created. The returned closer releases the clients.
func Build(ctx context.Context, cfg *config.Config, dryRun bool) (*Runner, func() error, error) {
	clientOptions, err := base.ClientOptions(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, nil, err
	}
	if err := ResolveSecret(ctx, cfg, clientOptions...); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	rm, err := hierarchy.NewResourceManager(ctx, clientOptions...)
	if err != nil {
		return nil, nil, err
	}
	enumerator := hierarchy.NewEnumerator(rm)
	enumerator.IncludeSysProjects = cfg.IncludeSysProjects
	enumerator.ActiveOnly = cfg.ActiveOnly

	runner := &Runner{
		Folders:        hierarchy.NewWalker(rm),
		Projects:       enumerator,
		OrganizationID: cfg.OrganizationID,
		TableID:        cfg.TableID,
		StrictWrite:    cfg.StrictWrite,
	}
	closer := func() error { return nil }
	if dryRun {
		return runner, closer, nil
	}

	ref, err := warehouse.ParseTableID(cfg.TableID)
	if err != nil {
		return nil, nil, err
	}
	mode, err := warehouse.ParseMode(cfg.ReplaceMode)
	if err != nil {
		return nil, nil, err
	}
	store, err := warehouse.NewBigQueryStore(ctx, cfg.QuotaProject(ref.ProjectID), clientOptions...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up destination %s: %w", ref, err)
	}
	replacer := warehouse.NewReplacer(store)
	replacer.Mode = mode
	runner.Replacer = replacer
	return runner, store.Close, nil
}
