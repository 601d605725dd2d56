package base

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// ClientOptions resolves the client options shared by every GCP client.
// A credentials file wins; otherwise application default credentials must be
// discoverable.
func ClientOptions(ctx context.Context, credentialsFile string) ([]option.ClientOption, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
		slog.Debug("using GCP credentials file", "creds-file", credentialsFile)
		return opts, nil
	}
	creds, err := google.FindDefaultCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot find default credentials: %w", err)
	}
	slog.Debug("using application default credentials", "project", creds.ProjectID)
	return opts, nil
}
