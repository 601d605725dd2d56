package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	gcptypes "github.com/nais/projectsync/pkg/types/gcp"
	"github.com/nais/projectsync/pkg/warehouse"
)

type FolderEnumerator interface {
	EnumerateFolders(ctx context.Context, root string) (*gcptypes.FolderIndex, error)
}

type ProjectEnumerator interface {
	EnumerateProjects(ctx context.Context, index *gcptypes.FolderIndex) ([]gcptypes.ProjectRecord, error)
}

type TableReplacer interface {
	Replace(ctx context.Context, tableID string, records []gcptypes.ProjectRecord) error
}

// Runner mirrors the projects below one organization into one table.
type Runner struct {
	Folders        FolderEnumerator
	Projects       ProjectEnumerator
	Replacer       TableReplacer // nil skips the table write (dry run)
	OrganizationID string
	TableID        string
	// StrictWrite returns insert failures from Run instead of only
	// recording them on the Result.
	StrictWrite bool
}

type Result struct {
	RunID    string                   `json:"runId"`
	Folders  int                      `json:"folders"`
	Projects int                      `json:"projects"`
	Table    string                   `json:"table,omitempty"`
	Written  bool                     `json:"written"`
	Duration time.Duration            `json:"duration"`
	WriteErr error                    `json:"-"`
	Records  []gcptypes.ProjectRecord `json:"-"`
}

// Run walks the folder tree, lists every project and replaces the table.
// Listing failures abort the run. Replace failures other than a failed
// insert are returned; a failed insert is returned only with StrictWrite.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString(), Table: r.TableID}
	log := slog.With("run", result.RunID)
	log.Info("Starting project sync", "organization", r.OrganizationID, "table", r.TableID)

	index, err := r.Folders.EnumerateFolders(ctx, r.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate folders: %w", err)
	}
	result.Folders = index.Count()

	records, err := r.Projects.EnumerateProjects(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate projects: %w", err)
	}
	result.Projects = len(records)
	result.Records = records
	log.Info("Enumerated projects", "folders", result.Folders, "projects", result.Projects)

	if r.Replacer == nil {
		result.Duration = time.Since(start)
		log.Info("Dry run, table not written", "duration", result.Duration)
		return result, nil
	}

	// Once the table is dropped it must be recreated, so the replace
	// ignores cancellation of ctx.
	if err := r.Replacer.Replace(context.WithoutCancel(ctx), r.TableID, records); err != nil {
		if !warehouse.IsWriteError(err) {
			return nil, err
		}
		result.WriteErr = err
		result.Duration = time.Since(start)
		log.Error("Failed to insert rows", "table", r.TableID, "error", err)
		if r.StrictWrite {
			return result, err
		}
		return result, nil
	}
	result.Written = true
	result.Duration = time.Since(start)
	log.Info("Project sync complete", "projects", result.Projects, "duration", result.Duration)
	return result, nil
}
