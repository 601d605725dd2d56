package hierarchy

import (
	"context"
	"log/slog"

	gcptypes "github.com/nais/projectsync/pkg/types/gcp"
)

const stateActive = "ACTIVE"

// Enumerator lists the projects parented by every folder of a FolderIndex.
type Enumerator struct {
	lister             ProjectLister
	IncludeSysProjects bool
	ActiveOnly         bool
}

func NewEnumerator(lister ProjectLister) *Enumerator {
	return &Enumerator{
		lister:             lister,
		IncludeSysProjects: true,
	}
}

// EnumerateProjects visits folders in index order and returns one record per
// project found. The first listing error aborts and nothing is returned.
func (e *Enumerator) EnumerateProjects(ctx context.Context, index *gcptypes.FolderIndex) ([]gcptypes.ProjectRecord, error) {
	records := make([]gcptypes.ProjectRecord, 0)
	for _, name := range index.Names() {
		for _, id := range index.IDs(name) {
			projects, err := e.lister.ListProjects(ctx, normalizeFolderName(id))
			if err != nil {
				return nil, err
			}
			for _, project := range projects {
				if e.skip(project) {
					continue
				}
				records = append(records, project.ToRecord())
			}
			slog.Info("Processed folder", "folder", name, "id", id, "projects", len(records))
		}
	}
	return records, nil
}

func (e *Enumerator) skip(project *gcptypes.Project) bool {
	if !e.IncludeSysProjects && IsSysProject(project.ProjectID, project.DisplayName) {
		slog.Debug("Skipping system project", "projectId", project.ProjectID, "name", project.DisplayName)
		return true
	}
	if e.ActiveOnly && project.State != "" && project.State != stateActive {
		slog.Debug("Skipping inactive project", "projectId", project.ProjectID, "state", project.State)
		return true
	}
	return false
}
