package hierarchy

import (
	"context"
	"fmt"

	gcptypes "github.com/nais/projectsync/pkg/types/gcp"
)

// fakeRM is an in-memory resource hierarchy keyed by parent resource name.
type fakeRM struct {
	folders     map[string][]*gcptypes.Folder
	projects    map[string][]*gcptypes.Project
	failParents map[string]error
	folderCalls []string
	projCalls   []string
}

func newFakeRM() *fakeRM {
	return &fakeRM{
		folders:     make(map[string][]*gcptypes.Folder),
		projects:    make(map[string][]*gcptypes.Project),
		failParents: make(map[string]error),
	}
}

func (f *fakeRM) addFolder(parent, id, displayName string) {
	f.folders[parent] = append(f.folders[parent], &gcptypes.Folder{
		ID:          id,
		Name:        "folders/" + id,
		DisplayName: displayName,
		Parent:      parent,
	})
}

func (f *fakeRM) addProject(folderID string, p *gcptypes.Project) {
	parent := "folders/" + folderID
	p.Parent = parent
	f.projects[parent] = append(f.projects[parent], p)
}

func (f *fakeRM) ListFolders(_ context.Context, parent string) ([]*gcptypes.Folder, error) {
	f.folderCalls = append(f.folderCalls, parent)
	if err, ok := f.failParents[parent]; ok {
		return nil, fmt.Errorf("failed to list folders in %s: %w", parent, err)
	}
	return f.folders[parent], nil
}

func (f *fakeRM) ListProjects(_ context.Context, parent string) ([]*gcptypes.Project, error) {
	f.projCalls = append(f.projCalls, parent)
	if err, ok := f.failParents[parent]; ok {
		return nil, fmt.Errorf("failed to list projects in %s: %w", parent, err)
	}
	return f.projects[parent], nil
}
