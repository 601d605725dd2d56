package hierarchy

import (
	"context"
	"fmt"

	gcptypes "github.com/nais/projectsync/pkg/types/gcp"
	"google.golang.org/api/cloudresourcemanager/v3"
	"google.golang.org/api/option"
)

// FolderLister lists the folders directly under a parent
// (organizations/{id} or folders/{id}).
type FolderLister interface {
	ListFolders(ctx context.Context, parent string) ([]*gcptypes.Folder, error)
}

// ProjectLister lists the projects directly under a parent folder.
type ProjectLister interface {
	ListProjects(ctx context.Context, parent string) ([]*gcptypes.Project, error)
}

// ResourceManager implements FolderLister and ProjectLister on top of the
// Cloud Resource Manager v3 REST API.
type ResourceManager struct {
	service *cloudresourcemanager.Service
}

var (
	_ FolderLister  = (*ResourceManager)(nil)
	_ ProjectLister = (*ResourceManager)(nil)
)

func NewResourceManager(ctx context.Context, clientOptions ...option.ClientOption) (*ResourceManager, error) {
	service, err := cloudresourcemanager.NewService(ctx, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource manager service: %w", err)
	}
	return &ResourceManager{service: service}, nil
}

func (r *ResourceManager) ListFolders(ctx context.Context, parent string) ([]*gcptypes.Folder, error) {
	var folders []*gcptypes.Folder
	listReq := r.service.Folders.List().Parent(parent)
	err := listReq.Pages(ctx, func(page *cloudresourcemanager.ListFoldersResponse) error {
		for _, folder := range page.Folders {
			folders = append(folders, &gcptypes.Folder{
				ID:          extractIDFromName(folder.Name),
				Name:        folder.Name,
				DisplayName: folder.DisplayName,
				Parent:      folder.Parent,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list folders in %s: %w", parent, err)
	}
	return folders, nil
}

func (r *ResourceManager) ListProjects(ctx context.Context, parent string) ([]*gcptypes.Project, error) {
	var projects []*gcptypes.Project
	listReq := r.service.Projects.List().Parent(parent)
	err := listReq.Pages(ctx, func(page *cloudresourcemanager.ListProjectsResponse) error {
		for _, project := range page.Projects {
			projects = append(projects, &gcptypes.Project{
				Name:        project.Name,
				ProjectID:   project.ProjectId,
				DisplayName: project.DisplayName,
				Parent:      project.Parent,
				State:       project.State,
				Labels:      project.Labels,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects in %s: %w", parent, err)
	}
	return projects, nil
}
