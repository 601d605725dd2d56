package hierarchy

import (
	"context"
	"log/slog"

	gcptypes "github.com/nais/projectsync/pkg/types/gcp"
)

// Walker enumerates every folder below an organization.
type Walker struct {
	lister FolderLister
}

func NewWalker(lister FolderLister) *Walker {
	return &Walker{lister: lister}
}

// EnumerateFolders walks the tree depth-first from root and indexes every
// folder by display name. root may be an organization number,
// organizations/{id} or folders/{id}; the root itself is not indexed.
// The first listing error aborts the walk.
func (w *Walker) EnumerateFolders(ctx context.Context, root string) (*gcptypes.FolderIndex, error) {
	parent := normalizeRoot(root)
	slog.Debug("Enumerating folders", "root", parent)
	index, err := w.walk(ctx, parent)
	if err != nil {
		return nil, err
	}
	slog.Info("Enumerated folders", "root", parent, "names", index.Len(), "folders", index.Count())
	return index, nil
}

func (w *Walker) walk(ctx context.Context, parent string) (*gcptypes.FolderIndex, error) {
	children, err := w.lister.ListFolders(ctx, parent)
	if err != nil {
		return nil, err
	}
	index := gcptypes.NewFolderIndex()
	for _, folder := range children {
		id := folder.ID
		if id == "" {
			id = extractIDFromName(folder.Name)
		}
		slog.Debug("Found folder", "id", id, "displayName", folder.DisplayName, "parent", parent)
		index.Add(folder.DisplayName, id)
		sub, err := w.walk(ctx, normalizeFolderName(id))
		if err != nil {
			return nil, err
		}
		index.Merge(sub)
	}
	return index, nil
}
