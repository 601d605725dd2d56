package hierarchy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gcperrors "github.com/nais/projectsync/pkg/gcp/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// newTestResourceManager serves a tiny hierarchy over the v3 REST surface:
//
//	organizations/1
//	├── folders/10 "platform"   (two pages of projects)
//	│   └── folders/11 "platform"
//	└── folders/20 "forbidden"  (listing projects is denied)
func newTestResourceManager(t *testing.T) *ResourceManager {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v3/folders", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		switch r.URL.Query().Get("parent") {
		case "organizations/1":
			body = map[string]any{"folders": []map[string]any{
				{"name": "folders/10", "displayName": "platform", "parent": "organizations/1"},
				{"name": "folders/20", "displayName": "forbidden", "parent": "organizations/1"},
			}}
		case "folders/10":
			body = map[string]any{"folders": []map[string]any{
				{"name": "folders/11", "displayName": "platform", "parent": "folders/10"},
			}}
		default:
			body = map[string]any{}
		}
		writeJSON(t, w, http.StatusOK, body)
	})
	mux.HandleFunc("/v3/projects", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("parent") {
		case "folders/10":
			if q.Get("pageToken") == "" {
				writeJSON(t, w, http.StatusOK, map[string]any{
					"projects": []map[string]any{
						{"name": "projects/100", "projectId": "aura-dev", "displayName": "aura-dev", "state": "ACTIVE",
							"labels": map[string]string{"team": "aura", "environment": "dev"}},
					},
					"nextPageToken": "page-2",
				})
				return
			}
			writeJSON(t, w, http.StatusOK, map[string]any{
				"projects": []map[string]any{
					{"name": "projects/101", "projectId": "aura-prod", "displayName": "aura-prod", "state": "ACTIVE"},
				},
			})
		case "folders/20":
			writeJSON(t, w, http.StatusForbidden, map[string]any{
				"error": map[string]any{"code": 403, "message": "permission denied", "status": "PERMISSION_DENIED"},
			})
		default:
			writeJSON(t, w, http.StatusOK, map[string]any{})
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	rm, err := NewResourceManager(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return rm
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestResourceManager_ListFolders(t *testing.T) {
	rm := newTestResourceManager(t)

	folders, err := rm.ListFolders(context.Background(), "organizations/1")
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, "10", folders[0].ID)
	assert.Equal(t, "platform", folders[0].DisplayName)
	assert.Equal(t, "folders/20", folders[1].Name)

	none, err := rm.ListFolders(context.Background(), "folders/11")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestResourceManager_ListProjectsFollowsPages(t *testing.T) {
	rm := newTestResourceManager(t)

	projects, err := rm.ListProjects(context.Background(), "folders/10")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "aura-dev", projects[0].ProjectID)
	assert.Equal(t, map[string]string{"team": "aura", "environment": "dev"}, projects[0].Labels)
	assert.Equal(t, "aura-prod", projects[1].ProjectID)
	assert.Nil(t, projects[1].Labels)
}

func TestResourceManager_ListProjectsError(t *testing.T) {
	rm := newTestResourceManager(t)

	_, err := rm.ListProjects(context.Background(), "folders/20")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list projects in folders/20")
	assert.True(t, gcperrors.IsPermissionDenied(err))
}

func TestResourceManager_WalkAndEnumerateEndToEnd(t *testing.T) {
	rm := newTestResourceManager(t)

	index, err := NewWalker(rm).EnumerateFolders(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "11"}, index.IDs("platform"))
	assert.Equal(t, []string{"20"}, index.IDs("forbidden"))

	// the denied folder aborts the whole enumeration
	_, err = NewEnumerator(rm).EnumerateProjects(context.Background(), index)
	require.Error(t, err)
	assert.True(t, gcperrors.IsPermissionDenied(err))
}
