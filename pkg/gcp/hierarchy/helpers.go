package hierarchy

import (
	"strings"
)

const (
	orgPrefix    = "organizations/"
	folderPrefix = "folders/"
)

var sysPatterns = []string{
	"sys-",
	"script-editor-",
	"apps-script-",
	"system-",
	"firebase-",
	"cloud-build-",
	"gcf-",
	"gae-",
}

// normalizeRoot accepts a bare organization number, organizations/{id} or
// folders/{id} and returns the resource name to list under.
func normalizeRoot(root string) string {
	root = strings.TrimSpace(root)
	if strings.HasPrefix(root, orgPrefix) || strings.HasPrefix(root, folderPrefix) {
		return root
	}
	return orgPrefix + root
}

func normalizeFolderName(folderID string) string {
	if strings.HasPrefix(folderID, folderPrefix) {
		return folderID
	}
	return folderPrefix + folderID
}

// extractIDFromName returns the trailing path segment of a resource name.
func extractIDFromName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// IsSysProject reports whether a project looks like one created by Google
// tooling (Apps Script, Cloud Functions, ...) rather than by a team.
func IsSysProject(projectID, displayName string) bool {
	projectIDLower := strings.ToLower(projectID)
	displayNameLower := strings.ToLower(displayName)
	for _, pattern := range sysPatterns {
		if strings.HasPrefix(projectIDLower, pattern) || strings.HasPrefix(displayNameLower, pattern) {
			return true
		}
	}
	return false
}
