package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoot(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"123", "organizations/123"},
		{" 123 ", "organizations/123"},
		{"organizations/123", "organizations/123"},
		{"folders/9", "folders/9"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeRoot(tt.in), tt.in)
	}
}

func TestExtractIDFromName(t *testing.T) {
	assert.Equal(t, "123", extractIDFromName("folders/123"))
	assert.Equal(t, "123", extractIDFromName("123"))
	assert.Equal(t, "7", extractIDFromName("organizations/1/folders/7"))
}

func TestIsSysProject(t *testing.T) {
	tests := []struct {
		name        string
		projectID   string
		displayName string
		want        bool
	}{
		{name: "apps script", projectID: "sys-1234567890", want: true},
		{name: "display name match", projectID: "abc", displayName: "Apps-Script-Thing", want: true},
		{name: "cloud functions", projectID: "gcf-xyz", want: true},
		{name: "regular", projectID: "aura-prod", displayName: "aura-prod", want: false},
		{name: "contains but no prefix", projectID: "my-sys-project", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSysProject(tt.projectID, tt.displayName))
		})
	}
}
