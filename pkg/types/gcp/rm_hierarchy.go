package gcptypes

// Folder is a node in the resource-manager hierarchy below an organization.
type Folder struct {
	ID          string `json:"id"`
	Name        string `json:"name"` // folders/{id}
	DisplayName string `json:"displayName,omitempty"`
	Parent      string `json:"parent,omitempty"`
}

// FolderIndex maps folder display names to the ids of every folder carrying
// that name. Names keep first-discovery order and ids keep discovery order
// under each name.
type FolderIndex struct {
	names []string
	ids   map[string][]string
}

func NewFolderIndex() *FolderIndex {
	return &FolderIndex{ids: make(map[string][]string)}
}

// Add appends id under name.
func (idx *FolderIndex) Add(name, id string) {
	if idx.ids == nil {
		idx.ids = make(map[string][]string)
	}
	if _, ok := idx.ids[name]; !ok {
		idx.names = append(idx.names, name)
	}
	idx.ids[name] = append(idx.ids[name], id)
}

// Merge concatenates every entry of other onto idx. Colliding names keep
// their existing ids first.
func (idx *FolderIndex) Merge(other *FolderIndex) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		for _, id := range other.ids[name] {
			idx.Add(name, id)
		}
	}
}

// Names returns display names in first-discovery order.
func (idx *FolderIndex) Names() []string {
	out := make([]string, len(idx.names))
	copy(out, idx.names)
	return out
}

// IDs returns the folder ids recorded under name.
func (idx *FolderIndex) IDs(name string) []string {
	ids := idx.ids[name]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Len is the number of distinct display names.
func (idx *FolderIndex) Len() int {
	return len(idx.names)
}

// Count is the total number of folder ids across all names.
func (idx *FolderIndex) Count() int {
	n := 0
	for _, ids := range idx.ids {
		n += len(ids)
	}
	return n
}

// Project is a project as returned by the listing API, before normalization.
type Project struct {
	Name        string            `json:"name"` // projects/{number}
	ProjectID   string            `json:"projectId"`
	DisplayName string            `json:"displayName,omitempty"`
	Parent      string            `json:"parent,omitempty"`
	State       string            `json:"state,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// ProjectRecord is one row of the destination table. Nil fields are NULL.
type ProjectRecord struct {
	Project     *string `json:"project"     yaml:"project"`
	ProjectID   *string `json:"project_id"  yaml:"project_id"`
	Team        *string `json:"team"        yaml:"team"`
	Tenant      *string `json:"tenant"      yaml:"tenant"`
	Environment *string `json:"environment" yaml:"environment"`
}

const (
	LabelTeam        = "team"
	LabelTenant      = "tenant"
	LabelEnvironment = "environment"
)

// LabelValue returns the value of key in labels, or nil when the key is absent.
func LabelValue(labels map[string]string, key string) *string {
	v, ok := labels[key]
	if !ok {
		return nil
	}
	return &v
}

func stringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToRecord normalizes a listed project into a table row.
func (p *Project) ToRecord() ProjectRecord {
	return ProjectRecord{
		Project:     stringOrNil(p.DisplayName),
		ProjectID:   stringOrNil(p.ProjectID),
		Team:        LabelValue(p.Labels, LabelTeam),
		Tenant:      LabelValue(p.Labels, LabelTenant),
		Environment: LabelValue(p.Labels, LabelEnvironment),
	}
}
