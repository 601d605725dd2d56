package warehouse

import (
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
)

// TableRef identifies a BigQuery table.
type TableRef struct {
	ProjectID string
	DatasetID string
	TableID   string
}

// ParseTableID accepts project.dataset.table or project:dataset.table.
func ParseTableID(id string) (TableRef, error) {
	id = strings.TrimSpace(id)
	normalized := strings.Replace(id, ":", ".", 1)
	parts := strings.Split(normalized, ".")
	if len(parts) != 3 {
		return TableRef{}, fmt.Errorf("invalid table id %q: expected project.dataset.table", id)
	}
	for _, p := range parts {
		if p == "" {
			return TableRef{}, fmt.Errorf("invalid table id %q: empty component", id)
		}
	}
	return TableRef{ProjectID: parts[0], DatasetID: parts[1], TableID: parts[2]}, nil
}

func (t TableRef) String() string {
	return fmt.Sprintf("%s.%s.%s", t.ProjectID, t.DatasetID, t.TableID)
}

// ProjectSchema is the destination table layout: five nullable strings.
var ProjectSchema = bigquery.Schema{
	{Name: "project", Type: bigquery.StringFieldType},
	{Name: "project_id", Type: bigquery.StringFieldType},
	{Name: "team", Type: bigquery.StringFieldType},
	{Name: "tenant", Type: bigquery.StringFieldType},
	{Name: "environment", Type: bigquery.StringFieldType},
}
