package warehouse

import (
	"context"
	"net/http"

	"cloud.google.com/go/bigquery"
	gcptypes "github.com/nais/projectsync/pkg/types/gcp"
	"google.golang.org/api/googleapi"
)

// memoryStore keeps tables in memory and fails on demand.
type memoryStore struct {
	tables    map[string][]gcptypes.ProjectRecord
	schemas   map[string]bigquery.Schema
	deleteErr error
	createErr error
	insertErr error
	calls     []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		tables:  make(map[string][]gcptypes.ProjectRecord),
		schemas: make(map[string]bigquery.Schema),
	}
}

func (m *memoryStore) DeleteTable(_ context.Context, ref TableRef) error {
	m.calls = append(m.calls, "delete")
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.tables[ref.String()]; !ok {
		return &googleapi.Error{Code: http.StatusNotFound, Message: "Not found: Table " + ref.String()}
	}
	delete(m.tables, ref.String())
	delete(m.schemas, ref.String())
	return nil
}

func (m *memoryStore) CreateTable(_ context.Context, ref TableRef, schema bigquery.Schema) error {
	m.calls = append(m.calls, "create")
	if m.createErr != nil {
		return m.createErr
	}
	m.tables[ref.String()] = []gcptypes.ProjectRecord{}
	m.schemas[ref.String()] = schema
	return nil
}

func (m *memoryStore) InsertRows(_ context.Context, ref TableRef, records []gcptypes.ProjectRecord) error {
	m.calls = append(m.calls, "insert")
	if m.insertErr != nil {
		return m.insertErr
	}
	m.tables[ref.String()] = append(m.tables[ref.String()], records...)
	return nil
}

// truncatingStore adds an atomic replace on top of memoryStore.
type truncatingStore struct {
	*memoryStore
	loadErr error
}

func (s *truncatingStore) LoadTruncate(_ context.Context, ref TableRef, schema bigquery.Schema, records []gcptypes.ProjectRecord) error {
	s.calls = append(s.calls, "load")
	if s.loadErr != nil {
		return s.loadErr
	}
	rows := make([]gcptypes.ProjectRecord, len(records))
	copy(rows, records)
	s.tables[ref.String()] = rows
	s.schemas[ref.String()] = schema
	return nil
}
