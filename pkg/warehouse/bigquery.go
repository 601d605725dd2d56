package warehouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/bigquery"
	gcptypes "github.com/nais/projectsync/pkg/types/gcp"
	"google.golang.org/api/option"
)

// insertBatchSize bounds the rows sent in one streaming insert request.
const insertBatchSize = 500

// BigQueryStore is a Store and Truncator backed by BigQuery.
type BigQueryStore struct {
	client *bigquery.Client
}

var (
	_ Store     = (*BigQueryStore)(nil)
	_ Truncator = (*BigQueryStore)(nil)
)

// NewBigQueryStore creates a client billed to projectID.
func NewBigQueryStore(ctx context.Context, projectID string, clientOptions ...option.ClientOption) (*BigQueryStore, error) {
	client, err := bigquery.NewClient(ctx, projectID, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bigquery client: %w", err)
	}
	return &BigQueryStore{client: client}, nil
}

func (s *BigQueryStore) Close() error {
	return s.client.Close()
}

func (s *BigQueryStore) table(ref TableRef) *bigquery.Table {
	return s.client.DatasetInProject(ref.ProjectID, ref.DatasetID).Table(ref.TableID)
}

func (s *BigQueryStore) DeleteTable(ctx context.Context, ref TableRef) error {
	return s.table(ref).Delete(ctx)
}

func (s *BigQueryStore) CreateTable(ctx context.Context, ref TableRef, schema bigquery.Schema) error {
	return s.table(ref).Create(ctx, &bigquery.TableMetadata{Schema: schema})
}

// InsertRows streams records in batches of insertBatchSize. A failed batch
// stops the insert; earlier batches stay in the table.
func (s *BigQueryStore) InsertRows(ctx context.Context, ref TableRef, records []gcptypes.ProjectRecord) error {
	inserter := s.table(ref).Inserter()
	for i, batch := range batches(records, insertBatchSize) {
		if err := inserter.Put(ctx, savers(batch)); err != nil {
			return fmt.Errorf("failed to insert batch %d (%d rows): %w", i, len(batch), err)
		}
	}
	return nil
}

func batches(records []gcptypes.ProjectRecord, size int) [][]gcptypes.ProjectRecord {
	var out [][]gcptypes.ProjectRecord
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		out = append(out, records[start:end])
	}
	return out
}

// LoadTruncate replaces the table contents with one WRITE_TRUNCATE load job,
// creating the table when needed.
func (s *BigQueryStore) LoadTruncate(ctx context.Context, ref TableRef, schema bigquery.Schema, records []gcptypes.ProjectRecord) error {
	data, err := encodeNDJSON(records)
	if err != nil {
		return err
	}
	src := bigquery.NewReaderSource(bytes.NewReader(data))
	src.SourceFormat = bigquery.JSON
	src.Schema = schema

	loader := s.table(ref).LoaderFrom(src)
	loader.CreateDisposition = bigquery.CreateIfNeeded
	loader.WriteDisposition = bigquery.WriteTruncate

	job, err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to start load job: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed to wait for load job %s: %w", job.ID(), err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("load job %s failed: %w", job.ID(), err)
	}
	return nil
}

// recordSaver writes nil fields as NULL.
type recordSaver gcptypes.ProjectRecord

func (r recordSaver) Save() (map[string]bigquery.Value, string, error) {
	return map[string]bigquery.Value{
		"project":     nullable(r.Project),
		"project_id":  nullable(r.ProjectID),
		"team":        nullable(r.Team),
		"tenant":      nullable(r.Tenant),
		"environment": nullable(r.Environment),
	}, bigquery.NoDedupeID, nil
}

func nullable(s *string) bigquery.Value {
	if s == nil {
		return nil
	}
	return *s
}

func savers(records []gcptypes.ProjectRecord) []bigquery.ValueSaver {
	out := make([]bigquery.ValueSaver, len(records))
	for i, rec := range records {
		out[i] = recordSaver(rec)
	}
	return out
}

func encodeNDJSON(records []gcptypes.ProjectRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return nil, fmt.Errorf("failed to encode record %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
