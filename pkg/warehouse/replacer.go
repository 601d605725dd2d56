package warehouse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/bigquery"
	gcperrors "github.com/nais/projectsync/pkg/gcp/errors"
	gcptypes "github.com/nais/projectsync/pkg/types/gcp"
)

// Store is the destination table backend.
type Store interface {
	DeleteTable(ctx context.Context, ref TableRef) error
	CreateTable(ctx context.Context, ref TableRef, schema bigquery.Schema) error
	InsertRows(ctx context.Context, ref TableRef, records []gcptypes.ProjectRecord) error
}

// Truncator is implemented by stores that can atomically replace a table's
// contents in one operation.
type Truncator interface {
	LoadTruncate(ctx context.Context, ref TableRef, schema bigquery.Schema, records []gcptypes.ProjectRecord) error
}

type Mode string

const (
	// ModeRecreate drops the table, creates it again and inserts the rows.
	ModeRecreate Mode = "recreate"
	// ModeTruncate replaces the rows with a single write-truncate load.
	ModeTruncate Mode = "truncate"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeRecreate:
		return ModeRecreate, nil
	case ModeTruncate:
		return ModeTruncate, nil
	}
	return "", fmt.Errorf("unknown replace mode %q (want %q or %q)", s, ModeRecreate, ModeTruncate)
}

// WriteError reports that the rows could not be written. In recreate mode
// the table exists but is empty.
type WriteError struct {
	Table string
	Rows  int
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %d rows to %s: %v", e.Rows, e.Table, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsWriteError reports whether err is or wraps a *WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// Replacer replaces the full contents of a table with a new set of records.
type Replacer struct {
	store  Store
	Schema bigquery.Schema
	Mode   Mode
}

func NewReplacer(store Store) *Replacer {
	return &Replacer{
		store:  store,
		Schema: ProjectSchema,
		Mode:   ModeRecreate,
	}
}

// Replace writes records to tableID so that afterwards the table holds those
// rows and no others. Delete and create failures are returned as plain
// errors; insert failures are returned as *WriteError.
func (r *Replacer) Replace(ctx context.Context, tableID string, records []gcptypes.ProjectRecord) error {
	ref, err := ParseTableID(tableID)
	if err != nil {
		return err
	}
	if r.Mode == ModeTruncate {
		return r.truncate(ctx, ref, records)
	}

	if err := r.store.DeleteTable(ctx, ref); err != nil {
		if !gcperrors.IsNotFound(err) {
			return fmt.Errorf("failed to delete table %s: %w", ref, err)
		}
		slog.Info("Table not found, not deleted", "table", ref.String())
	} else {
		slog.Info("Deleted table", "table", ref.String())
	}

	if err := r.store.CreateTable(ctx, ref, r.Schema); err != nil {
		return fmt.Errorf("failed to create table %s: %w", ref, err)
	}
	slog.Info("Created table", "table", ref.String())

	if len(records) == 0 {
		slog.Warn("No records to insert", "table", ref.String())
		return nil
	}
	if err := r.store.InsertRows(ctx, ref, records); err != nil {
		return &WriteError{Table: ref.String(), Rows: len(records), Err: err}
	}
	slog.Info("Inserted rows", "table", ref.String(), "rows", len(records))
	return nil
}

func (r *Replacer) truncate(ctx context.Context, ref TableRef, records []gcptypes.ProjectRecord) error {
	t, ok := r.store.(Truncator)
	if !ok {
		return fmt.Errorf("store %T does not support %s mode", r.store, ModeTruncate)
	}
	if err := t.LoadTruncate(ctx, ref, r.Schema, records); err != nil {
		return &WriteError{Table: ref.String(), Rows: len(records), Err: err}
	}
	slog.Info("Replaced table contents", "table", ref.String(), "rows", len(records))
	return nil
}
