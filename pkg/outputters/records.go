package outputters

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	gcptypes "github.com/nais/projectsync/pkg/types/gcp"
	"github.com/nais/projectsync/pkg/utils"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// WriteRecords encodes records to w as a json array or a yaml sequence.
// Nil fields are written as null.
func WriteRecords(w io.Writer, format string, records []gcptypes.ProjectRecord) error {
	if records == nil {
		records = []gcptypes.ProjectRecord{}
	}
	return WriteValue(w, format, records)
}

// WriteValue encodes any value to w in the given format.
func WriteValue(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML, "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// WriteRecordsFile writes records to path, creating parent directories.
// An empty path or "-" writes to stdout.
func WriteRecordsFile(path, format string, records []gcptypes.ProjectRecord) error {
	if records == nil {
		records = []gcptypes.ProjectRecord{}
	}
	return WriteValueFile(path, format, records)
}

// WriteValueFile is WriteValue against a file path. An empty path or "-"
// writes to stdout.
func WriteValueFile(path, format string, v any) error {
	if path == "" || path == "-" {
		return WriteValue(os.Stdout, format, v)
	}
	if err := utils.EnsureFileDirectory(path); err != nil {
		return fmt.Errorf("failed to create directory for output file %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file %s: %w", path, err)
	}
	defer f.Close()
	slog.Debug("writing output", "filename", path, "format", format)
	if err := WriteValue(f, format, v); err != nil {
		return err
	}
	return f.Close()
}
