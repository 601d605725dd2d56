package secrets

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"hash/crc32"
	"log/slog"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// Accessor is the subset of the Secret Manager client used here.
type Accessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

// Source reads versioned secret payloads.
type Source struct {
	client Accessor
}

func NewSource(ctx context.Context, clientOptions ...option.ClientOption) (*Source, error) {
	client, err := secretmanager.NewClient(ctx, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &Source{client: client}, nil
}

func NewSourceWithClient(client Accessor) *Source {
	return &Source{client: client}
}

func (s *Source) Close() error {
	return s.client.Close()
}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// VersionName expands projects/p/secrets/s to its latest version. Names that
// already carry a version are returned unchanged.
func VersionName(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "/versions/") {
		return name
	}
	return strings.TrimSuffix(name, "/") + "/versions/latest"
}

// Payload fetches the raw payload of a secret version.
func (s *Source) Payload(ctx context.Context, name string) ([]byte, error) {
	name = VersionName(name)
	slog.Debug("accessing Secret Manager secret", "name", name)
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access secret version %s: %w", name, err)
	}
	payload := result.GetPayload()
	if payload == nil {
		return nil, fmt.Errorf("secret version %s has no payload", name)
	}
	if payload.DataCrc32C != nil && int64(crc32.Checksum(payload.Data, castagnoli)) != payload.GetDataCrc32C() {
		return nil, fmt.Errorf("secret version %s: payload checksum mismatch", name)
	}
	return payload.Data, nil
}

// Values fetches a secret version and parses it with ParsePayload.
func (s *Source) Values(ctx context.Context, name string) (map[string]string, error) {
	data, err := s.Payload(ctx, name)
	if err != nil {
		return nil, err
	}
	values, err := ParsePayload(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse secret %s: %w", VersionName(name), err)
	}
	slog.Debug("loaded secret values", "name", VersionName(name), "keys", len(values))
	return values, nil
}

// ParsePayload reads newline separated KEY=VALUE lines. Each line is split on
// the first '='. Blank lines are skipped; any other line without '=' is an
// error.
func ParsePayload(data []byte) (map[string]string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected KEY=VALUE", lineNo)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", lineNo)
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return values, nil
}
