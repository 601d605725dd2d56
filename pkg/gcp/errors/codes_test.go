package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "googleapi 404", err: &googleapi.Error{Code: http.StatusNotFound}, want: true},
		{name: "wrapped googleapi 404", err: fmt.Errorf("failed to delete table: %w", &googleapi.Error{Code: http.StatusNotFound}), want: true},
		{name: "grpc not found", err: status.Error(codes.NotFound, "secret missing"), want: true},
		{name: "googleapi 500", err: &googleapi.Error{Code: http.StatusInternalServerError, Message: "backend error"}, want: false},
		{name: "plain message", err: errors.New("boom"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestIsPermissionDenied(t *testing.T) {
	assert.True(t, IsPermissionDenied(&googleapi.Error{Code: http.StatusForbidden}))
	assert.True(t, IsPermissionDenied(status.Error(codes.PermissionDenied, "nope")))
	assert.False(t, IsPermissionDenied(&googleapi.Error{Code: http.StatusNotFound}))
	assert.False(t, IsPermissionDenied(nil))
}

func TestIsUnauthenticated(t *testing.T) {
	assert.True(t, IsUnauthenticated(&googleapi.Error{Code: http.StatusUnauthorized}))
	assert.True(t, IsUnauthenticated(status.Error(codes.Unauthenticated, "token expired")))
	assert.False(t, IsUnauthenticated(errors.New("boom")))
}

func TestIsServiceDisabled(t *testing.T) {
	disabled := &googleapi.Error{
		Code:    http.StatusForbidden,
		Details: []any{map[string]any{"@type": "type.googleapis.com/google.rpc.ErrorInfo", "reason": "SERVICE_DISABLED"}},
	}
	assert.True(t, IsServiceDisabled(disabled))
	assert.True(t, IsServiceDisabled(errors.New("Cloud Resource Manager API has not been used in project 123")))
	assert.False(t, IsServiceDisabled(&googleapi.Error{Code: http.StatusForbidden}))
	assert.Equal(t, "enable the Cloud Resource Manager API in the quota project", Hint(disabled))
}

func TestHint(t *testing.T) {
	assert.NotEmpty(t, Hint(&googleapi.Error{Code: http.StatusForbidden}))
	assert.NotEmpty(t, Hint(errors.New("SERVICE_DISABLED: cloudresourcemanager")))
	assert.NotEmpty(t, Hint(&googleapi.Error{Code: http.StatusTooManyRequests}))
	assert.Empty(t, Hint(errors.New("boom")))
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "googleapi 429", err: &googleapi.Error{Code: http.StatusTooManyRequests}, want: true},
		{name: "grpc exhausted", err: status.Error(codes.ResourceExhausted, "slow down"), want: true},
		{name: "message", err: errors.New("Quota exceeded for quota metric 'Read requests'"), want: true},
		{name: "rate limit text", err: errors.New("hit rate limit"), want: true},
		{name: "unrelated", err: &googleapi.Error{Code: http.StatusForbidden}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuotaError(tt.err))
		})
	}
	assert.True(t, IsResourceExhausted(errors.New("RATE_LIMIT_EXCEEDED")))
}
