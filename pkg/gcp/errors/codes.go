package errors

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// httpCode returns the HTTP status of a REST client error, or 0.
func httpCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// grpcCode returns the gRPC status code of err, or codes.Unknown.
func grpcCode(err error) codes.Code {
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Unknown
}

// IsNotFound checks if an error indicates a resource was not found.
// Both REST (googleapi) and gRPC clients are recognized.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if httpCode(err) == http.StatusNotFound || grpcCode(err) == codes.NotFound {
		return true
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "notFound") ||
		strings.Contains(errMsg, "NotFound") ||
		strings.Contains(errMsg, "Not found")
}

// IsPermissionDenied checks if an error is a permission denied error.
// This occurs when the authenticated user/service account lacks required IAM permissions.
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	if httpCode(err) == http.StatusForbidden || grpcCode(err) == codes.PermissionDenied {
		return true
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "PermissionDenied") ||
		strings.Contains(errMsg, "permission denied") ||
		strings.Contains(errMsg, "does not have")
}

// IsUnauthenticated checks if an error indicates authentication failure.
func IsUnauthenticated(err error) bool {
	if err == nil {
		return false
	}
	if httpCode(err) == http.StatusUnauthorized || grpcCode(err) == codes.Unauthenticated {
		return true
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "Unauthenticated") ||
		strings.Contains(errMsg, "invalid credentials")
}

// IsServiceDisabled checks if an error indicates a GCP API service is disabled.
// This typically means the API needs to be enabled in the GCP project.
func IsServiceDisabled(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusForbidden {
		for _, detail := range apiErr.Details {
			if detailMap, ok := detail.(map[string]any); ok && detailMap["reason"] == "SERVICE_DISABLED" {
				return true
			}
		}
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "SERVICE_DISABLED") ||
		strings.Contains(errMsg, "API has not been enabled") ||
		strings.Contains(errMsg, "API has not been used in project") ||
		strings.Contains(errMsg, "Access Not Configured")
}

// Hint returns a short operator hint for well-known failure classes, or "".
func Hint(err error) string {
	switch {
	case IsUnauthenticated(err):
		return "check application default credentials or --creds-file"
	case IsServiceDisabled(err):
		return "enable the Cloud Resource Manager API in the quota project"
	case IsPermissionDenied(err):
		return "the caller needs resourcemanager.folders.list and resourcemanager.projects.list on the organization"
	case IsQuotaError(err):
		return "quota exhausted, retry later or set --billing-project to a project with more quota"
	}
	return ""
}
