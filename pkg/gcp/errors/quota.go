package errors

import (
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
)

// IsResourceExhausted checks if an error is a rate limit or quota rejection.
func IsResourceExhausted(err error) bool {
	if err == nil {
		return false
	}
	if httpCode(err) == http.StatusTooManyRequests || grpcCode(err) == codes.ResourceExhausted {
		return true
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "ResourceExhausted") || strings.Contains(errMsg, "Quota exceeded") || strings.Contains(errMsg, "RATE_LIMIT_EXCEEDED")
}

func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if IsResourceExhausted(err) {
		return true
	}
	quotaIndicators := []string{
		"quota",
		"rate limit",
		"too many requests",
	}
	errMsgLower := strings.ToLower(err.Error())
	for _, indicator := range quotaIndicators {
		if strings.Contains(errMsgLower, indicator) {
			return true
		}
	}
	return false
}
