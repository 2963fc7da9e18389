package errors

import (
	"errors"
	"strings"

	"github.com/randalmurphal/depbot/config"
	depbothttp "github.com/randalmurphal/depbot/http"
	"github.com/randalmurphal/depbot/platform"
	"github.com/randalmurphal/depbot/preset"
)

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if depbothttp.IsUnauthorized(err) || depbothttp.IsForbidden(err) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "unauthenticated") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "401")
}

// IsConnectionError checks if an error is connection-related.
// This includes TLS errors, timeouts, and network connectivity issues.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	// Network connectivity
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		return true
	}
	// TLS/certificate errors (consistent with WrapPlatformError)
	if strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		return true
	}
	// Timeout errors (consistent with WrapPlatformError)
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}
	return false
}

// IsRateLimitError checks if an error reports an exhausted platform rate
// limit.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	if depbothttp.IsRateLimited(err) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429")
}

// IsConfigError checks if an error came from configuration resolution:
// an invalid configuration, an unsupported platform, a missing
// credential, or a preset failure.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, config.ErrInvalid) ||
		errors.Is(err, platform.ErrUnsupportedPlatform) ||
		errors.Is(err, platform.ErrMissingToken) ||
		errors.Is(err, preset.ErrNotFound) ||
		errors.Is(err, preset.ErrCycle)
}
