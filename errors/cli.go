package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/randalmurphal/depbot/config"
	depbothttp "github.com/randalmurphal/depbot/http"
	"github.com/randalmurphal/depbot/platform"
	"github.com/randalmurphal/depbot/preset"
)

// ErrorMessenger provides customizable error messages.
// Implement this interface to customize suggestions for your CLI.
type ErrorMessenger interface {
	// UnsupportedPlatformMessage returns the message and suggestion for an
	// unknown platform value.
	UnsupportedPlatformMessage() (message, suggestion string)

	// MissingTokenMessage returns the message and suggestion when no
	// credential is configured.
	MissingTokenMessage() (message, suggestion string)

	// InvalidConfigMessage returns the message and suggestion for a
	// configuration that failed validation. The options parameter lists the
	// offending options in display form, possibly empty.
	InvalidConfigMessage(options []string) (message, suggestion string)

	// PresetNotFoundMessage returns the message and suggestion for an
	// unresolvable preset reference.
	PresetNotFoundMessage() (message, suggestion string)

	// PresetCycleMessage returns the message and suggestion for presets
	// that extend each other in a loop.
	PresetCycleMessage() (message, suggestion string)

	// BadCredentialsMessage returns the message and suggestion when the
	// platform rejects the configured credential.
	BadCredentialsMessage() (message, suggestion string)

	// RateLimitedMessage returns the message and suggestion when the
	// platform rate limit is exhausted. retryAfter is zero when the
	// platform gave no hint.
	RateLimitedMessage(retryAfter time.Duration) (message, suggestion string)

	// ConnectionErrorMessage returns the message and suggestion for
	// connection errors. The endpoint parameter is the URL that failed.
	ConnectionErrorMessage(endpoint string) (message, suggestion string)

	// TLSErrorMessage returns the message and suggestion for
	// TLS/certificate errors.
	TLSErrorMessage(endpoint string) (message, suggestion string)

	// TimeoutErrorMessage returns the message and suggestion for timeout
	// errors.
	TimeoutErrorMessage(endpoint string) (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) UnsupportedPlatformMessage() (string, string) {
	return "The configured platform is not supported.",
		fmt.Sprintf("Supported platforms: %s.", strings.Join(platform.Supported(), ", "))
}

func (m DefaultMessenger) MissingTokenMessage() (string, string) {
	return "No credential is configured for the platform.",
		"Set the token option, or export GITHUB_TOKEN, GITLAB_TOKEN, or GITEA_TOKEN."
}

func (m DefaultMessenger) InvalidConfigMessage(options []string) (string, string) {
	if len(options) > 0 {
		return "The resolved configuration is invalid.",
			fmt.Sprintf("Check these options:\n  - %s", strings.Join(options, "\n  - "))
	}
	return "The resolved configuration is invalid.",
		"Check option names and values against the option catalog."
}

func (m DefaultMessenger) PresetNotFoundMessage() (string, string) {
	return "A preset reference could not be resolved.",
		"Check the reference spelling against the built-in preset catalog."
}

func (m DefaultMessenger) PresetCycleMessage() (string, string) {
	return "Preset references extend each other in a loop.",
		"Remove the circular extends reference."
}

func (m DefaultMessenger) BadCredentialsMessage() (string, string) {
	return "The platform rejected the configured credential.",
		"Check that the token is valid, has not expired, and has the required scopes."
}

func (m DefaultMessenger) RateLimitedMessage(retryAfter time.Duration) (string, string) {
	message := "The platform is rate limiting requests."
	if retryAfter > 0 {
		message = fmt.Sprintf("The platform is rate limiting requests. Retry after %s.", retryAfter)
	}
	return message, "Wait before retrying,\nor reduce the number of configured repositories."
}

func (m DefaultMessenger) ConnectionErrorMessage(endpoint string) (string, string) {
	return fmt.Sprintf("Cannot connect to platform at %s", endpoint),
		"Check that:\n  - The endpoint is correct\n  - The platform is reachable\n  - Your network connection is working"
}

func (m DefaultMessenger) TLSErrorMessage(endpoint string) (string, string) {
	return fmt.Sprintf("TLS/certificate error connecting to %s", endpoint),
		"Check that the platform certificate is valid."
}

func (m DefaultMessenger) TimeoutErrorMessage(endpoint string) (string, string) {
	return fmt.Sprintf("Connection to %s timed out", endpoint),
		"The platform may be overloaded or unreachable.\nTry again in a moment."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

// WrapConfigError wraps configuration pipeline failures with helpful
// guidance. Errors outside the known pipeline failures pass through
// unchanged.
func WrapConfigError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	messenger := getMessenger(opts)

	switch {
	case errors.Is(err, platform.ErrUnsupportedPlatform):
		msg, suggestion := messenger.UnsupportedPlatformMessage()
		return &CLIError{
			Err:        err,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}

	case errors.Is(err, platform.ErrMissingToken):
		msg, suggestion := messenger.MissingTokenMessage()
		return &CLIError{
			Err:        err,
			Message:    msg,
			Suggestion: suggestion,
		}

	case errors.Is(err, preset.ErrCycle):
		msg, suggestion := messenger.PresetCycleMessage()
		return &CLIError{
			Err:        err,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}

	case errors.Is(err, preset.ErrNotFound):
		msg, suggestion := messenger.PresetNotFoundMessage()
		return &CLIError{
			Err:        err,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}

	case errors.Is(err, config.ErrInvalid):
		var fieldErrs validator.ValidationErrors
		var options []string
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				options = append(options, HumanizeOption(fe.Field()))
			}
		}
		msg, suggestion := messenger.InvalidConfigMessage(options)
		return &CLIError{
			Err:        err,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	}

	return err
}

// WrapPlatformError wraps platform API failures with helpful guidance.
// The endpoint parameter names the URL that was being reached.
func WrapPlatformError(err error, endpoint string, opts ...Option) error {
	if err == nil {
		return nil
	}

	messenger := getMessenger(opts)

	if depbothttp.IsUnauthorized(err) || depbothttp.IsForbidden(err) {
		msg, suggestion := messenger.BadCredentialsMessage()
		return &CLIError{
			Err:        err,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	}

	if depbothttp.IsRateLimited(err) {
		var rateErr *depbothttp.RateLimitError
		var retryAfter time.Duration
		if errors.As(err, &rateErr) {
			retryAfter = rateErr.RetryAfter
		}
		msg, suggestion := messenger.RateLimitedMessage(retryAfter)
		return &CLIError{
			Err:        err,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	errStr := strings.ToLower(err.Error())

	// Check for connection refused
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		msg, suggestion := messenger.ConnectionErrorMessage(endpoint)
		return &CLIError{
			Err:        err,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	// Check for TLS/certificate errors
	if strings.Contains(errStr, "certificate") || strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		msg, suggestion := messenger.TLSErrorMessage(endpoint)
		return &CLIError{
			Err:        err,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	}

	// Check for timeout
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		msg, suggestion := messenger.TimeoutErrorMessage(endpoint)
		return &CLIError{
			Err:        err,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return err
}
