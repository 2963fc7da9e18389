// Package errors provides CLI error patterns with user-friendly messaging.
//
// Core types:
//   - CLIError: Wraps errors with message, suggestion, and details
//   - ErrorMessenger: Interface for customizing error messages
//
// The wrap functions translate pipeline and platform failures into
// CLIError values a command-line frontend can print directly:
//   - WrapConfigError: unsupported platform, missing credential, invalid
//     configuration, preset failures
//   - WrapPlatformError: rejected credentials, rate limits, connection,
//     TLS, and timeout problems
//
// Example usage:
//
//	// Wrap a pipeline error with default messages
//	resolved, err := depbot.ParseConfigs(ctx)
//	if err != nil {
//	    return errors.WrapConfigError(err)
//	}
//
//	// Wrap with custom messages
//	type MyMessenger struct{ errors.DefaultMessenger }
//	func (m MyMessenger) MissingTokenMessage() (string, string) {
//	    return "No token found.", "Run 'depbot auth' to store one."
//	}
//
//	wrapped := errors.WrapConfigError(err, errors.WithMessenger(MyMessenger{}))
//
//	// Check error categories
//	if errors.IsAuthError(err) {
//	    // Handle auth-related error
//	}
package errors
