package depbot

import (
	"errors"

	"github.com/randalmurphal/depbot/config"
	"github.com/randalmurphal/depbot/platform"
	"github.com/randalmurphal/depbot/preset"
)

// Configuration errors. The subpackage sentinels are re-exported here so
// callers can match pipeline failures without importing the subpackages.
var (
	// ErrInvalidConfig indicates the resolved configuration failed
	// validation.
	ErrInvalidConfig = config.ErrInvalid

	// ErrUnsupportedPlatform indicates a platform value outside the
	// supported set.
	ErrUnsupportedPlatform = platform.ErrUnsupportedPlatform

	// ErrMissingToken indicates no usable credential for the chosen
	// platform.
	ErrMissingToken = platform.ErrMissingToken

	// ErrPresetNotFound indicates an extends reference no fetcher
	// recognizes.
	ErrPresetNotFound = preset.ErrNotFound

	// ErrPresetCycle indicates presets that extend each other in a loop.
	ErrPresetCycle = preset.ErrCycle
)

// IsFatalConfigError reports whether err is a configuration problem that
// aborts the run before any network access.
func IsFatalConfigError(err error) bool {
	return errors.Is(err, ErrUnsupportedPlatform) ||
		errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrInvalidConfig)
}

// IsPresetError reports whether err came from preset resolution.
func IsPresetError(err error) bool {
	return errors.Is(err, ErrPresetNotFound) || errors.Is(err, ErrPresetCycle)
}
