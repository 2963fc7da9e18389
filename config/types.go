package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// ErrInvalid reports a resolved configuration that does not decode or
// validate.
var ErrInvalid = errors.New("invalid configuration")

// ConfigMap is an open configuration object: option names mapped to scalar,
// list, or nested object values. One ConfigMap flows through the pipeline per
// run and is rebuilt from the sources every time.
type ConfigMap map[string]any

// Config is the typed view of a resolved configuration map. Recognized
// options decode into fields; anything else lands in Extra so unknown keys
// survive the round trip.
type Config struct {
	Platform     string `mapstructure:"platform" validate:"required"`
	Endpoint     string `mapstructure:"endpoint" validate:"omitempty,url"`
	Token        string `mapstructure:"token"`
	GithubAppID  int64  `mapstructure:"githubAppId"`
	GithubAppKey string `mapstructure:"githubAppKey"`
	Autodiscover bool   `mapstructure:"autodiscover"`
	Repositories []any  `mapstructure:"repositories"`
	LogLevel     string `mapstructure:"logLevel" validate:"omitempty,oneof=trace debug info warn error fatal"`
	Onboarding   bool   `mapstructure:"onboarding"`
	Timezone     string `mapstructure:"timezone"`
	BranchPrefix string `mapstructure:"branchPrefix"`

	// Extra holds options without a dedicated field, including any keys the
	// catalog does not recognize.
	Extra map[string]any `mapstructure:",remain"`
}

// Decode converts an open configuration map into the typed view.
func Decode(cfg ConfigMap) (*Config, error) {
	var typed Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &typed,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build config decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(cfg)); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalid, err)
	}
	return &typed, nil
}

// Validate checks the typed view's field constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// RepoName returns the identifier of a repository list entry. An entry is
// either a bare identifier string or an object carrying a repository field.
// Anything else yields an empty name.
func RepoName(entry any) string {
	switch repo := entry.(type) {
	case string:
		return repo
	case map[string]any:
		if name, ok := repo["repository"].(string); ok {
			return name
		}
	case ConfigMap:
		if name, ok := repo["repository"].(string); ok {
			return name
		}
	}
	return ""
}
