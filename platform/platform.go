package platform

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/randalmurphal/depbot/config"
)

// Platform errors.
var (
	// ErrUnsupportedPlatform indicates a platform value outside the
	// supported set.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrMissingToken indicates no usable credential for the chosen
	// platform.
	ErrMissingToken = errors.New("missing platform token")
)

// Credentials is the authentication material a platform accepts: a personal
// access token, or for GitHub an App id plus PEM-encoded private key.
type Credentials struct {
	Token  string
	AppID  int64
	AppKey []byte
}

// Platform is one supported hosting platform. Each implementation carries
// its own credential lookup and repository listing, selected once during
// validation.
type Platform interface {
	// Name returns the platform's configuration name ("github", ...).
	Name() string

	// Credentials resolves the credential for this platform from the
	// resolved configuration and the process environment, without any
	// network access. A missing credential returns ErrMissingToken.
	Credentials(cfg config.ConfigMap, env map[string]string) (Credentials, error)

	// ListRepositories returns the full names of every repository the
	// credential can reach, for autodiscovery.
	ListRepositories(ctx context.Context, creds Credentials, endpoint string) ([]string, error)
}

// Supported returns the supported platform names in stable order.
func Supported() []string {
	return []string{"github", "gitlab", "gitea"}
}

// ForName maps a platform option value onto its implementation. Unknown
// names return ErrUnsupportedPlatform.
func ForName(name string) (Platform, error) {
	switch name {
	case "github":
		return githubPlatform{}, nil
	case "gitlab":
		return gitlabPlatform{}, nil
	case "gitea":
		return giteaPlatform{}, nil
	}
	return nil, fmt.Errorf("%w: %q (supported: %s)",
		ErrUnsupportedPlatform, name, strings.Join(Supported(), ", "))
}

// lookupToken finds a personal access token: the explicit token option
// first, then the platform's environment variable.
func lookupToken(cfg config.ConfigMap, env map[string]string, envName string) string {
	if token, ok := cfg["token"].(string); ok && token != "" {
		return token
	}
	return env[envName]
}

// tokenCredentials is the shared token-then-env lookup for platforms that
// only authenticate with a personal access token.
func tokenCredentials(name, envName string, cfg config.ConfigMap, env map[string]string) (Credentials, error) {
	if token := lookupToken(cfg, env, envName); token != "" {
		return Credentials{Token: token}, nil
	}
	return Credentials{}, fmt.Errorf("%w: platform %s needs the token option or %s",
		ErrMissingToken, name, envName)
}

// asInt64 coerces the numeric shapes configuration values arrive in.
func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
