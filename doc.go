// Package depbot resolves the runtime configuration for a dependency
// update bot.
//
// Configuration comes from four ranked sources: built-in defaults, a
// configuration file, command-line arguments, and environment variables.
// ParseConfigs merges them in that precedence, expands extends presets
// recursively, configures logging, validates the platform and its
// credential, optionally autodiscovers repositories, and resolves each
// repository entry's own presets.
//
// The package is organized into subpackages by domain:
//
//   - config: option registry, source loaders, stage filter, scope merger
//   - preset: recursive extends expansion with cycle detection
//   - platform: GitHub, GitLab, and Gitea repository listing
//   - logging: zerolog sink construction from resolved options
//   - errors: user-facing error rendering with suggestions
//   - http: REST plumbing for platforms without a Go SDK
//   - testutil: fixtures and fakes for tests
//
// # Quick Start
//
//	resolved, err := depbot.ParseConfigs(ctx)
//	if err != nil {
//	    // fatal configuration problems land here
//	}
//	defer resolved.Close()
//
//	resolved.Logger.Info().
//	    Str("platform", resolved.Config.Platform).
//	    Int("repositories", len(resolved.Config.Repositories)).
//	    Msg("configuration resolved")
//
// Tests substitute collaborators through Options:
//
//	pipeline := depbot.New(
//	    depbot.WithFetcher(myFetcher),
//	    depbot.WithPlatform(myPlatformLookup),
//	    depbot.WithLogWriter(io.Discard),
//	)
//
// See individual package documentation for detailed usage.
package depbot
