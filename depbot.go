package depbot

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/depbot/config"
	"github.com/randalmurphal/depbot/logging"
	"github.com/randalmurphal/depbot/platform"
	"github.com/randalmurphal/depbot/preset"
)

// DefaultRepoConcurrency bounds concurrent repository preset resolution.
const DefaultRepoConcurrency = 8

// Pipeline resolves depbot's runtime configuration from its four sources,
// expands presets, validates the platform, and discovers repositories.
// The zero collaborators are the production ones; tests substitute via
// Options.
type Pipeline struct {
	defaults    func() config.ConfigMap
	file        func(env map[string]string) (config.ConfigMap, error)
	cli         func(args []string) (config.ConfigMap, error)
	envLoad     func(env map[string]string) config.ConfigMap
	fetcher     preset.Fetcher
	platformFor func(name string) (platform.Platform, error)
	logOut      io.Writer
	pretty      bool
	repoLimit   int
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithFetcher replaces the preset source. Nil keeps the built-in catalog.
func WithFetcher(fetcher preset.Fetcher) Option {
	return func(p *Pipeline) { p.fetcher = fetcher }
}

// WithPlatform replaces platform selection.
func WithPlatform(forName func(name string) (platform.Platform, error)) Option {
	return func(p *Pipeline) { p.platformFor = forName }
}

// WithLogWriter redirects console log output away from stderr.
func WithLogWriter(out io.Writer) Option {
	return func(p *Pipeline) { p.logOut = out }
}

// WithPrettyLogs switches console output to zerolog's human-readable
// writer.
func WithPrettyLogs() Option {
	return func(p *Pipeline) { p.pretty = true }
}

// WithRepoConcurrency bounds how many repository entries resolve presets
// at once.
func WithRepoConcurrency(limit int) Option {
	return func(p *Pipeline) {
		if limit > 0 {
			p.repoLimit = limit
		}
	}
}

// New creates a Pipeline with production collaborators.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		defaults:    config.Defaults,
		file:        config.FileConfig,
		cli:         config.CliConfig,
		envLoad:     config.EnvConfig,
		platformFor: platform.ForName,
		repoLimit:   DefaultRepoConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ResolvedConfig is the outcome of a pipeline run.
type ResolvedConfig struct {
	// Map is the resolved configuration: all sources merged, presets
	// expanded, repositories discovered, transient keys stripped.
	Map config.ConfigMap

	// Config is the typed view of Map.
	Config *config.Config

	// Sources records which source set each top-level key during the
	// merge. Keys added later by presets or autodiscovery do not appear.
	Sources map[string]config.Source

	// Logger is the run's logger, built from the logging options.
	Logger zerolog.Logger

	// LogContext identifies this run on every log event.
	LogContext string

	closer io.Closer
}

// Close releases the log file handle, if one was opened.
func (r *ResolvedConfig) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// ParseConfigs resolves the effective configuration for one run.
//
// Sources merge in fixed precedence (defaults < file < CLI < env, last
// writer wins per key), presets expand recursively, logging comes up from
// the resolved options, the platform and its credential are validated
// before any network access, autodiscovered repositories fold into the
// configured list, and each repository entry resolves its own presets.
func (p *Pipeline) ParseConfigs(ctx context.Context, env map[string]string, args []string) (*ResolvedConfig, error) {
	boot := logging.Bootstrap(p.logOut)

	// 1. The four sources load independently of each other.
	defaults := p.defaults()
	fileConfig, err := p.file(env)
	if err != nil {
		return nil, err
	}
	cliConfig, err := p.cli(args)
	if err != nil {
		return nil, err
	}
	envConfig := p.envLoad(env)

	// 2. Fixed precedence, plain last writer wins per key.
	merged, origins := mergeSources(
		sourced{config.SourceDefault, defaults},
		sourced{config.SourceFile, fileConfig},
		sourced{config.SourceCli, cliConfig},
		sourced{config.SourceEnv, envConfig},
	)

	// 3. Presets expand into the merged result.
	merged, err = preset.NewResolver(p.fetcher, boot).Resolve(ctx, merged)
	if err != nil {
		return nil, err
	}

	// 4. Logging sinks come up from the resolved options. The transient
	// keys stay in the map until the very end of the pipeline.
	logger, closer, err := logging.Setup(logging.Config{
		Level:     stringValue(merged, "logLevel"),
		File:      stringValue(merged, "logFile"),
		FileLevel: stringValue(merged, "logFileLevel"),
		Out:       p.logOut,
		Pretty:    p.pretty,
	})
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*ResolvedConfig, error) {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}

	logContext := env["LOG_CONTEXT"]
	if logContext == "" {
		logContext, err = nanoid.New()
		if err != nil {
			return fail(fmt.Errorf("generate log context: %w", err))
		}
	}
	logger = logger.With().Str("logContext", logContext).Logger()
	logger.Debug().Interface("config", redactedCopy(merged)).Msg("resolved configuration")

	// 5. Platform and credential validation, before any network access.
	plat, err := p.platformFor(stringValue(merged, "platform"))
	if err != nil {
		return fail(err)
	}
	creds, err := plat.Credentials(merged, env)
	if err != nil {
		return fail(err)
	}

	// 6. Autodiscovery augments the configured repository list.
	if boolValue(merged, "autodiscover") {
		discovered, err := plat.ListRepositories(ctx, creds, stringValue(merged, "endpoint"))
		if err != nil {
			return fail(fmt.Errorf("autodiscover repositories: %w", err))
		}
		if len(discovered) == 0 {
			logger.Warn().Str("platform", plat.Name()).Msg("autodiscovery found no repositories")
		} else {
			logger.Info().Int("count", len(discovered)).Msg("autodiscovered repositories")
			merged["repositories"] = mergeDiscovered(config.ToList(merged["repositories"]), discovered)
		}
	}

	// 7. Repository entries resolve their own presets, concurrently.
	repos, err := p.resolveRepositories(ctx, preset.NewResolver(p.fetcher, logger), config.ToList(merged["repositories"]))
	if err != nil {
		return fail(err)
	}
	if repos != nil {
		merged["repositories"] = repos
	}

	// 8. The transient logging keys are consumed; drop them last.
	delete(merged, "logFile")
	delete(merged, "logFileLevel")

	typed, err := config.Decode(merged)
	if err != nil {
		return fail(err)
	}
	if err := typed.Validate(); err != nil {
		return fail(err)
	}

	return &ResolvedConfig{
		Map:        merged,
		Config:     typed,
		Sources:    origins,
		Logger:     logger,
		LogContext: logContext,
		closer:     closer,
	}, nil
}

// ParseConfigs resolves the configuration with production collaborators
// from the process environment and arguments.
func ParseConfigs(ctx context.Context) (*ResolvedConfig, error) {
	return New().ParseConfigs(ctx, Environ(os.Environ()), os.Args[1:])
}

// sourced pairs one source's values with its provenance label.
type sourced struct {
	source config.Source
	values config.ConfigMap
}

// mergeSources applies the fixed source precedence: each later source
// overwrites earlier ones key by key. The second result records which
// source won each key.
func mergeSources(sources ...sourced) (config.ConfigMap, map[string]config.Source) {
	merged := config.ConfigMap{}
	origins := map[string]config.Source{}
	for _, s := range sources {
		for key, value := range s.values {
			merged[key] = value
			origins[key] = s.source
		}
	}
	return merged, origins
}

// mergeDiscovered folds autodiscovered repositories into the configured
// list. A configured entry with the same identifier wins over its
// discovered duplicate; new discoveries are appended as bare names.
func mergeDiscovered(configured []any, discovered []string) []any {
	seen := make(map[string]bool, len(configured))
	for _, entry := range configured {
		if name := config.RepoName(entry); name != "" {
			seen[name] = true
		}
	}

	merged := append([]any{}, configured...)
	for _, name := range discovered {
		if seen[name] {
			continue
		}
		seen[name] = true
		merged = append(merged, name)
	}
	return merged
}

// resolveRepositories expands repository-level extends concurrently while
// preserving list order. Bare identifiers pass through untouched. The
// first failure aborts the batch, named with its repository.
func (p *Pipeline) resolveRepositories(ctx context.Context, resolver *preset.Resolver, repos []any) ([]any, error) {
	if len(repos) == 0 {
		return repos, nil
	}

	resolved := make([]any, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.repoLimit)
	for i, entry := range repos {
		i := i
		var repoConfig config.ConfigMap
		switch v := entry.(type) {
		case config.ConfigMap:
			repoConfig = v
		case map[string]any:
			repoConfig = v
		default:
			resolved[i] = entry
			continue
		}

		g.Go(func() error {
			out, err := resolver.Resolve(gctx, repoConfig)
			if err != nil {
				return fmt.Errorf("resolve repository %q: %w", config.RepoName(repoConfig), err)
			}
			resolved[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}

// Environ converts os.Environ-style "KEY=value" pairs into the map the
// pipeline consumes.
func Environ(pairs []string) map[string]string {
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		if idx := strings.Index(pair, "="); idx > 0 {
			env[pair[:idx]] = pair[idx+1:]
		}
	}
	return env
}

// redactedCopy masks credential values for the configuration debug line.
func redactedCopy(cfg config.ConfigMap) config.ConfigMap {
	out := make(config.ConfigMap, len(cfg))
	for key, value := range cfg {
		out[key] = value
	}
	for _, key := range []string{"token", "githubAppKey"} {
		if _, ok := out[key]; ok {
			out[key] = "[redacted]"
		}
	}
	return out
}

func stringValue(cfg config.ConfigMap, key string) string {
	value, _ := cfg[key].(string)
	return value
}

func boolValue(cfg config.ConfigMap, key string) bool {
	switch v := cfg[key].(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(v)
		return err == nil && parsed
	}
	return false
}
