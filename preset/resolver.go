package preset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/depbot/config"
)

// Preset resolution errors.
var (
	// ErrNotFound indicates a preset reference no fetcher recognizes.
	ErrNotFound = errors.New("preset not found")

	// ErrCycle indicates presets that extend each other in a loop.
	ErrCycle = errors.New("preset cycle detected")
)

// Resolver expands extends references into concrete option values.
type Resolver struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

// NewResolver creates a Resolver backed by the given fetcher. A nil fetcher
// falls back to the built-in catalog.
func NewResolver(fetcher Fetcher, logger zerolog.Logger) *Resolver {
	if fetcher == nil {
		fetcher = Builtins()
	}
	return &Resolver{fetcher: fetcher, logger: logger}
}

// Resolve expands every extends reference in cfg, recursively, and returns a
// new configuration with the presets folded beneath cfg's own keys.
//
// Presets are folded in listed order: a later preset overrides an earlier one
// key by key, with mergeable options combined the same way scope merging
// combines them. The input's explicit keys are layered on last, and the
// consumed extends key does not appear in the output. References at the same
// level are fetched concurrently; fold order is unaffected.
func (r *Resolver) Resolve(ctx context.Context, cfg config.ConfigMap) (config.ConfigMap, error) {
	return r.resolve(ctx, cfg, nil)
}

func (r *Resolver) resolve(ctx context.Context, cfg config.ConfigMap, chain []string) (config.ConfigMap, error) {
	references, ok := extendsList(cfg)
	if !ok {
		return cfg, nil
	}

	expanded := make([]config.ConfigMap, len(references))
	g, gctx := errgroup.WithContext(ctx)
	for i, reference := range references {
		i, reference := i, reference
		g.Go(func() error {
			resolved, err := r.expand(gctx, reference, chain)
			if err != nil {
				return err
			}
			expanded[i] = resolved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	folded := config.ConfigMap{}
	for _, presetConfig := range expanded {
		folded = config.MergeChildConfig(folded, presetConfig)
	}

	explicit := make(config.ConfigMap, len(cfg))
	for key, value := range cfg {
		if key == "extends" {
			continue
		}
		explicit[key] = value
	}
	return config.MergeChildConfig(folded, explicit), nil
}

// expand fetches one reference and recursively resolves its definition.
func (r *Resolver) expand(ctx context.Context, reference string, chain []string) (config.ConfigMap, error) {
	for _, active := range chain {
		if active == reference {
			return nil, fmt.Errorf("%w: %s", ErrCycle, renderChain(chain, reference))
		}
	}

	r.logger.Debug().Str("preset", reference).Msg("expanding preset")
	definition, err := r.fetcher.Fetch(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("resolve preset %q: %w", reference, err)
	}

	// Each branch gets its own copy of the chain: sibling references must not
	// see each other as in-progress.
	next := make([]string, len(chain)+1)
	copy(next, chain)
	next[len(chain)] = reference

	return r.resolve(ctx, definition, next)
}

// extendsList pulls the preset references out of cfg. The second return is
// false when no extends key is present, which ends the recursion. A bare
// string reference counts as a single-element list; non-string entries are
// skipped.
func extendsList(cfg config.ConfigMap) ([]string, bool) {
	raw, ok := cfg["extends"]
	if !ok || raw == nil {
		return nil, false
	}

	switch value := raw.(type) {
	case string:
		if value == "" {
			return nil, true
		}
		return []string{value}, true
	case []string:
		return value, true
	case []any:
		references := make([]string, 0, len(value))
		for _, entry := range value {
			if reference, ok := entry.(string); ok && reference != "" {
				references = append(references, reference)
			}
		}
		return references, true
	default:
		return nil, false
	}
}

func renderChain(chain []string, reference string) string {
	return strings.Join(append(append([]string{}, chain...), reference), " -> ")
}
