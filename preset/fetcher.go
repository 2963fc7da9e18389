package preset

import (
	"context"
	"errors"

	"github.com/randalmurphal/depbot/config"
)

// Fetcher resolves a preset reference to its raw, unexpanded definition.
// Definitions may themselves carry extends references; the Resolver flattens
// them.
type Fetcher interface {
	Fetch(ctx context.Context, reference string) (config.ConfigMap, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, reference string) (config.ConfigMap, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, reference string) (config.ConfigMap, error) {
	return f(ctx, reference)
}

// MultiFetcher tries each fetcher in order and returns the first definition
// found. A fetcher that reports ErrNotFound passes the reference along;
// any other error stops the chain.
type MultiFetcher []Fetcher

// Fetch implements Fetcher.
func (m MultiFetcher) Fetch(ctx context.Context, reference string) (config.ConfigMap, error) {
	for _, fetcher := range m {
		definition, err := fetcher.Fetch(ctx, reference)
		if err == nil {
			return definition, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}
