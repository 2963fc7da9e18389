package preset

import (
	"context"
	"fmt"

	"github.com/randalmurphal/depbot/config"
)

// Builtins returns the Fetcher serving depbot's built-in preset catalog.
// Built-in references use the ":name" form.
func Builtins() Fetcher {
	return builtinFetcher{}
}

type builtinFetcher struct{}

func (builtinFetcher) Fetch(_ context.Context, reference string) (config.ConfigMap, error) {
	definition, ok := builtins[reference]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, reference)
	}
	// Callers get their own copy so resolution cannot corrupt the catalog.
	out := make(config.ConfigMap, len(definition))
	for key, value := range definition {
		out[key] = value
	}
	return out, nil
}

// builtins is the built-in preset catalog.
var builtins = map[string]config.ConfigMap{
	":base": {
		"extends": []any{
			":separateMajorReleases",
			":ignoreFuture",
			":respectLatest",
			":prImmediately",
		},
	},
	":app": {
		"extends": []any{":base", ":pinVersions"},
	},
	":library": {
		"extends":     []any{":base"},
		"pinVersions": false,
	},
	":pinVersions": {
		"pinVersions": true,
	},
	":separateMajorReleases": {
		"separateMajorReleases": true,
	},
	":combineMajorReleases": {
		"separateMajorReleases": false,
	},
	":ignoreFuture": {
		"ignoreFuture": true,
	},
	":respectLatest": {
		"respectLatest": true,
	},
	":unpublishSafe": {
		"unpublishSafe": true,
	},
	":prImmediately": {
		"prCreation": "immediate",
	},
	":prNotPending": {
		"prCreation": "not-pending",
	},
	":automergeEnabled": {
		"automerge": true,
	},
	":automergeDisabled": {
		"automerge": false,
	},
	":rebaseStalePrs": {
		"rebaseStalePrs": true,
	},
	":semanticCommits": {
		"semanticCommits": true,
	},
	":maintainLockFiles": {
		"lockFileMaintenance": map[string]any{"enabled": true},
	},
	":nonOfficeHours": {
		"schedule": []any{
			"after 10pm every weekday",
			"before 5am every weekday",
			"every weekend",
		},
	},
}
