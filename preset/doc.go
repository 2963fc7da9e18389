// Package preset expands extends references in a configuration into concrete
// option values.
//
// A preset is a named, reusable bundle of options. Configurations pull
// presets in through an extends list:
//
//	{
//	    "extends": [":base", ":maintainLockFiles"],
//	    "labels": ["dependencies"]
//	}
//
// The Resolver fetches each reference, flattens nested extends chains, folds
// the expanded presets together in listed order, and layers the
// configuration's own keys on top, so explicit values always beat inherited
// ones. Cycles are detected by tracking the in-progress reference chain and
// reported as ErrCycle with the full chain.
//
// Where presets come from is the Fetcher's concern: Builtins serves the
// built-in ":name" catalog, and MultiFetcher chains catalogs so custom
// sources can sit in front of the built-ins.
package preset
