// Package config defines depbot's option catalog and the building blocks of
// configuration resolution: source loaders, stage filtering, and scope
// merging.
//
// Configuration comes from four ranked sources, lowest to highest:
//  1. Built-in defaults (Defaults)
//  2. Configuration file (FileConfig)
//  3. Command-line arguments (CliConfig)
//  4. Environment variables (EnvConfig)
//
// Each loader produces a partial ConfigMap; a key a source does not set is
// simply absent, never an explicit override. The pipeline in the depbot root
// package merges the four maps by precedence and runs preset expansion over
// the result.
//
// # The Option Catalog
//
// Every recognized option is declared once in the catalog with its type, its
// pipeline stage, and whether it is mergeable:
//
//	opt, ok := config.OptionByName("labels")
//	// opt.Type == config.TypeList, opt.Stage == config.StagePR
//
// FilterConfig strips options scoped to earlier stages as the pipeline
// narrows:
//
//	repoCfg := config.FilterConfig(cfg, config.StageRepository)
//	// platform, token, logLevel etc. are gone; repository options remain
//
// MergeChildConfig layers a child scope over a parent scope. Mergeable list
// options concatenate and mergeable object options shallow-merge, so a
// repository's labels add to the global ones instead of replacing them.
//
// # Environment Variables
//
// Option names map to DEPBOT_* variables on word boundaries:
//
//	DEPBOT_PLATFORM=gitlab      # sets platform
//	DEPBOT_AUTODISCOVER=true    # sets autodiscover
//	LOG_LEVEL=debug             # logLevel declares its own variable name
package config
