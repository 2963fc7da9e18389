package config

import "strings"

// OptionType identifies the value shape of a configuration option.
type OptionType string

// Option value types.
const (
	TypeString  OptionType = "string"
	TypeBoolean OptionType = "boolean"
	TypeInteger OptionType = "integer"
	TypeList    OptionType = "list"
	TypeObject  OptionType = "object"
)

// Option describes one recognized configuration option.
type Option struct {
	// Name is the camelCase option key, unique across the catalog.
	Name string

	// Description is a one-line summary shown in CLI help.
	Description string

	// Type is the expected value shape.
	Type OptionType

	// Stage is the earliest pipeline stage the option applies to. Options
	// scoped to a stage before the current one are stripped by FilterConfig.
	Stage Stage

	// Mergeable options combine parent and child values during scope merges
	// instead of letting the child overwrite the parent.
	Mergeable bool

	// Default is the built-in value, nil when the option has none.
	Default any

	// EnvName overrides the derived DEPBOT_* environment variable name.
	EnvName string

	// NoCLI excludes the option from command-line flag generation.
	// Repositories come in as positional arguments instead.
	NoCLI bool

	// NoEnv excludes the option from environment variable lookup.
	NoEnv bool
}

// Options returns the full option catalog in declaration order.
func Options() []Option {
	return options
}

// OptionByName looks up a catalog option by its camelCase name.
func OptionByName(name string) (Option, bool) {
	opt, ok := optionIndex[name]
	return opt, ok
}

// MergeableOptions returns the names of options that are combined rather than
// overwritten during scope merges.
func MergeableOptions() []string {
	names := make([]string, 0, 8)
	for _, opt := range options {
		if opt.Mergeable {
			names = append(names, opt.Name)
		}
	}
	return names
}

// options is the full catalog. Order is stable and user-visible (CLI help).
var options = []Option{
	// Program options
	{
		Name:        "platform",
		Description: "Hosting platform to operate on (github, gitlab, or gitea)",
		Type:        TypeString,
		Stage:       StageGlobal,
		Default:     "github",
	},
	{
		Name:        "endpoint",
		Description: "Custom platform API base URL",
		Type:        TypeString,
		Stage:       StageGlobal,
	},
	{
		Name:        "token",
		Description: "Platform API credential",
		Type:        TypeString,
		Stage:       StageGlobal,
	},
	{
		Name:        "githubAppId",
		Description: "GitHub App ID, used instead of a token",
		Type:        TypeInteger,
		Stage:       StageGlobal,
	},
	{
		Name:        "githubAppKey",
		Description: "GitHub App private key (PEM)",
		Type:        TypeString,
		Stage:       StageGlobal,
	},
	{
		Name:        "autodiscover",
		Description: "Discover all repositories the credential can access",
		Type:        TypeBoolean,
		Stage:       StageGlobal,
		Default:     false,
	},
	{
		Name:        "repositories",
		Description: "Repositories to operate on",
		Type:        TypeList,
		Stage:       StageGlobal,
		NoCLI:       true,
	},
	{
		Name:        "logLevel",
		Description: "Console logging level",
		Type:        TypeString,
		Stage:       StageGlobal,
		Default:     "info",
		EnvName:     "LOG_LEVEL",
	},
	{
		Name:        "logFile",
		Description: "Log file path",
		Type:        TypeString,
		Stage:       StageGlobal,
		EnvName:     "LOG_FILE",
	},
	{
		Name:        "logFileLevel",
		Description: "Log file logging level",
		Type:        TypeString,
		Stage:       StageGlobal,
		Default:     "debug",
		EnvName:     "LOG_FILE_LEVEL",
	},

	// Repository options
	{
		Name:        "extends",
		Description: "Preset configurations to inherit from",
		Type:        TypeList,
		Stage:       StagePackage,
	},
	{
		Name:        "onboarding",
		Description: "Open an onboarding PR before updating a new repository",
		Type:        TypeBoolean,
		Stage:       StageRepository,
		Default:     true,
	},
	{
		Name:        "timezone",
		Description: "IANA time zone applied to schedules",
		Type:        TypeString,
		Stage:       StageRepository,
	},
	{
		Name:        "semanticCommits",
		Description: "Use semantic commit prefixes for commits and PR titles",
		Type:        TypeBoolean,
		Stage:       StageRepository,
		Default:     false,
	},
	{
		Name:        "packageFiles",
		Description: "Package file paths to include",
		Type:        TypeList,
		Stage:       StageRepository,
		Mergeable:   true,
	},

	// Package file options
	{
		Name:        "pinVersions",
		Description: "Pin dependency versions instead of using ranges",
		Type:        TypeBoolean,
		Stage:       StagePackageFile,
		Default:     false,
	},
	{
		Name:        "lockFileMaintenance",
		Description: "Lock file maintenance settings",
		Type:        TypeObject,
		Stage:       StagePackageFile,
		Mergeable:   true,
	},

	// Dependency type options
	{
		Name:        "depTypes",
		Description: "Dependency types to update",
		Type:        TypeList,
		Stage:       StageDepType,
	},
	{
		Name:        "ignoreDeps",
		Description: "Dependencies to skip",
		Type:        TypeList,
		Stage:       StageDepType,
		Mergeable:   true,
	},
	{
		Name:        "packages",
		Description: "Package-level rule overrides",
		Type:        TypeList,
		Stage:       StageDepType,
	},

	// Package options
	{
		Name:        "separateMajorReleases",
		Description: "Raise major updates in their own branches",
		Type:        TypeBoolean,
		Stage:       StagePackage,
		Default:     true,
	},
	{
		Name:        "ignoreFuture",
		Description: "Skip versions released into the future",
		Type:        TypeBoolean,
		Stage:       StagePackage,
		Default:     true,
	},
	{
		Name:        "respectLatest",
		Description: "Never update beyond the published latest tag",
		Type:        TypeBoolean,
		Stage:       StagePackage,
		Default:     true,
	},
	{
		Name:        "unpublishSafe",
		Description: "Hold updates until the unpublish window has passed",
		Type:        TypeBoolean,
		Stage:       StagePackage,
		Default:     false,
	},

	// Branch options
	{
		Name:        "branchPrefix",
		Description: "Prefix for update branch names",
		Type:        TypeString,
		Stage:       StageBranch,
		Default:     "depbot/",
	},
	{
		Name:        "branchName",
		Description: "Update branch name template",
		Type:        TypeString,
		Stage:       StageBranch,
		Default:     "{{branchPrefix}}{{depName}}-{{newVersionMajor}}.x",
	},
	{
		Name:        "commitMessage",
		Description: "Commit message template",
		Type:        TypeString,
		Stage:       StageBranch,
		Default:     "Update dependency {{depName}} to version {{newVersion}}",
	},
	{
		Name:        "schedule",
		Description: "Times of day or week the bot may create branches",
		Type:        TypeList,
		Stage:       StageBranch,
		Mergeable:   true,
	},
	{
		Name:        "automerge",
		Description: "Merge passing update PRs without review",
		Type:        TypeBoolean,
		Stage:       StageBranch,
		Default:     false,
	},
	{
		Name:        "rebaseStalePrs",
		Description: "Rebase open update branches when they fall behind",
		Type:        TypeBoolean,
		Stage:       StageBranch,
		Default:     false,
	},
	{
		Name:        "recreateClosed",
		Description: "Recreate update PRs that were previously closed",
		Type:        TypeBoolean,
		Stage:       StageBranch,
		Default:     false,
	},

	// PR options
	{
		Name:        "prCreation",
		Description: "When to create PRs (immediate, not-pending, or status-success)",
		Type:        TypeString,
		Stage:       StagePR,
		Default:     "immediate",
	},
	{
		Name:        "prTitle",
		Description: "PR title template",
		Type:        TypeString,
		Stage:       StagePR,
		Default:     "Update dependency {{depName}} to version {{newVersion}}",
	},
	{
		Name:        "prBody",
		Description: "PR body template",
		Type:        TypeString,
		Stage:       StagePR,
		Default:     "This PR updates {{depName}} from `{{currentVersion}}` to `{{newVersion}}`.",
	},
	{
		Name:        "labels",
		Description: "Labels added to update PRs",
		Type:        TypeList,
		Stage:       StagePR,
		Mergeable:   true,
	},
	{
		Name:        "assignees",
		Description: "Users assigned to update PRs",
		Type:        TypeList,
		Stage:       StagePR,
		Mergeable:   true,
	},
	{
		Name:        "reviewers",
		Description: "Users requested to review update PRs",
		Type:        TypeList,
		Stage:       StagePR,
		Mergeable:   true,
	},
}

var optionIndex = buildOptionIndex()

func buildOptionIndex() map[string]Option {
	index := make(map[string]Option, len(options))
	for _, opt := range options {
		index[opt.Name] = opt
	}
	return index
}

// splitWords splits a camelCase option name into lowercase words.
// "logFileLevel" becomes ["log", "file", "level"].
func splitWords(name string) []string {
	var words []string
	start := 0
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			words = append(words, strings.ToLower(name[start:i]))
			start = i
		}
	}
	words = append(words, strings.ToLower(name[start:]))
	return words
}
