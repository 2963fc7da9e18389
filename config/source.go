package config

// Source indicates which pipeline source set a configuration value.
type Source string

// Configuration sources, in merge order. A later source overwrites an
// earlier one key by key.
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceFile indicates the value came from the configuration file.
	SourceFile Source = "file"

	// SourceCli indicates the value was set via command-line flag.
	SourceCli Source = "cli"

	// SourceEnv indicates the value came from an environment variable.
	SourceEnv Source = "env"
)
