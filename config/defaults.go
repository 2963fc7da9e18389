package config

// Defaults returns the built-in configuration: every catalog option that
// declares a default value. It is the lowest-precedence source.
func Defaults() ConfigMap {
	cfg := make(ConfigMap)
	for _, opt := range options {
		if opt.Default != nil {
			cfg[opt.Name] = opt.Default
		}
	}
	return cfg
}
