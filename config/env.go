package config

import (
	"encoding/json"
	"strconv"
	"strings"
)

// EnvConfig extracts configuration from environment variables. Each catalog
// option maps to DEPBOT_<NAME> with the camelCase name split on word
// boundaries (logFileLevel reads DEPBOT_LOG_FILE_LEVEL), unless the option
// declares its own variable name. Unset and empty variables contribute
// nothing.
func EnvConfig(env map[string]string) ConfigMap {
	cfg := make(ConfigMap)
	for _, opt := range options {
		if opt.NoEnv {
			continue
		}
		raw, ok := env[EnvName(opt)]
		if !ok || raw == "" {
			continue
		}
		cfg[opt.Name] = coerceEnvValue(opt, raw)
	}
	return cfg
}

// EnvName returns the environment variable that sets opt.
func EnvName(opt Option) string {
	if opt.EnvName != "" {
		return opt.EnvName
	}
	return "DEPBOT_" + strings.ToUpper(strings.Join(splitWords(opt.Name), "_"))
}

// coerceEnvValue converts a raw environment string to the option's value
// shape. Values that do not parse are passed through as strings so validation
// can report them.
func coerceEnvValue(opt Option, raw string) any {
	switch opt.Type {
	case TypeBoolean:
		if value, err := strconv.ParseBool(raw); err == nil {
			return value
		}
		return raw
	case TypeInteger:
		if value, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return value
		}
		return raw
	case TypeList:
		return parseEnvList(raw)
	case TypeObject:
		value := map[string]any{}
		if err := json.Unmarshal([]byte(raw), &value); err == nil {
			return value
		}
		return raw
	default:
		return raw
	}
}

// parseEnvList accepts either a JSON array or a comma- or space-separated
// list. DEPBOT_REPOSITORIES="org/one org/two" and
// DEPBOT_LABELS='["deps","bot"]' both work.
func parseEnvList(raw string) []any {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var value []any
		if err := json.Unmarshal([]byte(trimmed), &value); err == nil {
			return value
		}
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	list := make([]any, len(fields))
	for i, field := range fields {
		list[i] = field
	}
	return list
}
