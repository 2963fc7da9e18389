package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// CliConfig parses command-line arguments into a partial configuration.
// Flags are generated from the option catalog (camelCase names become
// kebab-case flags, so logLevel is --log-level). Only flags the user actually
// set appear in the result; positional arguments are repository identifiers.
func CliConfig(args []string) (ConfigMap, error) {
	fs := pflag.NewFlagSet("depbot", pflag.ContinueOnError)
	fs.SortFlags = false

	pointers := make(map[string]any, len(options))
	byFlagName := make(map[string]Option, len(options))
	for _, opt := range options {
		if opt.NoCLI {
			continue
		}
		name := cliName(opt.Name)
		byFlagName[name] = opt
		switch opt.Type {
		case TypeBoolean:
			pointers[opt.Name] = fs.Bool(name, defaultBool(opt), opt.Description)
		case TypeInteger:
			pointers[opt.Name] = fs.Int64(name, defaultInt64(opt), opt.Description)
		case TypeList:
			pointers[opt.Name] = fs.StringSlice(name, nil, opt.Description)
		default:
			// Object-typed options take a JSON value.
			pointers[opt.Name] = fs.String(name, defaultString(opt), opt.Description)
		}
	}

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse arguments: %w", err)
	}

	cfg := make(ConfigMap)
	var parseErr error
	fs.Visit(func(f *pflag.Flag) {
		opt, ok := byFlagName[f.Name]
		if !ok {
			return
		}
		switch opt.Type {
		case TypeBoolean:
			cfg[opt.Name] = *pointers[opt.Name].(*bool)
		case TypeInteger:
			cfg[opt.Name] = *pointers[opt.Name].(*int64)
		case TypeList:
			cfg[opt.Name] = ToList(*pointers[opt.Name].(*[]string))
		case TypeObject:
			value := map[string]any{}
			if err := json.Unmarshal([]byte(*pointers[opt.Name].(*string)), &value); err != nil {
				parseErr = fmt.Errorf("flag --%s: invalid JSON: %w", f.Name, err)
				return
			}
			cfg[opt.Name] = value
		default:
			cfg[opt.Name] = *pointers[opt.Name].(*string)
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if rest := fs.Args(); len(rest) > 0 {
		repositories := make([]any, len(rest))
		for i, repo := range rest {
			repositories[i] = repo
		}
		cfg["repositories"] = repositories
	}

	return cfg, nil
}

// cliName renders an option name as its kebab-case flag name.
func cliName(name string) string {
	return strings.Join(splitWords(name), "-")
}

func defaultBool(opt Option) bool {
	value, _ := opt.Default.(bool)
	return value
}

func defaultInt64(opt Option) int64 {
	switch value := opt.Default.(type) {
	case int64:
		return value
	case int:
		return int64(value)
	}
	return 0
}

func defaultString(opt Option) string {
	value, _ := opt.Default.(string)
	return value
}
