package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/tidwall/jsonc"
)

// ConfigFileEnv names the environment variable that points at the
// configuration file.
const ConfigFileEnv = "DEPBOT_CONFIG_FILE"

// configFileCandidates are tried in order when no file is configured.
var configFileCandidates = []string{
	"depbot.json",
	"depbot.json5",
	"depbot.yaml",
}

// FileConfig loads the configuration file. The path comes from
// DEPBOT_CONFIG_FILE, falling back to depbot.json, depbot.json5, or
// depbot.yaml in the working directory. A missing file yields an empty
// config; a file that exists but does not parse is an error.
func FileConfig(env map[string]string) (ConfigMap, error) {
	path := env[ConfigFileEnv]
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return ConfigMap{}, nil
		}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			// An explicitly configured file that is absent is still fine:
			// absence means "not set by this source".
			return ConfigMap{}, nil
		}
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	k := koanf.New(".")
	if err := loadFile(k, path); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return ConfigMap(k.Raw()), nil
}

func loadFile(k *koanf.Koanf, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return k.Load(file.Provider(path), yaml.Parser())
	case ".json":
		return k.Load(file.Provider(path), json.Parser())
	default:
		// .json5, .jsonc, or no extension: JSON with comments and trailing
		// commas tolerated.
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return k.Load(rawbytes.Provider(jsonc.ToJSON(data)), json.Parser())
	}
}

func findConfigFile() string {
	for _, candidate := range configFileCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
