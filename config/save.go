package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Write saves a configuration map to path. The extension picks the format:
// .yaml or .yml writes YAML, anything else writes indented JSON.
func Write(path string, cfg ConfigMap) error {
	data, err := marshalConfig(path, cfg)
	if err != nil {
		return fmt.Errorf("encode config %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func marshalConfig(path string, cfg ConfigMap) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(map[string]any(cfg))
	default:
		data, err := json.MarshalIndent(map[string]any(cfg), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// OnboardingConfig is the starter configuration written for repositories
// that have none yet.
func OnboardingConfig() ConfigMap {
	return ConfigMap{
		"extends": []any{":base"},
	}
}

// WriteOnboarding writes the starter configuration into dir and returns
// the path it wrote. It refuses to touch a directory that already has a
// configuration file.
func WriteOnboarding(dir string) (string, error) {
	for _, candidate := range configFileCandidates {
		existing := filepath.Join(dir, candidate)
		if _, err := os.Stat(existing); err == nil {
			return "", fmt.Errorf("configuration already exists: %s", existing)
		}
	}

	path := filepath.Join(dir, configFileCandidates[0])
	if err := Write(path, OnboardingConfig()); err != nil {
		return "", err
	}
	return path, nil
}
