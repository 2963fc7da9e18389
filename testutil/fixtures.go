// Package testutil provides utilities for testing.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/randalmurphal/depbot/config"
)

// LoadFixture loads a fixture file from the testdata directory.
// The path is relative to the testdata directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	fullPath := filepath.Join("testdata", path)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", path, err)
	}

	return data
}

// LoadFixtureString loads a fixture file as a string.
func LoadFixtureString(t *testing.T, path string) string {
	t.Helper()
	return string(LoadFixture(t, path))
}

// LoadJSONFixture loads a fixture file and unmarshals it as JSON.
func LoadJSONFixture[T any](t *testing.T, path string) T {
	t.Helper()

	data := LoadFixture(t, path)

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("failed to parse JSON fixture %s: %v", path, err)
	}

	return result
}

// TempFile creates a temporary file with the given content.
// Returns the file path. File is automatically cleaned up when the test ends.
func TempFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to create temp file %s: %v", name, err)
	}

	return path
}

// TempFileString creates a temporary file with string content.
func TempFileString(t *testing.T, name, content string) string {
	return TempFile(t, name, []byte(content))
}

// ConfigFile writes a configuration map to a temporary file and returns
// its path. The name's extension picks the format, as config.Write does.
func ConfigFile(t *testing.T, name string, cfg config.ConfigMap) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := config.Write(path, cfg); err != nil {
		t.Fatalf("failed to write config fixture %s: %v", name, err)
	}

	return path
}

// Env builds an environment map from "KEY=value" pairs.
func Env(pairs ...string) map[string]string {
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		if idx := strings.Index(pair, "="); idx > 0 {
			env[pair[:idx]] = pair[idx+1:]
		}
	}
	return env
}
