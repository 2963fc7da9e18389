package config

import (
	"reflect"
	"testing"
)

func TestCliConfig_OnlySetFlagsAppear(t *testing.T) {
	cfg, err := CliConfig([]string{"--platform", "gitlab", "--token", "abc"})
	if err != nil {
		t.Fatalf("CliConfig: %v", err)
	}

	if got := cfg["platform"]; got != "gitlab" {
		t.Errorf("platform = %v, want %q", got, "gitlab")
	}
	if got := cfg["token"]; got != "abc" {
		t.Errorf("token = %v, want %q", got, "abc")
	}
	// Defaults exist in the catalog but unset flags must not leak into the
	// CLI source.
	if _, ok := cfg["logLevel"]; ok {
		t.Error("unset --log-level appeared in CLI config")
	}
	if _, ok := cfg["onboarding"]; ok {
		t.Error("unset --onboarding appeared in CLI config")
	}
}

func TestCliConfig_KebabCaseFlags(t *testing.T) {
	cfg, err := CliConfig([]string{"--log-level", "debug", "--log-file", "/tmp/depbot.log"})
	if err != nil {
		t.Fatalf("CliConfig: %v", err)
	}

	if got := cfg["logLevel"]; got != "debug" {
		t.Errorf("logLevel = %v, want %q", got, "debug")
	}
	if got := cfg["logFile"]; got != "/tmp/depbot.log" {
		t.Errorf("logFile = %v, want %q", got, "/tmp/depbot.log")
	}
}

func TestCliConfig_BooleanAndIntegerFlags(t *testing.T) {
	cfg, err := CliConfig([]string{"--autodiscover", "--onboarding=false", "--github-app-id", "12345"})
	if err != nil {
		t.Fatalf("CliConfig: %v", err)
	}

	if got := cfg["autodiscover"]; got != true {
		t.Errorf("autodiscover = %v, want true", got)
	}
	if got := cfg["onboarding"]; got != false {
		t.Errorf("onboarding = %v, want false", got)
	}
	if got := cfg["githubAppId"]; got != int64(12345) {
		t.Errorf("githubAppId = %v (%T), want int64 12345", got, got)
	}
}

func TestCliConfig_ListFlag(t *testing.T) {
	cfg, err := CliConfig([]string{"--labels", "deps,bot"})
	if err != nil {
		t.Fatalf("CliConfig: %v", err)
	}

	want := []any{"deps", "bot"}
	if !reflect.DeepEqual(cfg["labels"], want) {
		t.Errorf("labels = %v, want %v", cfg["labels"], want)
	}
}

func TestCliConfig_PositionalRepositories(t *testing.T) {
	cfg, err := CliConfig([]string{"--platform", "github", "org/one", "org/two"})
	if err != nil {
		t.Fatalf("CliConfig: %v", err)
	}

	want := []any{"org/one", "org/two"}
	if !reflect.DeepEqual(cfg["repositories"], want) {
		t.Errorf("repositories = %v, want %v", cfg["repositories"], want)
	}
}

func TestCliConfig_NoArguments(t *testing.T) {
	cfg, err := CliConfig(nil)
	if err != nil {
		t.Fatalf("CliConfig: %v", err)
	}
	if len(cfg) != 0 {
		t.Errorf("config = %v, want empty", cfg)
	}
}

func TestCliConfig_UnknownFlag(t *testing.T) {
	if _, err := CliConfig([]string{"--does-not-exist", "x"}); err == nil {
		t.Error("unknown flag did not return an error")
	}
}

func TestCliConfig_ObjectFlagTakesJSON(t *testing.T) {
	cfg, err := CliConfig([]string{"--lock-file-maintenance", `{"enabled": true}`})
	if err != nil {
		t.Fatalf("CliConfig: %v", err)
	}

	want := map[string]any{"enabled": true}
	if !reflect.DeepEqual(cfg["lockFileMaintenance"], want) {
		t.Errorf("lockFileMaintenance = %v, want %v", cfg["lockFileMaintenance"], want)
	}
}

func TestCliName(t *testing.T) {
	tests := []struct {
		option string
		flag   string
	}{
		{"platform", "platform"},
		{"logFileLevel", "log-file-level"},
		{"githubAppId", "github-app-id"},
	}

	for _, tt := range tests {
		if got := cliName(tt.option); got != tt.flag {
			t.Errorf("cliName(%q) = %q, want %q", tt.option, got, tt.flag)
		}
	}
}
