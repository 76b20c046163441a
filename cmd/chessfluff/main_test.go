package main

import (
	"path/filepath"
	"testing"

	"github.com/jonathanfox5/chessfluff/internal/config"
)

func TestParseFlagsDefaults(t *testing.T) {
	overrides, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}

	if overrides.EnvFile != config.DefaultEnvFile {
		t.Fatalf("expected default env file %q, got %q", config.DefaultEnvFile, overrides.EnvFile)
	}
	if overrides.ConfigFile != "" {
		t.Fatalf("expected no config file, got %q", overrides.ConfigFile)
	}
	if overrides.User != nil || overrides.Months != nil || overrides.NoOpponents != nil ||
		overrides.Openings != nil || overrides.JSONOutput != nil || overrides.Verbose != nil {
		t.Fatalf("expected unset flags to stay nil: %+v", overrides)
	}
}

func TestParseFlagsAll(t *testing.T) {
	overrides, err := parseFlags([]string{
		"--env-file", "custom.env",
		"--config", "settings.yaml",
		"--user", "Hikaru",
		"--months", "6",
		"--no-opponents",
		"--openings", "book.tsv",
		"--json",
		"--verbose",
	})
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}

	if overrides.EnvFile != "custom.env" {
		t.Fatalf("unexpected env file: %q", overrides.EnvFile)
	}
	if overrides.ConfigFile != "settings.yaml" {
		t.Fatalf("unexpected config file: %q", overrides.ConfigFile)
	}
	if overrides.User == nil || *overrides.User != "Hikaru" {
		t.Fatalf("unexpected user override: %v", overrides.User)
	}
	if overrides.Months == nil || *overrides.Months != 6 {
		t.Fatalf("unexpected months override: %v", overrides.Months)
	}
	if overrides.NoOpponents == nil || !*overrides.NoOpponents {
		t.Fatalf("expected no-opponents override")
	}
	if overrides.Openings == nil || *overrides.Openings != "book.tsv" {
		t.Fatalf("unexpected openings override: %v", overrides.Openings)
	}
	if overrides.JSONOutput == nil || !*overrides.JSONOutput {
		t.Fatalf("expected json override")
	}
	if overrides.Verbose == nil || !*overrides.Verbose {
		t.Fatalf("expected verbose override")
	}
}

func TestParseFlagsUnknown(t *testing.T) {
	if _, err := parseFlags([]string{"--definitely-not-a-flag"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestRunExitCodes(t *testing.T) {
	t.Setenv("UAEMAIL", "")
	t.Setenv("UAUSERNAME", "")
	t.Setenv("LOOKUPUSER", "")

	if code := run([]string{"--definitely-not-a-flag"}); code != 2 {
		t.Fatalf("expected exit code 2 for a usage error, got %d", code)
	}

	missing := filepath.Join(t.TempDir(), "no-such.env")
	if code := run([]string{"--env-file", missing}); code != 1 {
		t.Fatalf("expected exit code 1 for incomplete identity, got %d", code)
	}
}
