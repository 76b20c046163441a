package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validEnvFile = "uaemail=jon@example.com\n" +
	"uausername=jonathanfox5\n" +
	"lookupuser=MagnusCarlsen\n"

func clearIdentityEnv(t *testing.T) {
	t.Helper()
	t.Setenv("UAEMAIL", "")
	t.Setenv("UAUSERNAME", "")
	t.Setenv("LOOKUPUSER", "")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearIdentityEnv(t)
	envFile := writeFile(t, ".env", validEnvFile)

	cfg, err := Load(&CLIOverrides{EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Identity.Email != "jon@example.com" {
		t.Fatalf("unexpected email: %s", cfg.Identity.Email)
	}
	if cfg.Identity.Username != "jonathanfox5" {
		t.Fatalf("unexpected username: %s", cfg.Identity.Username)
	}
	if cfg.Identity.LookupUser != "magnuscarlsen" {
		t.Fatalf("expected lowercased lookup user, got %s", cfg.Identity.LookupUser)
	}
	if cfg.Months != defaultMonths {
		t.Fatalf("expected default months %d, got %d", defaultMonths, cfg.Months)
	}
	if !cfg.IncludeOpponents {
		t.Fatalf("expected opponent data enabled by default")
	}
	if cfg.HTTPTimeout != defaultHTTPTimeout {
		t.Fatalf("unexpected http timeout: %s", cfg.HTTPTimeout)
	}
	if cfg.RetryAttempts != defaultRetryAttempts {
		t.Fatalf("unexpected retry attempts: %d", cfg.RetryAttempts)
	}
	if cfg.RetryCooldown != 60*time.Second+100*time.Millisecond {
		t.Fatalf("unexpected retry cooldown: %s", cfg.RetryCooldown)
	}
	if cfg.Output != OutputText {
		t.Fatalf("unexpected output format: %s", cfg.Output)
	}
}

func TestLoadMissingIdentityKeys(t *testing.T) {
	clearIdentityEnv(t)
	envFile := writeFile(t, ".env", "uaemail=jon@example.com\n")

	_, err := Load(&CLIOverrides{EnvFile: envFile})
	if !errors.Is(err, ErrMissingIdentity) {
		t.Fatalf("expected ErrMissingIdentity, got %v", err)
	}
	for _, key := range []string{KeyUsername, KeyLookupUser} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("error does not name missing key %q: %v", key, err)
		}
	}
	if strings.Contains(err.Error(), KeyEmail) {
		t.Fatalf("error names a key that was present: %v", err)
	}
}

func TestLoadMissingEnvFileFallsBackToEnvironment(t *testing.T) {
	t.Setenv("UAEMAIL", "jon@example.com")
	t.Setenv("UAUSERNAME", "jonathanfox5")
	t.Setenv("LOOKUPUSER", "Hikaru")

	cfg, err := Load(&CLIOverrides{EnvFile: filepath.Join(t.TempDir(), "no-such.env")})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Identity.LookupUser != "hikaru" {
		t.Fatalf("unexpected lookup user: %s", cfg.Identity.LookupUser)
	}
}

func TestLoadMalformedEnvFile(t *testing.T) {
	clearIdentityEnv(t)
	envFile := writeFile(t, ".env", "this line has no separator\n")

	_, err := Load(&CLIOverrides{EnvFile: envFile})
	if err == nil || !strings.Contains(err.Error(), "read env file") {
		t.Fatalf("expected env file parse error, got %v", err)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	clearIdentityEnv(t)
	t.Setenv("LOOKUPUSER", "FromEnv")
	envFile := writeFile(t, ".env", validEnvFile)

	cfg, err := Load(&CLIOverrides{EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Identity.LookupUser != "fromenv" {
		t.Fatalf("expected environment to win over file, got %s", cfg.Identity.LookupUser)
	}
}

func TestLoadYAMLSettings(t *testing.T) {
	clearIdentityEnv(t)
	envFile := writeFile(t, ".env", validEnvFile)
	configFile := writeFile(t, "config.yaml", `
months: 12
include_opponents: false
top_openings: 5
top_opponents: 3
openings_file: data/openings.tsv
output: json
verbose: true
http:
  timeout: 5s
  retry_attempts: 2
  retry_cooldown: 1s
  rate_limit:
    rps: 2
    burst: 3
`)

	cfg, err := Load(&CLIOverrides{EnvFile: envFile, ConfigFile: configFile})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Months != 12 {
		t.Fatalf("unexpected months: %d", cfg.Months)
	}
	if cfg.IncludeOpponents {
		t.Fatalf("expected opponent data disabled")
	}
	if cfg.TopOpenings != 5 || cfg.TopOpponents != 3 {
		t.Fatalf("unexpected list caps: %d/%d", cfg.TopOpenings, cfg.TopOpponents)
	}
	if cfg.OpeningsFile != "data/openings.tsv" {
		t.Fatalf("unexpected openings file: %s", cfg.OpeningsFile)
	}
	if cfg.Output != OutputJSON {
		t.Fatalf("unexpected output format: %s", cfg.Output)
	}
	if !cfg.Verbose {
		t.Fatalf("expected verbose enabled")
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("unexpected http timeout: %s", cfg.HTTPTimeout)
	}
	if cfg.RetryAttempts != 2 {
		t.Fatalf("unexpected retry attempts: %d", cfg.RetryAttempts)
	}
	if cfg.RetryCooldown != time.Second {
		t.Fatalf("unexpected retry cooldown: %s", cfg.RetryCooldown)
	}
	if cfg.RateLimitRPS != 2 || cfg.RateLimitBurst != 3 {
		t.Fatalf("unexpected rate limit: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadMissingYAMLFile(t *testing.T) {
	clearIdentityEnv(t)
	envFile := writeFile(t, ".env", validEnvFile)

	_, err := Load(&CLIOverrides{
		EnvFile:    envFile,
		ConfigFile: filepath.Join(t.TempDir(), "no-such.yaml"),
	})
	if err == nil || !strings.Contains(err.Error(), "load YAML config") {
		t.Fatalf("expected YAML load error, got %v", err)
	}
}

func TestLoadCLIOverrides(t *testing.T) {
	clearIdentityEnv(t)
	t.Setenv("LOOKUPUSER", "FromEnv")
	envFile := writeFile(t, ".env", validEnvFile)

	user := "CLIFella"
	months := 6
	noOpponents := true
	openingsFile := "other.tsv"
	jsonOut := true
	verbose := true

	cfg, err := Load(&CLIOverrides{
		EnvFile:     envFile,
		User:        &user,
		Months:      &months,
		NoOpponents: &noOpponents,
		Openings:    &openingsFile,
		JSONOutput:  &jsonOut,
		Verbose:     &verbose,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Identity.LookupUser != "clifella" {
		t.Fatalf("expected CLI user to win, got %s", cfg.Identity.LookupUser)
	}
	if cfg.Months != 6 {
		t.Fatalf("unexpected months: %d", cfg.Months)
	}
	if cfg.IncludeOpponents {
		t.Fatalf("expected opponent data disabled via CLI")
	}
	if cfg.OpeningsFile != "other.tsv" {
		t.Fatalf("unexpected openings file: %s", cfg.OpeningsFile)
	}
	if cfg.Output != OutputJSON {
		t.Fatalf("unexpected output format: %s", cfg.Output)
	}
	if !cfg.Verbose {
		t.Fatalf("expected verbose enabled")
	}
}

func TestLoadInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"ZeroMonths", "months: 0"},
		{"NegativeCaps", "top_openings: -1"},
		{"ZeroAttempts", "http:\n  retry_attempts: 0"},
		{"NegativeRPS", "http:\n  rate_limit:\n    rps: -1"},
		{"NegativeBurst", "http:\n  rate_limit:\n    burst: -1"},
		{"BadOutput", "output: yaml"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			clearIdentityEnv(t)
			envFile := writeFile(t, ".env", validEnvFile)
			configFile := writeFile(t, "config.yaml", tc.yaml)

			_, err := Load(&CLIOverrides{EnvFile: envFile, ConfigFile: configFile})
			if !errors.Is(err, ErrInvalidSetting) {
				t.Fatalf("expected ErrInvalidSetting, got %v", err)
			}
		})
	}
}
