package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Identity keys expected in the env file. The same names, uppercased, are
// honored as process environment variables.
const (
	KeyEmail      = "uaemail"
	KeyUsername   = "uausername"
	KeyLookupUser = "lookupuser"
)

const (
	// DefaultEnvFile is where the identity keys live unless --env-file
	// points elsewhere.
	DefaultEnvFile = ".env"

	defaultMonths         = 9999
	defaultTopOpenings    = 10
	defaultTopOpponents   = 10
	defaultHTTPTimeout    = 15 * time.Second
	defaultRetryAttempts  = 3
	defaultRetryCooldown  = 60*time.Second + 100*time.Millisecond
	defaultRateLimitRPS   = 5.0
	defaultRateLimitBurst = 5
)

// Output formats accepted by the "output" setting.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Identity is the contact information sent with every API request plus the
// account to analyse.
type Identity struct {
	Email      string
	Username   string
	LookupUser string
}

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > environment variables > env file > YAML settings
// > defaults.
type Config struct {
	Identity Identity

	Months           int
	IncludeOpponents bool
	TopOpenings      int
	TopOpponents     int
	OpeningsFile     string

	HTTPTimeout    time.Duration
	RetryAttempts  int
	RetryCooldown  time.Duration
	RateLimitRPS   float64
	RateLimitBurst int

	Output  string
	Verbose bool
}

// yamlConfig represents the YAML settings file structure. Identity never
// comes from YAML; it lives in the env file.
type yamlConfig struct {
	Months           *int      `yaml:"months"`
	IncludeOpponents *bool     `yaml:"include_opponents"`
	TopOpenings      *int      `yaml:"top_openings"`
	TopOpponents     *int      `yaml:"top_opponents"`
	OpeningsFile     string    `yaml:"openings_file"`
	Output           string    `yaml:"output"`
	Verbose          *bool     `yaml:"verbose"`
	HTTP             yamlHTTP  `yaml:"http"`
}

// yamlHTTP represents the http section in YAML.
type yamlHTTP struct {
	Timeout       string        `yaml:"timeout"`
	RetryAttempts *int          `yaml:"retry_attempts"`
	RetryCooldown string        `yaml:"retry_cooldown"`
	RateLimit     yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	EnvFile     string
	ConfigFile  string
	User        *string
	Months      *int
	NoOpponents *bool
	Openings    *string
	JSONOutput  *bool
	Verbose     *bool
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > environment variables > env file > YAML settings > defaults.
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Load settings from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Load identity from the env file. A missing file is only fatal when
	// the identity stays incomplete afterwards.
	envFile := DefaultEnvFile
	if overrides != nil && overrides.EnvFile != "" {
		envFile = overrides.EnvFile
	}
	if err := applyEnvFile(&cfg, envFile); err != nil {
		return Config{}, err
	}

	// Apply process environment variables (override the file)
	applyEnvConfig(&cfg)

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	normalize(&cfg)

	// Validate final configuration
	if err := validateConfig(cfg, envFile); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Months:           defaultMonths,
		IncludeOpponents: true,
		TopOpenings:      defaultTopOpenings,
		TopOpponents:     defaultTopOpponents,
		HTTPTimeout:      defaultHTTPTimeout,
		RetryAttempts:    defaultRetryAttempts,
		RetryCooldown:    defaultRetryCooldown,
		RateLimitRPS:     defaultRateLimitRPS,
		RateLimitBurst:   defaultRateLimitBurst,
		Output:           OutputText,
	}
}

// loadFromFile loads settings from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML settings to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Months != nil {
		cfg.Months = *yamlCfg.Months
	}
	if yamlCfg.IncludeOpponents != nil {
		cfg.IncludeOpponents = *yamlCfg.IncludeOpponents
	}
	if yamlCfg.TopOpenings != nil {
		cfg.TopOpenings = *yamlCfg.TopOpenings
	}
	if yamlCfg.TopOpponents != nil {
		cfg.TopOpponents = *yamlCfg.TopOpponents
	}
	if yamlCfg.OpeningsFile != "" {
		cfg.OpeningsFile = yamlCfg.OpeningsFile
	}
	if yamlCfg.Output != "" {
		cfg.Output = yamlCfg.Output
	}
	if yamlCfg.Verbose != nil {
		cfg.Verbose = *yamlCfg.Verbose
	}

	if yamlCfg.HTTP.Timeout != "" {
		if d, err := time.ParseDuration(yamlCfg.HTTP.Timeout); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if yamlCfg.HTTP.RetryAttempts != nil {
		cfg.RetryAttempts = *yamlCfg.HTTP.RetryAttempts
	}
	if yamlCfg.HTTP.RetryCooldown != "" {
		if d, err := time.ParseDuration(yamlCfg.HTTP.RetryCooldown); err == nil {
			cfg.RetryCooldown = d
		}
	}
	if yamlCfg.HTTP.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.HTTP.RateLimit.RPS
	}
	if yamlCfg.HTTP.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.HTTP.RateLimit.Burst
	}
}

// applyEnvFile reads the plain key=value identity file. Only a missing file
// is tolerated; malformed files are reported.
func applyEnvFile(cfg *Config, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	if v := strings.TrimSpace(values[KeyEmail]); v != "" {
		cfg.Identity.Email = v
	}
	if v := strings.TrimSpace(values[KeyUsername]); v != "" {
		cfg.Identity.Username = v
	}
	if v := strings.TrimSpace(values[KeyLookupUser]); v != "" {
		cfg.Identity.LookupUser = v
	}
	return nil
}

// applyEnvConfig applies process environment variables. The variable names
// are the env file keys, uppercased.
func applyEnvConfig(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(strings.ToUpper(KeyEmail))); v != "" {
		cfg.Identity.Email = v
	}
	if v := strings.TrimSpace(os.Getenv(strings.ToUpper(KeyUsername))); v != "" {
		cfg.Identity.Username = v
	}
	if v := strings.TrimSpace(os.Getenv(strings.ToUpper(KeyLookupUser))); v != "" {
		cfg.Identity.LookupUser = v
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.User != nil && *overrides.User != "" {
		cfg.Identity.LookupUser = *overrides.User
	}
	if overrides.Months != nil && *overrides.Months > 0 {
		cfg.Months = *overrides.Months
	}
	if overrides.NoOpponents != nil && *overrides.NoOpponents {
		cfg.IncludeOpponents = false
	}
	if overrides.Openings != nil && *overrides.Openings != "" {
		cfg.OpeningsFile = *overrides.Openings
	}
	if overrides.JSONOutput != nil && *overrides.JSONOutput {
		cfg.Output = OutputJSON
	}
	if overrides.Verbose != nil && *overrides.Verbose {
		cfg.Verbose = true
	}
}

// normalize trims identity values and lowercases the lookup username, which
// the API treats case-insensitively anyway.
func normalize(cfg *Config) {
	cfg.Identity.Email = strings.TrimSpace(cfg.Identity.Email)
	cfg.Identity.Username = strings.TrimSpace(cfg.Identity.Username)
	cfg.Identity.LookupUser = strings.ToLower(strings.TrimSpace(cfg.Identity.LookupUser))
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config, envFile string) error {
	var missing []string
	if cfg.Identity.Email == "" {
		missing = append(missing, KeyEmail)
	}
	if cfg.Identity.Username == "" {
		missing = append(missing, KeyUsername)
	}
	if cfg.Identity.LookupUser == "" {
		missing = append(missing, KeyLookupUser)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (set them in %s or the environment)",
			ErrMissingIdentity, strings.Join(missing, ", "), envFile)
	}

	if cfg.Months < 1 {
		return fmt.Errorf("%w: months must be >= 1, got %d", ErrInvalidSetting, cfg.Months)
	}
	if cfg.TopOpenings < 0 || cfg.TopOpponents < 0 {
		return fmt.Errorf("%w: list caps must be >= 0", ErrInvalidSetting)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http timeout must be positive, got %s", ErrInvalidSetting, cfg.HTTPTimeout)
	}
	if cfg.RetryAttempts < 1 {
		return fmt.Errorf("%w: retry attempts must be >= 1, got %d", ErrInvalidSetting, cfg.RetryAttempts)
	}
	if cfg.RetryCooldown < 0 {
		return fmt.Errorf("%w: retry cooldown must be >= 0, got %s", ErrInvalidSetting, cfg.RetryCooldown)
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("%w: rate limit rps must be >= 0, got %v", ErrInvalidSetting, cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("%w: rate limit burst must be >= 0, got %d", ErrInvalidSetting, cfg.RateLimitBurst)
	}
	if cfg.Output != OutputText && cfg.Output != OutputJSON {
		return fmt.Errorf("%w: output must be %q or %q, got %q", ErrInvalidSetting, OutputText, OutputJSON, cfg.Output)
	}
	return nil
}
