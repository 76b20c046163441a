// Package config loads runtime configuration from multiple sources (a plain
// key=value env file for identity, a YAML settings file, environment
// variables, CLI flags) with precedence: CLI flags > environment variables >
// env file > YAML settings > defaults. It exposes strongly typed settings to
// the rest of the application.
package config
