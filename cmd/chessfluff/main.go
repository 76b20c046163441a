package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathanfox5/chessfluff/internal/application"
	"github.com/jonathanfox5/chessfluff/internal/config"
	"github.com/jonathanfox5/chessfluff/internal/logging"
	"github.com/jonathanfox5/chessfluff/internal/version"
)

const appHelp = "Fetches a chess.com player's profile, ratings and recent games " +
	"over the public API and prints an analysis of them"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	overrides, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", version.Name, err)
		return 2
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", version.Name, err)
		return 1
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: failed to initialize logger: %v\n", version.Name, err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("analysis cancelled")
		} else {
			logger.Error("analysis failed", zap.Error(err))
		}
		return 1
	}
	return 0
}

// parseFlags turns command line arguments into config overrides. Only flags
// the user actually set become overrides; everything else stays nil so the
// config layer can apply its own precedence.
func parseFlags(args []string) (*config.CLIOverrides, error) {
	app := kingpin.New(version.Name, appHelp)
	app.Version(version.Version)
	app.HelpFlag.Short('h')

	envFile := app.Flag("env-file", "Path to the key=value identity file").Default(config.DefaultEnvFile).String()
	configFile := app.Flag("config", "Path to a YAML settings file").String()
	user := app.Flag("user", "Player to analyse, overriding the lookupuser key").String()
	months := app.Flag("months", "Only analyse the newest N archive months").Int()
	noOpponents := app.Flag("no-opponents", "Skip per-opponent profile lookups").Bool()
	openingsFile := app.Flag("openings", "Path to a processed openings table").String()
	jsonOutput := app.Flag("json", "Print the report as JSON").Bool()
	verbose := app.Flag("verbose", "Enable debug logging").Short('v').Bool()

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}

	overrides := &config.CLIOverrides{
		EnvFile:    *envFile,
		ConfigFile: *configFile,
	}
	if *user != "" {
		overrides.User = user
	}
	if *months > 0 {
		overrides.Months = months
	}
	if *noOpponents {
		overrides.NoOpponents = noOpponents
	}
	if *openingsFile != "" {
		overrides.Openings = openingsFile
	}
	if *jsonOutput {
		overrides.JSONOutput = jsonOutput
	}
	if *verbose {
		overrides.Verbose = verbose
	}
	return overrides, nil
}
