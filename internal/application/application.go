package application

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jonathanfox5/chessfluff/internal/analysis"
	"github.com/jonathanfox5/chessfluff/internal/chesscom"
	"github.com/jonathanfox5/chessfluff/internal/config"
	"github.com/jonathanfox5/chessfluff/internal/openings"
	"github.com/jonathanfox5/chessfluff/internal/report"
)

// bundledOpenings is where the repository ships its processed openings table,
// used when no explicit path is configured.
var bundledOpenings = filepath.Join("data", "openings.tsv")

// App encapsulates the application dependencies.
type App struct {
	client   *chesscom.Client
	book     *openings.Book
	analyzer *analysis.Analyzer
	renderer report.Renderer
	logger   *zap.Logger
	cfg      config.Config

	extraClientOpts []chesscom.Option
}

// Option adjusts application wiring.
type Option func(*App)

// WithClientOptions appends options to the API client; test hook.
func WithClientOptions(opts ...chesscom.Option) Option {
	return func(a *App) {
		a.extraClientOpts = append(a.extraClientOpts, opts...)
	}
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	app := &App{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(app)
	}

	clientOpts := []chesscom.Option{
		chesscom.WithLogger(logger),
		chesscom.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		chesscom.WithRetry(cfg.RetryAttempts, cfg.RetryCooldown),
		chesscom.WithPacing(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
	clientOpts = append(clientOpts, app.extraClientOpts...)

	app.client = chesscom.New(chesscom.Identity{
		Username: cfg.Identity.Username,
		Email:    cfg.Identity.Email,
	}, clientOpts...)

	book, err := loadBook(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.book = book

	app.analyzer = analysis.New(app.client,
		analysis.WithBook(book),
		analysis.WithLogger(logger),
		analysis.WithWindow(cfg.Months),
		analysis.WithOpponentData(cfg.IncludeOpponents),
		analysis.WithTopOpenings(cfg.TopOpenings),
		analysis.WithTopOpponents(cfg.TopOpponents),
	)

	if cfg.Output == config.OutputJSON {
		app.renderer = report.NewJSON()
	} else {
		app.renderer = report.NewText()
	}

	return app, nil
}

// Run analyses the configured player and writes the rendered report to w.
func (a *App) Run(ctx context.Context, w io.Writer) error {
	a.logger.Info("analysing player",
		zap.String("user", a.cfg.Identity.LookupUser),
		zap.Int("months", a.cfg.Months),
		zap.Bool("opponents", a.cfg.IncludeOpponents))

	rep, err := a.analyzer.Run(ctx, a.cfg.Identity.LookupUser)
	if err != nil {
		return fmt.Errorf("analyse %s: %w", a.cfg.Identity.LookupUser, err)
	}

	if err := a.renderer.Render(w, rep); err != nil {
		return err
	}

	a.logger.Info("report complete",
		zap.Int("games", rep.TotalGames),
		zap.Int("archives_fetched", rep.Window.ArchivesFetched),
		zap.Int("skipped_months", rep.SkippedMonths))
	return nil
}

// loadBook opens the configured openings table. Without an explicit path it
// falls back to the bundled table and, failing that, runs without openings.
func loadBook(cfg config.Config, logger *zap.Logger) (*openings.Book, error) {
	path := cfg.OpeningsFile
	if path == "" {
		resolved, err := resolveProjectPath(bundledOpenings)
		if err != nil {
			logger.Info("no openings table found, skipping opening analysis")
			return nil, nil
		}
		path = resolved
	}

	book, err := openings.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load openings table: %w", err)
	}
	logger.Debug("openings table loaded",
		zap.String("path", path),
		zap.Int("rows", book.Len()),
		zap.Int("max_moves", book.MaxMoves()))
	return book, nil
}

// resolveProjectPath locates a file or directory relative to the project root by walking up the directory tree.
func resolveProjectPath(relative string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, relative)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("unable to locate %s", relative)
}
