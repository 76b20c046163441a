package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathanfox5/chessfluff/internal/chesscom"
	"github.com/jonathanfox5/chessfluff/internal/country"
	"github.com/jonathanfox5/chessfluff/internal/openings"
)

// standardRules is the only rules variant that feeds the aggregates.
// Variants (chess960, bughouse, ...) are counted as skipped.
const standardRules = "chess"

// Defaults applied by New.
const (
	DefaultMonths       = 9999
	DefaultTopOpenings  = 10
	DefaultTopOpponents = 10
)

// GamesSource is the part of the chess.com client the analyzer consumes.
type GamesSource interface {
	Profile(ctx context.Context, username string) (*chesscom.Profile, error)
	Stats(ctx context.Context, username string) (*chesscom.Stats, error)
	Archives(ctx context.Context, username string) ([]string, error)
	MonthlyGames(ctx context.Context, archiveURL string) ([]chesscom.Game, error)
	Country(ctx context.Context, code string) (*chesscom.Country, error)
}

// Analyzer fetches a player's recent archives and folds them into a Report.
type Analyzer struct {
	client GamesSource
	book   *openings.Book
	logger *zap.Logger
	clock  func() time.Time

	months       int
	opponents    bool
	maxOpenings  int
	maxOpponents int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithBook attaches an opening book used to group games by opening family.
// Without a book the report carries no opening section.
func WithBook(book *openings.Book) Option {
	return func(a *Analyzer) {
		a.book = book
	}
}

// WithLogger sets the logger used for progress and soft failures.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(clock func() time.Time) Option {
	return func(a *Analyzer) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithWindow limits the analysis to the newest n archive months.
func WithWindow(months int) Option {
	return func(a *Analyzer) {
		if months > 0 {
			a.months = months
		}
	}
}

// WithOpponentData toggles per-opponent profile enrichment, which costs one
// extra request per listed opponent.
func WithOpponentData(enabled bool) Option {
	return func(a *Analyzer) {
		a.opponents = enabled
	}
}

// WithTopOpenings caps the ranked opening list; 0 keeps every family.
func WithTopOpenings(n int) Option {
	return func(a *Analyzer) {
		if n >= 0 {
			a.maxOpenings = n
		}
	}
}

// WithTopOpponents caps the ranked opponent list; 0 keeps every opponent.
func WithTopOpponents(n int) Option {
	return func(a *Analyzer) {
		if n >= 0 {
			a.maxOpponents = n
		}
	}
}

// New returns an Analyzer reading from client.
func New(client GamesSource, opts ...Option) *Analyzer {
	a := &Analyzer{
		client:       client,
		logger:       zap.NewNop(),
		clock:        time.Now,
		months:       DefaultMonths,
		opponents:    true,
		maxOpenings:  DefaultTopOpenings,
		maxOpponents: DefaultTopOpponents,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run analyses username and returns the finished report. Months that fail
// to download are skipped and counted rather than aborting the run; profile,
// stats and the archive index are required and fail the run.
func (a *Analyzer) Run(ctx context.Context, username string) (*Report, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrNoUsername
	}

	profile, err := a.client.Profile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	stats, err := a.client.Stats(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	archives, err := a.client.Archives(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fetch archives: %w", err)
	}

	report := &Report{
		GeneratedAt: a.clock().UTC(),
		Username:    username,
		Player:      a.playerCard(ctx, profile),
		Ratings:     ratingLines(stats),
		Window: Window{
			Months:        a.months,
			ArchivesTotal: len(archives),
		},
	}
	report.Player.FIDE = stats.FIDE

	window := archives
	if a.months > 0 && len(window) > a.months {
		window = window[len(window)-a.months:]
	}

	agg := newAggregator(username, a.book)

	// Newest month first so the first rating seen per opponent is their
	// most recent one.
	for i := len(window) - 1; i >= 0; i-- {
		games, err := a.client.MonthlyGames(ctx, window[i])
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			report.SkippedMonths++
			a.logger.Warn("skipping archive month",
				zap.String("archive", window[i]),
				zap.Error(err))
			continue
		}
		report.Window.ArchivesFetched++
		a.logger.Debug("fetched archive month",
			zap.String("archive", window[i]),
			zap.Int("games", len(games)))
		for _, game := range games {
			agg.add(game)
		}
	}

	agg.fill(report, a.maxOpenings, a.maxOpponents)

	if a.opponents {
		a.enrichOpponents(ctx, report)
	}
	return report, nil
}

// playerCard builds the profile summary. The country name lookup is best
// effort; on failure the report keeps the bare code and flag.
func (a *Analyzer) playerCard(ctx context.Context, profile *chesscom.Profile) PlayerCard {
	card := PlayerCard{
		Username:   profile.Username,
		Title:      profile.Title,
		RealName:   profile.Name,
		Location:   profile.Location,
		League:     profile.League,
		Status:     profile.Status,
		Followers:  profile.Followers,
		IsStreamer: profile.IsStreamer,
		Verified:   profile.Verified,
	}
	if profile.Joined > 0 {
		card.Joined = time.Unix(profile.Joined, 0).UTC()
	}
	if profile.LastOnline > 0 {
		card.LastOnline = time.Unix(profile.LastOnline, 0).UTC()
	}
	if code := country.CodeFromURL(profile.CountryURL); code != "" {
		card.CountryCode = code
		card.CountryFlag = country.Flag(code)
		if c, err := a.client.Country(ctx, code); err == nil {
			card.CountryName = c.Name
		} else {
			a.logger.Warn("skipping country name",
				zap.String("code", code),
				zap.Error(err))
		}
	}
	return card
}

// enrichOpponents fetches each listed opponent's profile for title and
// country. Failures drop the extras for that opponent, never the report.
func (a *Analyzer) enrichOpponents(ctx context.Context, report *Report) {
	for i := range report.Opponents {
		opponent := &report.Opponents[i]
		profile, err := a.client.Profile(ctx, opponent.Username)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			a.logger.Warn("skipping opponent profile",
				zap.String("opponent", opponent.Username),
				zap.Error(err))
			continue
		}
		opponent.Title = profile.Title
		if code := country.CodeFromURL(profile.CountryURL); code != "" {
			opponent.CountryCode = code
			opponent.CountryFlag = country.Flag(code)
		}
	}
}

// ratingLines flattens the stats payload into one line per played time class.
func ratingLines(stats *chesscom.Stats) []Rating {
	if stats == nil {
		return nil
	}
	sections := []struct {
		name    string
		section *chesscom.TimeClassStats
	}{
		{"bullet", stats.Bullet},
		{"blitz", stats.Blitz},
		{"rapid", stats.Rapid},
		{"daily", stats.Daily},
	}
	var lines []Rating
	for _, s := range sections {
		if s.section == nil {
			continue
		}
		lines = append(lines, Rating{
			TimeClass: s.name,
			Last:      s.section.Last.Rating,
			Best:      s.section.Best.Rating,
			Wins:      s.section.Record.Win,
			Losses:    s.section.Record.Loss,
			Draws:     s.section.Record.Draw,
		})
	}
	return lines
}
