package analysis

import (
	"sort"
	"strings"

	"github.com/jonathanfox5/chessfluff/internal/chesscom"
	"github.com/jonathanfox5/chessfluff/internal/openings"
)

// classOrder ranks the common time classes for output; anything unlisted
// sorts after them alphabetically.
var classOrder = map[string]int{
	"bullet": 0,
	"blitz":  1,
	"rapid":  2,
	"daily":  3,
}

// aggregator folds games into per-time-class, per-opening and per-opponent
// tallies from the analysed player's point of view.
type aggregator struct {
	username string
	book     *openings.Book

	classes   map[string]*classTally
	openings  map[string]*openingTally
	opponents map[string]*opponentTally

	total   int
	skipped int
}

type classTally struct {
	games, wins, draws, losses, other int
	points                            float64
	white, black, rated               int
	oppMin, oppMax, oppSum, oppGames  int
	accSum                            float64
	accGames                          int
}

type openingTally struct {
	games  int
	points float64
}

type opponentTally struct {
	username string
	games    int
	points   float64
	rating   int
}

// sides is one game split into the analysed player's half and the
// opponent's half.
type sides struct {
	me, them chesscom.Player
	white    bool
}

// pov locates the analysed player in a game. username must already be
// lowercased; the API is case-insensitive about the names it echoes back.
func pov(username string, game chesscom.Game) (sides, bool) {
	switch username {
	case strings.ToLower(game.White.Username):
		return sides{me: game.White, them: game.Black, white: true}, true
	case strings.ToLower(game.Black.Username):
		return sides{me: game.Black, them: game.White}, true
	}
	return sides{}, false
}

func newAggregator(username string, book *openings.Book) *aggregator {
	return &aggregator{
		username:  username,
		book:      book,
		classes:   make(map[string]*classTally),
		openings:  make(map[string]*openingTally),
		opponents: make(map[string]*opponentTally),
	}
}

// add folds one game into the tallies. Variant games and games that do not
// feature the analysed player only bump the skipped counter.
func (agg *aggregator) add(game chesscom.Game) {
	s, ok := pov(agg.username, game)
	if !ok || game.Rules != standardRules {
		agg.skipped++
		return
	}
	agg.total++

	points, _ := Score(s.me.Result)

	tally := agg.classes[game.TimeClass]
	if tally == nil {
		tally = &classTally{}
		agg.classes[game.TimeClass] = tally
	}
	tally.games++
	tally.points += points
	switch OutcomeOf(s.me.Result) {
	case OutcomeWin:
		tally.wins++
	case OutcomeDraw:
		tally.draws++
	case OutcomeLoss:
		tally.losses++
	default:
		tally.other++
	}
	if s.white {
		tally.white++
	} else {
		tally.black++
	}
	if game.Rated {
		tally.rated++
	}
	if s.them.Rating > 0 {
		if tally.oppGames == 0 || s.them.Rating < tally.oppMin {
			tally.oppMin = s.them.Rating
		}
		if s.them.Rating > tally.oppMax {
			tally.oppMax = s.them.Rating
		}
		tally.oppSum += s.them.Rating
		tally.oppGames++
	}
	if game.Accuracies != nil {
		accuracy := game.Accuracies.Black
		if s.white {
			accuracy = game.Accuracies.White
		}
		if accuracy > 0 {
			tally.accSum += accuracy
			tally.accGames++
		}
	}

	if agg.book != nil {
		if opening, ok := agg.book.MatchPGN(game.PGN); ok {
			family := agg.openings[opening.Family]
			if family == nil {
				family = &openingTally{}
				agg.openings[opening.Family] = family
			}
			family.games++
			family.points += points
		}
	}

	key := strings.ToLower(s.them.Username)
	if key != "" {
		opponent := agg.opponents[key]
		if opponent == nil {
			// Games arrive newest first, so the rating recorded here
			// is the opponent's most recent one in the window.
			opponent = &opponentTally{username: key, rating: s.them.Rating}
			agg.opponents[key] = opponent
		}
		opponent.games++
		opponent.points += points
	}
}

// fill writes the tallies into report, ranking openings and opponents by
// game count and trimming the lists to the given caps (0 keeps everything).
func (agg *aggregator) fill(report *Report, maxOpenings, maxOpponents int) {
	report.TotalGames = agg.total
	report.SkippedGames = agg.skipped

	for name, tally := range agg.classes {
		totals := TimeClassTotals{
			TimeClass: name,
			Games:     tally.games,
			Wins:      tally.wins,
			Draws:     tally.draws,
			Losses:    tally.losses,
			Other:     tally.other,
			Points:    tally.points,
			Rate:      rate(tally.points, tally.games),
			White:     tally.white,
			Black:     tally.black,
			Rated:     tally.rated,
		}
		if tally.oppGames > 0 {
			totals.OpponentMin = tally.oppMin
			totals.OpponentMax = tally.oppMax
			totals.OpponentAvg = float64(tally.oppSum) / float64(tally.oppGames)
		}
		if tally.accGames > 0 {
			totals.Accuracy = tally.accSum / float64(tally.accGames)
			totals.AccuracyGames = tally.accGames
		}
		report.TimeClasses = append(report.TimeClasses, totals)
	}
	sort.Slice(report.TimeClasses, func(i, j int) bool {
		return lessTimeClass(report.TimeClasses[i].TimeClass, report.TimeClasses[j].TimeClass)
	})

	for family, tally := range agg.openings {
		report.Openings = append(report.Openings, OpeningTotals{
			Family: family,
			Games:  tally.games,
			Points: tally.points,
			Rate:   rate(tally.points, tally.games),
		})
	}
	sort.Slice(report.Openings, func(i, j int) bool {
		a, b := report.Openings[i], report.Openings[j]
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return a.Family < b.Family
	})
	if maxOpenings > 0 && len(report.Openings) > maxOpenings {
		report.Openings = report.Openings[:maxOpenings]
	}

	for _, tally := range agg.opponents {
		report.Opponents = append(report.Opponents, Opponent{
			Username: tally.username,
			Games:    tally.games,
			Points:   tally.points,
			Rate:     rate(tally.points, tally.games),
			Rating:   tally.rating,
		})
	}
	sort.Slice(report.Opponents, func(i, j int) bool {
		a, b := report.Opponents[i], report.Opponents[j]
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return a.Username < b.Username
	})
	if maxOpponents > 0 && len(report.Opponents) > maxOpponents {
		report.Opponents = report.Opponents[:maxOpponents]
	}
}

func lessTimeClass(a, b string) bool {
	ra, aKnown := classOrder[a]
	rb, bKnown := classOrder[b]
	switch {
	case aKnown && bKnown:
		return ra < rb
	case aKnown:
		return true
	case bKnown:
		return false
	default:
		return a < b
	}
}

func rate(points float64, games int) float64 {
	if games == 0 {
		return 0
	}
	return points / float64(games)
}
