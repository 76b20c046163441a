package openings

import (
	"regexp"
	"strings"
)

var (
	reTags       = regexp.MustCompile(`(?m)^\[.*?\]\s*`) // [Tag "Value"] lines
	reComments   = regexp.MustCompile(`\{[^}]*\}`)       // {...} comments (incl. [%clk ...])
	reNAG        = regexp.MustCompile(`\$\d+`)           // $1, $2, etc.
	reSpaces     = regexp.MustCompile(`\s+`)
	reMoveNumber = regexp.MustCompile(`^\d+\.{1,3}`) // "1." and "1..." prefixes
)

// results are the PGN game terminators that are not moves.
var results = map[string]struct{}{
	"1-0":     {},
	"0-1":     {},
	"1/2-1/2": {},
	"*":       {},
}

// NormalizePGN removes tag pairs, comments, and NAGs and collapses
// whitespace, leaving only numbered movetext.
func NormalizePGN(pgn string) string {
	pgn = reTags.ReplaceAllString(pgn, "")
	pgn = reComments.ReplaceAllString(pgn, "")
	pgn = reNAG.ReplaceAllString(pgn, "")
	pgn = reSpaces.ReplaceAllString(strings.TrimSpace(pgn), " ")
	return pgn
}

// Moves extracts the SAN tokens from a PGN, dropping move numbers and the
// result marker. It accepts both raw game PGNs and the already clean
// movetext stored in the openings table.
func Moves(pgn string) []string {
	clean := NormalizePGN(pgn)
	if clean == "" {
		return nil
	}

	fields := strings.Fields(clean)
	moves := make([]string, 0, len(fields))
	for _, field := range fields {
		field = reMoveNumber.ReplaceAllString(field, "")
		if field == "" {
			continue
		}
		if _, terminal := results[field]; terminal {
			continue
		}
		moves = append(moves, field)
	}
	return moves
}

// CountMoves reports the number of SAN tokens in a movetext string.
func CountMoves(pgn string) int {
	return len(Moves(pgn))
}
