package openings

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Opening is one row of the processed openings table.
type Opening struct {
	ECO       string
	Family    string
	Variation string
	EPD       string
	PGN       string
	MoveCount int
}

// Name returns the display name, joining family and variation the way the
// source dataset does.
func (o Opening) Name() string {
	if o.Variation == "" {
		return o.Family
	}
	return o.Family + ": " + o.Variation
}

// header is the fixed column order written by process-openings.
var header = []string{"eco", "family", "variation", "epd", "pgn", "move_count"}

// Book is an in-memory openings table indexed by move-sequence prefix.
// It is read-only once loaded.
type Book struct {
	byPrefix map[string]Opening
	maxMoves int
	size     int
}

// Load reads a processed openings table from a TSV file.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open openings table: %w", err)
	}
	defer f.Close()

	book, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse openings table %s: %w", path, err)
	}
	return book, nil
}

// Parse reads a processed openings table.
func Parse(r io.Reader) (*Book, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = len(header)

	head, err := reader.Read()
	if err == io.EOF {
		return nil, ErrInvalidHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range header {
		if strings.TrimSpace(head[i]) != col {
			return nil, fmt.Errorf("%w: expected %q", ErrInvalidHeader, strings.Join(header, "\t"))
		}
	}

	book := &Book{byPrefix: make(map[string]Opening)}

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		moveCount, err := strconv.Atoi(strings.TrimSpace(record[5]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w: bad move_count %q", row, ErrInvalidRow, record[5])
		}

		opening := Opening{
			ECO:       strings.TrimSpace(record[0]),
			Family:    strings.TrimSpace(record[1]),
			Variation: strings.TrimSpace(record[2]),
			EPD:       strings.TrimSpace(record[3]),
			PGN:       strings.TrimSpace(record[4]),
			MoveCount: moveCount,
		}

		moves := Moves(opening.PGN)
		if len(moves) == 0 {
			return nil, fmt.Errorf("row %d: %w: no moves in pgn %q", row, ErrInvalidRow, opening.PGN)
		}

		key := strings.Join(moves, " ")
		if _, exists := book.byPrefix[key]; !exists {
			book.byPrefix[key] = opening
		}
		if len(moves) > book.maxMoves {
			book.maxMoves = len(moves)
		}
		book.size++
	}

	if book.size == 0 {
		return nil, ErrEmptyBook
	}
	return book, nil
}

// Match finds the deepest opening whose move sequence is a prefix of the
// given SAN moves.
func (b *Book) Match(moves []string) (Opening, bool) {
	if b == nil || len(moves) == 0 {
		return Opening{}, false
	}

	depth := len(moves)
	if depth > b.maxMoves {
		depth = b.maxMoves
	}

	for ; depth > 0; depth-- {
		key := strings.Join(moves[:depth], " ")
		if opening, ok := b.byPrefix[key]; ok {
			return opening, true
		}
	}
	return Opening{}, false
}

// MatchPGN is Match over a raw PGN string.
func (b *Book) MatchPGN(pgn string) (Opening, bool) {
	return b.Match(Moves(pgn))
}

// Len reports the number of table rows loaded.
func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return b.size
}

// MaxMoves reports the longest move sequence in the table.
func (b *Book) MaxMoves() int {
	if b == nil {
		return 0
	}
	return b.maxMoves
}
