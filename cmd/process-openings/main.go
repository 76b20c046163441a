// Command process-openings converts raw openings tables (the lichess
// chess-openings TSV format: eco, name, pgn and optionally uci, epd) into
// the processed table chessfluff matches games against.
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/jonathanfox5/chessfluff/internal/logging"
	"github.com/jonathanfox5/chessfluff/internal/openings"
	"github.com/jonathanfox5/chessfluff/internal/version"
)

var errNoRows = errors.New("no opening rows found")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	app := kingpin.New("process-openings", "Converts raw openings TSV files into a processed chessfluff table")
	app.Version(version.Version)
	output := app.Flag("output", "Path of the processed table to write").Default("openings.tsv").String()
	verbose := app.Flag("verbose", "Enable debug logging").Short('v').Bool()
	inputs := app.Arg("input", "Raw openings TSV files (eco, name, pgn[, uci, epd])").Required().Strings()

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "process-openings: %v\n", err)
		return 2
	}

	logger, err := logging.New(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "process-openings: failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := process(*inputs, *output, logger); err != nil {
		logger.Error("processing failed", zap.Error(err))
		return 1
	}
	return 0
}

// process reads every input table, derives family, variation and move count
// per row, and writes the merged processed table.
func process(inputs []string, output string, logger *zap.Logger) error {
	var rows []openings.Opening
	for _, path := range inputs {
		parsed, err := readRaw(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		logger.Debug("raw table read", zap.String("path", path), zap.Int("rows", len(parsed)))
		rows = append(rows, parsed...)
	}
	if len(rows) == 0 {
		return errNoRows
	}

	if err := writeTable(output, rows); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	maxMoves := 0
	for _, row := range rows {
		if row.MoveCount > maxMoves {
			maxMoves = row.MoveCount
		}
	}
	logger.Info("openings table written",
		zap.String("path", output),
		zap.Int("rows", len(rows)),
		zap.Int("max_moves", maxMoves))
	return nil
}

// readRaw parses one raw openings file. Columns are located by header name
// so the extra uci/epd columns some exports carry are handled either way.
func readRaw(path string) ([]openings.Opening, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"eco", "name", "pgn"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q in header %v", required, header)
		}
	}
	epdIdx, hasEPD := columns["epd"]

	var rows []openings.Opening
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		name := strings.TrimSpace(record[columns["name"]])
		pgn := strings.TrimSpace(record[columns["pgn"]])
		moveCount := openings.CountMoves(pgn)
		if name == "" || moveCount == 0 {
			return nil, fmt.Errorf("row %d: empty name or movetext", row)
		}

		family := openings.FamilyName(name)
		opening := openings.Opening{
			ECO:       strings.TrimSpace(record[columns["eco"]]),
			Family:    family,
			Variation: openings.VariationName(name, family),
			PGN:       pgn,
			MoveCount: moveCount,
		}
		if hasEPD {
			opening.EPD = strings.TrimSpace(record[epdIdx])
		}
		rows = append(rows, opening)
	}
	return rows, nil
}

// writeTable writes the processed table in the column order the openings
// package loads.
func writeTable(path string, rows []openings.Opening) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(f)
	writer.Comma = '\t'

	records := [][]string{{"eco", "family", "variation", "epd", "pgn", "move_count"}}
	for _, row := range rows {
		records = append(records, []string{
			row.ECO,
			row.Family,
			row.Variation,
			row.EPD,
			row.PGN,
			strconv.Itoa(row.MoveCount),
		})
	}
	if err := writer.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
