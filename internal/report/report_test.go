package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/jonathanfox5/chessfluff/internal/analysis"
)

func sampleReport() *analysis.Report {
	return &analysis.Report{
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Username:    "someuser",
		Player: analysis.PlayerCard{
			Username:    "someuser",
			Title:       "FM",
			RealName:    "Some User",
			CountryCode: "NO",
			CountryName: "Norway",
			CountryFlag: "\U0001F1F3\U0001F1F4",
			Followers:   42,
			Joined:      time.Date(2020, 9, 13, 0, 0, 0, 0, time.UTC),
			FIDE:        2100,
		},
		Ratings: []analysis.Rating{
			{TimeClass: "blitz", Last: 1500, Best: 1600, Wins: 10, Losses: 5, Draws: 2},
			{TimeClass: "rapid", Last: 1400},
		},
		Window: analysis.Window{Months: 9999, ArchivesTotal: 2, ArchivesFetched: 2},
		TimeClasses: []analysis.TimeClassTotals{
			{
				TimeClass:   "blitz",
				Games:       3,
				Wins:        1,
				Draws:       1,
				Losses:      1,
				Points:      1.5,
				Rate:        0.5,
				White:       2,
				Black:       1,
				Rated:       2,
				OpponentMin: 1450,
				OpponentAvg: 1483.3333333333333,
				OpponentMax: 1510,
			},
		},
		Openings: []analysis.OpeningTotals{
			{Family: "Sicilian Defense", Games: 2, Points: 1.5, Rate: 0.75},
		},
		Opponents: []analysis.Opponent{
			{Username: "rival", Games: 3, Points: 2, Rate: 2.0 / 3.0, Rating: 1510, Title: "CM"},
		},
		TotalGames:    4,
		SkippedGames:  2,
		SkippedMonths: 1,
	}
}

func TestTextRender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := NewText().Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Report for someuser",
		"Generated 2026-08-01 12:00 UTC",
		"PLAYER",
		"someuser (FM)",
		"Norway (NO)",
		"FIDE",
		"RATINGS",
		"10/5/2",
		"GAMES (all months, 2 of 2 archives fetched)",
		"1/1/1",
		"1.5 (50.0%)",
		"1450/1483/1510",
		"OPENINGS",
		"Sicilian Defense",
		"OPPONENTS",
		"rival (CM)",
		"2 (66.7%)",
		"4 games analysed, 2 skipped, 1 months failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestTextRenderSkipsEmptySections(t *testing.T) {
	t.Parallel()

	r := &analysis.Report{
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Username:    "ghost",
		Player:      analysis.PlayerCard{Username: "ghost"},
		Window:      analysis.Window{Months: 9999},
	}

	var buf bytes.Buffer
	if err := NewText().Render(&buf, r); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, absent := range []string{"RATINGS", "GAMES (", "OPENINGS", "OPPONENTS"} {
		if strings.Contains(out, absent) {
			t.Errorf("empty report should not include %q:\n%s", absent, out)
		}
	}
	if !strings.Contains(out, "0 games analysed") {
		t.Errorf("missing totals line:\n%s", out)
	}
}

func TestJSONRenderRoundTrips(t *testing.T) {
	t.Parallel()

	want := sampleReport()

	var buf bytes.Buffer
	if err := NewJSON().Render(&buf, want); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("JSON output does not end with a newline")
	}
	if !strings.Contains(buf.String(), "\n  \"username\": \"someuser\",") {
		t.Errorf("JSON output is not indented:\n%s", buf.String())
	}

	var got analysis.Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode rendered JSON: %v", err)
	}
	if diff := cmp.Diff(want, &got); diff != "" {
		t.Errorf("report did not survive the round trip (-want +got):\n%s", diff)
	}
}
