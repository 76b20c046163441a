// Package report renders finished analyses for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jonathanfox5/chessfluff/internal/analysis"
)

// Renderer writes a finished report to w.
type Renderer interface {
	Render(w io.Writer, r *analysis.Report) error
}

// JSON renders the report as indented JSON, one document per call.
type JSON struct{}

// NewJSON returns a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// Render implements Renderer.
func (*JSON) Render(w io.Writer, r *analysis.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Text renders the report as sectioned, column-aligned plain text.
type Text struct{}

// NewText returns a plain text renderer.
func NewText() *Text {
	return &Text{}
}

// Render implements Renderer.
func (*Text) Render(w io.Writer, r *analysis.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Report for %s\n", r.Username)
	fmt.Fprintf(&b, "Generated %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))

	writePlayer(&b, r.Player)
	writeRatings(&b, r.Ratings)
	writeTimeClasses(&b, r)
	writeOpenings(&b, r.Openings)
	writeOpponents(&b, r.Opponents)

	fmt.Fprintf(&b, "%d games analysed, %d skipped, %d months failed\n",
		r.TotalGames, r.SkippedGames, r.SkippedMonths)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writePlayer(b *strings.Builder, p analysis.PlayerCard) {
	b.WriteString("PLAYER\n")
	tw := newSection(b)

	name := p.Username
	if p.Title != "" {
		name += " (" + p.Title + ")"
	}
	fmt.Fprintf(tw, "  Username\t%s\n", name)
	if p.RealName != "" {
		fmt.Fprintf(tw, "  Name\t%s\n", p.RealName)
	}
	if p.CountryCode != "" {
		country := p.CountryName
		if country == "" {
			country = p.CountryCode
		} else {
			country += " (" + p.CountryCode + ")"
		}
		if p.CountryFlag != "" {
			country = p.CountryFlag + " " + country
		}
		fmt.Fprintf(tw, "  Country\t%s\n", country)
	}
	if p.Location != "" {
		fmt.Fprintf(tw, "  Location\t%s\n", p.Location)
	}
	if p.League != "" {
		fmt.Fprintf(tw, "  League\t%s\n", p.League)
	}
	if p.Status != "" {
		fmt.Fprintf(tw, "  Status\t%s\n", p.Status)
	}
	fmt.Fprintf(tw, "  Followers\t%d\n", p.Followers)
	if !p.Joined.IsZero() {
		fmt.Fprintf(tw, "  Joined\t%s\n", p.Joined.Format("2006-01-02"))
	}
	if !p.LastOnline.IsZero() {
		fmt.Fprintf(tw, "  Last online\t%s\n", p.LastOnline.Format("2006-01-02"))
	}
	if p.FIDE > 0 {
		fmt.Fprintf(tw, "  FIDE\t%d\n", p.FIDE)
	}
	if p.IsStreamer {
		fmt.Fprintf(tw, "  Streamer\tyes\n")
	}
	tw.Flush()
	b.WriteString("\n")
}

func writeRatings(b *strings.Builder, ratings []analysis.Rating) {
	if len(ratings) == 0 {
		return
	}
	b.WriteString("RATINGS\n")
	tw := newSection(b)
	fmt.Fprintf(tw, "  CLASS\tLAST\tBEST\tRECORD W/L/D\n")
	for _, r := range ratings {
		best := "-"
		if r.Best > 0 {
			best = fmt.Sprintf("%d", r.Best)
		}
		fmt.Fprintf(tw, "  %s\t%d\t%s\t%d/%d/%d\n",
			r.TimeClass, r.Last, best, r.Wins, r.Losses, r.Draws)
	}
	tw.Flush()
	b.WriteString("\n")
}

func writeTimeClasses(b *strings.Builder, r *analysis.Report) {
	if len(r.TimeClasses) == 0 {
		return
	}
	fmt.Fprintf(b, "GAMES (%s, %d of %d archives fetched)\n",
		windowLabel(r.Window), r.Window.ArchivesFetched, r.Window.ArchivesTotal)
	tw := newSection(b)
	fmt.Fprintf(tw, "  CLASS\tGAMES\tW/D/L\tSCORE\tWHITE/BLACK\tRATED\tOPPONENTS\tACC\n")
	for _, tc := range r.TimeClasses {
		wdl := fmt.Sprintf("%d/%d/%d", tc.Wins, tc.Draws, tc.Losses)
		if tc.Other > 0 {
			wdl += fmt.Sprintf("+%d", tc.Other)
		}
		opponents := "-"
		if tc.OpponentAvg > 0 {
			opponents = fmt.Sprintf("%d/%.0f/%d", tc.OpponentMin, tc.OpponentAvg, tc.OpponentMax)
		}
		accuracy := "-"
		if tc.AccuracyGames > 0 {
			accuracy = fmt.Sprintf("%.1f", tc.Accuracy)
		}
		fmt.Fprintf(tw, "  %s\t%d\t%s\t%s\t%d/%d\t%d\t%s\t%s\n",
			tc.TimeClass, tc.Games, wdl, score(tc.Points, tc.Rate),
			tc.White, tc.Black, tc.Rated, opponents, accuracy)
	}
	tw.Flush()
	b.WriteString("\n")
}

func writeOpenings(b *strings.Builder, openings []analysis.OpeningTotals) {
	if len(openings) == 0 {
		return
	}
	b.WriteString("OPENINGS\n")
	tw := newSection(b)
	fmt.Fprintf(tw, "  FAMILY\tGAMES\tSCORE\n")
	for _, o := range openings {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", o.Family, o.Games, score(o.Points, o.Rate))
	}
	tw.Flush()
	b.WriteString("\n")
}

func writeOpponents(b *strings.Builder, opponents []analysis.Opponent) {
	if len(opponents) == 0 {
		return
	}
	b.WriteString("OPPONENTS\n")
	tw := newSection(b)
	fmt.Fprintf(tw, "  OPPONENT\tGAMES\tSCORE\tRATING\n")
	for _, o := range opponents {
		name := o.Username
		if o.Title != "" {
			name += " (" + o.Title + ")"
		}
		if o.CountryFlag != "" {
			name = o.CountryFlag + " " + name
		}
		rating := "-"
		if o.Rating > 0 {
			rating = fmt.Sprintf("%d", o.Rating)
		}
		fmt.Fprintf(tw, "  %s\t%d\t%s\t%s\n", name, o.Games, score(o.Points, o.Rate), rating)
	}
	tw.Flush()
	b.WriteString("\n")
}

func newSection(b *strings.Builder) *tabwriter.Writer {
	return tabwriter.NewWriter(b, 2, 4, 2, ' ', 0)
}

// score formats "points (rate%)", trimming the .0 of whole point counts.
func score(points, rate float64) string {
	return fmt.Sprintf("%s (%.1f%%)", trimPoints(points), rate*100)
}

func trimPoints(points float64) string {
	s := fmt.Sprintf("%.1f", points)
	return strings.TrimSuffix(s, ".0")
}

func windowLabel(w analysis.Window) string {
	if w.Months >= w.ArchivesTotal {
		return "all months"
	}
	return fmt.Sprintf("last %d months", w.Months)
}
