package analysis

import "time"

// Report is the complete result of analysing one player. It is safe to
// marshal as JSON; field names are stable output surface.
type Report struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Username    string     `json:"username"`
	Player      PlayerCard `json:"player"`
	Ratings     []Rating   `json:"ratings,omitempty"`
	Window      Window     `json:"window"`

	TimeClasses []TimeClassTotals `json:"time_classes,omitempty"`
	Openings    []OpeningTotals   `json:"openings,omitempty"`
	Opponents   []Opponent        `json:"opponents,omitempty"`

	TotalGames    int `json:"total_games"`
	SkippedGames  int `json:"skipped_games"`
	SkippedMonths int `json:"skipped_months"`
}

// PlayerCard is the profile summary shown at the top of a report.
type PlayerCard struct {
	Username    string    `json:"username"`
	Title       string    `json:"title,omitempty"`
	RealName    string    `json:"real_name,omitempty"`
	CountryCode string    `json:"country_code,omitempty"`
	CountryName string    `json:"country_name,omitempty"`
	CountryFlag string    `json:"country_flag,omitempty"`
	Location    string    `json:"location,omitempty"`
	League      string    `json:"league,omitempty"`
	Status      string    `json:"status,omitempty"`
	Followers   int       `json:"followers"`
	Joined      time.Time `json:"joined,omitempty"`
	LastOnline  time.Time `json:"last_online,omitempty"`
	IsStreamer  bool      `json:"is_streamer,omitempty"`
	Verified    bool      `json:"verified,omitempty"`
	FIDE        int       `json:"fide,omitempty"`
}

// Rating is one lifetime rating line from the stats endpoint.
type Rating struct {
	TimeClass string `json:"time_class"`
	Last      int    `json:"last"`
	Best      int    `json:"best,omitempty"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	Draws     int    `json:"draws"`
}

// Window describes which part of the archive list a report covers.
type Window struct {
	Months          int `json:"months"`
	ArchivesTotal   int `json:"archives_total"`
	ArchivesFetched int `json:"archives_fetched"`
}

// TimeClassTotals aggregates every standard-rules game of one time class
// inside the window.
type TimeClassTotals struct {
	TimeClass string `json:"time_class"`

	Games  int     `json:"games"`
	Wins   int     `json:"wins"`
	Draws  int     `json:"draws"`
	Losses int     `json:"losses"`
	Other  int     `json:"other,omitempty"`
	Points float64 `json:"points"`
	Rate   float64 `json:"rate"`

	White int `json:"white"`
	Black int `json:"black"`
	Rated int `json:"rated"`

	OpponentMin int     `json:"opponent_min,omitempty"`
	OpponentAvg float64 `json:"opponent_avg,omitempty"`
	OpponentMax int     `json:"opponent_max,omitempty"`

	Accuracy      float64 `json:"accuracy,omitempty"`
	AccuracyGames int     `json:"accuracy_games,omitempty"`
}

// OpeningTotals aggregates games by opening family.
type OpeningTotals struct {
	Family string  `json:"family"`
	Games  int     `json:"games"`
	Points float64 `json:"points"`
	Rate   float64 `json:"rate"`
}

// Opponent is one frequently played opponent, optionally enriched with
// profile data fetched per player.
type Opponent struct {
	Username    string  `json:"username"`
	Games       int     `json:"games"`
	Points      float64 `json:"points"`
	Rate        float64 `json:"rate"`
	Rating      int     `json:"rating,omitempty"`
	Title       string  `json:"title,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	CountryFlag string  `json:"country_flag,omitempty"`
}
