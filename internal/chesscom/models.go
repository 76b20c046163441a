package chesscom

// Profile is the payload of /pub/player/{username}.
type Profile struct {
	ID         string `json:"@id"`
	URL        string `json:"url"`
	Username   string `json:"username"`
	PlayerID   int64  `json:"player_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	Location   string `json:"location"`
	CountryURL string `json:"country"`
	Joined     int64  `json:"joined"`
	LastOnline int64  `json:"last_online"`
	Followers  int    `json:"followers"`
	IsStreamer bool   `json:"is_streamer"`
	Verified   bool   `json:"verified"`
	League     string `json:"league"`
}

// Stats is the payload of /pub/player/{username}/stats. Sections are
// pointers because chess.com omits time classes the player never used.
type Stats struct {
	Bullet     *TimeClassStats  `json:"chess_bullet"`
	Blitz      *TimeClassStats  `json:"chess_blitz"`
	Rapid      *TimeClassStats  `json:"chess_rapid"`
	Daily      *TimeClassStats  `json:"chess_daily"`
	FIDE       int              `json:"fide"`
	Tactics    *TacticsStats    `json:"tactics"`
	PuzzleRush *PuzzleRushStats `json:"puzzle_rush"`
}

// TimeClassStats holds the rating and lifetime record for one time class.
type TimeClassStats struct {
	Last   RatingSnapshot `json:"last"`
	Best   RatingSnapshot `json:"best"`
	Record Record         `json:"record"`
}

// RatingSnapshot is a rating at a point in time. RD is only present on
// "last" snapshots, Game only on "best" ones.
type RatingSnapshot struct {
	Rating int    `json:"rating"`
	Date   int64  `json:"date"`
	RD     int    `json:"rd,omitempty"`
	Game   string `json:"game,omitempty"`
}

// Record is a lifetime win/loss/draw tally.
type Record struct {
	Win  int `json:"win"`
	Loss int `json:"loss"`
	Draw int `json:"draw"`
}

// TacticsStats is the puzzle rating section of the stats payload.
type TacticsStats struct {
	Highest RatingSnapshot `json:"highest"`
	Lowest  RatingSnapshot `json:"lowest"`
}

// PuzzleRushStats is the puzzle rush section of the stats payload.
type PuzzleRushStats struct {
	Best PuzzleRushBest `json:"best"`
}

// PuzzleRushBest is a single best puzzle rush run.
type PuzzleRushBest struct {
	TotalAttempts int `json:"total_attempts"`
	Score         int `json:"score"`
}

// Game is one finished game as reported by a monthly archive page.
type Game struct {
	URL         string      `json:"url"`
	PGN         string      `json:"pgn"`
	TimeControl string      `json:"time_control"`
	TimeClass   string      `json:"time_class"`
	Rated       bool        `json:"rated"`
	EndTime     int64       `json:"end_time"`
	Rules       string      `json:"rules"`
	White       Player      `json:"white"`
	Black       Player      `json:"black"`
	ECO         string      `json:"eco"`
	Accuracies  *Accuracies `json:"accuracies,omitempty"`
}

// Player is one side of a game. Result carries chess.com's result code
// ("win", "checkmated", "agreed", ...) from this player's point of view.
type Player struct {
	Username string `json:"username"`
	Result   string `json:"result"`
	Rating   int    `json:"rating"`
}

// Accuracies is the engine accuracy block present on analyzed games.
type Accuracies struct {
	White float64 `json:"white"`
	Black float64 `json:"black"`
}

// Country is the payload of /pub/country/{code}.
type Country struct {
	ID   string `json:"@id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
