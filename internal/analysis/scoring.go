package analysis

// gameScores maps chess.com result codes to score points. The codes are
// reported per player; "win" is the only winning code, everything else is
// a flavour of draw or loss.
var gameScores = map[string]float64{
	"win":                 1.0,
	"checkmated":          0.0,
	"agreed":              0.5,
	"repetition":          0.5,
	"timeout":             0.0,
	"resigned":            0.0,
	"stalemate":           0.5,
	"lose":                0.0,
	"insufficient":        0.5,
	"50move":              0.5,
	"abandoned":           0.0,
	"kingofthehill":       0.0,
	"threecheck":          0.0,
	"timevsinsufficient":  0.5,
	"bughousepartnerlose": 0.0,
}

// Score converts a result code into score points. The second return value
// reports whether the code is known; unknown codes are worth nothing but
// still count as played games.
func Score(result string) (float64, bool) {
	points, ok := gameScores[result]
	return points, ok
}

// Outcome buckets a result code for reporting.
type Outcome string

const (
	OutcomeWin   Outcome = "win"
	OutcomeDraw  Outcome = "draw"
	OutcomeLoss  Outcome = "loss"
	OutcomeOther Outcome = "other"
)

// OutcomeOf maps a result code onto its reporting bucket.
func OutcomeOf(result string) Outcome {
	points, ok := Score(result)
	if !ok {
		return OutcomeOther
	}
	switch points {
	case 1.0:
		return OutcomeWin
	case 0.5:
		return OutcomeDraw
	default:
		return OutcomeLoss
	}
}
