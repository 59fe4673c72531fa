package domain

// Level is the three-bucket classification of an average score.
type Level int

const (
	Low Level = iota
	Moderate
	High
)

// Classification thresholds on the average percentage. A value equal to a
// threshold belongs to the higher bucket.
const (
	ModerateThreshold = 30.0
	HighThreshold     = 70.0
)

// Label returns the human-readable label of the level.
func (lv Level) Label() string {
	switch lv {
	case High:
		return "high similarity"
	case Moderate:
		return "moderate similarity"
	default:
		return "low similarity"
	}
}

// String implements fmt.Stringer.
func (lv Level) String() string {
	switch lv {
	case High:
		return "high"
	case Moderate:
		return "moderate"
	default:
		return "low"
	}
}

// LevelOf buckets an average percentage.
func LevelOf(average float64) Level {
	switch {
	case average >= HighThreshold:
		return High
	case average >= ModerateThreshold:
		return Moderate
	default:
		return Low
	}
}

// Classify averages the scores and returns the label and level.
func Classify(scores Scores) (string, Level) {
	lv := LevelOf(scores.Average())
	return lv.Label(), lv
}
