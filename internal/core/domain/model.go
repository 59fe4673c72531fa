package domain

import "time"

// TokenSequence is the ordered list of normalized word tokens of one document.
// Scorers only read it; nothing mutates a sequence after tokenization.
type TokenSequence []string

// Method identifies one of the three similarity measures.
type Method int

const (
	// LCS scores the longest common subsequence of tokens.
	LCS Method = iota
	// Levenshtein scores the token-level edit distance.
	Levenshtein
	// Cosine scores the angle between raw term-frequency vectors.
	Cosine
)

// Methods lists every measure in reporting order.
var Methods = [...]Method{LCS, Levenshtein, Cosine}

// String returns the display name of the method.
func (m Method) String() string {
	switch m {
	case LCS:
		return "LCS"
	case Levenshtein:
		return "Levenshtein"
	case Cosine:
		return "Cosine"
	default:
		return "unknown"
	}
}

// Scores holds one percentage in [0, 100] per method.
type Scores [len(Methods)]float64

// Get returns the score of method m.
func (s Scores) Get(m Method) float64 {
	return s[m]
}

// Average is the arithmetic mean of the three scores.
func (s Scores) Average() float64 {
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

// Map returns the scores keyed by method display name.
func (s Scores) Map() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range Methods {
		out[m.String()] = s[m]
	}
	return out
}

// Passage is a run of consecutive tokens present in both documents.
type Passage struct {
	Tokens  []string `json:"tokens"`
	OffsetA int      `json:"offset_a"`
	OffsetB int      `json:"offset_b"`
}

// Result holds the outcome of one document comparison.
type Result struct {
	Scores   Scores
	Average  float64
	Level    Level
	Label    string
	LengthA  int
	LengthB  int
	Passages []Passage
	Duration time.Duration
	Details  map[string]interface{}
}

// NewResult derives the average and classification from the three scores.
func NewResult(scores Scores, lengthA, lengthB int) Result {
	label, level := Classify(scores)
	return Result{
		Scores:  scores,
		Average: scores.Average(),
		Level:   level,
		Label:   label,
		LengthA: lengthA,
		LengthB: lengthB,
		Details: make(map[string]interface{}),
	}
}
