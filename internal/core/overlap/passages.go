// Package overlap finds the passages two token sequences share, which is what
// a reader wants highlighted after a high similarity score.
package overlap

import (
	"errors"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
)

// ErrVocabularyTooLarge is returned when the inputs hold more distinct tokens
// than there are Unicode scalar values to intern them as.
var ErrVocabularyTooLarge = errors.New("too many distinct tokens to diff")

const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
	maxInterned  = 0x10FFFF - surrogateLen
)

// interner maps each distinct token to one rune so the character differ
// works on whole tokens.
type interner struct {
	ids map[string]rune
}

func (in *interner) encode(s domain.TokenSequence) (string, error) {
	runes := make([]rune, len(s))
	for i, tok := range s {
		r, ok := in.ids[tok]
		if !ok {
			if len(in.ids) >= maxInterned {
				return "", ErrVocabularyTooLarge
			}
			r = rune(len(in.ids) + 1)
			if r >= surrogateMin {
				r += surrogateLen
			}
			in.ids[tok] = r
		}
		runes[i] = r
	}
	return string(runes), nil
}

// Passages returns the runs of at least minTokens consecutive tokens that a
// minimal token diff of a and b keeps in common, in document order.
func Passages(a, b domain.TokenSequence, minTokens int) ([]domain.Passage, error) {
	if minTokens < 1 {
		minTokens = 1
	}
	if len(a) == 0 || len(b) == 0 {
		return nil, nil
	}

	in := &interner{ids: make(map[string]rune)}
	encA, err := in.encode(a)
	if err != nil {
		return nil, err
	}
	encB, err := in.encode(b)
	if err != nil {
		return nil, err
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMain(encA, encB, false)

	var passages []domain.Passage
	posA, posB := 0, 0
	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if n >= minTokens {
				tokens := make([]string, n)
				copy(tokens, a[posA:posA+n])
				passages = append(passages, domain.Passage{
					Tokens:  tokens,
					OffsetA: posA,
					OffsetB: posB,
				})
			}
			posA += n
			posB += n
		case diffmatchpatch.DiffDelete:
			posA += n
		case diffmatchpatch.DiffInsert:
			posB += n
		}
	}

	return passages, nil
}

// Coverage returns the share of tokens of a, in percent, that fall inside the
// given passages.
func Coverage(passages []domain.Passage, lengthA int) float64 {
	if lengthA == 0 {
		return 0
	}
	covered := 0
	for _, p := range passages {
		covered += len(p.Tokens)
	}
	return float64(covered) / float64(lengthA) * 100
}
