package tokenizer

import "sort"

// frenchStopWords are the function words dropped from every token sequence:
// articles, conjunctions, relatives and common prepositions.
var frenchStopWords = map[string]struct{}{
	"le": {}, "la": {}, "les": {}, "un": {}, "une": {}, "des": {},
	"et": {}, "ou": {}, "donc": {}, "car": {}, "mais": {},
	"où": {}, "qui": {}, "que": {}, "quoi": {}, "dont": {},
	"pour": {}, "dans": {}, "par": {}, "sur": {}, "avec": {}, "sans": {}, "sous": {},
}

// IsStopWord reports whether tok is dropped by the tokenizers.
func IsStopWord(tok string) bool {
	_, ok := frenchStopWords[tok]
	return ok
}

// StopWords returns the stop-word list in sorted order.
func StopWords() []string {
	out := make([]string, 0, len(frenchStopWords))
	for w := range frenchStopWords {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
