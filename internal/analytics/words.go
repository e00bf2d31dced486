package analytics

import (
	"strings"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

// TopWords is how many words MostCommonWords returns.
const TopWords = 20

// StopWords is a set of lowercase words left out of word statistics. The zero
// value is an empty set.
type StopWords map[string]struct{}

// NewStopWords builds a set from the given words, lowercased.
func NewStopWords(words ...string) StopWords {
	s := make(StopWords, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			s[w] = struct{}{}
		}
	}
	return s
}

// Contains reports whether word is a stop word.
func (s StopWords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// wordTokens returns the lowercased tokens of every human, non-media message
// with stop words removed, in transcript order.
func wordTokens(records []parse.Record, stop StopWords) []string {
	var tokens []string
	for _, r := range records {
		if r.IsGroupNotification() || r.IsMedia() {
			continue
		}
		for _, w := range strings.Fields(strings.ToLower(r.Body)) {
			if !stop.Contains(w) {
				tokens = append(tokens, w)
			}
		}
	}
	return tokens
}

// MostCommonWords returns the TopWords most frequent words.
func MostCommonWords(records []parse.Record, stop StopWords) []Count {
	c := newCounter()
	for _, w := range wordTokens(records, stop) {
		c.add(w)
	}
	return c.mostCommon(TopWords)
}

// WordCloudText joins the filtered tokens with single spaces, ready to hand to
// a word cloud renderer.
func WordCloudText(records []parse.Record, stop StopWords) string {
	return strings.Join(wordTokens(records, stop), " ")
}
