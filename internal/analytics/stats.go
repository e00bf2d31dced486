package analytics

import (
	"strings"

	"github.com/Zuo-Peng/chatstat/internal/parse"
	"mvdan.cc/xurls/v2"
)

// urlRe matches URLs with or without a scheme ("example.com/x" counts).
var urlRe = xurls.Relaxed()

// Stats are the headline numbers for a set of records.
type Stats struct {
	Messages int `json:"messages" yaml:"messages"`
	Words    int `json:"words" yaml:"words"`
	Media    int `json:"media" yaml:"media"`
	Links    int `json:"links" yaml:"links"`
}

// FetchStats counts messages, words, media placeholders and links. Media
// placeholders are not words the sender typed and are left out of Words.
func FetchStats(records []parse.Record) Stats {
	var s Stats
	for _, r := range records {
		s.Messages++
		if r.IsMedia() {
			s.Media++
			continue
		}
		s.Words += len(strings.Fields(r.Body))
		s.Links += len(urlRe.FindAllString(r.Body, -1))
	}
	return s
}
