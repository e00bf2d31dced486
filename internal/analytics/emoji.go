package analytics

import (
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

// CommonEmoji is the fixed set of glyphs EmojiCounts looks for. Other emoji
// are ignored.
var CommonEmoji = []string{"😀", "😂", "😃", "❤️", "😍", "😊", "👍", "👏", "🙌", "🎉"}

var (
	// single code point entries, keyed by rune
	commonRunes = make(map[rune]string)
	// entries spanning more than one code point, matched as a prefix
	commonSequences []string
)

func init() {
	for _, e := range CommonEmoji {
		if utf8.RuneCountInString(e) == 1 {
			r, _ := utf8.DecodeRuneInString(e)
			commonRunes[r] = e
		} else {
			commonSequences = append(commonSequences, e)
		}
	}
}

// EmojiCounts scans every body one code point at a time and counts the
// CommonEmoji glyphs found, most frequent first. Code points outside the list,
// such as skin-tone modifiers and joiners, are passed over, so "👍🏽" counts
// as "👍". "❤️" is matched as a two code point sequence at the current position.
func EmojiCounts(records []parse.Record) []Count {
	c := newCounter()
	for _, r := range records {
		body := r.Body
		for i := 0; i < len(body); {
			if seq := sequenceAt(body[i:]); seq != "" {
				c.add(seq)
				i += len(seq)
				continue
			}
			ch, size := utf8.DecodeRuneInString(body[i:])
			if e, ok := commonRunes[ch]; ok {
				c.add(e)
			}
			i += size
		}
	}
	return c.mostCommon(0)
}

func sequenceAt(s string) string {
	for _, seq := range commonSequences {
		if strings.HasPrefix(s, seq) {
			return seq
		}
	}
	return ""
}
