package analytics

import "github.com/Zuo-Peng/chatstat/internal/parse"

// Scope returns the records sent by user, or all records when user is
// parse.Overall. The returned slice is a new slice unless no filtering applies.
func Scope(records []parse.Record, user string) []parse.Record {
	if user == parse.Overall {
		return records
	}
	out := make([]parse.Record, 0)
	for _, r := range records {
		if r.Sender == user {
			out = append(out, r)
		}
	}
	return out
}
