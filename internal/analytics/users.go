package analytics

import (
	"math"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

// TopUsers is how many senders MostBusyUsers ranks.
const TopUsers = 5

// Share is a sender's percentage of all messages.
type Share struct {
	Name    string  `json:"name" yaml:"name"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// MostBusyUsers ranks senders by message count. It is meant for the unscoped
// record set: top holds the TopUsers busiest senders and shares lists every
// sender, group notifications included, as a percentage rounded to 2 places.
func MostBusyUsers(records []parse.Record) (top []Count, shares []Share) {
	c := newCounter()
	for _, r := range records {
		c.add(r.Sender)
	}

	all := c.mostCommon(0)
	top = all
	if len(top) > TopUsers {
		top = top[:TopUsers]
	}

	shares = make([]Share, 0, len(all))
	total := len(records)
	if total == 0 {
		return top, shares
	}
	for _, e := range all {
		pct := float64(e.Count) / float64(total) * 100
		shares = append(shares, Share{Name: e.Value, Percent: math.Round(pct*100) / 100})
	}
	return top, shares
}
