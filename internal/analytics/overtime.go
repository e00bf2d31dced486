package analytics

import (
	"strings"
	"time"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

// Granularity selects the bucket size of MessageCountOverTime.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// BucketCount is the number of messages in the bucket starting at Start.
type BucketCount struct {
	Start    time.Time `json:"start" yaml:"start"`
	Label    string    `json:"label" yaml:"label"`
	Messages int       `json:"messages" yaml:"messages"`
}

// MessageCountOverTime counts messages per day, per week (weeks start on
// Monday) or per calendar month, in ascending bucket order.
func MessageCountOverTime(records []parse.Record, g Granularity) ([]BucketCount, error) {
	var start func(parse.Record) time.Time
	layout := "2006-01-02"
	switch g {
	case Daily:
		start = func(r parse.Record) time.Time { return r.Date }
	case Weekly:
		start = func(r parse.Record) time.Time { return r.WeekStart }
	case Monthly:
		start = func(r parse.Record) time.Time {
			return time.Date(r.Year, time.Month(r.MonthNum), 1, 0, 0, 0, 0, time.UTC)
		}
		layout = "2006-01"
	default:
		return nil, &ParamError{
			Name:  "granularity",
			Value: string(g),
			Valid: []string{string(Daily), string(Weekly), string(Monthly)},
		}
	}

	counts := make(map[time.Time]int)
	for _, r := range records {
		counts[start(r)]++
	}

	out := make([]BucketCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, BucketCount{Start: t, Label: t.Format(layout), Messages: n})
	}
	sortBy(out, func(a, b BucketCount) bool { return a.Start.Before(b.Start) })
	return out, nil
}

// MessageLengths returns the whitespace token count of every message, in
// transcript order.
func MessageLengths(records []parse.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = len(strings.Fields(r.Body))
	}
	return out
}
