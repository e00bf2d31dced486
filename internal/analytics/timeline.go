package analytics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

// Span selects the grouping of MonthlyTimeline.
type Span string

const (
	SpanYearMonth Span = "year-month"
	SpanYear      Span = "year"
)

// TimelinePoint is one row of a monthly or yearly timeline. MonthNum and Month
// are zero for yearly rows.
type TimelinePoint struct {
	Year     int    `json:"year" yaml:"year"`
	MonthNum int    `json:"month_num,omitempty" yaml:"month_num,omitempty"`
	Month    string `json:"month,omitempty" yaml:"month,omitempty"`
	Messages int    `json:"messages" yaml:"messages"`
	Label    string `json:"label" yaml:"label"`
}

// DatePoint is one row of the daily timeline.
type DatePoint struct {
	Date     time.Time `json:"date" yaml:"date"`
	Messages int       `json:"messages" yaml:"messages"`
}

// MonthlyTimeline counts messages per (year, month) labelled "January-2023",
// or per year labelled "2023", in chronological order.
func MonthlyTimeline(records []parse.Record, span Span) ([]TimelinePoint, error) {
	type key struct{ year, month int }

	var keyOf func(parse.Record) key
	switch span {
	case SpanYearMonth:
		keyOf = func(r parse.Record) key { return key{r.Year, r.MonthNum} }
	case SpanYear:
		keyOf = func(r parse.Record) key { return key{r.Year, 0} }
	default:
		return nil, &ParamError{
			Name:  "time span",
			Value: string(span),
			Valid: []string{string(SpanYearMonth), string(SpanYear)},
		}
	}

	counts := make(map[key]int)
	for _, r := range records {
		counts[keyOf(r)]++
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sortBy(keys, func(a, b key) bool {
		if a.year != b.year {
			return a.year < b.year
		}
		return a.month < b.month
	})

	out := make([]TimelinePoint, 0, len(keys))
	for _, k := range keys {
		p := TimelinePoint{Year: k.year, Messages: counts[k]}
		if span == SpanYearMonth {
			p.MonthNum = k.month
			p.Month = time.Month(k.month).String()
			p.Label = fmt.Sprintf("%s-%d", p.Month, k.year)
		} else {
			p.Label = strconv.Itoa(k.year)
		}
		out = append(out, p)
	}
	return out, nil
}

// DailyTimeline counts messages per calendar date, oldest first.
func DailyTimeline(records []parse.Record) []DatePoint {
	counts := make(map[time.Time]int)
	for _, r := range records {
		counts[r.Date]++
	}

	out := make([]DatePoint, 0, len(counts))
	for d, n := range counts {
		out = append(out, DatePoint{Date: d, Messages: n})
	}
	sortBy(out, func(a, b DatePoint) bool { return a.Date.Before(b.Date) })
	return out
}
