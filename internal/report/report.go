// Package report runs every analytic for one user selection and bundles the
// results for rendering or serialisation.
package report

import (
	"context"

	"github.com/Zuo-Peng/chatstat/internal/analytics"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"golang.org/x/sync/errgroup"
)

// Options configures Build. The zero value uses no stop words, a year-month
// timeline and daily buckets.
type Options struct {
	StopWords   analytics.StopWords
	Span        analytics.Span        // defaults to analytics.SpanYearMonth
	Granularity analytics.Granularity // defaults to analytics.Daily
}

// Report holds every analytic computed for one user selection.
type Report struct {
	User     string            `json:"user" yaml:"user"`
	Stats    analytics.Stats   `json:"stats" yaml:"stats"`
	TopUsers []analytics.Count `json:"top_users,omitempty" yaml:"top_users,omitempty"` // Overall only
	Shares   []analytics.Share `json:"shares,omitempty" yaml:"shares,omitempty"`       // Overall only

	CommonWords []analytics.Count `json:"common_words" yaml:"common_words"`
	WordCloud   string            `json:"word_cloud" yaml:"word_cloud"`
	Emoji       []analytics.Count `json:"emoji" yaml:"emoji"`

	Timeline      []analytics.TimelinePoint `json:"timeline" yaml:"timeline"`
	Daily         []analytics.DatePoint     `json:"daily" yaml:"daily"`
	WeekActivity  []analytics.Count         `json:"week_activity" yaml:"week_activity"`
	MonthActivity []analytics.Count         `json:"month_activity" yaml:"month_activity"`
	Heatmap       analytics.Heatmap         `json:"heatmap" yaml:"heatmap"`
	OverTime      []analytics.BucketCount   `json:"over_time" yaml:"over_time"`
	Granularity   analytics.Granularity     `json:"granularity" yaml:"granularity"`
	Lengths       []int                     `json:"lengths" yaml:"lengths"`
}

// Build scopes records to user once and computes each analytic in its own
// goroutine. The goroutines only read the shared slice.
func Build(ctx context.Context, records []parse.Record, user string, opts Options) (*Report, error) {
	if opts.Span == "" {
		opts.Span = analytics.SpanYearMonth
	}
	if opts.Granularity == "" {
		opts.Granularity = analytics.Daily
	}

	recs := analytics.Scope(records, user)
	rep := &Report{User: user, Granularity: opts.Granularity}

	g, ctx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() { rep.Stats = analytics.FetchStats(recs) })
	if user == parse.Overall {
		run(func() { rep.TopUsers, rep.Shares = analytics.MostBusyUsers(recs) })
	}
	run(func() { rep.CommonWords = analytics.MostCommonWords(recs, opts.StopWords) })
	run(func() { rep.WordCloud = analytics.WordCloudText(recs, opts.StopWords) })
	run(func() { rep.Emoji = analytics.EmojiCounts(recs) })
	run(func() { rep.Daily = analytics.DailyTimeline(recs) })
	run(func() { rep.WeekActivity = analytics.WeekActivityMap(recs) })
	run(func() { rep.MonthActivity = analytics.MonthActivityMap(recs) })
	run(func() { rep.Heatmap = analytics.ActivityHeatmap(recs) })
	run(func() { rep.Lengths = analytics.MessageLengths(recs) })

	g.Go(func() error {
		tl, err := analytics.MonthlyTimeline(recs, opts.Span)
		rep.Timeline = tl
		return err
	})
	g.Go(func() error {
		ot, err := analytics.MessageCountOverTime(recs, opts.Granularity)
		rep.OverTime = ot
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rep, nil
}

// BuildAll builds the Overall report followed by one report per sender, in
// parse.UserList order.
func BuildAll(ctx context.Context, records []parse.Record, opts Options) ([]*Report, error) {
	users := parse.UserList(records)
	out := make([]*Report, 0, len(users))
	for _, u := range users {
		rep, err := Build(ctx, records, u, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, nil
}
