package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Zuo-Peng/chatstat/internal/analytics"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transcript = `1/1/23, 09:00 - Group created
1/1/23, 09:01 - Alice: hello world 😂
1/1/23, 09:05 - Bob: <Media omitted>
2/1/23, 18:30 - Bob: hello there https://example.com
`

func records(t *testing.T) []parse.Record {
	t.Helper()
	recs, err := parse.Parse(transcript)
	require.NoError(t, err)
	return recs
}

func TestBuild_Overall(t *testing.T) {
	rep, err := report.Build(context.Background(), records(t), parse.Overall, report.Options{
		StopWords: analytics.NewStopWords("there"),
	})
	require.NoError(t, err)

	assert.Equal(t, analytics.Stats{Messages: 4, Words: 8, Media: 1, Links: 1}, rep.Stats)
	require.NotEmpty(t, rep.TopUsers)
	assert.Equal(t, "Bob", rep.TopUsers[0].Value)
	assert.Len(t, rep.Shares, 3)
	assert.Equal(t, analytics.Count{Value: "hello", Count: 2}, rep.CommonWords[0])
	assert.Equal(t, "hello world 😂 hello https://example.com", rep.WordCloud)
	assert.Equal(t, 4, rep.Heatmap.Total())
	assert.Equal(t, analytics.Daily, rep.Granularity)
	assert.Len(t, rep.OverTime, 2)
	assert.Equal(t, []int{2, 3, 2, 3}, rep.Lengths)
	assert.Equal(t, "January-2023", rep.Timeline[0].Label)
}

func TestBuild_SingleUser(t *testing.T) {
	rep, err := report.Build(context.Background(), records(t), "Alice", report.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Stats.Messages)
	assert.Nil(t, rep.TopUsers)
	assert.Nil(t, rep.Shares)
	assert.Equal(t, []analytics.Count{{Value: "😂", Count: 1}}, rep.Emoji)
}

func TestBuild_InvalidSpan(t *testing.T) {
	_, err := report.Build(context.Background(), records(t), parse.Overall, report.Options{Span: "week"})
	assert.True(t, errors.Is(err, analytics.ErrInvalidParameter))
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := report.Build(ctx, records(t), parse.Overall, report.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_Empty(t *testing.T) {
	rep, err := report.Build(context.Background(), nil, parse.Overall, report.Options{})
	require.NoError(t, err)
	assert.Equal(t, analytics.Stats{}, rep.Stats)
	assert.Empty(t, rep.Shares)
	assert.Empty(t, rep.Timeline)
}

func TestBuildAll(t *testing.T) {
	reps, err := report.BuildAll(context.Background(), records(t), report.Options{})
	require.NoError(t, err)
	require.Len(t, reps, 3)
	assert.Equal(t, parse.Overall, reps[0].User)
	assert.Equal(t, "Alice", reps[1].User)
	assert.Equal(t, "Bob", reps[2].User)
	assert.Equal(t, 2, reps[2].Stats.Messages)
}
