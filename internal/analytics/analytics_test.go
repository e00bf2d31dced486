package analytics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Zuo-Peng/chatstat/internal/analytics"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transcript = `2/1/23, 09:00 - Alice created group "Trip"
2/1/23, 09:01 - Alice: hello team 😂😂 see example.com/plan
2/1/23, 09:02 - Bob: hello hello 👍
2/1/23, 23:10 - Bob: <Media omitted>
3/1/23, 00:30 - Carol: the plan is https://maps.google.com/x and http://foo.org ❤️
9/2/23, 12:15 - Alice: hello again 😂 👍🏽
1/1/24, 10:00 - Bob: new year 🎉
`

func mustParse(t *testing.T, text string) []parse.Record {
	t.Helper()
	recs, err := parse.Parse(text)
	require.NoError(t, err)
	return recs
}

func TestScope(t *testing.T) {
	recs := mustParse(t, transcript)

	assert.Len(t, analytics.Scope(recs, parse.Overall), 7)
	bob := analytics.Scope(recs, "Bob")
	require.Len(t, bob, 3)
	for _, r := range bob {
		assert.Equal(t, "Bob", r.Sender)
	}
	assert.Empty(t, analytics.Scope(recs, "Nobody"))
}

func TestFetchStats(t *testing.T) {
	recs := mustParse(t, transcript)

	s := analytics.FetchStats(recs)
	assert.Equal(t, len(recs), s.Messages)
	assert.Equal(t, 1, s.Media)
	assert.Equal(t, 3, s.Links)

	carol := analytics.FetchStats(analytics.Scope(recs, "Carol"))
	assert.Equal(t, analytics.Stats{Messages: 1, Words: 7, Media: 0, Links: 2}, carol)
}

func TestFetchStats_Scenario(t *testing.T) {
	recs := mustParse(t, "1/1/23, 09:00 - Alice: Hello world\n1/1/23, 09:05 - Bob: <Media omitted>\n")
	s := analytics.FetchStats(analytics.Scope(recs, parse.Overall))
	assert.Equal(t, analytics.Stats{Messages: 2, Words: 2, Media: 1, Links: 0}, s)
}

func TestMostBusyUsers(t *testing.T) {
	recs := mustParse(t, transcript)

	top, shares := analytics.MostBusyUsers(recs)
	assert.Equal(t, []analytics.Count{
		{Value: "Bob", Count: 3},
		{Value: "Alice", Count: 2},
		{Value: parse.GroupNotification, Count: 1},
		{Value: "Carol", Count: 1},
	}, top)

	require.Len(t, shares, 4)
	assert.Equal(t, analytics.Share{Name: "Bob", Percent: 42.86}, shares[0])
	assert.Equal(t, analytics.Share{Name: "Alice", Percent: 28.57}, shares[1])

	sum := 0.0
	for _, s := range shares {
		sum += s.Percent
	}
	assert.InDelta(t, 100.0, sum, 0.1)
}

func TestMostBusyUsers_TopFive(t *testing.T) {
	text := ""
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		for j := 0; j <= i; j++ {
			text += "1/1/23, 10:00 - " + name + ": hi\n"
		}
	}
	top, shares := analytics.MostBusyUsers(mustParse(t, text))
	require.Len(t, top, analytics.TopUsers)
	assert.Equal(t, "G", top[0].Value)
	assert.Equal(t, "C", top[4].Value)
	assert.Len(t, shares, 7)
}

func TestMostBusyUsers_TiesKeepFirstSeen(t *testing.T) {
	recs := mustParse(t, "1/1/23, 10:00 - Zed: a\n1/1/23, 10:01 - Amy: b\n1/1/23, 10:02 - Zed: c\n1/1/23, 10:03 - Amy: d\n")
	top, _ := analytics.MostBusyUsers(recs)
	assert.Equal(t, []analytics.Count{{Value: "Zed", Count: 2}, {Value: "Amy", Count: 2}}, top)
}

func TestMostCommonWords(t *testing.T) {
	recs := mustParse(t, transcript)
	stop := analytics.NewStopWords("the", "is", "and")

	words := analytics.MostCommonWords(recs, stop)
	require.NotEmpty(t, words)
	assert.Equal(t, analytics.Count{Value: "hello", Count: 4}, words[0])
	for _, w := range words {
		assert.False(t, stop.Contains(w.Value), "stop word %q returned", w.Value)
		assert.NotEqual(t, "<media", w.Value)
		assert.NotEqual(t, "created", w.Value)
	}
}

func TestMostCommonWords_LimitAndTies(t *testing.T) {
	text := "1/1/23, 10:00 - A: "
	for c := 'a'; c <= 'y'; c++ {
		text += string(c) + " "
	}
	text += "y\n"
	words := analytics.MostCommonWords(mustParse(t, text), nil)
	require.Len(t, words, analytics.TopWords)
	assert.Equal(t, analytics.Count{Value: "y", Count: 2}, words[0])
	assert.Equal(t, "a", words[1].Value)
	assert.Equal(t, "b", words[2].Value)
}

func TestWordCloudText(t *testing.T) {
	recs := mustParse(t, "1/1/23, 10:00 - A: The Quick fox\n1/1/23, 10:01 - B: <Media omitted>\n1/1/23, 10:02 - joined\n1/1/23, 10:03 - B: fox JUMPS\n")
	assert.Equal(t, "quick fox fox jumps", analytics.WordCloudText(recs, analytics.NewStopWords("the")))
}

func TestWords_GroupOnly(t *testing.T) {
	recs := mustParse(t, "1/1/23, 09:00 - Group created\n")
	assert.Empty(t, analytics.MostCommonWords(recs, nil))
	assert.Equal(t, "", analytics.WordCloudText(recs, nil))
}

func TestEmojiCounts(t *testing.T) {
	recs := mustParse(t, transcript)
	assert.Equal(t, []analytics.Count{
		{Value: "😂", Count: 3},
		{Value: "👍", Count: 2},
		{Value: "❤️", Count: 1},
		{Value: "🎉", Count: 1},
	}, analytics.EmojiCounts(recs))
}

func TestEmojiCounts_CodePointScan(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []analytics.Count
	}{
		{
			name: "skin tone modifier and trailing joiner",
			body: "nice 👍🏽 lol 😂\u200d x 🎉🎉",
			want: []analytics.Count{{Value: "🎉", Count: 2}, {Value: "👍", Count: 1}, {Value: "😂", Count: 1}},
		},
		{
			name: "heart needs the variation selector",
			body: "❤ ❤️ ❤️",
			want: []analytics.Count{{Value: "❤️", Count: 2}},
		},
		{
			name: "adjacent glyphs",
			body: "🙌👏🙌",
			want: []analytics.Count{{Value: "🙌", Count: 2}, {Value: "👏", Count: 1}},
		},
		{
			name: "no listed glyphs",
			body: "🚀 plain text",
			want: []analytics.Count{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := mustParse(t, "1/1/23, 09:00 - Alice: "+tt.body+"\n")
			assert.Equal(t, tt.want, analytics.EmojiCounts(recs))
		})
	}
}

func TestMonthlyTimeline(t *testing.T) {
	recs := mustParse(t, transcript)

	months, err := analytics.MonthlyTimeline(recs, analytics.SpanYearMonth)
	require.NoError(t, err)
	require.Len(t, months, 3)
	assert.Equal(t, "January-2023", months[0].Label)
	assert.Equal(t, 5, months[0].Messages)
	assert.Equal(t, "February-2023", months[1].Label)
	assert.Equal(t, "January-2024", months[2].Label)

	years, err := analytics.MonthlyTimeline(recs, analytics.SpanYear)
	require.NoError(t, err)
	assert.Equal(t, []analytics.TimelinePoint{
		{Year: 2023, Messages: 6, Label: "2023"},
		{Year: 2024, Messages: 1, Label: "2024"},
	}, years)
}

func TestMonthlyTimeline_InvalidSpan(t *testing.T) {
	_, err := analytics.MonthlyTimeline(nil, analytics.Span("decade"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, analytics.ErrInvalidParameter))
}

func TestDailyTimeline(t *testing.T) {
	recs := mustParse(t, transcript)
	days := analytics.DailyTimeline(recs)
	require.Len(t, days, 4)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, 4, days[0].Messages)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), days[3].Date)
}

func TestActivityMaps(t *testing.T) {
	recs := mustParse(t, transcript)

	week := analytics.WeekActivityMap(recs)
	assert.Equal(t, analytics.Count{Value: "Monday", Count: 5}, week[0])

	month := analytics.MonthActivityMap(recs)
	assert.Equal(t, []analytics.Count{
		{Value: "January", Count: 6},
		{Value: "February", Count: 1},
	}, month)
}

func TestActivityHeatmap(t *testing.T) {
	recs := mustParse(t, transcript)

	h := analytics.ActivityHeatmap(recs)
	assert.Equal(t, len(recs), h.Total())
	assert.Equal(t, []string{"Monday", "Tuesday", "Thursday"}, h.Rows)
	assert.Equal(t, []string{"00-1", "9-10", "10-11", "12-13", "23-00"}, h.Columns)
	assert.Equal(t, 3, h.Cell("Monday", "9-10"))
	assert.Equal(t, 1, h.Cell("Monday", "23-00"))
	assert.Equal(t, 1, h.Cell("Monday", "10-11"))
	assert.Equal(t, 0, h.Cell("Tuesday", "9-10"))
	assert.Equal(t, 0, h.Cell("Sunday", "9-10"))

	bob := analytics.ActivityHeatmap(analytics.Scope(recs, "Bob"))
	assert.Equal(t, 3, bob.Total())
}

func TestMessageCountOverTime(t *testing.T) {
	recs := mustParse(t, transcript)

	daily, err := analytics.MessageCountOverTime(recs, analytics.Daily)
	require.NoError(t, err)
	require.Len(t, daily, 4)
	assert.Equal(t, "2023-01-02", daily[0].Label)

	weekly, err := analytics.MessageCountOverTime(recs, analytics.Weekly)
	require.NoError(t, err)
	require.Len(t, weekly, 3)
	assert.Equal(t, "2023-01-02", weekly[0].Label)
	assert.Equal(t, 5, weekly[0].Messages)
	assert.Equal(t, "2023-02-06", weekly[1].Label)

	monthly, err := analytics.MessageCountOverTime(recs, analytics.Monthly)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-01", "2023-02", "2024-01"}, []string{monthly[0].Label, monthly[1].Label, monthly[2].Label})

	_, err = analytics.MessageCountOverTime(recs, analytics.Granularity("hourly"))
	assert.True(t, errors.Is(err, analytics.ErrInvalidParameter))
}

func TestMessageLengths(t *testing.T) {
	recs := mustParse(t, "1/1/23, 10:00 - A: one two three\n1/1/23, 10:01 - joined\n")
	assert.Equal(t, []int{3, 1}, analytics.MessageLengths(recs))
}

func TestEmptyInput(t *testing.T) {
	recs := mustParse(t, "")

	assert.Equal(t, analytics.Stats{}, analytics.FetchStats(recs))

	top, shares := analytics.MostBusyUsers(recs)
	assert.Empty(t, top)
	assert.NotNil(t, shares)
	assert.Empty(t, shares)

	assert.Empty(t, analytics.MostCommonWords(recs, nil))
	assert.Equal(t, "", analytics.WordCloudText(recs, nil))
	assert.Empty(t, analytics.EmojiCounts(recs))

	months, err := analytics.MonthlyTimeline(recs, analytics.SpanYearMonth)
	require.NoError(t, err)
	assert.Empty(t, months)
	assert.Empty(t, analytics.DailyTimeline(recs))
	assert.Empty(t, analytics.WeekActivityMap(recs))
	assert.Empty(t, analytics.MonthActivityMap(recs))

	h := analytics.ActivityHeatmap(recs)
	assert.Equal(t, 0, h.Total())
	assert.Empty(t, h.Rows)

	buckets, err := analytics.MessageCountOverTime(recs, analytics.Weekly)
	require.NoError(t, err)
	assert.Empty(t, buckets)
	assert.Empty(t, analytics.MessageLengths(recs))
}
