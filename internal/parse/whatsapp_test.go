package parse_test

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Messages and calls are end-to-end encrypted.
12/3/23, 21:15 - Alice created group "Trip"
12/3/23, 21:16 - Alice: Hello world
12/3/23, 21:17 - Bob: <Media omitted>
13/3/23, 0:05 - Bob: note: this has
a second line
14/3/23, 23:59 - Carol left
`

func TestParse_Sample(t *testing.T) {
	recs, err := parse.Parse(sample)
	require.NoError(t, err)
	require.Len(t, recs, 5)

	assert.Equal(t, parse.GroupNotification, recs[0].Sender)
	assert.Equal(t, "Alice created group \"Trip\"\n", recs[0].Body)
	assert.Equal(t, 2, recs[0].LineNumber)

	assert.Equal(t, "Alice", recs[1].Sender)
	assert.Equal(t, "Hello world\n", recs[1].Body)
	assert.Equal(t, time.Date(2023, time.March, 12, 21, 16, 0, 0, time.UTC), recs[1].Timestamp)

	assert.Equal(t, "Bob", recs[2].Sender)
	assert.True(t, recs[2].IsMedia())

	// only the first ": " separates the sender
	assert.Equal(t, "Bob", recs[3].Sender)
	assert.Equal(t, "note: this has\na second line\n", recs[3].Body)
	assert.Equal(t, 5, recs[3].LineNumber)
	assert.Equal(t, "00-1", recs[3].Period)

	assert.Equal(t, parse.GroupNotification, recs[4].Sender)
	assert.Equal(t, "23-00", recs[4].Period)
	assert.Equal(t, 7, recs[4].LineNumber)
}

func TestParse_DerivedFields(t *testing.T) {
	recs, err := parse.Parse("1/1/23, 09:05 - Alice: hi\n")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), r.Date)
	assert.Equal(t, 2023, r.Year)
	assert.Equal(t, 1, r.MonthNum)
	assert.Equal(t, "January", r.Month)
	assert.Equal(t, 1, r.Day)
	assert.Equal(t, "Sunday", r.DayName)
	assert.Equal(t, 9, r.Hour)
	assert.Equal(t, 5, r.Minute)
	assert.Equal(t, "9-10", r.Period)
	assert.Equal(t, time.Date(2022, 12, 26, 0, 0, 0, 0, time.UTC), r.WeekStart)
}

func TestParse_Scenario(t *testing.T) {
	recs, err := parse.Parse("1/1/23, 09:00 - Alice: Hello world\n1/1/23, 09:05 - Bob: <Media omitted>\n")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Alice", recs[0].Sender)
	assert.Equal(t, "Bob", recs[1].Sender)
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "no headers here\njust text\n"} {
		recs, err := parse.Parse(in)
		require.NoError(t, err)
		assert.NotNil(t, recs)
		assert.Empty(t, recs)
	}
}

func TestParse_GroupOnly(t *testing.T) {
	recs, err := parse.Parse("1/1/23, 09:00 - Group created\n")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, parse.GroupNotification, recs[0].Sender)
	assert.Equal(t, "Group created\n", recs[0].Body)
}

func TestParse_FormatError(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"month out of range", "1/1/23, 09:00 - A: ok\n1/13/23, 09:00 - A: bad\n", 2},
		{"day out of range", "30/2/23, 10:00 - A: bad\n", 1},
		{"hour out of range", "intro\n1/2/23, 25:00 - A: bad\n", 2},
		{"minute out of range", "1/2/23, 10:61 - A: bad\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := parse.Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, recs)
			assert.True(t, errors.Is(err, parse.ErrFormat))

			var fe *parse.FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.line, fe.Line)
		})
	}
}

func TestParse_RecordCountMatchesHeaders(t *testing.T) {
	header := regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2},\s\d{1,2}:\d{2}\s-\s`)
	inputs := []string{
		sample,
		"preamble 1/1/23, 09:00 - A: x 2/1/23, 10:00 - B: y",
		"3/4/22, 7:00 - joined\n",
	}
	for _, in := range inputs {
		recs, err := parse.Parse(in)
		require.NoError(t, err)
		assert.Len(t, recs, len(header.FindAllString(in, -1)))
	}
}

func TestParse_SenderNeverEmpty(t *testing.T) {
	recs, err := parse.Parse("1/1/23, 09:00 - : odd\n1/1/23, 09:01 - plain\n")
	require.NoError(t, err)
	for _, r := range recs {
		assert.NotEmpty(t, r.Sender)
	}
	assert.Equal(t, parse.GroupNotification, recs[1].Sender)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	recs, err := parse.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, recs, 5)

	_, err = parse.ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestParse_NormalisesSenderOnly(t *testing.T) {
	composed := "Jos\u00e9"
	decomposed := "Jose\u0301"
	text := "1/1/23, 09:00 - " + composed + ": caf\u00e9\n" +
		"1/1/23, 09:01 - " + decomposed + ": cafe\u0301\n"

	recs, err := parse.Parse(text)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, composed, recs[0].Sender)
	assert.Equal(t, composed, recs[1].Sender)
	assert.Equal(t, "caf\u00e9\n", recs[0].Body)
	assert.Equal(t, "cafe\u0301\n", recs[1].Body)
	assert.Equal(t, []string{parse.Overall, composed}, parse.UserList(recs))
}
