package search

import (
	"testing"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transcript = `1/1/23, 09:00 - Alice: dinner at the harbour tonight?
1/1/23, 09:05 - Bob: harbour sounds good
1/1/23, 09:06 - Carol: 我们明天见
2/1/23, 10:00 - Bob: what about lunch
`

func setup(t *testing.T) (*index.DB, string) {
	t.Helper()
	db, err := index.OpenDB(index.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	recs, err := parse.Parse(transcript)
	require.NoError(t, err)
	id, err := index.ImportRecords(db, "chat.txt", recs)
	require.NoError(t, err)
	return db, id
}

func TestSearch_FTS(t *testing.T) {
	db, id := setup(t)

	results, err := Search(db, Options{Query: "harbour", TranscriptID: id})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Contains(t, r.Snippet, ">>>harbour<<<")
	}

	bob, err := Search(db, Options{Query: "harbour", Sender: "Bob"})
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.Equal(t, 1, bob[0].Seq)
	assert.Equal(t, 2, bob[0].LineNumber)

	later, err := Search(db, Options{Query: "lunch OR harbour", Since: "2023-01-02"})
	require.NoError(t, err)
	require.Len(t, later, 1)
	assert.Equal(t, 3, later[0].Seq)
}

func TestSearch_CJK(t *testing.T) {
	db, _ := setup(t)

	results, err := Search(db, Options{Query: "明天"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Carol", results[0].Sender)
	assert.Contains(t, results[0].Snippet, ">>>明天<<<")
}

func TestSearch_EmptyQuery(t *testing.T) {
	db, _ := setup(t)
	results, err := Search(db, Options{Query: "  "})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMakeSnippet(t *testing.T) {
	assert.Equal(t, "...bc >>>Hello<<< wo...", makeSnippet("abc Hello world", "hello", 3))
	assert.Equal(t, "short", makeSnippet("short", "zzz", 10))
	assert.Equal(t, "abcd...", makeSnippet("abcdefgh", "zzz", 2))
}
