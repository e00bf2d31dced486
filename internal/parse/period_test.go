package parse_test

import (
	"testing"

	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourBucket(t *testing.T) {
	assert.Equal(t, "00-1", parse.HourBucket(0))
	assert.Equal(t, "1-2", parse.HourBucket(1))
	assert.Equal(t, "12-13", parse.HourBucket(12))
	assert.Equal(t, "22-23", parse.HourBucket(22))
	assert.Equal(t, "23-00", parse.HourBucket(23))
}

func TestHourBuckets_Distinct(t *testing.T) {
	buckets := parse.HourBuckets()
	require.Len(t, buckets, 24)
	seen := make(map[string]bool)
	for _, b := range buckets {
		assert.False(t, seen[b], "duplicate bucket %s", b)
		seen[b] = true
	}
}

func TestUserList(t *testing.T) {
	recs, err := parse.Parse(sample)
	require.NoError(t, err)
	assert.Equal(t, []string{parse.Overall, "Alice", "Bob"}, parse.UserList(recs))
	assert.Equal(t, []string{parse.Overall}, parse.UserList(nil))
}
