package stopwords_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/chatstat/internal/stopwords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	sw, err := stopwords.Read(strings.NewReader("the\nIs  a\n\nhai\n"))
	require.NoError(t, err)
	assert.Len(t, sw, 4)
	for _, w := range []string{"the", "is", "a", "hai"} {
		assert.True(t, sw.Contains(w), w)
	}
	// membership is exact, not substring
	assert.False(t, sw.Contains("th"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop_hinglish.txt")
	require.NoError(t, os.WriteFile(path, []byte("hai\nka\nki\n"), 0o644))

	sw, err := stopwords.Load(path)
	require.NoError(t, err)
	assert.True(t, sw.Contains("ka"))

	empty, err := stopwords.Load("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = stopwords.Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
