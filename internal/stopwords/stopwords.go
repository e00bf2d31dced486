// Package stopwords loads the word list left out of word statistics.
package stopwords

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Zuo-Peng/chatstat/internal/analytics"
)

// Read collects every whitespace-separated word from r. Both one word per line
// and space-separated lists work.
func Read(r io.Reader) (analytics.StopWords, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var words []string
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return analytics.NewStopWords(words...), nil
}

// Load reads a stop word file. An empty path yields an empty set.
func Load(path string) (analytics.StopWords, error) {
	if path == "" {
		return analytics.StopWords{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stop words: %w", err)
	}
	defer f.Close()

	sw, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read stop words %s: %w", path, err)
	}
	return sw, nil
}
