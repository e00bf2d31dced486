package parse

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// headerRe matches the "D/M/YY, H:MM - " prefix that starts every entry. Exports
// made on some phones use narrow no-break spaces, hence \p{Zs}.
var headerRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2}),[\s\p{Zs}](\d{1,2}):(\d{2})[\s\p{Zs}]-[\s\p{Zs}]`)

// senderRe splits "Sender: body" at the earliest colon followed by whitespace.
var senderRe = regexp.MustCompile(`^([\s\S]+?):\s`)

const headerLayout = "2/1/2006, 15:04"

// ErrFormat is matched by every *FormatError.
var ErrFormat = errors.New("malformed date header")

// FormatError is returned when a header matches the entry delimiter but its
// date and time do not form a valid timestamp. No records are returned with it.
type FormatError struct {
	Header string
	Line   int
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s %q: %v", e.Line, ErrFormat, strings.TrimSpace(e.Header), e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Parse splits an exported transcript into records in transcript order. Text
// before the first header is discarded. Input without any header yields an
// empty slice and no error. Bodies are returned exactly as written; sender
// names are NFC-normalised so composed and decomposed spellings of a name are
// one user.
func Parse(text string) ([]Record, error) {
	locs := headerRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []Record{}, nil
	}

	records := make([]Record, 0, len(locs))
	line := 1
	prev := 0
	for i, loc := range locs {
		line += strings.Count(text[prev:loc[0]], "\n")
		prev = loc[0]

		ts, err := parseHeader(text, loc)
		if err != nil {
			return nil, &FormatError{Header: text[loc[0]:loc[1]], Line: line, Err: err}
		}

		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sender, body := splitSender(text[loc[1]:end])

		r := Record{
			Timestamp:  ts,
			Sender:     sender,
			Body:       body,
			LineNumber: line,
		}
		derive(&r)
		records = append(records, r)
	}
	return records, nil
}

// ParseFile reads a UTF-8 transcript from disk and parses it.
func ParseFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// parseHeader builds the timestamp from the captured day, month, two-digit year,
// hour and minute. Years are always taken to be in the 2000s.
func parseHeader(text string, loc []int) (time.Time, error) {
	group := func(n int) string { return text[loc[2*n]:loc[2*n+1]] }
	s := fmt.Sprintf("%s/%s/20%s, %s:%s", group(1), group(2), group(3), group(4), group(5))
	return time.Parse(headerLayout, s)
}

func splitSender(segment string) (string, string) {
	m := senderRe.FindStringSubmatchIndex(segment)
	if m == nil {
		return GroupNotification, segment
	}
	return norm.NFC.String(segment[m[2]:m[3]]), segment[m[1]:]
}

// HasHeader reports whether text contains at least one entry header.
func HasHeader(text string) bool {
	return headerRe.MatchString(text)
}
