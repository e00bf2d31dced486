package parse

import (
	"sort"
	"strconv"
	"time"
)

// HourBucket returns the heatmap column label for an hour of the day.
//
// The first and last buckets are written "00-1" and "23-00" while every other
// bucket is "h-(h+1)" without zero padding. Existing exports and heatmap columns
// use exactly these labels, so they must not be normalised.
func HourBucket(hour int) string {
	switch hour {
	case 23:
		return "23-00"
	case 0:
		return "00-1"
	default:
		return strconv.Itoa(hour) + "-" + strconv.Itoa(hour+1)
	}
}

// HourBuckets returns the 24 bucket labels in hour order.
func HourBuckets() []string {
	out := make([]string, 24)
	for h := range out {
		out[h] = HourBucket(h)
	}
	return out
}

// UserList returns the distinct senders, group notifications excluded, sorted,
// with Overall prepended.
func UserList(records []Record) []string {
	seen := make(map[string]struct{})
	var users []string
	for _, r := range records {
		if r.IsGroupNotification() {
			continue
		}
		if _, ok := seen[r.Sender]; ok {
			continue
		}
		seen[r.Sender] = struct{}{}
		users = append(users, r.Sender)
	}
	sort.Strings(users)
	return append([]string{Overall}, users...)
}

// derive fills the calendar fields computed from Timestamp.
func derive(r *Record) {
	ts := r.Timestamp
	r.Date = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	r.Year = ts.Year()
	r.MonthNum = int(ts.Month())
	r.Month = ts.Month().String()
	r.Day = ts.Day()
	r.DayName = ts.Weekday().String()
	r.Hour = ts.Hour()
	r.Minute = ts.Minute()
	r.Period = HourBucket(ts.Hour())

	// weeks start on Monday
	offset := (int(ts.Weekday()) + 6) % 7
	r.WeekStart = r.Date.AddDate(0, 0, -offset)
}
