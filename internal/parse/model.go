package parse

import "time"

const (
	// GroupNotification is the sender recorded for entries without a "Sender: " prefix
	// (joins, removals, subject changes).
	GroupNotification = "group_notification"

	// MediaOmitted is the body WhatsApp writes in place of an attachment when a chat is
	// exported without media.
	MediaOmitted = "<Media omitted>\n"

	// Overall selects every record rather than a single sender.
	Overall = "Overall"
)

type Record struct {
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Sender     string    `json:"sender" yaml:"sender"`
	Body       string    `json:"body" yaml:"body"`
	LineNumber int       `json:"line_number" yaml:"line_number"` // 1-based line of the header in the raw text

	Date      time.Time `json:"date" yaml:"date"` // Timestamp truncated to midnight
	Year      int       `json:"year" yaml:"year"`
	MonthNum  int       `json:"month_num" yaml:"month_num"`
	Month     string    `json:"month" yaml:"month"`
	Day       int       `json:"day" yaml:"day"`
	DayName   string    `json:"day_name" yaml:"day_name"`
	Hour      int       `json:"hour" yaml:"hour"`
	Minute    int       `json:"minute" yaml:"minute"`
	Period    string    `json:"period" yaml:"period"`         // hour bucket, see HourBucket
	WeekStart time.Time `json:"week_start" yaml:"week_start"` // Monday of the record's week
}

// IsGroupNotification reports whether the record is a system event.
func (r Record) IsGroupNotification() bool {
	return r.Sender == GroupNotification
}

// IsMedia reports whether the body is the media placeholder.
func (r Record) IsMedia() bool {
	return r.Body == MediaOmitted
}
