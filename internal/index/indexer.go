package index

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

const tsLayout = "2006-01-02T15:04:05Z"
const dateLayout = "2006-01-02"

type Stats struct {
	Imported int
	Skipped  int
	Pruned   int
	Messages int
}

func (s Stats) String() string {
	return fmt.Sprintf("imported=%d skipped=%d pruned=%d messages=%d",
		s.Imported, s.Skipped, s.Pruned, s.Messages)
}

// ImportFile parses a transcript file and stores it, replacing an earlier
// import of the same path. Unchanged files (same mtime and size) are skipped.
// The transcript id is returned in both cases.
func ImportFile(db *DB, filePath string) (string, Stats, error) {
	var stats Stats

	info, err := os.Stat(filePath)
	if err != nil {
		return "", stats, err
	}

	prev, err := db.GetTranscriptByPath(filePath)
	if err != nil {
		return "", stats, err
	}
	if prev != nil && prev.Mtime == info.ModTime().Unix() && prev.Size == info.Size() {
		stats.Skipped++
		return prev.ID, stats, nil
	}

	records, err := parse.ParseFile(filePath)
	if err != nil {
		return "", stats, err
	}

	if prev != nil {
		if err := db.DeleteTranscript(prev.ID); err != nil {
			return "", stats, err
		}
	}

	t := TranscriptRow{
		ID:           uuid.NewString(),
		FilePath:     filePath,
		ImportedAt:   time.Now().UTC().Format(tsLayout),
		MessageCount: len(records),
		Mtime:        info.ModTime().Unix(),
		Size:         info.Size(),
	}
	if err := insertTranscript(db, t, records); err != nil {
		return "", stats, fmt.Errorf("import %s: %w", filePath, err)
	}
	stats.Imported++
	stats.Messages = len(records)
	return t.ID, stats, nil
}

// ImportRecords stores already parsed records under a new id. filePath only
// labels the transcript and need not exist.
func ImportRecords(db *DB, filePath string, records []parse.Record) (string, error) {
	t := TranscriptRow{
		ID:           uuid.NewString(),
		FilePath:     filePath,
		ImportedAt:   time.Now().UTC().Format(tsLayout),
		MessageCount: len(records),
	}
	if err := insertTranscript(db, t, records); err != nil {
		return "", err
	}
	return t.ID, nil
}

func insertTranscript(db *DB, t TranscriptRow, records []parse.Record) error {
	if len(records) > 0 {
		t.FirstAt = records[0].Timestamp.Format(tsLayout)
		t.LastAt = records[len(records)-1].Timestamp.Format(tsLayout)
	}

	tx, err := db.Raw().Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(
		`INSERT INTO transcripts (id, file_path, imported_at, first_at, last_at, message_count, mtime, size)
		 VALUES (:id, :file_path, :imported_at, :first_at, :last_at, :message_count, :mtime, :size)`,
		t,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (transcript_id, seq, ts, sender, body, line_number,
		     only_date, year, month_num, month, day, day_name, hour, minute, period, week_start)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.Exec(
			t.ID,
			i,
			r.Timestamp.Format(tsLayout),
			r.Sender,
			r.Body,
			r.LineNumber,
			r.Date.Format(dateLayout),
			r.Year,
			r.MonthNum,
			r.Month,
			r.Day,
			r.DayName,
			r.Hour,
			r.Minute,
			r.Period,
			r.WeekStart.Format(dateLayout),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Prune removes transcripts whose source file no longer exists.
func Prune(db *DB) (int, error) {
	all, err := db.AllTranscripts()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, t := range all {
		if _, err := os.Stat(t.FilePath); !os.IsNotExist(err) {
			continue
		}
		if err := db.DeleteTranscript(t.ID); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}
