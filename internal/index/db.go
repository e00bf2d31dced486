package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS transcripts (
    id            TEXT PRIMARY KEY,
    file_path     TEXT NOT NULL UNIQUE,
    imported_at   TEXT NOT NULL DEFAULT '',
    first_at      TEXT NOT NULL DEFAULT '',
    last_at       TEXT NOT NULL DEFAULT '',
    message_count INTEGER NOT NULL DEFAULT 0,
    mtime         INTEGER NOT NULL DEFAULT 0,
    size          INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
    transcript_id TEXT NOT NULL,
    seq           INTEGER NOT NULL,
    ts            TEXT NOT NULL,
    sender        TEXT NOT NULL,
    body          TEXT NOT NULL,
    line_number   INTEGER NOT NULL DEFAULT 0,
    only_date     TEXT NOT NULL,
    year          INTEGER NOT NULL,
    month_num     INTEGER NOT NULL,
    month         TEXT NOT NULL,
    day           INTEGER NOT NULL,
    day_name      TEXT NOT NULL,
    hour          INTEGER NOT NULL,
    minute        INTEGER NOT NULL,
    period        TEXT NOT NULL,
    week_start    TEXT NOT NULL,
    PRIMARY KEY (transcript_id, seq)
);

CREATE INDEX IF NOT EXISTS messages_sender ON messages(transcript_id, sender);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    body,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, body) VALUES (new.rowid, new.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, body) VALUES('delete', old.rowid, old.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, body) VALUES('delete', old.rowid, old.body);
    INSERT INTO messages_fts(rowid, body) VALUES (new.rowid, new.body);
END;

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

// schemaVersion should be bumped whenever parsing logic changes so existing
// exports are re-imported.
const schemaVersion = "1"

type DB struct {
	db *sqlx.DB
}

func OpenDB(dbPath string) (*DB, error) {
	if dbPath != MemoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if dbPath == MemoryPath {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	d := &DB{db: db}
	if err := d.migrateSchemaVersion(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

func (d *DB) migrateSchemaVersion() error {
	var ver string
	err := d.db.Get(&ver, "SELECT value FROM meta WHERE key = 'schema_version'")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if ver == schemaVersion {
		return nil
	}
	// force re-import by resetting all transcript mtime/size to 0
	if _, err := d.db.Exec("UPDATE transcripts SET mtime = 0, size = 0"); err != nil {
		return err
	}
	_, err = d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	return err
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sqlx.DB {
	return d.db
}

type TranscriptRow struct {
	ID           string `db:"id"`
	FilePath     string `db:"file_path"`
	ImportedAt   string `db:"imported_at"`
	FirstAt      string `db:"first_at"`
	LastAt       string `db:"last_at"`
	MessageCount int    `db:"message_count"`
	Mtime        int64  `db:"mtime"`
	Size         int64  `db:"size"`
}

type MessageRow struct {
	TranscriptID string `db:"transcript_id"`
	Seq          int    `db:"seq"`
	Ts           string `db:"ts"`
	Sender       string `db:"sender"`
	Body         string `db:"body"`
	LineNumber   int    `db:"line_number"`
}

const messageColumns = "transcript_id, seq, ts, sender, body, line_number"

// GetTranscriptByPath returns nil, nil when the file has not been imported.
func (d *DB) GetTranscriptByPath(filePath string) (*TranscriptRow, error) {
	var t TranscriptRow
	err := d.db.Get(&t, "SELECT * FROM transcripts WHERE file_path = ?", filePath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTranscript returns nil, nil for an unknown id.
func (d *DB) GetTranscript(id string) (*TranscriptRow, error) {
	var t TranscriptRow
	err := d.db.Get(&t, "SELECT * FROM transcripts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (d *DB) AllTranscripts() ([]TranscriptRow, error) {
	var out []TranscriptRow
	err := d.db.Select(&out, "SELECT * FROM transcripts ORDER BY last_at DESC")
	return out, err
}

func (d *DB) DeleteTranscript(id string) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE transcript_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM transcripts WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) TranscriptCount() (int, error) {
	var n int
	err := d.db.Get(&n, "SELECT COUNT(*) FROM transcripts")
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.Get(&n, "SELECT COUNT(*) FROM messages")
	return n, err
}

func (d *DB) FTSCount() (int, error) {
	var n int
	err := d.db.Get(&n, "SELECT COUNT(*) FROM messages_fts")
	return n, err
}

func (d *DB) GetMessages(transcriptID string) ([]MessageRow, error) {
	var out []MessageRow
	err := d.db.Select(&out,
		"SELECT "+messageColumns+" FROM messages WHERE transcript_id = ? ORDER BY seq",
		transcriptID,
	)
	return out, err
}

// SenderCounts returns message counts per sender, busiest first.
func (d *DB) SenderCounts(transcriptID string) (map[string]int, error) {
	rows, err := d.db.Queryx(
		"SELECT sender, COUNT(*) FROM messages WHERE transcript_id = ? GROUP BY sender",
		transcriptID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var sender string
		var n int
		if err := rows.Scan(&sender, &n); err != nil {
			return nil, err
		}
		counts[sender] = n
	}
	return counts, rows.Err()
}

// GetMessagesWindow returns the messages within context positions of hitSeq.
// hitIdx is the hit's index in the returned slice (-1 if absent), startPos the
// number of messages before the window and totalCount the transcript size.
// A negative hitSeq returns the whole transcript.
func (d *DB) GetMessagesWindow(transcriptID string, hitSeq, context int) (msgs []MessageRow, hitIdx int, startPos int, totalCount int, err error) {
	err = d.db.Get(&totalCount, "SELECT COUNT(*) FROM messages WHERE transcript_id = ?", transcriptID)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	// seq is dense and 0-based, so it doubles as the position
	hitPos := -1
	if hitSeq >= 0 && hitSeq < totalCount {
		hitPos = hitSeq
	}

	startPos = 0
	limit := totalCount
	if hitPos >= 0 {
		startPos = max(hitPos-context, 0)
		endPos := min(hitPos+context+1, totalCount)
		limit = endPos - startPos
	}

	err = d.db.Select(&msgs,
		"SELECT "+messageColumns+" FROM messages WHERE transcript_id = ? ORDER BY seq LIMIT ? OFFSET ?",
		transcriptID, limit, startPos,
	)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	hitIdx = -1
	for i, m := range msgs {
		if m.Seq == hitSeq {
			hitIdx = i
		}
	}
	return msgs, hitIdx, startPos, totalCount, nil
}

// SeqForLine returns the seq of the message whose header is at or before line.
func (d *DB) SeqForLine(transcriptID string, line int) (int, error) {
	var seq int
	err := d.db.Get(&seq,
		"SELECT seq FROM messages WHERE transcript_id = ? AND line_number <= ? ORDER BY seq DESC LIMIT 1",
		transcriptID, line,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, nil
	}
	return seq, err
}
