package trace

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/tebeka/atexit"
)

// SQLiteTraceWriter stores frame records in a SQLite database.
type SQLiteTraceWriter struct {
	*sql.DB
	statement *sql.Stmt

	path      string
	records   []Record
	batchSize int
}

// NewSQLiteTraceWriter creates a writer for path, without the .sqlite3
// extension.
func NewSQLiteTraceWriter(path string) *SQLiteTraceWriter {
	return &SQLiteTraceWriter{
		path:      path,
		batchSize: 10000,
	}
}

// Path returns the database file, including the extension.
func (t *SQLiteTraceWriter) Path() string { return t.path + ".sqlite3" }

// Init creates the database and the frames table.
func (t *SQLiteTraceWriter) Init() error {
	if t.path == "" {
		t.path = defaultPath()
	}

	db, err := sql.Open("sqlite3", t.Path())
	if err != nil {
		return fmt.Errorf("opening trace database: %w", err)
	}
	t.DB = db

	_, err = t.Exec(`
		CREATE TABLE IF NOT EXISTS frames (
			run_id        TEXT    NOT NULL,
			frame         INTEGER NOT NULL,
			population    INTEGER NOT NULL,
			randomized    INTEGER NOT NULL,
			complemented  INTEGER NOT NULL,
			stalled       INTEGER NOT NULL,
			cause         TEXT    NOT NULL,
			stall_count   INTEGER NOT NULL,
			ignore_frames INTEGER NOT NULL,
			reseeded      INTEGER NOT NULL,
			grid          TEXT    NOT NULL,
			PRIMARY KEY (run_id, frame)
		)`)
	if err != nil {
		return fmt.Errorf("creating frames table: %w", err)
	}

	t.statement, err = t.Prepare(`
		INSERT INTO frames VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}

	atexit.Register(func() {
		if err := t.Close(); err != nil {
			log.Printf("closing trace %s: %v", t.Path(), err)
		}
	})
	return nil
}

// Write buffers a record and flushes once the batch is full.
func (t *SQLiteTraceWriter) Write(r Record) {
	t.records = append(t.records, r)
	if len(t.records) >= t.batchSize {
		t.Flush()
	}
}

// Flush inserts the buffered records in one transaction.
func (t *SQLiteTraceWriter) Flush() {
	if t.DB == nil || len(t.records) == 0 {
		return
	}

	tx, err := t.Begin()
	if err != nil {
		log.Panicf("starting trace transaction: %v", err)
	}
	stmt := tx.Stmt(t.statement)
	for _, r := range t.records {
		_, err = stmt.Exec(
			r.RunID, r.Frame, r.Population, r.Randomized, r.Complemented,
			r.Stalled, r.Cause, r.StallCount, r.IgnoreFrames, r.Reseeded, r.Grid,
		)
		if err != nil {
			_ = tx.Rollback()
			log.Panicf("inserting trace record: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		log.Panicf("committing trace records: %v", err)
	}
	t.records = nil
}

// Close flushes and closes the database. Closing twice is a no-op.
func (t *SQLiteTraceWriter) Close() error {
	if t.DB == nil {
		return nil
	}
	t.Flush()
	var stmtErr error
	if t.statement != nil {
		stmtErr = t.statement.Close()
		t.statement = nil
	}
	dbErr := t.DB.Close()
	t.DB = nil
	return errors.Join(stmtErr, dbErr)
}
