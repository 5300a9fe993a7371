// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal persists an audit trail of session events (expansions,
// prunes, saves) to a SQLite database. The journal is best-effort: it is
// never the source of truth for the tree, and callers treat write
// failures as warnings rather than aborting the mutation they record.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Event kinds recorded by the session.
const (
	KindExpand = "expand"
	KindPrune  = "prune"
	KindSave   = "save"
)

// Journal manages the session journal database.
type Journal struct {
	db        *sql.DB
	sessionID int64
	seq       int
}

// Open opens or creates the journal database at path and creates the
// schema if it does not exist.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			root_label TEXT NOT NULL,
			max_depth INTEGER,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			label TEXT,
			detail TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginSession inserts a session row; subsequent events attach to it.
func (j *Journal) BeginSession(ctx context.Context, rootLabel string, maxDepth int) error {
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO sessions (root_label, max_depth, started_at) VALUES (?, ?, ?)`,
		rootLabel, maxDepth, now(),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading session id: %w", err)
	}
	j.sessionID = id
	return nil
}

// RecordExpand logs one expansion: the concept expanded and the child
// labels that were attached.
func (j *Journal) RecordExpand(ctx context.Context, concept string, children []string) error {
	detail, _ := json.Marshal(children)
	return j.record(ctx, KindExpand, concept, string(detail))
}

// RecordPrune logs one prune with the subtree size removed.
func (j *Journal) RecordPrune(ctx context.Context, label string, removed int) error {
	return j.record(ctx, KindPrune, label, fmt.Sprintf("%d", removed))
}

// RecordSave logs the files written by a save.
func (j *Journal) RecordSave(ctx context.Context, treePath, graphPath string) error {
	detail, _ := json.Marshal([]string{treePath, graphPath})
	return j.record(ctx, KindSave, "", string(detail))
}

func (j *Journal) record(ctx context.Context, kind, label, detail string) error {
	if j.sessionID == 0 {
		return fmt.Errorf("no active session")
	}
	j.seq++
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO events (session_id, seq, kind, label, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		j.sessionID, j.seq, kind, label, detail, now(),
	)
	if err != nil {
		return fmt.Errorf("inserting %s event: %w", kind, err)
	}
	return nil
}

// Event is one journal entry joined with its session's root label.
type Event struct {
	SessionID int64
	RootLabel string
	Seq       int
	Kind      string
	Label     string
	Detail    string
	CreatedAt time.Time
}

// History returns the most recent events, newest first. A limit of 0
// uses the default of 50.
func (j *Journal) History(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT e.session_id, s.root_label, e.seq, e.kind, e.label, e.detail, e.created_at
		 FROM events e JOIN sessions s ON s.id = e.session_id
		 ORDER BY e.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var created string
		if err := rows.Scan(&ev.SessionID, &ev.RootLabel, &ev.Seq, &ev.Kind, &ev.Label, &ev.Detail, &created); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		ev.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
