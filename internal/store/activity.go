package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ActivityEntry is one row of the local append-only activity log: what this
// client did, when, as whom. It is a local audit trail only; server state is
// never reconstructed from it.
type ActivityEntry struct {
	ID      int64             `json:"id"`
	At      time.Time         `json:"at"`
	ActorID string            `json:"actorId,omitempty"`
	Kind    string            `json:"kind"`
	Subject string            `json:"subject,omitempty"`
	Detail  map[string]string `json:"detail,omitempty"`
}

type ActivityLog struct {
	db *sql.DB
}

func activityPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "activity.sqlite"), nil
}

// OpenActivityLog opens (creating and migrating if needed) the local log.
func OpenActivityLog(ctx context.Context) (*ActivityLog, error) {
	path, err := activityPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database
	// is locked" flakiness when CLI and TUI run at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateActivity(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &ActivityLog{db: db}, nil
}

func migrateActivity(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		at TEXT NOT NULL,
		actor_id TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '{}'
	);`)
	return err
}

func (l *ActivityLog) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Append records one action. kind is dotted ("auth.login", "job.create",
// "application.decide"); subject is the entity id when there is one.
func (l *ActivityLog) Append(ctx context.Context, actorID, kind, subject string, detail map[string]string) error {
	if l == nil || l.db == nil {
		return nil
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil
	}
	d := "{}"
	if len(detail) > 0 {
		if b, err := json.Marshal(detail); err == nil {
			d = string(b)
		}
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO activity (at, actor_id, kind, subject, detail) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), strings.TrimSpace(actorID), kind, strings.TrimSpace(subject), d)
	return err
}

// Recent returns up to limit entries, newest first.
func (l *ActivityLog) Recent(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if l == nil || l.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, at, actor_id, kind, subject, detail FROM activity ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		var at, detail string
		if err := rows.Scan(&e.ID, &at, &e.ActorID, &e.Kind, &e.Subject, &detail); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.At = ts
		}
		if detail != "" && detail != "{}" {
			_ = json.Unmarshal([]byte(detail), &e.Detail)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
