// Package analytics maintains the local SQLite event log. Logging is
// advisory: callers must never fail a foreground operation because the event
// log is unavailable.
package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tiedye/internal/config"
	"tiedye/internal/log"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY,
	timestamp TEXT NOT NULL,
	event_type TEXT NOT NULL,
	details TEXT
)`

// Event is one recorded entry.
type Event struct {
	ID        int64
	Timestamp time.Time
	Type      string
	Details   map[string]interface{}
}

// Store is an open handle on the event database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default database location (~/.tiedye/analytics.db).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tiedye", "analytics.db"), nil
}

// Open opens (and if needed initializes) the event database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create analytics directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize analytics database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// LogEvent appends one event with the current UTC timestamp.
func (s *Store) LogEvent(eventType string, details map[string]interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode event details: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO events (timestamp, event_type, details) VALUES (?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), eventType, string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}

// Events returns the most recent events, newest first.
func (s *Store) Events(limit int) ([]Event, error) {
	rows, err := s.db.Query(
		"SELECT id, timestamp, event_type, details FROM events ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var ts, details string
		if err := rows.Scan(&e.ID, &ts, &e.Type, &details); err != nil {
			return nil, err
		}
		if e.Timestamp, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, err
		}
		if details != "" {
			if err := json.Unmarshal([]byte(details), &e.Details); err != nil {
				return nil, err
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Record is the fire-and-forget entry point used by the commands. Failures
// are logged at warn level and swallowed.
func Record(section config.AnalyticsSection, eventType string, details map[string]interface{}) {
	if section.Enabled != nil && !*section.Enabled {
		return
	}

	path := config.ExpandUser(section.Database)
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			log.Warn("analytics disabled: %v", err)
			return
		}
	}

	store, err := Open(path)
	if err != nil {
		log.Warn("analytics unavailable: %v", err)
		return
	}
	defer store.Close()

	if err := store.LogEvent(eventType, details); err != nil {
		log.Warn("failed to log %s event: %v", eventType, err)
	}
}
