// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package series

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/meeting-notes-engine/pkg/types"
)

const registryDBFile = ".meeting_series_registry.db"

// registry persists the series map in SQLite under the notes directory.
// The whole registry is loaded at open and rewritten on every save, so the
// in-memory map is always the source of truth while the process runs.
type registry struct {
	db     *sql.DB
	series map[string]*types.MeetingSeries
	order  []string
}

func openRegistry(notesDir string) (*registry, error) {
	if err := os.MkdirAll(notesDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating notes directory: %w", err)
	}

	dbPath := filepath.Join(notesDir, registryDBFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening series registry: %w", err)
	}

	r := &registry{
		db:     db,
		series: make(map[string]*types.MeetingSeries),
	}

	if err := r.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating registry schema: %w", err)
	}
	if err := r.load(); err != nil {
		db.Close()
		return nil, fmt.Errorf("loading series registry: %w", err)
	}

	return r, nil
}

func (r *registry) close() error {
	return r.db.Close()
}

func (r *registry) createSchema() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS series (
		series_id TEXT PRIMARY KEY,
		normalized_title TEXT NOT NULL,
		organizer TEXT NOT NULL,
		time_pattern TEXT NOT NULL,
		attendee_pattern TEXT NOT NULL,
		first_seen TEXT NOT NULL,
		last_seen TEXT NOT NULL,
		meeting_count INTEGER NOT NULL,
		meetings TEXT NOT NULL,
		confidence REAL NOT NULL,
		position INTEGER NOT NULL
	)`)
	return err
}

func (r *registry) load() error {
	rows, err := r.db.Query(
		`SELECT series_id, normalized_title, organizer, time_pattern,
		        attendee_pattern, first_seen, last_seen, meeting_count,
		        meetings, confidence
		 FROM series ORDER BY position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var s types.MeetingSeries
		var attendeesJSON, meetingsJSON string
		if err := rows.Scan(
			&s.SeriesID, &s.NormalizedTitle, &s.Organizer, &s.TimePattern,
			&attendeesJSON, &s.FirstSeen, &s.LastSeen, &s.MeetingCount,
			&meetingsJSON, &s.Confidence,
		); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(attendeesJSON), &s.AttendeePattern); err != nil {
			return fmt.Errorf("decoding attendee pattern for %s: %w", s.SeriesID, err)
		}
		if err := json.Unmarshal([]byte(meetingsJSON), &s.Meetings); err != nil {
			return fmt.Errorf("decoding meetings for %s: %w", s.SeriesID, err)
		}

		r.series[s.SeriesID] = &s
		r.order = append(r.order, s.SeriesID)
	}
	return rows.Err()
}

// save rewrites every series row in one transaction.
func (r *registry) save() error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning registry transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM series`); err != nil {
		return fmt.Errorf("clearing registry: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO series (series_id, normalized_title, organizer, time_pattern,
		                     attendee_pattern, first_seen, last_seen, meeting_count,
		                     meetings, confidence, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing registry insert: %w", err)
	}
	defer stmt.Close()

	for position, id := range r.order {
		s := r.series[id]
		attendeesJSON, _ := json.Marshal(s.AttendeePattern)
		meetingsJSON, _ := json.Marshal(s.Meetings)
		if _, err := stmt.Exec(
			s.SeriesID, s.NormalizedTitle, s.Organizer, s.TimePattern,
			string(attendeesJSON), s.FirstSeen, s.LastSeen, s.MeetingCount,
			string(meetingsJSON), s.Confidence, position,
		); err != nil {
			return fmt.Errorf("writing series %s: %w", s.SeriesID, err)
		}
	}

	return tx.Commit()
}

// put registers a new series at the end of the iteration order.
func (r *registry) put(s *types.MeetingSeries) {
	if _, exists := r.series[s.SeriesID]; !exists {
		r.order = append(r.order, s.SeriesID)
	}
	r.series[s.SeriesID] = s
}
