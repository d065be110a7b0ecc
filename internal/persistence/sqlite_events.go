package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/petrijr/featuretour/pkg/api"
)

// SQLiteEventStore stores tour run events in SQLite.
type SQLiteEventStore struct {
	db *sql.DB
}

// Ensure SQLiteEventStore implements the interfaces.
var _ EventStore = (*SQLiteEventStore)(nil)

func NewSQLiteEventStore(db *sql.DB) (*SQLiteEventStore, error) {
	s := &SQLiteEventStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteEventStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS tour_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			at INTEGER NOT NULL,
			type TEXT NOT NULL,
			tour_name TEXT NOT NULL DEFAULT '',
			step INTEGER NOT NULL DEFAULT -1,
			element_id TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_tour_events_run_id ON tour_events(run_id, id);
	`)
	return err
}

func (s *SQLiteEventStore) AppendEvent(ctx context.Context, ev api.TourEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tour_events (run_id, at, type, tour_name, step, element_id, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.RunID,
		at.UnixNano(),
		string(ev.Type),
		ev.TourName,
		ev.Step,
		ev.ElementID,
		ev.Detail,
	)
	return err
}

func (s *SQLiteEventStore) ListEvents(ctx context.Context, runID string) ([]api.TourEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, at, type, tour_name, step, element_id, detail
		FROM tour_events
		WHERE run_id = ?
		ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.TourEvent
	for rows.Next() {
		var (
			id     string
			atN    int64
			typ    string
			tour   string
			step   int
			elemID string
			detail string
		)
		if err := rows.Scan(&id, &atN, &typ, &tour, &step, &elemID, &detail); err != nil {
			return nil, err
		}
		out = append(out, api.TourEvent{
			RunID:     id,
			At:        time.Unix(0, atN),
			Type:      api.EventType(typ),
			TourName:  tour,
			Step:      step,
			ElementID: elemID,
			Detail:    detail,
		})
	}
	return out, rows.Err()
}
