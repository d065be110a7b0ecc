package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/petrijr/featuretour/pkg/api"
)

// SQLiteTourStore is a TourStore backed by SQLite.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing
// the driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type SQLiteTourStore struct {
	db *sql.DB
}

// Ensure SQLiteTourStore implements TourStore.
var _ TourStore = (*SQLiteTourStore)(nil)

// NewSQLiteTourStore initializes the required schema in the given
// database and returns a new SQLiteTourStore.
func NewSQLiteTourStore(db *sql.DB) (*SQLiteTourStore, error) {
	s := &SQLiteTourStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteTourStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS tours (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			document TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
	)
	return err
}

func (s *SQLiteTourStore) SaveTour(ctx context.Context, doc api.TourDocument) error {
	if err := validateForSave(doc); err != nil {
		return err
	}
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tours (id, name, document, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		doc.TourID,
		doc.TourName,
		string(data),
		time.Now().UnixNano(),
	)
	return err
}

func (s *SQLiteTourStore) GetTour(ctx context.Context, tourID string) (api.TourDocument, error) {
	row := s.db.QueryRowContext(ctx, `SELECT document FROM tours WHERE id = ?`, tourID)

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return api.TourDocument{}, ErrTourNotFound
		}
		return api.TourDocument{}, err
	}
	return DecodeDocument([]byte(data))
}

func (s *SQLiteTourStore) ListTours(ctx context.Context) ([]api.TourDocument, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT document FROM tours ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (s *SQLiteTourStore) DeleteTour(ctx context.Context, tourID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tours WHERE id = ?`, tourID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanDocuments(rows *sql.Rows) ([]api.TourDocument, error) {
	out := []api.TourDocument{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		doc, err := DecodeDocument([]byte(data))
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTourNotFound
	}
	return nil
}
