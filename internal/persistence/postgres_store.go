package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/petrijr/featuretour/pkg/api"
)

// PostgresTourStore is a TourStore backed by PostgreSQL.
//
// It expects an *sql.DB that uses a PostgreSQL driver (for example,
// "github.com/jackc/pgx/v5/stdlib").
//
// The caller is responsible for:
//   - importing the driver for its side effects, e.g.:
//     _ "github.com/jackc/pgx/v5/stdlib"
//   - providing a DSN via sql.Open.
type PostgresTourStore struct {
	db *sql.DB
}

// Ensure PostgresTourStore implements TourStore.
var _ TourStore = (*PostgresTourStore)(nil)

// NewPostgresTourStore initializes the required schema in the given
// database and returns a new PostgresTourStore.
func NewPostgresTourStore(db *sql.DB) (*PostgresTourStore, error) {
	s := &PostgresTourStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresTourStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS tours (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			document JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

func (s *PostgresTourStore) SaveTour(ctx context.Context, doc api.TourDocument) error {
	if err := validateForSave(doc); err != nil {
		return err
	}
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tours (id, name, document, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			document = EXCLUDED.document,
			updated_at = now()
	`,
		doc.TourID,
		doc.TourName,
		string(data),
	)
	return err
}

func (s *PostgresTourStore) GetTour(ctx context.Context, tourID string) (api.TourDocument, error) {
	row := s.db.QueryRowContext(ctx, `SELECT document::text FROM tours WHERE id = $1`, tourID)

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return api.TourDocument{}, ErrTourNotFound
		}
		return api.TourDocument{}, err
	}
	return DecodeDocument([]byte(data))
}

func (s *PostgresTourStore) ListTours(ctx context.Context) ([]api.TourDocument, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT document::text FROM tours ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (s *PostgresTourStore) DeleteTour(ctx context.Context, tourID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tours WHERE id = $1`, tourID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
