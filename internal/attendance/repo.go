package attendance

import (
	"context"
	"database/sql"
)

// Repository persists attendance records in Postgres. All statements are
// parameterized; the pooled *sql.DB hands each call its own connection.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes one record and returns it with the server-assigned id.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (student_mac_address, classroom_id, entry_timestamp)
		VALUES ($1, $2, $3)
		RETURNING id
	`, rec.StudentMACAddress, rec.ClassroomID, rec.EntryTimestamp)
	if err := row.Scan(&rec.ID); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Recent returns up to limit records, newest entry first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, student_mac_address, classroom_id, entry_timestamp
		FROM attendance
		ORDER BY entry_timestamp DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.StudentMACAddress, &rec.ClassroomID, &rec.EntryTimestamp); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// Ping probes store connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
