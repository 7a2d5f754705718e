package bugs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new bug report.
func (r *PGRepo) Create(ctx context.Context, b Bug) error {
	const query = `
INSERT INTO bugs (id, reporter_id, element_selector, element_text, description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var elementText any
	if b.ElementText != "" {
		elementText = b.ElementText
	}
	_, err := r.DB.ExecContext(ctx, query,
		b.ID, b.ReporterID, b.ElementSelector, elementText, b.Description, b.Status,
		b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// List returns all bug reports, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Bug, error) {
	const query = `
SELECT id, reporter_id, element_selector, element_text, description, status, created_at, updated_at
FROM bugs
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Bug, 0)
	for rows.Next() {
		var b Bug
		var elementText sql.NullString
		if err := rows.Scan(&b.ID, &b.ReporterID, &b.ElementSelector, &elementText, &b.Description, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.ElementText = elementText.String
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID fetches a bug by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Bug, error) {
	const query = `
SELECT id, reporter_id, element_selector, element_text, description, status, created_at, updated_at
FROM bugs
WHERE id = $1
LIMIT 1`

	var b Bug
	var elementText sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.ReporterID, &b.ElementSelector, &elementText, &b.Description, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Bug{}, ErrNotFound
		}
		return Bug{}, err
	}
	b.ElementText = elementText.String
	return b, nil
}

// Update rewrites a bug's status.
func (r *PGRepo) Update(ctx context.Context, b Bug) error {
	const query = `
UPDATE bugs
SET status = $2, updated_at = $3
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, b.ID, b.Status, b.UpdatedAt)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
