package contracts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Versions are stored inline as a
// jsonb column, matching the persisted record shape.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new contract.
func (r *PGRepo) Create(ctx context.Context, c Contract) error {
	const query = `
INSERT INTO contracts (id, event_id, title, status, versions, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	versions, err := marshalVersions(c.Versions)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		c.ID,
		c.EventID,
		c.Title,
		c.Status,
		versions,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

// GetByID fetches a contract by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Contract, error) {
	const query = `
SELECT id, event_id, title, status, versions, created_at, updated_at
FROM contracts
WHERE id = $1`

	var c Contract
	var versions []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.EventID,
		&c.Title,
		&c.Status,
		&versions,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Contract{}, ErrNotFound
		}
		return Contract{}, err
	}
	if c.Versions, err = unmarshalVersions(versions); err != nil {
		return Contract{}, err
	}
	return c, nil
}

// ListByEvent lists contracts for an event, oldest first.
func (r *PGRepo) ListByEvent(ctx context.Context, eventID string) ([]Contract, error) {
	const query = `
SELECT id, event_id, title, status, versions, created_at, updated_at
FROM contracts
WHERE event_id = $1
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Contract, 0)
	for rows.Next() {
		var c Contract
		var versions []byte
		if err := rows.Scan(&c.ID, &c.EventID, &c.Title, &c.Status, &versions, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if c.Versions, err = unmarshalVersions(versions); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites a contract's mutable columns.
func (r *PGRepo) Update(ctx context.Context, c Contract) error {
	const query = `
UPDATE contracts
SET title = $2, status = $3, versions = $4, updated_at = $5
WHERE id = $1`

	versions, err := marshalVersions(c.Versions)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, c.ID, c.Title, c.Status, versions, c.UpdatedAt)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalVersions(versions []Version) ([]byte, error) {
	if versions == nil {
		versions = []Version{}
	}
	data, err := json.Marshal(versions)
	if err != nil {
		return nil, fmt.Errorf("marshal versions: %w", err)
	}
	return data, nil
}

func unmarshalVersions(data []byte) ([]Version, error) {
	if len(data) == 0 {
		return []Version{}, nil
	}
	var versions []Version
	if err := json.Unmarshal(data, &versions); err != nil {
		return nil, fmt.Errorf("unmarshal versions: %w", err)
	}
	return versions, nil
}
