package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Sections are stored inline as a
// jsonb column.
type PGRepo struct {
	DB *sql.DB
}

const eventColumns = `id, user_id, name, client_name, type, status,
start_date, end_date, start_time, end_time,
venue_name, venue_address, timezone, sections, created_at, updated_at`

// Create inserts a new event.
func (r *PGRepo) Create(ctx context.Context, e Event) error {
	const query = `
INSERT INTO events (id, user_id, name, client_name, type, status,
  start_date, end_date, start_time, end_time,
  venue_name, venue_address, timezone, sections, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	sections, err := marshalSections(e.Sections)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		e.ID, e.UserID, e.Name, nullable(e.ClientName), e.Type, e.Status,
		nullable(e.StartDate), nullable(e.EndDate), nullable(e.StartTime), nullable(e.EndTime),
		nullable(e.VenueName), nullable(e.VenueAddress), e.Timezone, sections,
		e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetByID fetches an event by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1 LIMIT 1`, eventColumns)

	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	return e, nil
}

// ListByUser lists a user's events, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE user_id = $1 ORDER BY created_at DESC`, eventColumns)

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update rewrites an event's mutable columns.
func (r *PGRepo) Update(ctx context.Context, e Event) error {
	const query = `
UPDATE events
SET name = $2, client_name = $3, type = $4, status = $5,
    start_date = $6, end_date = $7, start_time = $8, end_time = $9,
    venue_name = $10, venue_address = $11, timezone = $12, sections = $13,
    updated_at = $14
WHERE id = $1`

	sections, err := marshalSections(e.Sections)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, nullable(e.ClientName), e.Type, e.Status,
		nullable(e.StartDate), nullable(e.EndDate), nullable(e.StartTime), nullable(e.EndTime),
		nullable(e.VenueName), nullable(e.VenueAddress), e.Timezone, sections,
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (Event, error) {
	var e Event
	var clientName, startDate, endDate, startTime, endTime, venueName, venueAddress sql.NullString
	var sections []byte
	err := row.Scan(
		&e.ID, &e.UserID, &e.Name, &clientName, &e.Type, &e.Status,
		&startDate, &endDate, &startTime, &endTime,
		&venueName, &venueAddress, &e.Timezone, &sections,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return Event{}, err
	}
	e.ClientName = clientName.String
	e.StartDate = startDate.String
	e.EndDate = endDate.String
	e.StartTime = startTime.String
	e.EndTime = endTime.String
	e.VenueName = venueName.String
	e.VenueAddress = venueAddress.String
	if e.Sections, err = unmarshalSections(sections); err != nil {
		return Event{}, err
	}
	return e, nil
}

func marshalSections(sections []Section) ([]byte, error) {
	if sections == nil {
		sections = []Section{}
	}
	data, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("marshal sections: %w", err)
	}
	return data, nil
}

func unmarshalSections(data []byte) ([]Section, error) {
	if len(data) == 0 {
		return []Section{}, nil
	}
	var sections []Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("unmarshal sections: %w", err)
	}
	return sections, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
