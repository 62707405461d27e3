package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/showgrid/showgrid/internal/model"
)

// ErrEventNotFound indicates that an event was not located in the DB.
var ErrEventNotFound = errors.New("event not found")

// ErrEventDateTaken indicates a second event on the same calendar date
// for one show; the table carries a unique (show_id, event_date) key.
var ErrEventDateTaken = errors.New("event date already taken for this show")

// EventRepo manages persistence for events.
type EventRepo struct{ db *sql.DB }

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// Create inserts a new event and populates the generated ID and
// timestamps.  The unique (show_id, event_date) constraint backs the
// wizard-side date-uniqueness validation.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (show_id, event_date) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.ShowID, e.Date)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEventDateTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	const sel = `SELECT id, show_id, DATE_FORMAT(event_date, '%Y-%m-%d'), created_at, updated_at FROM events WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, e.ID).Scan(&e.ID, &e.ShowID, &e.Date, &e.CreatedAt, &e.UpdatedAt)
}

// GetByID retrieves an event, returning ErrEventNotFound when no row
// matches.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT id, show_id, DATE_FORMAT(event_date, '%Y-%m-%d'), created_at, updated_at FROM events WHERE id = ?`
	var e model.Event
	err := r.db.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.ShowID, &e.Date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListByShow returns all events of one show ordered by date.
func (r *EventRepo) ListByShow(ctx context.Context, showID uint64) ([]model.Event, error) {
	const q = `SELECT id, show_id, DATE_FORMAT(event_date, '%Y-%m-%d'), created_at, updated_at
               FROM events WHERE show_id = ? ORDER BY event_date ASC`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.ShowID, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes an event after verifying ownership through its show.
// Events that still have showtimes cannot be removed: corrections are
// remove-then-recreate from the leaves inward.
func (r *EventRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var dbOwnerID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT s.owner_id FROM events e JOIN shows s ON s.id = e.show_id WHERE e.id = ?`, id,
	).Scan(&dbOwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	var stCount int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM showtimes WHERE event_id = ?`, id).Scan(&stCount); err != nil {
		return err
	}
	if stCount > 0 {
		return ErrConflict
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}
