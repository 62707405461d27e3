package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/showgrid/showgrid/internal/model"
)

// ErrShowtimeNotFound indicates that a showtime was not located in the DB.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ShowtimeRepo manages persistence for showtimes.
type ShowtimeRepo struct{ db *sql.DB }

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

// Create inserts a new showtime and populates the generated ID and
// timestamps.  StartsAt/EndsAt must use the DB format
// "2006-01-02 15:04:05" (UTC).
func (r *ShowtimeRepo) Create(ctx context.Context, st *model.Showtime) error {
	const q = `INSERT INTO showtimes (event_id, starts_at, ends_at) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, st.EventID, st.StartsAt, st.EndsAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	st.ID = uint64(id)
	const sel = `SELECT id, event_id, starts_at, ends_at, created_at, updated_at FROM showtimes WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, st.ID).Scan(
		&st.ID, &st.EventID, &st.StartsAt, &st.EndsAt, &st.CreatedAt, &st.UpdatedAt,
	)
}

// GetByID retrieves a showtime, returning ErrShowtimeNotFound when no
// row matches.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	const q = `SELECT id, event_id, starts_at, ends_at, created_at, updated_at FROM showtimes WHERE id = ?`
	var st model.Showtime
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&st.ID, &st.EventID, &st.StartsAt, &st.EndsAt, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &st, nil
}

// ListByEvent returns all showtimes of one event ordered by start
// time.
func (r *ShowtimeRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Showtime, error) {
	const q = `SELECT id, event_id, starts_at, ends_at, created_at, updated_at
               FROM showtimes WHERE event_id = ? ORDER BY starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Showtime
	for rows.Next() {
		var st model.Showtime
		if err := rows.Scan(&st.ID, &st.EventID, &st.StartsAt, &st.EndsAt, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindOverlapping finds showtimes of the event whose interval overlaps
// [start, end).  A showtime overlaps when it starts before the
// proposed end and ends after the proposed start; shared boundaries do
// not conflict.  This re-checks at the DB what the wizard validated in
// memory, closing the gap between two concurrent saves.
func (r *ShowtimeRepo) FindOverlapping(ctx context.Context, eventID uint64, start, end string) ([]model.Showtime, error) {
	const q = `SELECT id, event_id, starts_at, ends_at, created_at, updated_at
               FROM showtimes
               WHERE event_id = ? AND NOT (ends_at <= ? OR starts_at >= ?)`
	rows, err := r.db.QueryContext(ctx, q, eventID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var overlaps []model.Showtime
	for rows.Next() {
		var st model.Showtime
		if err := rows.Scan(&st.ID, &st.EventID, &st.StartsAt, &st.EndsAt, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, err
		}
		overlaps = append(overlaps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return overlaps, nil
}

// Delete removes a showtime after verifying ownership through its
// event's show.  Showtimes that still have seat sections conflict.
func (r *ShowtimeRepo) Delete(ctx context.Context, id, ownerID uint64) error {
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
		`SELECT s.owner_id FROM showtimes st
         JOIN events e ON e.id = st.event_id
         JOIN shows s ON s.id = e.show_id
         WHERE st.id = ?`, id,
	).Scan(&dbOwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrShowtimeNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	var secCount int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM seat_sections WHERE showtime_id = ?`, id).Scan(&secCount); err != nil {
		return err
	}
	if secCount > 0 {
		return ErrConflict
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM showtimes WHERE id = ?`, id)
	return err
}
