package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/showgrid/showgrid/internal/model"
)

// ErrSectionNotFound indicates that a seat section was not located in the DB.
var ErrSectionNotFound = errors.New("seat section not found")

// ErrSectionNameTaken indicates a duplicate section name for one
// showtime; names are compared case-insensitively (the column uses a
// case-insensitive collation with a unique (showtime_id, name) key).
var ErrSectionNameTaken = errors.New("section name already taken for this showtime")

// ErrNotEnoughSeats indicates a reservation attempt for more seats
// than the section currently has available.
var ErrNotEnoughSeats = errors.New("not enough available seats")

// SeatSectionRepo manages persistence for seat sections.
type SeatSectionRepo struct{ db *sql.DB }

// NewSeatSectionRepo constructs a SeatSectionRepo with the given DB handle.
func NewSeatSectionRepo(db *sql.DB) *SeatSectionRepo { return &SeatSectionRepo{db: db} }

// Create inserts a new seat section and populates the generated ID and
// timestamps.
func (r *SeatSectionRepo) Create(ctx context.Context, s *model.SeatSection) error {
	const q = `INSERT INTO seat_sections (showtime_id, price_tier_id, name, total_seats, available_seats)
               VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.ShowtimeID, s.PriceTierID, s.Name, s.TotalSeats, s.AvailableSeats)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSectionNameTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT id, showtime_id, price_tier_id, name, total_seats, available_seats, created_at, updated_at
                 FROM seat_sections WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(
		&s.ID, &s.ShowtimeID, &s.PriceTierID, &s.Name, &s.TotalSeats, &s.AvailableSeats, &s.CreatedAt, &s.UpdatedAt,
	)
}

// GetByID retrieves a section, returning ErrSectionNotFound when no
// row matches.
func (r *SeatSectionRepo) GetByID(ctx context.Context, id uint64) (*model.SeatSection, error) {
	const q = `SELECT id, showtime_id, price_tier_id, name, total_seats, available_seats, created_at, updated_at
               FROM seat_sections WHERE id = ?`
	var s model.SeatSection
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.ShowtimeID, &s.PriceTierID, &s.Name, &s.TotalSeats, &s.AvailableSeats, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByShowtime returns all sections of one showtime in creation
// order.
func (r *SeatSectionRepo) ListByShowtime(ctx context.Context, showtimeID uint64) ([]model.SeatSection, error) {
	const q = `SELECT id, showtime_id, price_tier_id, name, total_seats, available_seats, created_at, updated_at
               FROM seat_sections WHERE showtime_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.SeatSection
	for rows.Next() {
		var s model.SeatSection
		if err := rows.Scan(&s.ID, &s.ShowtimeID, &s.PriceTierID, &s.Name, &s.TotalSeats, &s.AvailableSeats, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReserveSeats atomically decrements a section's availability.  The
// conditional UPDATE only matches while enough seats remain, so two
// concurrent bookings can never oversell the section.
func (r *SeatSectionRepo) ReserveSeats(ctx context.Context, id uint64, qty uint32) error {
	const q = `UPDATE seat_sections
               SET available_seats = available_seats - ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND available_seats >= ?`
	res, err := r.db.ExecContext(ctx, q, qty, id, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "section missing" from "sold out".
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrNotEnoughSeats
	}
	return nil
}

// ReleaseSeats returns seats to a section after a cancelled or failed
// booking, clamped so availability never exceeds the total.
func (r *SeatSectionRepo) ReleaseSeats(ctx context.Context, id uint64, qty uint32) error {
	const q = `UPDATE seat_sections
               SET available_seats = LEAST(total_seats, available_seats + ?), updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, qty, id)
	return err
}

// Delete removes a section after verifying ownership through its
// showtime's show.  Sections with bookings conflict.
func (r *SeatSectionRepo) Delete(ctx context.Context, id, ownerID uint64) error {
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
		`SELECT s.owner_id FROM seat_sections sec
         JOIN showtimes st ON st.id = sec.showtime_id
         JOIN events e ON e.id = st.event_id
         JOIN shows s ON s.id = e.show_id
         WHERE sec.id = ?`, id,
	).Scan(&dbOwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSectionNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	var bkCount int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE seat_section_id = ?`, id).Scan(&bkCount); err != nil {
		return err
	}
	if bkCount > 0 {
		return ErrConflict
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM seat_sections WHERE id = ?`, id)
	return err
}
