package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/showgrid/showgrid/internal/model"
)

// ErrBookingNotFound indicates that a booking was not located in the DB.
var ErrBookingNotFound = errors.New("booking not found")

const bookingColumns = `id, user_id, seat_section_id, quantity, amount_cents, currency,
                        status, reference, gateway_order_id, created_at, updated_at`

// BookingRepo manages persistence for bookings and their tickets.
type BookingRepo struct{ db *sql.DB }

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(
		&b.ID, &b.UserID, &b.SeatSectionID, &b.Quantity, &b.AmountCents, &b.Currency,
		&b.Status, &b.Reference, &b.GatewayOrderID, &b.CreatedAt, &b.UpdatedAt,
	)
}

// Create inserts a PENDING booking and populates the generated ID and
// DB-default fields.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, seat_section_id, quantity, amount_cents, currency, reference, gateway_order_id)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.UserID, b.SeatSectionID, b.Quantity, b.AmountCents, b.Currency, b.Reference, b.GatewayOrderID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, b.ID), b)
}

// GetByIDAndUser retrieves a booking owned by the given customer.
func (r *BookingRepo) GetByIDAndUser(ctx context.Context, id, userID uint64) (*model.Booking, error) {
	var b model.Booking
	err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ? AND user_id = ?`, id, userID), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByUser returns a customer's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus moves a booking between lifecycle states.  The current
// status is part of the WHERE clause so a confirm and a cancel racing
// each other cannot both win.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from, to string) error {
	const q = `UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// IssueTickets inserts one ticket row per seat inside a transaction
// and returns the created tickets.  Codes are supplied by the caller.
func (r *BookingRepo) IssueTickets(ctx context.Context, bookingID uint64, codes []string) ([]model.Ticket, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	tickets := make([]model.Ticket, 0, len(codes))
	for _, code := range codes {
		var res sql.Result
		res, err = tx.ExecContext(ctx, `INSERT INTO tickets (booking_id, code) VALUES (?, ?)`, bookingID, code)
		if err != nil {
			return nil, err
		}
		var id int64
		id, err = res.LastInsertId()
		if err != nil {
			return nil, err
		}
		var t model.Ticket
		err = tx.QueryRowContext(ctx, `SELECT id, booking_id, code, issued_at FROM tickets WHERE id = ?`, id).
			Scan(&t.ID, &t.BookingID, &t.Code, &t.IssuedAt)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// ListTickets returns the tickets of one booking.
func (r *BookingRepo) ListTickets(ctx context.Context, bookingID uint64) ([]model.Ticket, error) {
	const q = `SELECT id, booking_id, code, issued_at FROM tickets WHERE booking_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Ticket
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.BookingID, &t.Code, &t.IssuedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
