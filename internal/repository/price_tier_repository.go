package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/showgrid/showgrid/internal/model"
)

// ErrPriceTierNotFound indicates that a price tier was not located in the DB.
var ErrPriceTierNotFound = errors.New("price tier not found")

// PriceTierRepo manages persistence for price tiers.
type PriceTierRepo struct{ db *sql.DB }

// NewPriceTierRepo constructs a PriceTierRepo with the given DB handle.
func NewPriceTierRepo(db *sql.DB) *PriceTierRepo { return &PriceTierRepo{db: db} }

// Create inserts a new price tier and populates the generated ID and
// timestamps on the given struct.
func (r *PriceTierRepo) Create(ctx context.Context, t *model.PriceTier) error {
	const q = `INSERT INTO price_tiers (show_id, category, price_cents, currency, description, capacity)
               VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.ShowID, t.Category, t.PriceCents, t.Currency, t.Description, t.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT id, show_id, category, price_cents, currency, description, capacity, created_at, updated_at
                 FROM price_tiers WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, t.ID).Scan(
		&t.ID, &t.ShowID, &t.Category, &t.PriceCents, &t.Currency, &t.Description, &t.Capacity, &t.CreatedAt, &t.UpdatedAt,
	)
}

// GetByID retrieves a tier, returning ErrPriceTierNotFound when no row
// matches.
func (r *PriceTierRepo) GetByID(ctx context.Context, id uint64) (*model.PriceTier, error) {
	const q = `SELECT id, show_id, category, price_cents, currency, description, capacity, created_at, updated_at
               FROM price_tiers WHERE id = ?`
	var t model.PriceTier
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.ShowID, &t.Category, &t.PriceCents, &t.Currency, &t.Description, &t.Capacity, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPriceTierNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByShow returns all tiers of one show in creation order.
func (r *PriceTierRepo) ListByShow(ctx context.Context, showID uint64) ([]model.PriceTier, error) {
	const q = `SELECT id, show_id, category, price_cents, currency, description, capacity, created_at, updated_at
               FROM price_tiers WHERE show_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.PriceTier
	for rows.Next() {
		var t model.PriceTier
		if err := rows.Scan(&t.ID, &t.ShowID, &t.Category, &t.PriceCents, &t.Currency, &t.Description, &t.Capacity, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a tier after verifying ownership through its show.
// Tiers referenced by seat sections conflict.
func (r *PriceTierRepo) Delete(ctx context.Context, id, ownerID uint64) error {
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
		`SELECT s.owner_id FROM price_tiers t JOIN shows s ON s.id = t.show_id WHERE t.id = ?`, id,
	).Scan(&dbOwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPriceTierNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	var secCount int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM seat_sections WHERE price_tier_id = ?`, id).Scan(&secCount); err != nil {
		return err
	}
	if secCount > 0 {
		return ErrConflict
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM price_tiers WHERE id = ?`, id)
	return err
}
