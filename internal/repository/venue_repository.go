package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/showgrid/showgrid/internal/model"
)

// ErrVenueNotFound indicates that a venue was not located in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// VenueRepo manages persistence for venues.
type VenueRepo struct{ db *sql.DB }

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

// Create inserts a venue and populates the generated ID plus the
// DB-default timestamp fields on the given struct.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (owner_id, name, address, city, capacity) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.OwnerID, v.Name, v.Address, v.City, v.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	const sel = `SELECT id, owner_id, name, address, city, capacity, created_at, updated_at FROM venues WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, v.ID).Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Address, &v.City, &v.Capacity, &v.CreatedAt, &v.UpdatedAt,
	)
}

// GetByID retrieves a venue by its ID, returning ErrVenueNotFound if
// there is no matching row.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT id, owner_id, name, address, city, capacity, created_at, updated_at FROM venues WHERE id = ?`
	var v model.Venue
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Address, &v.City, &v.Capacity, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetByIDAndOwner retrieves a venue only when it belongs to the given
// owner.  Used by the wizard to verify venue ownership before a show
// is created against it.
func (r *VenueRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Venue, error) {
	const q = `SELECT id, owner_id, name, address, city, capacity, created_at, updated_at
               FROM venues WHERE id = ? AND owner_id = ?`
	var v model.Venue
	err := r.db.QueryRowContext(ctx, q, id, ownerID).Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Address, &v.City, &v.Capacity, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListByOwner returns all venues registered by one organizer, newest
// first.  When none exist it returns an empty slice and nil error.
func (r *VenueRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Venue, error) {
	const q = `SELECT id, owner_id, name, address, city, capacity, created_at, updated_at
               FROM venues WHERE owner_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Venue
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Address, &v.City, &v.Capacity, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
