package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/showgrid/showgrid/internal/model"
)

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

const showColumns = `id, venue_id, owner_id, name, description, duration_min, image_url,
                     age_limit, language, is_public, status, created_at, updated_at`

// ShowRepo manages persistence for shows.
type ShowRepo struct{ db *sql.DB }

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{db: db} }

func scanShow(row interface{ Scan(...any) error }, s *model.Show) error {
	return row.Scan(
		&s.ID, &s.VenueID, &s.OwnerID, &s.Name, &s.Description, &s.DurationMin, &s.ImageURL,
		&s.AgeLimit, &s.Language, &s.IsPublic, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
}

// Create inserts a new draft show and populates the generated ID and
// DB-default fields (status, timestamps) on the given struct.  This is
// the first network write of a wizard session.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (venue_id, owner_id, name, description, duration_min, image_url, age_limit, language)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		s.VenueID, s.OwnerID, s.Name, s.Description, s.DurationMin, s.ImageURL, s.AgeLimit, s.Language)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return scanShow(r.db.QueryRowContext(ctx, `SELECT `+showColumns+` FROM shows WHERE id = ?`, s.ID), s)
}

// GetByID retrieves a show by its ID, returning ErrShowNotFound when
// no row matches.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	var s model.Show
	err := scanShow(r.db.QueryRowContext(ctx, `SELECT `+showColumns+` FROM shows WHERE id = ?`, id), &s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByIDAndOwner retrieves a show only when the given organizer owns
// it.  Wizard endpoints use this before mutating anything under a
// show.
func (r *ShowRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Show, error) {
	var s model.Show
	err := scanShow(r.db.QueryRowContext(ctx,
		`SELECT `+showColumns+` FROM shows WHERE id = ? AND owner_id = ?`, id, ownerID), &s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Update rewrites the editable details of a show owned by the given
// organizer and reloads the row into the struct.  Status and
// visibility are untouched; those change only through Publish.
func (r *ShowRepo) Update(ctx context.Context, s *model.Show) error {
	const q = `UPDATE shows
               SET venue_id = ?, name = ?, description = ?, duration_min = ?,
                   image_url = ?, age_limit = ?, language = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		s.VenueID, s.Name, s.Description, s.DurationMin, s.ImageURL, s.AgeLimit, s.Language,
		s.ID, s.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// No row changed: the show may not exist, may belong to another
		// organizer, or the update was a no-op.  Reloading settles it.
		if _, err := r.GetByIDAndOwner(ctx, s.ID, s.OwnerID); err != nil {
			return err
		}
	}
	return scanShow(r.db.QueryRowContext(ctx, `SELECT `+showColumns+` FROM shows WHERE id = ?`, s.ID), s)
}

// Publish flips a draft show to PUBLISHED and makes it public.  It is
// idempotent: publishing an already-published show succeeds without
// change.  Ownership is enforced in the same statement.
func (r *ShowRepo) Publish(ctx context.Context, id, ownerID uint64) (*model.Show, error) {
	const q = `UPDATE shows SET status = ?, is_public = 1, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, model.ShowStatusPublished, id, ownerID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the show does not exist, belongs to someone else, or
		// is already published.  Distinguish by reloading.
		s, err := r.GetByIDAndOwner(ctx, id, ownerID)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return r.GetByID(ctx, id)
}

// ListPublished returns all publicly visible shows, newest first.
func (r *ShowRepo) ListPublished(ctx context.Context) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows
               WHERE is_public = 1 AND status = 'PUBLISHED' ORDER BY created_at DESC`
	return r.queryShows(ctx, q)
}

// SearchPublished returns published shows whose name or description
// matches the query, newest first.
func (r *ShowRepo) SearchPublished(ctx context.Context, query string) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows
               WHERE is_public = 1 AND status = 'PUBLISHED'
                 AND (name LIKE CONCAT('%', ?, '%') OR description LIKE CONCAT('%', ?, '%'))
               ORDER BY created_at DESC`
	return r.queryShows(ctx, q, query, query)
}

// ListByOwner returns every show created by one organizer, newest
// first, drafts included.
func (r *ShowRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + ` FROM shows WHERE owner_id = ? ORDER BY created_at DESC`
	return r.queryShows(ctx, q, ownerID)
}

func (r *ShowRepo) queryShows(ctx context.Context, q string, args ...any) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Show
	for rows.Next() {
		var s model.Show
		if err := scanShow(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
