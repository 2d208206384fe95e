package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/campus-cinema/internal/model"
)

// HallRepo provides methods to work with halls. Seat data lives in the
// in-memory seat graph; only the hall record and its layout summary are
// persisted here.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

const hallCols = `id, name, capacity, location, hall_type, seating_layout, is_active, created_at, updated_at`

func scanHall(row interface{ Scan(...any) error }, h *model.Hall) error {
	return row.Scan(&h.ID, &h.Name, &h.Capacity, &h.Location, &h.HallType, &h.SeatingLayout, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
}

// Create inserts a hall and populates its generated ID and defaults.
// Duplicate names are reported as ErrDuplicate.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	const q = `INSERT INTO halls (name, capacity, location, hall_type, seating_layout)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Capacity, h.Location, h.HallType, h.SeatingLayout)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	const sel = `SELECT ` + hallCols + ` FROM halls WHERE id = ?`
	return scanHall(r.db.QueryRowContext(ctx, sel, h.ID), h)
}

// GetByID retrieves a hall by primary key.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	const q = `SELECT ` + hallCols + ` FROM halls WHERE id = ?`
	var h model.Hall
	if err := scanHall(r.db.QueryRowContext(ctx, q, id), &h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// Update rewrites a hall's attributes (including the layout summary).
func (r *HallRepo) Update(ctx context.Context, h *model.Hall) error {
	const q = `UPDATE halls
	           SET name = ?, capacity = ?, location = ?, hall_type = ?, seating_layout = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Capacity, h.Location, h.HallType, h.SeatingLayout, h.IsActive, h.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, h.ID); err != nil {
			return err
		}
	}
	return nil
}

// UpdateLayout persists just the layout summary written back after seat
// generation.
func (r *HallRepo) UpdateLayout(ctx context.Context, id uint64, summary string) error {
	const q = `UPDATE halls SET seating_layout = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, summary, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a hall. Returns ErrHallNotFound when nothing was deleted.
func (r *HallRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM halls WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHallNotFound
	}
	return nil
}

// List returns all halls ordered by name.
func (r *HallRepo) List(ctx context.Context) ([]model.Hall, error) {
	const q = `SELECT ` + hallCols + ` FROM halls ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Hall
	for rows.Next() {
		var h model.Hall
		if err := scanHall(rows, &h); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
