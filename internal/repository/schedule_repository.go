package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/campus-cinema/internal/model"
)

// ScheduleRepo provides methods to work with movie schedules.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo constructs a ScheduleRepo with the given DB handle.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

const scheduleCols = `id, movie_id, hall_id, starts_at, ends_at, price_cents, is_active, created_at, updated_at`

func scanSchedule(row interface{ Scan(...any) error }, s *model.Schedule) error {
	return row.Scan(&s.ID, &s.MovieID, &s.HallID, &s.StartsAt, &s.EndsAt, &s.PriceCents, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a schedule and populates its generated ID and defaults.
func (r *ScheduleRepo) Create(ctx context.Context, s *model.Schedule) error {
	const q = `INSERT INTO schedules (movie_id, hall_id, starts_at, ends_at, price_cents)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.HallID, s.StartsAt, s.EndsAt, s.PriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT ` + scheduleCols + ` FROM schedules WHERE id = ?`
	return scanSchedule(r.db.QueryRowContext(ctx, sel, s.ID), s)
}

// GetByID retrieves a schedule by primary key.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (*model.Schedule, error) {
	const q = `SELECT ` + scheduleCols + ` FROM schedules WHERE id = ?`
	var s model.Schedule
	if err := scanSchedule(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Update rewrites a schedule's attributes.
func (r *ScheduleRepo) Update(ctx context.Context, s *model.Schedule) error {
	const q = `UPDATE schedules
	           SET movie_id = ?, hall_id = ?, starts_at = ?, ends_at = ?, price_cents = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.HallID, s.StartsAt, s.EndsAt, s.PriceCents, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Deactivate flips is_active off instead of deleting, so the schedule stops
// counting toward hall conflicts while its reservations stay intact.
func (r *ScheduleRepo) Deactivate(ctx context.Context, id uint64) error {
	const q = `UPDATE schedules SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
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

// List returns all schedules ordered by start time.
func (r *ScheduleRepo) List(ctx context.Context) ([]model.Schedule, error) {
	return r.listWhere(ctx, ``)
}

// ListActive returns active schedules ordered by start time (used to warm up
// the in-memory schedule index on boot).
func (r *ScheduleRepo) ListActive(ctx context.Context) ([]model.Schedule, error) {
	return r.listWhere(ctx, `WHERE is_active = TRUE`)
}

// ListByMovie returns all schedules for a movie, ordered by start time.
func (r *ScheduleRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Schedule, error) {
	return r.listWhere(ctx, `WHERE movie_id = ?`, movieID)
}

// ListByHall returns all schedules for a hall, ordered by start time.
func (r *ScheduleRepo) ListByHall(ctx context.Context, hallID uint64) ([]model.Schedule, error) {
	return r.listWhere(ctx, `WHERE hall_id = ?`, hallID)
}

// ListActiveByHall returns the active schedules for a hall, the set the
// availability check walks when probing a candidate time window.
func (r *ScheduleRepo) ListActiveByHall(ctx context.Context, hallID uint64) ([]model.Schedule, error) {
	return r.listWhere(ctx, `WHERE hall_id = ? AND is_active = TRUE`, hallID)
}

func (r *ScheduleRepo) listWhere(ctx context.Context, where string, args ...any) ([]model.Schedule, error) {
	q := `SELECT ` + scheduleCols + ` FROM schedules ` + where + ` ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Schedule
	for rows.Next() {
		var s model.Schedule
		if err := scanSchedule(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
