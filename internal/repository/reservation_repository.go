package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/campus-cinema/internal/model"
)

// ReservationRepo provides methods to work with seat reservations.
// Reservations are never deleted: cancelling flips the status so the row
// remains as history and stops counting toward seat occupancy.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo constructs a ReservationRepo with the given DB handle.
func NewReservationRepo(db *sql.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

const reservationCols = `id, code, student_id, schedule_id, seat_id, price_cents, status, reserved_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }, v *model.Reservation) error {
	return row.Scan(&v.ID, &v.Code, &v.StudentID, &v.ScheduleID, &v.SeatID, &v.PriceCents, &v.Status, &v.ReservedAt, &v.UpdatedAt)
}

// Create inserts a reservation and populates its generated ID and timestamps.
func (r *ReservationRepo) Create(ctx context.Context, v *model.Reservation) error {
	const q = `INSERT INTO reservations (code, student_id, schedule_id, seat_id, price_cents, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.Code, v.StudentID, v.ScheduleID, v.SeatID, v.PriceCents, v.Status)
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
	v.ID = uint64(id)
	const sel = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, sel, v.ID), v)
}

// GetByID retrieves a reservation by primary key.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	var v model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Cancel marks a confirmed reservation as cancelled. The boolean reports
// whether a row actually changed, so an already cancelled reservation comes
// back (false, nil) and the caller can skip freeing the seat twice.
func (r *ReservationRepo) Cancel(ctx context.Context, id uint64) (bool, error) {
	const q = `UPDATE reservations
	           SET status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status <> ?`
	res, err := r.db.ExecContext(ctx, q, model.ReservationCancelled, id, model.ReservationCancelled)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsSeatReserved reports whether the seat has a non-cancelled reservation
// for the given schedule.
func (r *ReservationRepo) IsSeatReserved(ctx context.Context, scheduleID uint64, seatID string) (bool, error) {
	const q = `SELECT COUNT(*) FROM reservations
	           WHERE schedule_id = ? AND seat_id = ? AND status <> ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, scheduleID, seatID, model.ReservationCancelled).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReservedSeats returns the seat IDs with a non-cancelled reservation for
// the schedule, ordered for stable output.
func (r *ReservationRepo) ReservedSeats(ctx context.Context, scheduleID uint64) ([]string, error) {
	const q = `SELECT seat_id FROM reservations
	           WHERE schedule_id = ? AND status <> ?
	           ORDER BY seat_id`
	rows, err := r.db.QueryContext(ctx, q, scheduleID, model.ReservationCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		seats = append(seats, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// ListByStudent returns a student's reservations, newest first. Cancelled
// rows are included so the history stays visible.
func (r *ReservationRepo) ListByStudent(ctx context.Context, studentID uint64) ([]model.Reservation, error) {
	return r.listWhere(ctx, `WHERE student_id = ?`, studentID)
}

// ListBySchedule returns all reservations for a schedule, newest first.
func (r *ReservationRepo) ListBySchedule(ctx context.Context, scheduleID uint64) ([]model.Reservation, error) {
	return r.listWhere(ctx, `WHERE schedule_id = ?`, scheduleID)
}

// List returns every reservation, newest first (cache warm-up).
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	return r.listWhere(ctx, ``)
}

func (r *ReservationRepo) listWhere(ctx context.Context, where string, args ...any) ([]model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations ` + where + ` ORDER BY reserved_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Reservation
	for rows.Next() {
		var v model.Reservation
		if err := scanReservation(rows, &v); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
