package model

import "time"

// Reservation status values. Cancelled reservations are kept for history
// and no longer count toward seat occupancy.
const (
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
)

// Reservation records a student's booking of a single seat for a schedule.
// At most one reservation per (schedule, seat) may be CONFIRMED at any
// time. Reservations are never deleted; cancellation flips the status.
//
// Fields:
//  ID         – primary key identifier.
//  Code       – opaque reference code returned to the client.
//  StudentID  – student who booked the seat.
//  ScheduleID – schedule the seat is booked for.
//  SeatID     – seat identifier within the schedule's hall (e.g. "A1").
//  PriceCents – price copied from the schedule at booking time.
//  Status     – CONFIRMED or CANCELLED.
//  ReservedAt – when the booking was made.
//  UpdatedAt  – last status change.
type Reservation struct {
	ID         uint64    `json:"id"`
	Code       string    `json:"code"`
	StudentID  uint64    `json:"student_id"`
	ScheduleID uint64    `json:"schedule_id"`
	SeatID     string    `json:"seat_id"`
	PriceCents uint32    `json:"price_cents"`
	Status     string    `json:"status"`
	ReservedAt time.Time `json:"reserved_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
