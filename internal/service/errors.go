// Package service implements the booking, availability and inventory rules
// on top of the repositories, the seat graph and the in-memory caches.
package service

import "errors"

// ErrSeatNotFound is returned when the requested seat does not exist in the
// hall's layout.
var ErrSeatNotFound = errors.New("seat not found in hall")

// ErrSeatAlreadyReserved is returned when the seat already holds a
// confirmed reservation for the screening.
var ErrSeatAlreadyReserved = errors.New("seat already reserved")

// ErrSeatReservationFailed is returned when the reservation could not be
// persisted; the in-memory hold has been rolled back.
var ErrSeatReservationFailed = errors.New("seat reservation failed")

// ErrHallConflict is returned when a schedule's time window overlaps an
// existing active schedule in the same hall.
var ErrHallConflict = errors.New("hall already scheduled for this time")

// ErrScheduleInactive is returned when booking against a deactivated
// schedule.
var ErrScheduleInactive = errors.New("schedule is not active")

// ErrNotOwner is returned when a student acts on a reservation that
// belongs to someone else.
var ErrNotOwner = errors.New("reservation belongs to another student")
