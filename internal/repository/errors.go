// Package repository defines data access for the campus cinema schema.
// Sentinel errors let callers distinguish "row absent" from real database
// failures with errors.Is; handlers translate them into 404 responses.
package repository

import "errors"

// ErrStudentNotFound is returned when a student lookup yields no rows.
var ErrStudentNotFound = errors.New("student not found")

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// ErrHallNotFound is returned when a hall lookup yields no rows.
var ErrHallNotFound = errors.New("hall not found")

// ErrScheduleNotFound is returned when a schedule lookup yields no rows.
var ErrScheduleNotFound = errors.New("schedule not found")

// ErrReservationNotFound is returned when a reservation lookup yields no rows.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrDuplicate signals a uniqueness violation (e.g. hall name or student
// email already taken). Handlers should translate this into HTTP 409.
var ErrDuplicate = errors.New("duplicate entry")
