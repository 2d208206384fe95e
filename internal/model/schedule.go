package model

import "time"

// Schedule represents a single timed screening of a movie in a hall.
// EndsAt is derived from StartsAt plus the movie's runtime at creation
// time. For a fixed hall, no two active schedules may have overlapping
// [StartsAt, EndsAt] intervals (inclusive endpoints).
//
// Fields:
//  ID         – primary key identifier.
//  MovieID    – movie being screened.
//  HallID     – hall hosting the screening.
//  StartsAt   – screening start (UTC).
//  EndsAt     – screening end (UTC), StartsAt + movie duration.
//  PriceCents – ticket price in cents, copied onto reservations at booking.
//  IsActive   – inactive schedules are ignored by conflict checks and
//               cannot be booked.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Schedule struct {
	ID         uint64    `json:"id"`
	MovieID    uint64    `json:"movie_id"`
	HallID     uint64    `json:"hall_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	PriceCents uint32    `json:"price_cents"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Overlaps reports whether the schedule's interval overlaps [start, end]
// using the inclusive-endpoint test: a screening ending exactly when
// another starts still conflicts (cleanup time belongs to the hall).
func (s Schedule) Overlaps(start, end time.Time) bool {
	return !s.StartsAt.After(end) && !s.EndsAt.Before(start)
}
