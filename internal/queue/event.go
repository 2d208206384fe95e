// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// ReservationConfirmedEvent is published when a seat reservation is
// confirmed. It carries enough denormalized context for downstream
// consumers to log or notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	Code          string `json:"code"`
	StudentID     uint64 `json:"student_id"`
	ScheduleID    uint64 `json:"schedule_id"`
	HallID        uint64 `json:"hall_id"`
	HallName      string `json:"hall_name"`
	MovieTitle    string `json:"movie_title"`
	SeatID        string `json:"seat_id"`
	StartsAt      string `json:"starts_at"`
	PriceCents    uint32 `json:"price_cents"`
	ConfirmedAt   string `json:"confirmed_at"`
}
