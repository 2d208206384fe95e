package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/campus-cinema/internal/cache"
	"github.com/iliyamo/campus-cinema/internal/model"
	"github.com/iliyamo/campus-cinema/internal/queue"
	"github.com/iliyamo/campus-cinema/internal/seatgraph"
)

// ReservationStore is the slice of the reservation repository the
// coordinator needs.
type ReservationStore interface {
	Create(ctx context.Context, v *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	Cancel(ctx context.Context, id uint64) (bool, error)
	IsSeatReserved(ctx context.Context, scheduleID uint64, seatID string) (bool, error)
	ReservedSeats(ctx context.Context, scheduleID uint64) ([]string, error)
	ListByStudent(ctx context.Context, studentID uint64) ([]model.Reservation, error)
}

// HallDirectory resolves a hall and guarantees its seats exist in the
// graph before the coordinator touches them.
type HallDirectory interface {
	EnsureHall(ctx context.Context, hallID uint64) (*model.Hall, error)
}

// MovieStore resolves movie titles for event enrichment.
type MovieStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

// EventPublisher delivers confirmation events to the broker.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

// Coordinator runs the booking sequence: validate the screening, take the
// seat in the graph, persist the reservation and roll the seat back if the
// write fails. A per-(schedule, seat) lock serializes rivals for the same
// seat while unrelated bookings proceed in parallel.
type Coordinator struct {
	schedules    ScheduleStore
	reservations ReservationStore
	halls        HallDirectory
	movies       MovieStore
	graph        *seatgraph.Graph
	resvCache    *cache.ReservationCache
	publisher    EventPublisher
	locks        *keyedMutex
}

// NewCoordinator constructs a Coordinator. resvCache and publisher may be
// nil; booking then skips the cache mirror and the broker event.
func NewCoordinator(
	schedules ScheduleStore,
	reservations ReservationStore,
	halls HallDirectory,
	movies MovieStore,
	graph *seatgraph.Graph,
	resvCache *cache.ReservationCache,
	publisher EventPublisher,
) *Coordinator {
	return &Coordinator{
		schedules:    schedules,
		reservations: reservations,
		halls:        halls,
		movies:       movies,
		graph:        graph,
		resvCache:    resvCache,
		publisher:    publisher,
		locks:        newKeyedMutex(),
	}
}

// Book reserves one seat for a student on a screening. Exactly one of N
// concurrent calls for the same (schedule, seat) succeeds; the rest get
// ErrSeatAlreadyReserved.
func (c *Coordinator) Book(ctx context.Context, studentID, scheduleID uint64, seatID string) (*model.Reservation, error) {
	sched, err := c.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if !sched.IsActive {
		return nil, ErrScheduleInactive
	}
	hall, err := c.halls.EnsureHall(ctx, sched.HallID)
	if err != nil {
		return nil, err
	}

	unlock := c.locks.lock(fmt.Sprintf("%d/%s", scheduleID, seatID))
	defer unlock()

	if _, ok := c.graph.Seat(sched.HallID, seatID); !ok {
		return nil, ErrSeatNotFound
	}
	if c.graph.IsOccupied(scheduleID, seatID) {
		return nil, ErrSeatAlreadyReserved
	}
	// The database is authoritative. If a reservation exists that the
	// graph missed (e.g. written by another instance), mirror it in and
	// refuse the seat.
	taken, err := c.reservations.IsSeatReserved(ctx, scheduleID, seatID)
	if err != nil {
		return nil, err
	}
	if taken {
		c.graph.Reserve(sched.HallID, scheduleID, seatID)
		return nil, ErrSeatAlreadyReserved
	}
	if !c.graph.Reserve(sched.HallID, scheduleID, seatID) {
		return nil, ErrSeatAlreadyReserved
	}

	v := &model.Reservation{
		Code:       uuid.NewString(),
		StudentID:  studentID,
		ScheduleID: scheduleID,
		SeatID:     seatID,
		PriceCents: sched.PriceCents,
		Status:     model.ReservationConfirmed,
	}
	if err := c.reservations.Create(ctx, v); err != nil {
		// Compensate: the seat must not stay blocked by a reservation
		// that was never written.
		c.graph.Release(sched.HallID, scheduleID, seatID)
		return nil, fmt.Errorf("%w: %v", ErrSeatReservationFailed, err)
	}

	if c.resvCache != nil {
		c.resvCache.Put(*v)
	}
	c.publishConfirmed(v, sched, hall)
	return v, nil
}

// publishConfirmed emits the confirmation event in the background. The
// reservation is already durable; a broker outage only costs the event.
func (c *Coordinator) publishConfirmed(v *model.Reservation, sched *model.Schedule, hall *model.Hall) {
	if c.publisher == nil {
		return
	}
	ev := queue.ReservationConfirmedEvent{
		ReservationID: v.ID,
		Code:          v.Code,
		StudentID:     v.StudentID,
		ScheduleID:    v.ScheduleID,
		HallID:        hall.ID,
		HallName:      hall.Name,
		SeatID:        v.SeatID,
		StartsAt:      sched.StartsAt.UTC().Format(time.RFC3339),
		PriceCents:    v.PriceCents,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if c.movies != nil {
		if m, err := c.movies.GetByID(context.Background(), sched.MovieID); err == nil {
			ev.MovieTitle = m.Title
		}
	}
	go func() {
		if err := c.publisher.PublishReservationConfirmed(context.Background(), ev); err != nil {
			log.Printf("booking: publish confirmation for %s failed: %v", ev.Code, err)
		}
	}()
}

// Cancel flips a reservation to cancelled and frees the seat. Students may
// only cancel their own reservations; admin passes true to override. The
// row is kept as history. Cancelling twice is a no-op.
func (c *Coordinator) Cancel(ctx context.Context, studentID, reservationID uint64, admin bool) (*model.Reservation, error) {
	v, err := c.lookup(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !admin && v.StudentID != studentID {
		return nil, ErrNotOwner
	}

	changed, err := c.reservations.Cancel(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if changed {
		v.Status = model.ReservationCancelled
		if c.resvCache != nil {
			c.resvCache.MarkCancelled(reservationID)
		}
		if sched, err := c.schedules.GetByID(ctx, v.ScheduleID); err == nil {
			c.graph.Release(sched.HallID, v.ScheduleID, v.SeatID)
		} else {
			log.Printf("booking: release seat %s after cancel: %v", v.SeatID, err)
		}
	}
	return v, nil
}

func (c *Coordinator) lookup(ctx context.Context, id uint64) (*model.Reservation, error) {
	if c.resvCache != nil {
		if v, ok := c.resvCache.Get(id); ok {
			return &v, nil
		}
	}
	return c.reservations.GetByID(ctx, id)
}

// MyReservations returns a student's booking history, newest first.
func (c *Coordinator) MyReservations(ctx context.Context, studentID uint64) ([]model.Reservation, error) {
	return c.reservations.ListByStudent(ctx, studentID)
}

// ReservedSeats lists the occupied seat IDs for a screening.
func (c *Coordinator) ReservedSeats(ctx context.Context, scheduleID uint64) ([]string, error) {
	return c.reservations.ReservedSeats(ctx, scheduleID)
}
