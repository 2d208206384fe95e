package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-cinema/internal/cache"
	"github.com/iliyamo/campus-cinema/internal/model"
	"github.com/iliyamo/campus-cinema/internal/seatgraph"
)

type bookingFixture struct {
	coordinator  *Coordinator
	halls        *HallService
	schedules    *fakeScheduleStore
	reservations *fakeReservationStore
	graph        *seatgraph.Graph
	cache        *cache.ReservationCache
	scheduleID   uint64
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	graph := seatgraph.New()
	hallStore := newFakeHallStore()
	halls := NewHallService(hallStore, graph)
	hall := model.Hall{Name: "Main Auditorium", Capacity: 25}
	require.NoError(t, halls.Create(context.Background(), &hall))

	schedules := newFakeScheduleStore()
	start, _ := time.Parse(time.RFC3339, "2026-09-01T18:00:00Z")
	sched := model.Schedule{MovieID: 1, HallID: hall.ID, StartsAt: start, EndsAt: start.Add(2 * time.Hour), PriceCents: 500}
	require.NoError(t, schedules.Create(context.Background(), &sched))

	reservations := newFakeReservationStore()
	resvCache := cache.NewReservationCache()
	coordinator := NewCoordinator(schedules, reservations, halls, nil, graph, resvCache, nil)
	return &bookingFixture{
		coordinator:  coordinator,
		halls:        halls,
		schedules:    schedules,
		reservations: reservations,
		graph:        graph,
		cache:        resvCache,
		scheduleID:   sched.ID,
	}
}

func TestBookSeat(t *testing.T) {
	fx := newBookingFixture(t)

	v, err := fx.coordinator.Book(context.Background(), 7, fx.scheduleID, "A1")
	require.NoError(t, err)
	assert.Equal(t, model.ReservationConfirmed, v.Status)
	assert.Equal(t, uint32(500), v.PriceCents, "price copied from the schedule")
	assert.NotEmpty(t, v.Code)
	assert.True(t, fx.graph.IsOccupied(fx.scheduleID, "A1"))

	cached, ok := fx.cache.Get(v.ID)
	require.True(t, ok)
	assert.Equal(t, "A1", cached.SeatID)
}

func TestBookSeatTwiceFails(t *testing.T) {
	fx := newBookingFixture(t)

	_, err := fx.coordinator.Book(context.Background(), 7, fx.scheduleID, "A1")
	require.NoError(t, err)
	_, err = fx.coordinator.Book(context.Background(), 8, fx.scheduleID, "A1")
	assert.ErrorIs(t, err, ErrSeatAlreadyReserved)
}

func TestBookSameSeatDifferentSchedule(t *testing.T) {
	fx := newBookingFixture(t)
	start, _ := time.Parse(time.RFC3339, "2026-09-02T18:00:00Z")
	other := model.Schedule{MovieID: 1, HallID: 1, StartsAt: start, EndsAt: start.Add(2 * time.Hour), PriceCents: 500}
	require.NoError(t, fx.schedules.Create(context.Background(), &other))

	_, err := fx.coordinator.Book(context.Background(), 7, fx.scheduleID, "A1")
	require.NoError(t, err)
	_, err = fx.coordinator.Book(context.Background(), 7, other.ID, "A1")
	assert.NoError(t, err, "occupancy is scoped per screening")
}

func TestBookUnknownSeat(t *testing.T) {
	fx := newBookingFixture(t)
	_, err := fx.coordinator.Book(context.Background(), 7, fx.scheduleID, "Z9")
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestBookInactiveSchedule(t *testing.T) {
	fx := newBookingFixture(t)
	require.NoError(t, fx.schedules.Deactivate(context.Background(), fx.scheduleID))
	_, err := fx.coordinator.Book(context.Background(), 7, fx.scheduleID, "A1")
	assert.ErrorIs(t, err, ErrScheduleInactive)
}

func TestBookMirrorsForeignReservation(t *testing.T) {
	fx := newBookingFixture(t)
	// A reservation exists in the store that the graph never saw.
	require.NoError(t, fx.reservations.Create(context.Background(), &model.Reservation{
		StudentID: 9, ScheduleID: fx.scheduleID, SeatID: "B2", Status: model.ReservationConfirmed,
	}))

	_, err := fx.coordinator.Book(context.Background(), 7, fx.scheduleID, "B2")
	assert.ErrorIs(t, err, ErrSeatAlreadyReserved)
	assert.True(t, fx.graph.IsOccupied(fx.scheduleID, "B2"), "graph catches up with the store")
}

func TestBookRollsBackOnPersistFailure(t *testing.T) {
	fx := newBookingFixture(t)
	fx.reservations.failCreate = true

	_, err := fx.coordinator.Book(context.Background(), 7, fx.scheduleID, "A1")
	assert.ErrorIs(t, err, ErrSeatReservationFailed)
	assert.False(t, fx.graph.IsOccupied(fx.scheduleID, "A1"), "seat freed after failed write")

	// The seat is bookable again once the store recovers.
	fx.reservations.failCreate = false
	_, err = fx.coordinator.Book(context.Background(), 7, fx.scheduleID, "A1")
	assert.NoError(t, err)
}

func TestCancelFreesSeatForRebooking(t *testing.T) {
	fx := newBookingFixture(t)
	v, err := fx.coordinator.Book(context.Background(), 7, fx.scheduleID, "A1")
	require.NoError(t, err)

	got, err := fx.coordinator.Cancel(context.Background(), 7, v.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, got.Status)
	assert.False(t, fx.graph.IsOccupied(fx.scheduleID, "A1"))

	cached, ok := fx.cache.Get(v.ID)
	require.True(t, ok)
	assert.Equal(t, model.ReservationCancelled, cached.Status)

	// Another student can take the freed seat.
	_, err = fx.coordinator.Book(context.Background(), 8, fx.scheduleID, "A1")
	assert.NoError(t, err)
}

func TestCancelOwnership(t *testing.T) {
	fx := newBookingFixture(t)
	v, err := fx.coordinator.Book(context.Background(), 7, fx.scheduleID, "A1")
	require.NoError(t, err)

	_, err = fx.coordinator.Cancel(context.Background(), 8, v.ID, false)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.True(t, fx.graph.IsOccupied(fx.scheduleID, "A1"))

	// Admin override succeeds.
	_, err = fx.coordinator.Cancel(context.Background(), 8, v.ID, true)
	assert.NoError(t, err)
}

func TestCancelTwiceIsNoOp(t *testing.T) {
	fx := newBookingFixture(t)
	v, err := fx.coordinator.Book(context.Background(), 7, fx.scheduleID, "A1")
	require.NoError(t, err)

	_, err = fx.coordinator.Cancel(context.Background(), 7, v.ID, false)
	require.NoError(t, err)
	// Rebook by someone else, then replay the old cancel: their seat must
	// survive.
	_, err = fx.coordinator.Book(context.Background(), 8, fx.scheduleID, "A1")
	require.NoError(t, err)

	_, err = fx.coordinator.Cancel(context.Background(), 7, v.ID, false)
	require.NoError(t, err)
	assert.True(t, fx.graph.IsOccupied(fx.scheduleID, "A1"), "replayed cancel must not free the new holder's seat")
}

func TestConcurrentBookingExactlyOneWins(t *testing.T) {
	fx := newBookingFixture(t)
	const racers = 32

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.coordinator.Book(context.Background(), uint64(i+1), fx.scheduleID, "C3")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrSeatAlreadyReserved)
		}
	}
	assert.Equal(t, 1, wins, "exactly one booking may succeed")

	taken, err := fx.reservations.IsSeatReserved(context.Background(), fx.scheduleID, "C3")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestConcurrentBookingDistinctSeats(t *testing.T) {
	fx := newBookingFixture(t)
	seats := []string{"A1", "A2", "A3", "B1", "B2", "B3", "C1", "C2"}

	var wg sync.WaitGroup
	errs := make([]error, len(seats))
	for i, seat := range seats {
		wg.Add(1)
		go func(i int, seat string) {
			defer wg.Done()
			_, errs[i] = fx.coordinator.Book(context.Background(), uint64(i+1), fx.scheduleID, seat)
		}(i, seat)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "seat %s", seats[i])
	}
}
