package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-cinema/internal/cache"
	"github.com/iliyamo/campus-cinema/internal/model"
	"github.com/iliyamo/campus-cinema/internal/seatgraph"
)

func TestWarmUpRebuildsStateFromStores(t *testing.T) {
	halls := newFakeHallStore()
	hall := model.Hall{Name: "Main", Capacity: 25}
	require.NoError(t, halls.Create(context.Background(), &hall))

	start, _ := time.Parse(time.RFC3339, "2026-09-01T18:00:00Z")
	schedules := newFakeScheduleStore()
	active := model.Schedule{MovieID: 1, HallID: hall.ID, StartsAt: start, EndsAt: start.Add(2 * time.Hour)}
	require.NoError(t, schedules.Create(context.Background(), &active))
	retired := model.Schedule{MovieID: 1, HallID: hall.ID, StartsAt: start.Add(3 * time.Hour), EndsAt: start.Add(5 * time.Hour)}
	require.NoError(t, schedules.Create(context.Background(), &retired))
	require.NoError(t, schedules.Deactivate(context.Background(), retired.ID))

	reservations := newFakeReservationStore()
	booked := model.Reservation{StudentID: 7, ScheduleID: active.ID, SeatID: "A1", Status: model.ReservationConfirmed}
	require.NoError(t, reservations.Create(context.Background(), &booked))
	cancelled := model.Reservation{StudentID: 8, ScheduleID: active.ID, SeatID: "A2", Status: model.ReservationConfirmed}
	require.NoError(t, reservations.Create(context.Background(), &cancelled))
	_, err := reservations.Cancel(context.Background(), cancelled.ID)
	require.NoError(t, err)

	graph := seatgraph.New()
	index := cache.NewScheduleIndex()
	studentCache := cache.NewStudentCache()
	resvCache := cache.NewReservationCache()

	err = WarmUp(context.Background(), WarmUpDeps{
		Halls:            halls,
		Schedules:        schedules,
		Reservations:     reservations,
		Students:         &fakeStudentStore{students: []model.Student{{ID: 7}, {ID: 8}}},
		Graph:            graph,
		ScheduleIndex:    index,
		StudentCache:     studentCache,
		ReservationCache: resvCache,
	})
	require.NoError(t, err)

	// Seats regenerated and confirmed occupancy replayed into the graph;
	// cancelled reservations leave their seat free.
	assert.True(t, graph.HasSeats(hall.ID))
	assert.True(t, graph.IsOccupied(active.ID, "A1"))
	assert.False(t, graph.IsOccupied(active.ID, "A2"))
	assert.False(t, graph.Reserve(hall.ID, active.ID, "A1"), "replayed seat stays taken")

	// Index holds active schedules only.
	assert.Equal(t, 1, index.Len())
	_, ok := index.Get(active.ID)
	assert.True(t, ok)
	_, ok = index.Get(retired.ID)
	assert.False(t, ok)

	assert.Equal(t, 2, studentCache.Len())
	assert.Equal(t, 2, resvCache.Len(), "history including cancellations is cached")
}

func TestWarmUpWithoutCaches(t *testing.T) {
	halls := newFakeHallStore()
	hall := model.Hall{Name: "Annex", Capacity: 25}
	require.NoError(t, halls.Create(context.Background(), &hall))

	graph := seatgraph.New()
	err := WarmUp(context.Background(), WarmUpDeps{
		Halls:        halls,
		Schedules:    newFakeScheduleStore(),
		Reservations: newFakeReservationStore(),
		Students:     &fakeStudentStore{},
		Graph:        graph,
	})
	require.NoError(t, err)
	assert.True(t, graph.HasSeats(hall.ID))
}
