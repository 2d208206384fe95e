package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-cinema/internal/model"
	"github.com/iliyamo/campus-cinema/internal/seatgraph"
)

func TestHallCreateNormalizesCapacity(t *testing.T) {
	graph := seatgraph.New()
	svc := NewHallService(newFakeHallStore(), graph)

	h := model.Hall{Name: "Media Lab", Capacity: 60}
	require.NoError(t, svc.Create(context.Background(), &h))
	assert.Equal(t, uint32(50), h.Capacity)
	assert.Equal(t, "Rows:5,Seats:10", h.SeatingLayout)
	assert.True(t, graph.HasSeats(h.ID))
	assert.Len(t, graph.SeatsInHall(h.ID), 50)
}

func TestHallUpdateRebuildsSeatsOnCapacityChange(t *testing.T) {
	graph := seatgraph.New()
	svc := NewHallService(newFakeHallStore(), graph)
	h := model.Hall{Name: "Media Lab", Capacity: 25}
	require.NoError(t, svc.Create(context.Background(), &h))
	require.True(t, graph.Reserve(h.ID, 1, "A1"))

	h.Capacity = 50
	require.NoError(t, svc.Update(context.Background(), &h))
	assert.Len(t, graph.SeatsInHall(h.ID), 50)
	assert.Equal(t, "Rows:5,Seats:10", h.SeatingLayout)
	assert.False(t, graph.IsOccupied(1, "A1"), "rebuild clears in-memory occupancy")
}

func TestHallUpdatePreservesActiveFlag(t *testing.T) {
	graph := seatgraph.New()
	store := newFakeHallStore()
	svc := NewHallService(store, graph)
	h := model.Hall{Name: "Media Lab", Capacity: 25}
	require.NoError(t, svc.Create(context.Background(), &h))

	// Deactivate out of band, then update with a request-shaped value that
	// says nothing about the flag. The update must not reactivate the hall.
	stored, err := store.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, store.Update(context.Background(), stored))

	upd := model.Hall{ID: h.ID, Name: "Media Lab 2", Capacity: 25, IsActive: true}
	require.NoError(t, svc.Update(context.Background(), &upd))
	assert.False(t, upd.IsActive)

	after, err := store.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.False(t, after.IsActive)
	assert.Equal(t, "Media Lab 2", after.Name)
}

func TestEnsureHallPopulatesLazily(t *testing.T) {
	graph := seatgraph.New()
	store := newFakeHallStore()
	svc := NewHallService(store, graph)

	// Hall exists in the store but not in the graph (fresh process).
	h := model.Hall{Name: "Media Lab", Capacity: 25}
	require.NoError(t, store.Create(context.Background(), &h))
	require.False(t, graph.HasSeats(h.ID))

	got, err := svc.EnsureHall(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, h.ID, got.ID)
	assert.True(t, graph.HasSeats(h.ID))
}

func TestHallDeleteDropsSeats(t *testing.T) {
	graph := seatgraph.New()
	svc := NewHallService(newFakeHallStore(), graph)
	h := model.Hall{Name: "Media Lab", Capacity: 25}
	require.NoError(t, svc.Create(context.Background(), &h))

	require.NoError(t, svc.Delete(context.Background(), h.ID))
	assert.False(t, graph.HasSeats(h.ID))
}
