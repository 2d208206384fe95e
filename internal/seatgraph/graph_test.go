package seatgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-cinema/internal/layout"
)

const (
	hallID     = uint64(1)
	scheduleID = uint64(10)
)

func populated(t *testing.T, capacity int) *Graph {
	t.Helper()
	g := New()
	_, created := g.PopulateHall(hallID, capacity)
	require.Positive(t, created)
	return g
}

func TestPopulateHallCapacity25(t *testing.T) {
	g := populated(t, 25)
	seats := g.SeatsInHall(hallID)
	assert.Len(t, seats, 25)
	// Ordered by row then column.
	assert.Equal(t, "A1", seats[0].ID)
	assert.Equal(t, "A2", seats[1].ID)
	assert.Equal(t, "E5", seats[len(seats)-1].ID)
}

func TestAdjacency(t *testing.T) {
	g := populated(t, 25)

	adj, err := g.AdjacentSeats(hallID, "C3")
	require.NoError(t, err)
	// Center seat of a 5x5 grid touches all eight neighbors.
	assert.ElementsMatch(t, []string{"B2", "B3", "B4", "C2", "C4", "D2", "D3", "D4"}, adj)

	corner, err := g.AdjacentSeats(hallID, "A1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A2", "B1", "B2"}, corner)

	_, err = g.AdjacentSeats(hallID, "Z9")
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestAddEdgeInvalidReference(t *testing.T) {
	g := New()
	g.AddSeat(Seat{ID: "A1", HallID: hallID, Row: 0, Col: 1, Tier: layout.TierStandard})
	err := g.AddEdge(hallID, "A1", "A2")
	assert.ErrorIs(t, err, ErrInvalidReference)
	err = g.AddEdge(99, "A1", "A2")
	assert.ErrorIs(t, err, ErrInvalidReference)

	g.AddSeat(Seat{ID: "A2", HallID: hallID, Row: 0, Col: 2, Tier: layout.TierStandard})
	require.NoError(t, g.AddEdge(hallID, "A1", "A2"))
	adj, err := g.AdjacentSeats(hallID, "A2")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, adj)
}

func TestReserveAndRelease(t *testing.T) {
	g := populated(t, 25)

	assert.True(t, g.Reserve(hallID, scheduleID, "A1"))
	assert.False(t, g.Reserve(hallID, scheduleID, "A1"), "double reserve must fail")
	assert.False(t, g.Reserve(hallID, scheduleID, "Z9"), "unknown seat must fail")
	assert.True(t, g.IsOccupied(scheduleID, "A1"))

	assert.True(t, g.Release(hallID, scheduleID, "A1"))
	assert.False(t, g.Release(hallID, scheduleID, "A1"), "double release must fail")
	assert.False(t, g.IsOccupied(scheduleID, "A1"))
}

func TestOccupancyScopedPerSchedule(t *testing.T) {
	g := populated(t, 25)
	other := uint64(11)

	require.True(t, g.Reserve(hallID, scheduleID, "A1"))
	// Same seat, different screening: still free.
	assert.True(t, g.Reserve(hallID, other, "A1"))
	assert.True(t, g.IsOccupied(scheduleID, "A1"))
	assert.True(t, g.IsOccupied(other, "A1"))
}

func TestAvailablePlusOccupiedCoversHall(t *testing.T) {
	g := populated(t, 25)
	require.True(t, g.Reserve(hallID, scheduleID, "B2"))
	require.True(t, g.Reserve(hallID, scheduleID, "C3"))

	all := g.SeatsInHall(hallID)
	available := g.AvailableSeats(hallID, scheduleID)
	assert.Len(t, available, len(all)-2)
	for _, s := range available {
		assert.False(t, g.IsOccupied(scheduleID, s.ID))
	}
}

func TestFindBestAdjacentSeats(t *testing.T) {
	g := populated(t, 25)

	run := g.FindBestAdjacentSeats(hallID, scheduleID, 3)
	require.Len(t, run, 3)
	assert.Equal(t, "A1", run[0].ID)
	assert.Equal(t, "A2", run[1].ID)
	assert.Equal(t, "A3", run[2].ID)
	for i := 1; i < len(run); i++ {
		assert.Equal(t, run[0].Row, run[i].Row)
		assert.Equal(t, run[i-1].Col+1, run[i].Col)
	}
}

func TestFindBestAdjacentSeatsSkipsGaps(t *testing.T) {
	g := populated(t, 25)
	// Fragment row A: occupy A2 so A1..A3 is no longer a run.
	require.True(t, g.Reserve(hallID, scheduleID, "A2"))

	run := g.FindBestAdjacentSeats(hallID, scheduleID, 3)
	require.Len(t, run, 3)
	assert.Equal(t, "A3", run[0].ID)
	assert.Equal(t, "A5", run[2].ID)
}

func TestFindBestAdjacentSeatsNoRun(t *testing.T) {
	g := populated(t, 25)
	// Occupy every even column so no row has five consecutive free seats.
	for _, row := range []string{"A", "B", "C", "D", "E"} {
		require.True(t, g.Reserve(hallID, scheduleID, row+"2"))
		require.True(t, g.Reserve(hallID, scheduleID, row+"4"))
	}
	assert.Empty(t, g.FindBestAdjacentSeats(hallID, scheduleID, 2))
	assert.Empty(t, g.FindBestAdjacentSeats(hallID, scheduleID, 0))
}

func TestSeatingChart(t *testing.T) {
	g := populated(t, 25)
	require.True(t, g.Reserve(hallID, scheduleID, "A1"))

	chart := g.SeatingChart(hallID, scheduleID)
	require.Len(t, chart, 5)
	require.Len(t, chart[0], 6) // columns are 1-based; index 0 stays blank
	assert.Equal(t, "   ", chart[0][0])
	assert.Equal(t, "A1X", chart[0][1])
	assert.Equal(t, "A2O", chart[0][2])
	assert.Equal(t, "E5O", chart[4][5])

	assert.Nil(t, g.SeatingChart(99, scheduleID))
}

func TestRemoveHall(t *testing.T) {
	g := populated(t, 25)
	g.RemoveHall(hallID)
	assert.False(t, g.HasSeats(hallID))
	assert.Empty(t, g.SeatsInHall(hallID))
	assert.False(t, g.Reserve(hallID, scheduleID, "A1"))
}

func TestRemoveHallClearsOccupancy(t *testing.T) {
	g := populated(t, 25)
	other := uint64(11)
	require.True(t, g.Reserve(hallID, scheduleID, "A1"))
	require.True(t, g.Reserve(hallID, other, "B2"))

	g.RemoveHall(hallID)
	assert.False(t, g.IsOccupied(scheduleID, "A1"))
	assert.False(t, g.IsOccupied(other, "B2"))
}

func TestPopulateHallResetsOccupancy(t *testing.T) {
	g := populated(t, 25)
	require.True(t, g.Reserve(hallID, scheduleID, "A1"))

	// Regenerating the hall invalidates the old layout; occupancy keyed to
	// its seat IDs must not survive into the new one.
	_, created := g.PopulateHall(hallID, 50)
	require.Positive(t, created)
	assert.False(t, g.IsOccupied(scheduleID, "A1"))
	assert.True(t, g.Reserve(hallID, scheduleID, "A1"))
}

func TestAisleBreaksAdjacency(t *testing.T) {
	g := New()
	g.PopulateHall(2, 100)
	// Row C of the 100-seat hall is full width with the aisle at column 6:
	// C5 and C8 sit on opposite sides and must not be linked.
	adj, err := g.AdjacentSeats(2, "C5")
	require.NoError(t, err)
	assert.NotContains(t, adj, "C8")
	assert.NotContains(t, adj, "C7")
}
