// Package seatgraph holds the in-memory seat graph shared by the booking
// and hall services. Each hall owns a registry of seats plus adjacency
// lists; occupancy is tracked per schedule so a seat booked for one
// screening stays free for every other screening in the same hall.
//
// The graph is a fast-path cache over the reservations table: all mutations
// must go through the booking coordinator, which keeps the two in step.
package seatgraph

import (
	"errors"
	"sort"
	"sync"

	"github.com/iliyamo/campus-cinema/internal/layout"
)

// ErrSeatNotFound is returned when an adjacency query names an unknown seat.
var ErrSeatNotFound = errors.New("seat not found in graph")

// ErrInvalidReference is returned when an edge references an unregistered seat.
var ErrInvalidReference = errors.New("edge references unregistered seat")

// Seat is a vertex in the hall graph. ID is the display identifier
// ("A1", "B5"), unique within a hall. Row is 0-based, Col is 1-based.
type Seat struct {
	ID     string      `json:"id"`
	HallID uint64      `json:"hall_id"`
	Row    int         `json:"row"`
	Col    int         `json:"col"`
	Tier   layout.Tier `json:"tier"`
}

// hallSeats is the per-hall registry and adjacency structure.
type hallSeats struct {
	seats map[string]Seat
	adj   map[string][]string
}

// Graph is the process-wide seat graph. It is safe for concurrent use;
// every method takes the internal lock.
type Graph struct {
	mu    sync.RWMutex
	halls map[uint64]*hallSeats
	// occupied maps scheduleID -> set of seat IDs with a confirmed booking.
	// A schedule belongs to exactly one hall, so seat IDs are unambiguous.
	occupied map[uint64]map[string]struct{}
	// hallSchedules maps hallID -> schedules holding occupancy there, so a
	// hall rebuild can purge occupancy that references the old layout.
	hallSchedules map[uint64]map[uint64]struct{}
}

// New returns an empty seat graph. Callers populate halls explicitly via
// PopulateHall (typically at startup from the persisted hall list).
func New() *Graph {
	return &Graph{
		halls:         make(map[uint64]*hallSeats),
		occupied:      make(map[uint64]map[string]struct{}),
		hallSchedules: make(map[uint64]map[uint64]struct{}),
	}
}

// AddSeat registers a seat. Re-adding an existing seat overwrites it and
// resets its adjacency list.
func (g *Graph) AddSeat(s Seat) {
	g.mu.Lock()
	defer g.mu.Unlock()
	h := g.hall(s.HallID)
	h.seats[s.ID] = s
	h.adj[s.ID] = nil
}

// AddEdge links two seats of the same hall bidirectionally. Both endpoints
// must already be registered.
func (g *Graph) AddEdge(hallID uint64, a, b string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	h, ok := g.halls[hallID]
	if !ok {
		return ErrInvalidReference
	}
	if _, ok := h.seats[a]; !ok {
		return ErrInvalidReference
	}
	if _, ok := h.seats[b]; !ok {
		return ErrInvalidReference
	}
	h.adj[a] = append(h.adj[a], b)
	h.adj[b] = append(h.adj[b], a)
	return nil
}

// AdjacentSeats returns the IDs of seats adjacent to the given seat.
func (g *Graph) AdjacentSeats(hallID uint64, seatID string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.halls[hallID]
	if !ok {
		return nil, ErrSeatNotFound
	}
	if _, ok := h.seats[seatID]; !ok {
		return nil, ErrSeatNotFound
	}
	out := make([]string, len(h.adj[seatID]))
	copy(out, h.adj[seatID])
	return out, nil
}

// Seat looks up a single seat.
func (g *Graph) Seat(hallID uint64, seatID string) (Seat, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.halls[hallID]
	if !ok {
		return Seat{}, false
	}
	s, ok := h.seats[seatID]
	return s, ok
}

// HasSeats reports whether a hall already has a generated layout.
func (g *Graph) HasSeats(hallID uint64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.halls[hallID]
	return ok && len(h.seats) > 0
}

// Reserve marks a seat occupied for the given schedule. It returns false
// without raising when the seat is unknown or already occupied for that
// schedule; the caller treats false as "not available".
func (g *Graph) Reserve(hallID, scheduleID uint64, seatID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	h, ok := g.halls[hallID]
	if !ok {
		return false
	}
	if _, ok := h.seats[seatID]; !ok {
		return false
	}
	occ := g.occupied[scheduleID]
	if occ == nil {
		occ = make(map[string]struct{})
		g.occupied[scheduleID] = occ
	}
	if _, taken := occ[seatID]; taken {
		return false
	}
	occ[seatID] = struct{}{}
	sched := g.hallSchedules[hallID]
	if sched == nil {
		sched = make(map[uint64]struct{})
		g.hallSchedules[hallID] = sched
	}
	sched[scheduleID] = struct{}{}
	return true
}

// Release clears a seat's occupancy for the given schedule. Returns false
// when the seat is unknown or was not occupied.
func (g *Graph) Release(hallID, scheduleID uint64, seatID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	h, ok := g.halls[hallID]
	if !ok {
		return false
	}
	if _, ok := h.seats[seatID]; !ok {
		return false
	}
	occ := g.occupied[scheduleID]
	if occ == nil {
		return false
	}
	if _, taken := occ[seatID]; !taken {
		return false
	}
	delete(occ, seatID)
	if len(occ) == 0 {
		delete(g.occupied, scheduleID)
	}
	return true
}

// IsOccupied reports whether a seat holds a confirmed booking for the schedule.
func (g *Graph) IsOccupied(scheduleID uint64, seatID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, taken := g.occupied[scheduleID][seatID]
	return taken
}

// SeatsInHall returns all seats of a hall ordered by (row, column).
func (g *Graph) SeatsInHall(hallID uint64) []Seat {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.seatsInHallLocked(hallID)
}

func (g *Graph) seatsInHallLocked(hallID uint64) []Seat {
	h, ok := g.halls[hallID]
	if !ok {
		return nil
	}
	out := make([]Seat, 0, len(h.seats))
	for _, s := range h.seats {
		out = append(out, s)
	}
	sortSeats(out)
	return out
}

// AvailableSeats returns the hall's seats without a confirmed booking for
// the given schedule, ordered by (row, column).
func (g *Graph) AvailableSeats(hallID, scheduleID uint64) []Seat {
	g.mu.RLock()
	defer g.mu.RUnlock()
	occ := g.occupied[scheduleID]
	all := g.seatsInHallLocked(hallID)
	out := make([]Seat, 0, len(all))
	for _, s := range all {
		if _, taken := occ[s.ID]; !taken {
			out = append(out, s)
		}
	}
	return out
}

// FindBestAdjacentSeats scans the schedule's available seats in (row,
// column) order and returns the first run of `count` seats sharing a row
// with strictly consecutive column numbers, or nil when no such run exists.
// It is a greedy single pass; it does not rank runs across rows.
func (g *Graph) FindBestAdjacentSeats(hallID, scheduleID uint64, count int) []Seat {
	if count <= 0 {
		return nil
	}
	available := g.AvailableSeats(hallID, scheduleID)
	currentRow := -1
	var run []Seat
	for _, s := range available {
		switch {
		case s.Row != currentRow:
			currentRow = s.Row
			run = run[:0]
			run = append(run, s)
		case s.Col == run[len(run)-1].Col+1:
			run = append(run, s)
		default:
			run = run[:0]
			run = append(run, s)
		}
		if len(run) == count {
			out := make([]Seat, count)
			copy(out, run)
			return out
		}
	}
	return nil
}

// SeatingChart renders the hall as a 2D token grid sized by the maximum
// row and column observed. Cells without a seat hold a blank placeholder;
// seats render as id+"O" when free and id+"X" when occupied for the
// given schedule.
func (g *Graph) SeatingChart(hallID, scheduleID uint64) [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	seats := g.seatsInHallLocked(hallID)
	if len(seats) == 0 {
		return nil
	}
	maxRow, maxCol := 0, 0
	for _, s := range seats {
		if s.Row > maxRow {
			maxRow = s.Row
		}
		if s.Col > maxCol {
			maxCol = s.Col
		}
	}
	chart := make([][]string, maxRow+1)
	for i := range chart {
		chart[i] = make([]string, maxCol+1)
		for j := range chart[i] {
			chart[i][j] = "   "
		}
	}
	occ := g.occupied[scheduleID]
	for _, s := range seats {
		marker := "O"
		if _, taken := occ[s.ID]; taken {
			marker = "X"
		}
		chart[s.Row][s.Col] = s.ID + marker
	}
	return chart
}

// PopulateHall generates the layout for a hall and registers its seats and
// adjacency edges. Any previous seats for the hall are discarded first,
// along with occupancy recorded against them. Two seats are linked when
// they sit in Manhattan- or diagonal-adjacent grid positions; the aisle
// gap breaks horizontal adjacency naturally. It returns the realized
// layout and the number of seats created.
func (g *Graph) PopulateHall(hallID uint64, capacity int) (layout.Layout, int) {
	l := layout.Generate(capacity)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeHallLocked(hallID)
	h := &hallSeats{
		seats: make(map[string]Seat, len(l.Positions)),
		adj:   make(map[string][]string, len(l.Positions)),
	}
	g.halls[hallID] = h
	for _, p := range l.Positions {
		id := layout.SeatID(p.Row, p.Col)
		h.seats[id] = Seat{ID: id, HallID: hallID, Row: p.Row, Col: p.Col, Tier: p.Tier}
	}
	for i, a := range l.Positions {
		for _, b := range l.Positions[i+1:] {
			if !adjacent(a.Row, a.Col, b.Row, b.Col) {
				continue
			}
			aID := layout.SeatID(a.Row, a.Col)
			bID := layout.SeatID(b.Row, b.Col)
			h.adj[aID] = append(h.adj[aID], bID)
			h.adj[bID] = append(h.adj[bID], aID)
		}
	}
	return l, len(h.seats)
}

// RemoveHall drops a hall's seats, edges and all occupancy recorded
// against them (hall deleted or regenerated). Occupancy must not outlive
// the layout it refers to: after a rebuild the same seat ID may denote a
// different physical position, or no seat at all.
func (g *Graph) RemoveHall(hallID uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeHallLocked(hallID)
}

func (g *Graph) removeHallLocked(hallID uint64) {
	delete(g.halls, hallID)
	for scheduleID := range g.hallSchedules[hallID] {
		delete(g.occupied, scheduleID)
	}
	delete(g.hallSchedules, hallID)
}

// ClearSchedule drops all occupancy for a schedule (schedule deleted).
func (g *Graph) ClearSchedule(scheduleID uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.occupied, scheduleID)
}

func (g *Graph) hall(id uint64) *hallSeats {
	h, ok := g.halls[id]
	if !ok {
		h = &hallSeats{seats: make(map[string]Seat), adj: make(map[string][]string)}
		g.halls[id] = h
	}
	return h
}

// adjacent reports grid adjacency: same row with neighboring columns, or
// neighboring rows with the same or neighboring columns.
func adjacent(r1, c1, r2, c2 int) bool {
	dr := abs(r1 - r2)
	dc := abs(c1 - c2)
	if dr == 0 && dc == 1 {
		return true
	}
	return dr == 1 && dc <= 1
}

func sortSeats(seats []Seat) {
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Col < seats[j].Col
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
