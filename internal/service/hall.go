package service

import (
	"context"
	"strconv"

	"github.com/iliyamo/campus-cinema/internal/layout"
	"github.com/iliyamo/campus-cinema/internal/model"
	"github.com/iliyamo/campus-cinema/internal/seatgraph"
)

// HallStore is the slice of the hall repository the hall service needs.
type HallStore interface {
	Create(ctx context.Context, h *model.Hall) error
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
	Update(ctx context.Context, h *model.Hall) error
	UpdateLayout(ctx context.Context, id uint64, summary string) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]model.Hall, error)
}

// HallService owns hall lifecycle and keeps the seat graph in step with
// the persisted hall records. Capacity is normalized to the nearest
// supported layout bucket before anything is stored.
type HallService struct {
	halls HallStore
	graph *seatgraph.Graph
	locks *keyedMutex
}

// NewHallService constructs a HallService.
func NewHallService(halls HallStore, graph *seatgraph.Graph) *HallService {
	return &HallService{halls: halls, graph: graph, locks: newKeyedMutex()}
}

// Create persists a hall, generates its seats into the graph and writes
// the layout summary back. The hall's Capacity and SeatingLayout fields
// are updated in place.
func (s *HallService) Create(ctx context.Context, h *model.Hall) error {
	h.Capacity = uint32(layout.NormalizeCapacity(int(h.Capacity)))
	if err := s.halls.Create(ctx, h); err != nil {
		return err
	}
	l, _ := s.graph.PopulateHall(h.ID, int(h.Capacity))
	h.SeatingLayout = l.Summary()
	return s.halls.UpdateLayout(ctx, h.ID, h.SeatingLayout)
}

// Get returns a hall by ID.
func (s *HallService) Get(ctx context.Context, id uint64) (*model.Hall, error) {
	return s.halls.GetByID(ctx, id)
}

// List returns all halls.
func (s *HallService) List(ctx context.Context) ([]model.Hall, error) {
	return s.halls.List(ctx)
}

// Update rewrites a hall. When the (normalized) capacity changes the seat
// graph is rebuilt for the new layout, which also clears in-memory
// occupancy for the hall's seats. The active flag is not part of the
// update surface; it carries over from the stored record (deactivation
// goes through Delete).
func (s *HallService) Update(ctx context.Context, h *model.Hall) error {
	h.Capacity = uint32(layout.NormalizeCapacity(int(h.Capacity)))
	prev, err := s.halls.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	h.IsActive = prev.IsActive
	if prev.Capacity != h.Capacity {
		s.graph.RemoveHall(h.ID)
		l, _ := s.graph.PopulateHall(h.ID, int(h.Capacity))
		h.SeatingLayout = l.Summary()
	} else {
		h.SeatingLayout = prev.SeatingLayout
	}
	return s.halls.Update(ctx, h)
}

// Delete removes a hall and drops its seats from the graph.
func (s *HallService) Delete(ctx context.Context, id uint64) error {
	if err := s.halls.Delete(ctx, id); err != nil {
		return err
	}
	s.graph.RemoveHall(id)
	return nil
}

// EnsureHall resolves a hall and populates its seats into the graph if
// they are not there yet (e.g. after a restart before warm-up finished).
func (s *HallService) EnsureHall(ctx context.Context, hallID uint64) (*model.Hall, error) {
	h, err := s.halls.GetByID(ctx, hallID)
	if err != nil {
		return nil, err
	}
	if s.graph.HasSeats(hallID) {
		return h, nil
	}
	unlock := s.locks.lock("hall/" + strconv.FormatUint(hallID, 10))
	defer unlock()
	if !s.graph.HasSeats(hallID) {
		s.graph.PopulateHall(hallID, int(h.Capacity))
	}
	return h, nil
}

// SeatingChart returns the hall's seat grid for a screening, with each
// seat marked occupied or free.
func (s *HallService) SeatingChart(ctx context.Context, hallID, scheduleID uint64) ([][]string, error) {
	if _, err := s.EnsureHall(ctx, hallID); err != nil {
		return nil, err
	}
	return s.graph.SeatingChart(hallID, scheduleID), nil
}

// SuggestSeats finds the best run of count adjacent free seats for a
// screening. An empty slice means no such run exists.
func (s *HallService) SuggestSeats(ctx context.Context, hallID, scheduleID uint64, count int) ([]seatgraph.Seat, error) {
	if _, err := s.EnsureHall(ctx, hallID); err != nil {
		return nil, err
	}
	return s.graph.FindBestAdjacentSeats(hallID, scheduleID, count), nil
}

// AvailableSeats lists the free seats of a hall for a screening.
func (s *HallService) AvailableSeats(ctx context.Context, hallID, scheduleID uint64) ([]seatgraph.Seat, error) {
	if _, err := s.EnsureHall(ctx, hallID); err != nil {
		return nil, err
	}
	return s.graph.AvailableSeats(hallID, scheduleID), nil
}
