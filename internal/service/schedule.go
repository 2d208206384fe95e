package service

import (
	"context"
	"strconv"
	"time"

	"github.com/iliyamo/campus-cinema/internal/cache"
	"github.com/iliyamo/campus-cinema/internal/model"
)

// ScheduleWriter extends ScheduleStore with the mutations and listings the
// schedule service needs.
type ScheduleWriter interface {
	ScheduleStore
	Create(ctx context.Context, s *model.Schedule) error
	Update(ctx context.Context, s *model.Schedule) error
	Deactivate(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]model.Schedule, error)
	ListByMovie(ctx context.Context, movieID uint64) ([]model.Schedule, error)
	ListByHall(ctx context.Context, hallID uint64) ([]model.Schedule, error)
}

// ScheduleService creates and maintains screenings. The end time is always
// derived from the movie's runtime, and every write goes through the
// hall-availability gate under a per-hall lock so two admins cannot
// schedule overlapping shows by racing each other.
type ScheduleService struct {
	schedules ScheduleWriter
	movies    MovieStore
	halls     HallDirectory
	avail     *AvailabilityService
	index     *cache.ScheduleIndex
	locks     *keyedMutex
}

// NewScheduleService constructs a ScheduleService. index may be nil to
// skip the in-memory schedule index.
func NewScheduleService(schedules ScheduleWriter, movies MovieStore, halls HallDirectory, avail *AvailabilityService, index *cache.ScheduleIndex) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		movies:    movies,
		halls:     halls,
		avail:     avail,
		index:     index,
		locks:     newKeyedMutex(),
	}
}

// Create schedules a screening. The window is [startsAt, startsAt+runtime]
// and must not touch any active schedule in the same hall.
func (s *ScheduleService) Create(ctx context.Context, movieID, hallID uint64, startsAt time.Time, priceCents uint32) (*model.Schedule, error) {
	m, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if _, err := s.halls.EnsureHall(ctx, hallID); err != nil {
		return nil, err
	}
	endsAt := startsAt.Add(time.Duration(m.DurationMin) * time.Minute)

	unlock := s.locks.lock(hallKey(hallID))
	defer unlock()

	ok, err := s.avail.IsHallAvailable(ctx, hallID, startsAt, endsAt, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHallConflict
	}

	sched := &model.Schedule{
		MovieID:    movieID,
		HallID:     hallID,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		PriceCents: priceCents,
	}
	if err := s.schedules.Create(ctx, sched); err != nil {
		return nil, err
	}
	if s.index != nil {
		s.index.Put(*sched)
	}
	return sched, nil
}

// Reschedule moves or reprices an existing screening. The availability
// check excludes the schedule itself so a no-op move does not conflict.
func (s *ScheduleService) Reschedule(ctx context.Context, id uint64, startsAt time.Time, priceCents uint32) (*model.Schedule, error) {
	sched, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := s.movies.GetByID(ctx, sched.MovieID)
	if err != nil {
		return nil, err
	}
	endsAt := startsAt.Add(time.Duration(m.DurationMin) * time.Minute)

	unlock := s.locks.lock(hallKey(sched.HallID))
	defer unlock()

	ok, err := s.avail.IsHallAvailable(ctx, sched.HallID, startsAt, endsAt, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHallConflict
	}

	sched.StartsAt = startsAt
	sched.EndsAt = endsAt
	sched.PriceCents = priceCents
	if err := s.schedules.Update(ctx, sched); err != nil {
		return nil, err
	}
	if s.index != nil {
		if sched.IsActive {
			s.index.Put(*sched)
		} else {
			s.index.Remove(sched.ID)
		}
	}
	return sched, nil
}

// Deactivate takes a screening off sale. Existing reservations stay
// untouched; the slot simply stops counting toward hall conflicts.
func (s *ScheduleService) Deactivate(ctx context.Context, id uint64) error {
	if err := s.schedules.Deactivate(ctx, id); err != nil {
		return err
	}
	if s.index != nil {
		s.index.Remove(id)
	}
	return nil
}

// Get returns a schedule by ID.
func (s *ScheduleService) Get(ctx context.Context, id uint64) (*model.Schedule, error) {
	return s.schedules.GetByID(ctx, id)
}

// Browse returns active schedules, optionally filtered by movie, hall or
// an inclusive start-time range. Filtered queries are served from the
// index when one is wired; the zero filter falls through to the repository.
func (s *ScheduleService) Browse(ctx context.Context, movieID, hallID uint64, from, to time.Time) ([]model.Schedule, error) {
	if s.index != nil {
		switch {
		case movieID != 0:
			return s.index.ByMovie(movieID), nil
		case hallID != 0:
			return s.index.ByHall(hallID), nil
		case !from.IsZero() && !to.IsZero():
			return s.index.Range(from, to), nil
		default:
			return s.index.All(), nil
		}
	}
	switch {
	case movieID != 0:
		return s.schedules.ListByMovie(ctx, movieID)
	case hallID != 0:
		return s.schedules.ListByHall(ctx, hallID)
	default:
		return s.schedules.List(ctx)
	}
}

func hallKey(hallID uint64) string {
	return "sched-hall/" + strconv.FormatUint(hallID, 10)
}
