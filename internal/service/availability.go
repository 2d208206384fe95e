package service

import (
	"context"
	"time"

	"github.com/iliyamo/campus-cinema/internal/model"
)

// ScheduleStore is the slice of the schedule repository the availability
// check and the booking coordinator need. Narrow so tests can supply
// in-memory fakes.
type ScheduleStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Schedule, error)
	ListActiveByHall(ctx context.Context, hallID uint64) ([]model.Schedule, error)
}

// AvailabilityService answers whether a hall is free for a candidate time
// window. Overlap is inclusive at both boundaries: a screening ending at
// 12:00 conflicts with one starting at 12:00, leaving no zero-width gap for
// cleaning between shows.
type AvailabilityService struct {
	schedules ScheduleStore
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(schedules ScheduleStore) *AvailabilityService {
	return &AvailabilityService{schedules: schedules}
}

// IsHallAvailable reports whether the hall has no active schedule
// intersecting [start, end]. excludeID skips one schedule, so an update
// does not collide with the row being updated; pass 0 for a new schedule.
func (s *AvailabilityService) IsHallAvailable(ctx context.Context, hallID uint64, start, end time.Time, excludeID uint64) (bool, error) {
	existing, err := s.schedules.ListActiveByHall(ctx, hallID)
	if err != nil {
		return false, err
	}
	for _, sc := range existing {
		if sc.ID == excludeID {
			continue
		}
		if sc.Overlaps(start, end) {
			return false, nil
		}
	}
	return true, nil
}
