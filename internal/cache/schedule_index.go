package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/campus-cinema/internal/model"
)

// ScheduleIndex keeps active schedules ordered by start time so browsing
// and time-range queries run off memory. The slice is kept sorted on every
// mutation; with at most a few thousand screenings the linear insert is
// cheaper than maintaining a tree.
type ScheduleIndex struct {
	mu      sync.RWMutex
	ordered []model.Schedule
}

// NewScheduleIndex returns an empty index.
func NewScheduleIndex() *ScheduleIndex {
	return &ScheduleIndex{}
}

func scheduleLess(a, b model.Schedule) bool {
	if !a.StartsAt.Equal(b.StartsAt) {
		return a.StartsAt.Before(b.StartsAt)
	}
	return a.HallID < b.HallID
}

// Put inserts or replaces a schedule, keeping the slice sorted by start
// time then hall.
func (x *ScheduleIndex) Put(s model.Schedule) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.removeLocked(s.ID)
	i := sort.Search(len(x.ordered), func(i int) bool {
		return scheduleLess(s, x.ordered[i])
	})
	x.ordered = append(x.ordered, model.Schedule{})
	copy(x.ordered[i+1:], x.ordered[i:])
	x.ordered[i] = s
}

// Remove drops a schedule from the index (deactivation, hall deletion).
func (x *ScheduleIndex) Remove(id uint64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.removeLocked(id)
}

func (x *ScheduleIndex) removeLocked(id uint64) {
	for i, s := range x.ordered {
		if s.ID == id {
			x.ordered = append(x.ordered[:i], x.ordered[i+1:]...)
			return
		}
	}
}

// Get returns the indexed schedule, if present.
func (x *ScheduleIndex) Get(id uint64) (model.Schedule, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	for _, s := range x.ordered {
		if s.ID == id {
			return s, true
		}
	}
	return model.Schedule{}, false
}

// All returns every indexed schedule in start-time order.
func (x *ScheduleIndex) All() []model.Schedule {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]model.Schedule, len(x.ordered))
	copy(out, x.ordered)
	return out
}

// Range returns schedules starting within [from, to], inclusive at both
// ends, in start-time order. A screening already underway at from is not
// included; this mirrors the durable store's start-time range query.
func (x *ScheduleIndex) Range(from, to time.Time) []model.Schedule {
	x.mu.RLock()
	defer x.mu.RUnlock()
	var out []model.Schedule
	for _, s := range x.ordered {
		if s.StartsAt.After(to) {
			break
		}
		if !s.StartsAt.Before(from) {
			out = append(out, s)
		}
	}
	return out
}

// ByMovie returns the indexed schedules for a movie in start-time order.
func (x *ScheduleIndex) ByMovie(movieID uint64) []model.Schedule {
	return x.filter(func(s model.Schedule) bool { return s.MovieID == movieID })
}

// ByHall returns the indexed schedules for a hall in start-time order.
func (x *ScheduleIndex) ByHall(hallID uint64) []model.Schedule {
	return x.filter(func(s model.Schedule) bool { return s.HallID == hallID })
}

func (x *ScheduleIndex) filter(keep func(model.Schedule) bool) []model.Schedule {
	x.mu.RLock()
	defer x.mu.RUnlock()
	var out []model.Schedule
	for _, s := range x.ordered {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// WarmUp loads a snapshot, replacing the current index.
func (x *ScheduleIndex) WarmUp(all []model.Schedule) {
	sorted := make([]model.Schedule, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scheduleLess(sorted[i], sorted[j])
	})
	x.mu.Lock()
	defer x.mu.Unlock()
	x.ordered = sorted
}

// Len reports the number of indexed schedules.
func (x *ScheduleIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.ordered)
}
