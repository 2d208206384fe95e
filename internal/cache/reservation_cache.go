// Package cache holds the in-memory lookup accelerators kept in front of
// the database: a reservation cache, a sorted schedule index and a student
// cache. All structures are guarded by their own RWMutex and are safe for
// concurrent use. They are write-through: mutations land in the database
// first and are mirrored here afterwards, so a miss always falls back to
// the repository.
package cache

import (
	"sync"

	"github.com/iliyamo/campus-cinema/internal/model"
)

// ReservationCache indexes reservations by ID and by student so the hot
// read paths (ticket lookup, "my reservations") skip the database.
type ReservationCache struct {
	mu        sync.RWMutex
	byID      map[uint64]model.Reservation
	byStudent map[uint64][]uint64
}

// NewReservationCache returns an empty cache.
func NewReservationCache() *ReservationCache {
	return &ReservationCache{
		byID:      make(map[uint64]model.Reservation),
		byStudent: make(map[uint64][]uint64),
	}
}

// Put stores or replaces a reservation.
func (c *ReservationCache) Put(v model.Reservation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, seen := c.byID[v.ID]; !seen {
		c.byStudent[v.StudentID] = append(c.byStudent[v.StudentID], v.ID)
	}
	c.byID[v.ID] = v
}

// Get returns the cached reservation, if present.
func (c *ReservationCache) Get(id uint64) (model.Reservation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.byID[id]
	return v, ok
}

// MarkCancelled flips the cached status without touching anything else.
// A miss is fine; the next Get falls through to the repository.
func (c *ReservationCache) MarkCancelled(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.byID[id]; ok {
		v.Status = model.ReservationCancelled
		c.byID[id] = v
	}
}

// ByStudent returns the student's cached reservations, newest first.
func (c *ReservationCache) ByStudent(studentID uint64) []model.Reservation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := c.byStudent[studentID]
	result := make([]model.Reservation, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if v, ok := c.byID[ids[i]]; ok {
			result = append(result, v)
		}
	}
	return result
}

// WarmUp loads a snapshot, replacing whatever was cached. The slice is
// expected newest first (repository order); insertion order is reversed so
// ByStudent keeps returning newest first.
func (c *ReservationCache) WarmUp(all []model.Reservation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[uint64]model.Reservation, len(all))
	c.byStudent = make(map[uint64][]uint64)
	for i := len(all) - 1; i >= 0; i-- {
		v := all[i]
		c.byID[v.ID] = v
		c.byStudent[v.StudentID] = append(c.byStudent[v.StudentID], v.ID)
	}
}

// Len reports the number of cached reservations.
func (c *ReservationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}
