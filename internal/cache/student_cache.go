package cache

import (
	"sync"

	"github.com/iliyamo/campus-cinema/internal/model"
)

// StudentCache keeps student records by ID for the auth middleware and the
// booking path, which resolve the acting student on every request.
type StudentCache struct {
	mu   sync.RWMutex
	byID map[uint64]model.Student
}

// NewStudentCache returns an empty cache.
func NewStudentCache() *StudentCache {
	return &StudentCache{byID: make(map[uint64]model.Student)}
}

// Put stores or replaces a student.
func (c *StudentCache) Put(s model.Student) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[s.ID] = s
}

// Get returns the cached student, if present.
func (c *StudentCache) Get(id uint64) (model.Student, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byID[id]
	return s, ok
}

// Remove drops a student from the cache.
func (c *StudentCache) Remove(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byID, id)
}

// WarmUp loads a snapshot, replacing whatever was cached.
func (c *StudentCache) WarmUp(all []model.Student) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[uint64]model.Student, len(all))
	for _, s := range all {
		c.byID[s.ID] = s
	}
}

// Len reports the number of cached students.
func (c *StudentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}
