package service

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/campus-cinema/internal/model"
	"github.com/iliyamo/campus-cinema/internal/repository"
)

// In-memory stand-ins for the repositories so service tests run without a
// database. Each guards its map with a mutex since the booking tests hit
// them from many goroutines.

type fakeScheduleStore struct {
	mu   sync.Mutex
	seq  uint64
	byID map[uint64]model.Schedule
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{byID: make(map[uint64]model.Schedule)}
}

func (f *fakeScheduleStore) Create(_ context.Context, s *model.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	s.ID = f.seq
	s.IsActive = true
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeScheduleStore) GetByID(_ context.Context, id uint64) (*model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrScheduleNotFound
	}
	return &s, nil
}

func (f *fakeScheduleStore) Update(_ context.Context, s *model.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[s.ID]; !ok {
		return repository.ErrScheduleNotFound
	}
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeScheduleStore) Deactivate(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return repository.ErrScheduleNotFound
	}
	s.IsActive = false
	f.byID[id] = s
	return nil
}

func (f *fakeScheduleStore) List(_ context.Context) ([]model.Schedule, error) {
	return f.filter(func(model.Schedule) bool { return true }), nil
}

func (f *fakeScheduleStore) ListActive(_ context.Context) ([]model.Schedule, error) {
	return f.filter(func(s model.Schedule) bool { return s.IsActive }), nil
}

func (f *fakeScheduleStore) ListByMovie(_ context.Context, movieID uint64) ([]model.Schedule, error) {
	return f.filter(func(s model.Schedule) bool { return s.MovieID == movieID }), nil
}

func (f *fakeScheduleStore) ListByHall(_ context.Context, hallID uint64) ([]model.Schedule, error) {
	return f.filter(func(s model.Schedule) bool { return s.HallID == hallID }), nil
}

func (f *fakeScheduleStore) ListActiveByHall(_ context.Context, hallID uint64) ([]model.Schedule, error) {
	return f.filter(func(s model.Schedule) bool { return s.HallID == hallID && s.IsActive }), nil
}

func (f *fakeScheduleStore) filter(keep func(model.Schedule) bool) []model.Schedule {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Schedule
	for _, s := range f.byID {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

type fakeReservationStore struct {
	mu         sync.Mutex
	seq        uint64
	byID       map[uint64]model.Reservation
	failCreate bool
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{byID: make(map[uint64]model.Reservation)}
}

func (f *fakeReservationStore) Create(_ context.Context, v *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("database unavailable")
	}
	f.seq++
	v.ID = f.seq
	f.byID[v.ID] = *v
	return nil
}

func (f *fakeReservationStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	return &v, nil
}

func (f *fakeReservationStore) Cancel(_ context.Context, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok || v.Status == model.ReservationCancelled {
		return false, nil
	}
	v.Status = model.ReservationCancelled
	f.byID[id] = v
	return true, nil
}

func (f *fakeReservationStore) IsSeatReserved(_ context.Context, scheduleID uint64, seatID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.byID {
		if v.ScheduleID == scheduleID && v.SeatID == seatID && v.Status != model.ReservationCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservationStore) ReservedSeats(_ context.Context, scheduleID uint64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var seats []string
	for _, v := range f.byID {
		if v.ScheduleID == scheduleID && v.Status != model.ReservationCancelled {
			seats = append(seats, v.SeatID)
		}
	}
	return seats, nil
}

func (f *fakeReservationStore) ListByStudent(_ context.Context, studentID uint64) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Reservation
	for _, v := range f.byID {
		if v.StudentID == studentID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeReservationStore) List(_ context.Context) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Reservation, 0, len(f.byID))
	for _, v := range f.byID {
		out = append(out, v)
	}
	return out, nil
}

type fakeHallStore struct {
	mu   sync.Mutex
	seq  uint64
	byID map[uint64]model.Hall
}

func newFakeHallStore() *fakeHallStore {
	return &fakeHallStore{byID: make(map[uint64]model.Hall)}
}

func (f *fakeHallStore) Create(_ context.Context, h *model.Hall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	h.ID = f.seq
	h.IsActive = true
	f.byID[h.ID] = *h
	return nil
}

func (f *fakeHallStore) GetByID(_ context.Context, id uint64) (*model.Hall, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrHallNotFound
	}
	return &h, nil
}

func (f *fakeHallStore) Update(_ context.Context, h *model.Hall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[h.ID]; !ok {
		return repository.ErrHallNotFound
	}
	f.byID[h.ID] = *h
	return nil
}

func (f *fakeHallStore) UpdateLayout(_ context.Context, id uint64, summary string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.byID[id]
	if !ok {
		return repository.ErrHallNotFound
	}
	h.SeatingLayout = summary
	f.byID[id] = h
	return nil
}

func (f *fakeHallStore) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrHallNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeHallStore) List(_ context.Context) ([]model.Hall, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Hall, 0, len(f.byID))
	for _, h := range f.byID {
		out = append(out, h)
	}
	return out, nil
}

type fakeStudentStore struct {
	mu       sync.Mutex
	students []model.Student
}

func (f *fakeStudentStore) List(_ context.Context) ([]model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Student, len(f.students))
	copy(out, f.students)
	return out, nil
}

type fakeMovieStore struct {
	mu   sync.Mutex
	seq  uint64
	byID map[uint64]model.Movie
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{byID: make(map[uint64]model.Movie)}
}

func (f *fakeMovieStore) add(title string, durationMin uint32) model.Movie {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	m := model.Movie{ID: f.seq, Title: title, DurationMin: durationMin}
	f.byID[m.ID] = m
	return m
}

func (f *fakeMovieStore) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrMovieNotFound
	}
	return &m, nil
}
