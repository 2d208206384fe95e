package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-cinema/internal/model"
	"github.com/iliyamo/campus-cinema/internal/repository"
	"github.com/iliyamo/campus-cinema/internal/service"
)

// AdminHandler groups the operations behind the ADMIN role: movie and
// hall catalogs, schedule management and the student roster.
type AdminHandler struct {
	Movies    *repository.MovieRepo
	Students  *repository.StudentRepo
	Halls     *service.HallService
	Schedules *service.ScheduleService
}

func NewAdminHandler(movies *repository.MovieRepo, students *repository.StudentRepo, halls *service.HallService, schedules *service.ScheduleService) *AdminHandler {
	if movies == nil || students == nil || halls == nil || schedules == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Movies: movies, Students: students, Halls: halls, Schedules: schedules}
}

// ----- movies -----

type movieReq struct {
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	DurationMin uint32  `json:"duration_min"`
	Rating      *string `json:"rating"`
}

func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" || req.DurationMin == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and duration_min required"})
	}
	m := &model.Movie{Title: req.Title, Genre: req.Genre, DurationMin: req.DurationMin, Rating: req.Rating}
	if err := h.Movies.Create(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m := &model.Movie{ID: id, Title: req.Title, Genre: req.Genre, DurationMin: req.DurationMin, Rating: req.Rating}
	if err := h.Movies.Update(c.Request().Context(), m); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, m)
}

func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ListMovies(c echo.Context) error {
	var (
		movies []model.Movie
		err    error
	)
	if genre := c.QueryParam("genre"); genre != "" {
		movies, err = h.Movies.ListByGenre(c.Request().Context(), genre)
	} else {
		movies, err = h.Movies.List(c.Request().Context())
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list movies failed"})
	}
	return c.JSON(http.StatusOK, movies)
}

// ----- halls -----

type hallReq struct {
	Name     string `json:"name"`
	Capacity uint32 `json:"capacity"`
	Location string `json:"location"`
	HallType string `json:"hall_type"`
}

// CreateHall persists a hall and generates its seat layout. The requested
// capacity is normalized to the nearest supported layout, so the response
// may report a different capacity than was asked for.
func (h *AdminHandler) CreateHall(c echo.Context) error {
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and capacity required"})
	}
	hall := &model.Hall{Name: req.Name, Capacity: req.Capacity, Location: req.Location, HallType: req.HallType}
	if err := h.Halls.Create(c.Request().Context(), hall); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hall failed"})
	}
	return c.JSON(http.StatusCreated, hall)
}

func (h *AdminHandler) UpdateHall(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	// IsActive is not settable here; the service carries the stored flag.
	hall := &model.Hall{ID: id, Name: req.Name, Capacity: req.Capacity, Location: req.Location, HallType: req.HallType}
	if err := h.Halls.Update(c.Request().Context(), hall); err != nil {
		switch {
		case errors.Is(err, repository.ErrHallNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hall failed"})
	}
	return c.JSON(http.StatusOK, hall)
}

func (h *AdminHandler) DeleteHall(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	if err := h.Halls.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete hall failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ListHalls(c echo.Context) error {
	halls, err := h.Halls.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list halls failed"})
	}
	return c.JSON(http.StatusOK, halls)
}

// ----- schedules -----

type scheduleReq struct {
	MovieID    uint64    `json:"movie_id"`
	HallID     uint64    `json:"hall_id"`
	StartsAt   time.Time `json:"starts_at"`
	PriceCents uint32    `json:"price_cents"`
}

// CreateSchedule books a screening slot. The end time is derived from the
// movie's runtime; overlapping an existing active screening in the same
// hall yields 409.
func (h *AdminHandler) CreateSchedule(c echo.Context) error {
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == 0 || req.HallID == 0 || req.StartsAt.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id, hall_id and starts_at required"})
	}
	sched, err := h.Schedules.Create(c.Request().Context(), req.MovieID, req.HallID, req.StartsAt, req.PriceCents)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMovieNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		case errors.Is(err, repository.ErrHallNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		case errors.Is(err, service.ErrHallConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall already scheduled for this time"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create schedule failed"})
	}
	return c.JSON(http.StatusCreated, sched)
}

type rescheduleReq struct {
	StartsAt   time.Time `json:"starts_at"`
	PriceCents uint32    `json:"price_cents"`
}

func (h *AdminHandler) UpdateSchedule(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	var req rescheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.StartsAt.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at required"})
	}
	sched, err := h.Schedules.Reschedule(c.Request().Context(), id, req.StartsAt, req.PriceCents)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrScheduleNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		case errors.Is(err, service.ErrHallConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall already scheduled for this time"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update schedule failed"})
	}
	return c.JSON(http.StatusOK, sched)
}

// DeleteSchedule deactivates a screening. Reservations on it remain as
// history; the hall slot becomes reusable.
func (h *AdminHandler) DeleteSchedule(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	if err := h.Schedules.Deactivate(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate schedule failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- students -----

func (h *AdminHandler) ListStudents(c echo.Context) error {
	students, err := h.Students.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list students failed"})
	}
	views := make([]studentPart, 0, len(students))
	for i := range students {
		views = append(views, studentView(&students[i]))
	}
	return c.JSON(http.StatusOK, views)
}
