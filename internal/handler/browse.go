package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-cinema/internal/repository"
	"github.com/iliyamo/campus-cinema/internal/service"
)

// BrowseHandler serves the read side for students: screenings, seat
// charts, reserved-seat listings and adjacent-seat suggestions.
type BrowseHandler struct {
	Halls     *service.HallService
	Schedules *service.ScheduleService
	Booking   *service.Coordinator
}

func NewBrowseHandler(halls *service.HallService, schedules *service.ScheduleService, booking *service.Coordinator) *BrowseHandler {
	if halls == nil || schedules == nil || booking == nil {
		panic("nil dependency passed to NewBrowseHandler")
	}
	return &BrowseHandler{Halls: halls, Schedules: schedules, Booking: booking}
}

// ListSchedules handles GET /v1/schedules with optional movie_id,
// hall_id, from and to (RFC 3339) filters.
func (h *BrowseHandler) ListSchedules(c echo.Context) error {
	movieID, ok := queryID(c, "movie_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie_id"})
	}
	hallID, ok := queryID(c, "hall_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall_id"})
	}
	var from, to time.Time
	if s := c.QueryParam("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from timestamp"})
		}
		from = t
	}
	if s := c.QueryParam("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to timestamp"})
		}
		to = t
	}

	schedules, err := h.Schedules.Browse(c.Request().Context(), movieID, hallID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list schedules failed"})
	}
	return c.JSON(http.StatusOK, schedules)
}

// SeatingChart handles GET /v1/halls/:id/chart?schedule_id=N. Rows come
// back as string grids with "A1O" free and "A1X" occupied markers; blank
// cells are aisle or trimmed positions.
func (h *BrowseHandler) SeatingChart(c echo.Context) error {
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	scheduleID, err := strconv.ParseUint(c.QueryParam("schedule_id"), 10, 64)
	if err != nil || scheduleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule_id required"})
	}

	chart, err := h.Halls.SeatingChart(c.Request().Context(), hallID, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load chart failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hall_id": hallID, "schedule_id": scheduleID, "chart": chart})
}

// ReservedSeats handles GET /v1/schedules/:id/seats/reserved.
func (h *BrowseHandler) ReservedSeats(c echo.Context) error {
	scheduleID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	seats, err := h.Booking.ReservedSeats(c.Request().Context(), scheduleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reserved seats failed"})
	}
	if seats == nil {
		seats = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"schedule_id": scheduleID, "seats": seats})
}

// SuggestSeats handles GET /v1/halls/:id/seats/suggest?schedule_id=N&count=K
// and returns the best run of adjacent free seats, or 404 when no run of
// that length exists.
func (h *BrowseHandler) SuggestSeats(c echo.Context) error {
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	scheduleID, err := strconv.ParseUint(c.QueryParam("schedule_id"), 10, 64)
	if err != nil || scheduleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule_id required"})
	}
	count, err := strconv.Atoi(c.QueryParam("count"))
	if err != nil || count < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be a positive integer"})
	}

	seats, err := h.Halls.SuggestSeats(c.Request().Context(), hallID, scheduleID, count)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "suggest seats failed"})
	}
	if len(seats) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no adjacent seats available"})
	}
	ids := make([]string, len(seats))
	for i, s := range seats {
		ids[i] = s.ID
	}
	return c.JSON(http.StatusOK, echo.Map{"hall_id": hallID, "schedule_id": scheduleID, "seats": ids})
}
