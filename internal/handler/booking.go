package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-cinema/internal/repository"
	"github.com/iliyamo/campus-cinema/internal/service"
)

// BookingHandler exposes reserve, cancel and history endpoints on top of
// the booking coordinator.
type BookingHandler struct {
	Booking *service.Coordinator
}

func NewBookingHandler(booking *service.Coordinator) *BookingHandler {
	if booking == nil {
		panic("nil coordinator passed to NewBookingHandler")
	}
	return &BookingHandler{Booking: booking}
}

type reserveReq struct {
	ScheduleID uint64 `json:"schedule_id"`
	SeatID     string `json:"seat_id"`
}

// Reserve handles POST /v1/reservations. Exactly one of any number of
// concurrent requests for the same seat succeeds; the rest get 409.
func (h *BookingHandler) Reserve(c echo.Context) error {
	studentID, err := ActorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.SeatID = strings.ToUpper(strings.TrimSpace(req.SeatID))
	if req.ScheduleID == 0 || req.SeatID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule_id and seat_id required"})
	}

	v, err := h.Booking.Book(c.Request().Context(), studentID, req.ScheduleID, req.SeatID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrScheduleNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		case errors.Is(err, service.ErrScheduleInactive):
			return c.JSON(http.StatusGone, echo.Map{"error": "schedule is no longer on sale"})
		case errors.Is(err, service.ErrSeatNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found in hall"})
		case errors.Is(err, service.ErrSeatAlreadyReserved):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat already reserved"})
		case errors.Is(err, service.ErrSeatReservationFailed):
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation could not be saved"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	return c.JSON(http.StatusCreated, v)
}

// Cancel handles DELETE /v1/reservations/:id. Students may cancel only
// their own reservations; admins may cancel any. The reservation row is
// kept as history with status CANCELLED.
func (h *BookingHandler) Cancel(c echo.Context) error {
	studentID, err := ActorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	v, err := h.Booking.Cancel(c.Request().Context(), studentID, id, isAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, service.ErrNotOwner):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.JSON(http.StatusOK, v)
}

// MyReservations handles GET /v1/my-reservations, newest first, with
// cancelled rows included as history.
func (h *BookingHandler) MyReservations(c echo.Context) error {
	studentID, err := ActorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Booking.MyReservations(c.Request().Context(), studentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, list)
}
