// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/campus-cinema/internal/config"
	"github.com/iliyamo/campus-cinema/internal/handler"
	"github.com/iliyamo/campus-cinema/internal/middleware"
	"github.com/iliyamo/campus-cinema/internal/model"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth    *handler.AuthHandler
	Admin   *handler.AdminHandler
	Browse  *handler.BrowseHandler
	Booking *handler.BookingHandler
}

// Register sets up the full route table. Redis-backed middleware (rate
// limiting, response caching) degrades to pass-through when rdb is nil.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb)
	respCache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	// Unauthenticated session endpoints.
	authGroup := e.Group("/v1/auth", limiter)
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)

	// Everything under /v1 requires a valid access token.
	v1 := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), limiter)
	v1.GET("/me", h.Auth.Me)

	// Browsing is open to both roles; list endpoints sit behind the
	// response cache since a few seconds of staleness is acceptable there.
	browse := v1.Group("", middleware.RequireRole(model.RoleStudent, model.RoleAdmin))
	browse.GET("/schedules", h.Browse.ListSchedules, respCache)
	browse.GET("/movies", h.Admin.ListMovies, respCache)
	browse.GET("/halls", h.Admin.ListHalls, respCache)
	browse.GET("/halls/:id/chart", h.Browse.SeatingChart)
	browse.GET("/halls/:id/seats/suggest", h.Browse.SuggestSeats)
	browse.GET("/schedules/:id/seats/reserved", h.Browse.ReservedSeats)

	// Booking endpoints: never cached, both roles allowed.
	browse.POST("/reservations", h.Booking.Reserve)
	browse.DELETE("/reservations/:id", h.Booking.Cancel)
	browse.GET("/my-reservations", h.Booking.MyReservations)

	// Administration.
	admin := v1.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.POST("/movies", h.Admin.CreateMovie)
	admin.PUT("/movies/:id", h.Admin.UpdateMovie)
	admin.DELETE("/movies/:id", h.Admin.DeleteMovie)
	admin.POST("/halls", h.Admin.CreateHall)
	admin.PUT("/halls/:id", h.Admin.UpdateHall)
	admin.DELETE("/halls/:id", h.Admin.DeleteHall)
	admin.POST("/schedules", h.Admin.CreateSchedule)
	admin.PUT("/schedules/:id", h.Admin.UpdateSchedule)
	admin.DELETE("/schedules/:id", h.Admin.DeleteSchedule)
	admin.GET("/students", h.Admin.ListStudents)
}
