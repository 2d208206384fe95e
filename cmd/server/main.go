package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-cinema/internal/cache"
	"github.com/iliyamo/campus-cinema/internal/config"
	"github.com/iliyamo/campus-cinema/internal/database"
	"github.com/iliyamo/campus-cinema/internal/handler"
	"github.com/iliyamo/campus-cinema/internal/queue"
	"github.com/iliyamo/campus-cinema/internal/repository"
	"github.com/iliyamo/campus-cinema/internal/router"
	"github.com/iliyamo/campus-cinema/internal/seatgraph"
	"github.com/iliyamo/campus-cinema/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	students := repository.NewStudentRepo(db)
	movies := repository.NewMovieRepo(db)
	halls := repository.NewHallRepo(db)
	schedules := repository.NewScheduleRepo(db)
	reservations := repository.NewReservationRepo(db)

	graph := seatgraph.New()
	scheduleIndex := cache.NewScheduleIndex()
	studentCache := cache.NewStudentCache()
	resvCache := cache.NewReservationCache()

	hallSvc := service.NewHallService(halls, graph)
	availSvc := service.NewAvailabilityService(schedules)
	scheduleSvc := service.NewScheduleService(schedules, movies, hallSvc, availSvc, scheduleIndex)
	publisher := queue.NewPublisher(cfg.RabbitURL)
	booking := service.NewCoordinator(schedules, reservations, hallSvc, movies, graph, resvCache, publisher)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := service.WarmUp(ctx, service.WarmUpDeps{
		Halls:            halls,
		Schedules:        schedules,
		Reservations:     reservations,
		Students:         students,
		Graph:            graph,
		ScheduleIndex:    scheduleIndex,
		StudentCache:     studentCache,
		ReservationCache: resvCache,
	}); err != nil {
		// Non-fatal: halls populate lazily and cache misses hit the DB.
		log.Printf("warmup incomplete: %v", err)
	}
	cancel()

	go func() {
		if err := queue.StartReservationConsumer(cfg.RabbitURL); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, students, studentCache),
		Admin:   handler.NewAdminHandler(movies, students, hallSvc, scheduleSvc),
		Browse:  handler.NewBrowseHandler(hallSvc, scheduleSvc, booking),
		Booking: handler.NewBookingHandler(booking),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
