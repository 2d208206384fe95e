package service

import (
	"context"
	"fmt"
	"log"

	"github.com/iliyamo/campus-cinema/internal/cache"
	"github.com/iliyamo/campus-cinema/internal/model"
	"github.com/iliyamo/campus-cinema/internal/seatgraph"
)

// WarmUpDeps bundles everything the boot-time warm-up touches.
type WarmUpDeps struct {
	Halls     HallStore
	Schedules interface {
		ListActive(ctx context.Context) ([]model.Schedule, error)
	}
	Reservations interface {
		List(ctx context.Context) ([]model.Reservation, error)
		ReservedSeats(ctx context.Context, scheduleID uint64) ([]string, error)
	}
	Students interface {
		List(ctx context.Context) ([]model.Student, error)
	}

	Graph            *seatgraph.Graph
	ScheduleIndex    *cache.ScheduleIndex
	StudentCache     *cache.StudentCache
	ReservationCache *cache.ReservationCache
}

// WarmUp rebuilds the in-memory state from the database: seats for every
// hall, occupancy for every active screening, and the three caches. The
// server still works if this fails — halls are populated lazily on first
// use and cache misses fall back to the repositories — so the caller may
// treat an error as a warning.
func WarmUp(ctx context.Context, d WarmUpDeps) error {
	halls, err := d.Halls.List(ctx)
	if err != nil {
		return fmt.Errorf("warmup: list halls: %w", err)
	}
	for _, h := range halls {
		if !d.Graph.HasSeats(h.ID) {
			d.Graph.PopulateHall(h.ID, int(h.Capacity))
		}
	}

	schedules, err := d.Schedules.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("warmup: list schedules: %w", err)
	}
	if d.ScheduleIndex != nil {
		d.ScheduleIndex.WarmUp(schedules)
	}
	for _, sc := range schedules {
		seats, err := d.Reservations.ReservedSeats(ctx, sc.ID)
		if err != nil {
			return fmt.Errorf("warmup: reserved seats for schedule %d: %w", sc.ID, err)
		}
		for _, seatID := range seats {
			if !d.Graph.Reserve(sc.HallID, sc.ID, seatID) {
				log.Printf("warmup: seat %s of hall %d not in generated layout", seatID, sc.HallID)
			}
		}
	}

	if d.StudentCache != nil {
		students, err := d.Students.List(ctx)
		if err != nil {
			return fmt.Errorf("warmup: list students: %w", err)
		}
		d.StudentCache.WarmUp(students)
	}
	if d.ReservationCache != nil {
		all, err := d.Reservations.List(ctx)
		if err != nil {
			return fmt.Errorf("warmup: list reservations: %w", err)
		}
		d.ReservationCache.WarmUp(all)
	}

	log.Printf("warmup: %d halls, %d active schedules loaded", len(halls), len(schedules))
	return nil
}
