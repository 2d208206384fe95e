package model

import "time"

// Movie represents a film that can be scheduled in a hall. DurationMin is
// required: schedule end times are computed by adding it to the start time.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – movie title.
//  Genre       – free-form genre label used for browsing filters.
//  DurationMin – runtime in minutes (must be > 0).
//  Rating      – age rating label (e.g. PG-13), optional.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Movie struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	DurationMin uint32    `json:"duration_min"`
	Rating      *string   `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
