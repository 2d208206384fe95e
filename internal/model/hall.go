package model

import "time"

// Hall represents a screening hall. Capacity is always one of the standard
// layout capacities (non-standard values are snapped to the closest one
// before the hall is saved). SeatingLayout stores a human-readable summary
// of the generated layout ("Rows:5,Seats:5" or with ",CenterAisle:true")
// written back after seat generation.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – unique hall name.
//  Capacity      – declared seat capacity (standard bucket value).
//  Location      – building/floor description.
//  HallType      – free-form type label (e.g. "standard", "imax").
//  SeatingLayout – layout summary persisted after generation (may be empty
//                  until the first generation runs).
//  IsActive      – whether the hall accepts new schedules.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Hall struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Capacity      uint32    `json:"capacity"`
	Location      string    `json:"location"`
	HallType      string    `json:"hall_type"`
	SeatingLayout string    `json:"seating_layout"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
