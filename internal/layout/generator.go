// Package layout generates deterministic seating layouts for halls. A
// layout is a pure function of the hall capacity: the same capacity always
// yields the same seat positions, tiers and ordering.
package layout

import (
	"fmt"
	"log"
	"math"
	"sort"
)

// Tier classifies a seat for display and pricing purposes.
type Tier string

const (
	TierStandard   Tier = "STANDARD"
	TierPremium    Tier = "PREMIUM"
	TierAccessible Tier = "ACCESSIBLE"
)

// Position is a single generated seat slot. Row is 0-based, Col is 1-based
// (matching the displayed seat number). Positions are returned best-ranked
// first: middle rows and central columns come before edges.
type Position struct {
	Row  int
	Col  int
	Tier Tier
}

// Layout is the realized seating plan for a capacity bucket.
type Layout struct {
	Rows           int
	MaxSeatsPerRow int
	CenterAisle    bool
	Positions      []Position
}

// bucket describes one of the supported standard hall shapes.
type bucket struct {
	capacity    int
	rows        int
	maxSeats    int
	centerAisle bool
}

// Standard capacity buckets in enumeration order. Closest-bucket selection
// for non-standard capacities breaks ties in favor of the earlier entry.
var buckets = []bucket{
	{25, 5, 5, false},
	{50, 5, 10, false},
	{75, 6, 13, true},
	{100, 8, 13, true},
	{150, 10, 16, false},
	{200, 11, 19, true},
}

// NormalizeCapacity snaps an arbitrary capacity to the closest standard
// bucket capacity. Exact matches are returned unchanged.
func NormalizeCapacity(capacity int) int {
	best := buckets[0].capacity
	minDiff := abs(capacity - best)
	for _, b := range buckets[1:] {
		if d := abs(capacity - b.capacity); d < minDiff {
			minDiff = d
			best = b.capacity
		}
	}
	return best
}

// Generate produces the seating layout for the given capacity. Non-standard
// capacities are normalized to the closest bucket first. Some buckets are
// known-lossy: the curved rows and the center aisle remove more slots than
// the declared capacity accounts for, so fewer seats than `capacity` may be
// produced. That mismatch is logged as a warning and is not an error.
func Generate(capacity int) Layout {
	capacity = NormalizeCapacity(capacity)
	b := bucketFor(capacity)

	l := Layout{Rows: b.rows, MaxSeatsPerRow: b.maxSeats, CenterAisle: b.centerAisle}

	// Generate all candidate positions row by row.
	var positions []Position
	for i := 0; i < b.rows; i++ {
		w := rowWidth(b, capacity, i)
		leftPad := (b.maxSeats - w) / 2
		for j := 0; j < w; j++ {
			col := leftPad + j + 1
			if b.centerAisle && w >= 8 {
				mid := b.maxSeats / 2
				if col == mid {
					// The middle column is the aisle.
					continue
				}
				if col > mid {
					col++
				}
			}
			positions = append(positions, Position{Row: i, Col: col})
		}
	}

	// Rank every candidate by distance from the grid center so that the
	// best seats come first; trim overproduction to exactly `capacity`.
	idealRow := b.rows / 2
	idealCol := b.maxSeats / 2
	sort.SliceStable(positions, func(x, y int) bool {
		sx := abs(positions[x].Row-idealRow)*100 + abs(positions[x].Col-idealCol)
		sy := abs(positions[y].Row-idealRow)*100 + abs(positions[y].Col-idealCol)
		return sx < sy
	})
	if len(positions) > capacity {
		positions = positions[:capacity]
	}

	for i := range positions {
		positions[i].Tier = tierFor(b, capacity, positions[i].Row, positions[i].Col)
	}
	l.Positions = positions

	if len(positions) != capacity {
		log.Printf("layout: generated %d seats for capacity %d (known-lossy bucket)", len(positions), capacity)
	}
	return l
}

// Summary renders the persisted layout description, e.g. "Rows:5,Seats:5"
/// or "Rows:8,Seats:13,CenterAisle:true".
func (l Layout) Summary() string {
	s := fmt.Sprintf("Rows:%d,Seats:%d", l.Rows, l.MaxSeatsPerRow)
	if l.CenterAisle {
		s += ",CenterAisle:true"
	}
	return s
}

// RowLabel converts a 0-based row index into its letter label (A, B, ...).
func RowLabel(row int) string {
	if row < 26 {
		return string(rune('A' + row))
	}
	// Two-letter labels past Z (AA, AB, ...); no standard bucket needs them
	// but regenerated custom layouts might.
	return string(rune('A'+row/26-1)) + string(rune('A'+row%26))
}

// SeatID builds the display identifier for a position, e.g. "A1".
func SeatID(row, col int) string {
	return fmt.Sprintf("%s%d", RowLabel(row), col)
}

func bucketFor(capacity int) bucket {
	for _, b := range buckets {
		if b.capacity == capacity {
			return b
		}
	}
	return buckets[0]
}

// rowWidth applies the size-dependent per-row seat count rules: small halls
// are uniform, the 150-seat hall has its own two-step taper, and the rest
// curve the first two rows to 80%/90% of the maximum width. Aisle layouts
// force an even width so the aisle splits the row symmetrically.
func rowWidth(b bucket, capacity, row int) int {
	switch capacity {
	case 25:
		return 5
	case 50:
		return 10
	case 150:
		switch {
		case row < 2:
			return 12
		case row < 4:
			return 14
		default:
			return b.maxSeats
		}
	default:
		w := b.maxSeats
		switch row {
		case 0:
			w = int(math.Round(float64(b.maxSeats) * 0.8))
		case 1:
			w = int(math.Round(float64(b.maxSeats) * 0.9))
		}
		if b.centerAisle && w%2 != 0 {
			w--
		}
		return w
	}
}

// tierFor assigns the seat tier using the fixed per-bucket patterns: an
// explicit premium mid-block with corner accessible seats for small and
// medium halls, and a middle-third-rows by central-columns premium band
// with front/back corner accessible seats for the larger ones. Accessible
// placement wins over premium.
func tierFor(b bucket, capacity, row, col int) Tier {
	tier := TierStandard
	switch capacity {
	case 25:
		if row == 2 && col >= 2 && col <= 4 {
			tier = TierPremium
		}
		if (row == 0 || row == 4) && (col == 1 || col == 5) {
			tier = TierAccessible
		}
	case 50:
		if row >= 1 && row <= 3 && col >= 4 && col <= 7 {
			tier = TierPremium
		}
		if (row == 0 || row == 4) && (col == 1 || col == 10) {
			tier = TierAccessible
		}
	default:
		midStart := b.rows / 3
		midEnd := 2 * b.rows / 3
		if row >= midStart && row <= midEnd {
			if float64(col) >= float64(b.maxSeats)*0.2 && float64(col) <= float64(b.maxSeats)*0.8 {
				tier = TierPremium
			}
		}
		if (row == 0 || row == b.rows-1) && (col == 1 || col == b.maxSeats) {
			tier = TierAccessible
		}
	}
	return tier
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
