package vision

import (
	"math"

	"github.com/vamshi737/smartestimator/units"
)

// Room is one rectangular room derived from plan dimensions.
type Room struct {
	ID       int     `json:"id"`
	WidthFt  float64 `json:"width_ft"`
	HeightFt float64 `json:"height_ft"`
	AreaSqft float64 `json:"area_sqft"`
}

// AreaMetrics is the floor-area view of the derived geometry.
type AreaMetrics struct {
	Rooms         []Room  `json:"rooms"`
	TotalAreaSqft float64 `json:"total_area_sqft"`
}

// WallSegment is the perimeter record for one room.
type WallSegment struct {
	ID          int     `json:"id"`
	WidthFt     float64 `json:"width_ft"`
	HeightFt    float64 `json:"height_ft"`
	PerimeterFt float64 `json:"perimeter_ft"`
}

// WallMetrics is the wall-length view of the derived geometry. The largest
// room is treated as the building envelope: its perimeter is exterior wall,
// everything else is interior partition. Totals feed the takeoff packages.
type WallMetrics struct {
	Segments         []WallSegment `json:"segments"`
	TotalPerimeterFt float64       `json:"total_perimeter_ft"`
	SumExteriorFt    float64       `json:"sum_exterior_ft"`
	SumInteriorFt    float64       `json:"sum_interior_ft"`
}

// Rectangles maps parsed dimensions to room rectangles in feet. Explicit
// WxH pairs become rectangles directly. Loose scalar values pair up in
// reading order; an odd leftover becomes a square. An empty dimension set
// falls back to a single 10x10 room so downstream totals are never zero.
func Rectangles(dims []units.Dimension) [][2]float64 {
	var rects [][2]float64
	var singles []float64
	for _, d := range dims {
		if d.Pair != nil {
			rects = append(rects, *d.Pair)
		} else if d.Feet > 0 {
			singles = append(singles, d.Feet)
		}
	}
	for i := 0; i < len(singles); i += 2 {
		a := singles[i]
		b := a // square fallback for the odd element out
		if i+1 < len(singles) {
			b = singles[i+1]
		}
		rects = append(rects, [2]float64{a, b})
	}
	if len(rects) == 0 {
		rects = [][2]float64{{10, 10}}
	}
	return rects
}

// BuildAreaMetrics computes per-room and total floor areas.
func BuildAreaMetrics(rects [][2]float64) *AreaMetrics {
	m := &AreaMetrics{}
	for i, r := range rects {
		area := r[0] * r[1]
		m.Rooms = append(m.Rooms, Room{
			ID:       i + 1,
			WidthFt:  r[0],
			HeightFt: r[1],
			AreaSqft: round3(area),
		})
		m.TotalAreaSqft += area
	}
	m.TotalAreaSqft = round3(m.TotalAreaSqft)
	return m
}

// BuildWallMetrics computes per-room perimeters and splits the total into
// exterior and interior wall lengths.
func BuildWallMetrics(rects [][2]float64) *WallMetrics {
	m := &WallMetrics{}
	largest := -1
	largestArea := 0.0
	for i, r := range rects {
		perim := 2 * (r[0] + r[1])
		m.Segments = append(m.Segments, WallSegment{
			ID:          i + 1,
			WidthFt:     r[0],
			HeightFt:    r[1],
			PerimeterFt: round3(perim),
		})
		m.TotalPerimeterFt += perim
		if area := r[0] * r[1]; area > largestArea {
			largestArea = area
			largest = i
		}
	}
	for i, s := range m.Segments {
		if i == largest {
			m.SumExteriorFt += s.PerimeterFt
		} else {
			m.SumInteriorFt += s.PerimeterFt
		}
	}
	m.TotalPerimeterFt = round3(m.TotalPerimeterFt)
	m.SumExteriorFt = round3(m.SumExteriorFt)
	m.SumInteriorFt = round3(m.SumInteriorFt)
	return m
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
