package vision

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/vamshi737/smartestimator/units"
)

// Line is one extracted wall segment in pixel coordinates, as produced by
// an external CAD/line-extraction step.
type Line struct {
	P1       [2]float64 `json:"p1"`
	P2       [2]float64 `json:"p2"`
	LengthPx float64    `json:"length_px"`
}

// ScaledLines is the line-extraction interchange file: segments plus the
// manual scale that relates pixels to a real unit.
type ScaledLines struct {
	Unit     string  `json:"unit"`
	PerPixel float64 `json:"per_pixel"`
	Lines    []Line  `json:"lines"`
}

// ClassifiedLine is one segment after exterior/interior classification.
type ClassifiedLine struct {
	Index    int        `json:"index"`
	P1       [2]float64 `json:"p1"`
	P2       [2]float64 `json:"p2"`
	AngleDeg float64    `json:"angle_deg"`
	LengthPx float64    `json:"length_px"`
	Length   float64    `json:"length"`
	Class    string     `json:"class"`
}

// LineMetrics summarizes classified wall segments in the scale unit.
type LineMetrics struct {
	Unit          string           `json:"unit"`
	PerPixel      float64          `json:"per_pixel"`
	MarginPx      float64          `json:"margin_px"`
	ImageW        float64          `json:"image_w"`
	ImageH        float64          `json:"image_h"`
	Exterior      []ClassifiedLine `json:"exterior"`
	Interior      []ClassifiedLine `json:"interior"`
	SumAll        float64          `json:"sum_all"`
	SumExterior   float64          `json:"sum_exterior"`
	SumInterior   float64          `json:"sum_interior"`
	BBoxPerimeter float64          `json:"bbox_perimeter"`
}

// LoadScaledLines reads a scaled-lines JSON file.
func LoadScaledLines(path string) (*ScaledLines, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vision: cannot read lines file: %w", err)
	}
	var sl ScaledLines
	if err := json.Unmarshal(raw, &sl); err != nil {
		return nil, fmt.Errorf("vision: bad lines file %s: %w", path, err)
	}
	if sl.PerPixel <= 0 {
		return nil, fmt.Errorf("vision: %s: per_pixel must be positive", path)
	}
	return &sl, nil
}

// ClassifyLines splits segments into exterior and interior walls and totals
// their real-unit lengths. A segment is exterior when either endpoint lies
// within marginPx of the image border. The bounding-box perimeter is a
// starter envelope figure, kept for parity with the area metrics.
func ClassifyLines(sl *ScaledLines, imageW, imageH, marginPx float64) *LineMetrics {
	m := &LineMetrics{
		Unit:     sl.Unit,
		PerPixel: sl.PerPixel,
		MarginPx: marginPx,
		ImageW:   imageW,
		ImageH:   imageH,
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, l := range sl.Lines {
		lengthPx := math.Hypot(l.P2[0]-l.P1[0], l.P2[1]-l.P1[1])
		length := lengthPx * sl.PerPixel
		rec := ClassifiedLine{
			Index:    i,
			P1:       l.P1,
			P2:       l.P2,
			AngleDeg: round2(angleDeg(l.P1, l.P2)),
			LengthPx: round2(lengthPx),
			Length:   round3(length),
		}
		if nearBorder(l.P1, imageW, imageH, marginPx) || nearBorder(l.P2, imageW, imageH, marginPx) {
			rec.Class = "exterior"
			m.Exterior = append(m.Exterior, rec)
			m.SumExterior += length
		} else {
			rec.Class = "interior"
			m.Interior = append(m.Interior, rec)
			m.SumInterior += length
		}
		m.SumAll += length
		for _, p := range [][2]float64{l.P1, l.P2} {
			minX = math.Min(minX, p[0])
			maxX = math.Max(maxX, p[0])
			minY = math.Min(minY, p[1])
			maxY = math.Max(maxY, p[1])
		}
	}
	if len(sl.Lines) > 0 {
		m.BBoxPerimeter = round3(2 * ((maxX - minX) + (maxY - minY)) * sl.PerPixel)
	}
	m.SumAll = round3(m.SumAll)
	m.SumExterior = round3(m.SumExterior)
	m.SumInterior = round3(m.SumInterior)
	return m
}

// WallTotals converts classified line totals to the feet-based wall metrics
// the takeoff packages consume.
func (m *LineMetrics) WallTotals() (*WallMetrics, error) {
	ext, err := toFeet(m.SumExterior, m.Unit)
	if err != nil {
		return nil, err
	}
	intr, err := toFeet(m.SumInterior, m.Unit)
	if err != nil {
		return nil, err
	}
	return &WallMetrics{
		SumExteriorFt:    round3(ext),
		SumInteriorFt:    round3(intr),
		TotalPerimeterFt: round3(ext + intr),
	}, nil
}

func toFeet(v float64, unit string) (float64, error) {
	switch unit {
	case "ft", "feet", "foot", "":
		return v, nil
	case "m", "meter", "metre", "meters", "metres":
		return units.MetersToFeet(v), nil
	default:
		return 0, fmt.Errorf("vision: unsupported wall unit %q", unit)
	}
}

func nearBorder(p [2]float64, w, h, margin float64) bool {
	return p[0] <= margin || p[0] >= w-margin || p[1] <= margin || p[1] >= h-margin
}

// angleDeg normalizes a segment direction to [0, 180).
func angleDeg(p1, p2 [2]float64) float64 {
	a := math.Atan2(p2[1]-p1[1], p2[0]-p1[0]) * 180 / math.Pi
	return math.Mod(a+180, 180)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
