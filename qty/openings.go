package qty

import (
	"math"

	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/units"
)

// Opening is one door or window line item. Count and sizes usually come
// from a client-supplied schedule; RatePerM2 overrides the price book
// when positive.
type Opening struct {
	Type      string  `json:"type"`
	WidthMm   float64 `json:"width_mm"`
	HeightMm  float64 `json:"height_mm"`
	Count     int     `json:"count"`
	RatePerM2 float64 `json:"rate_per_m2"`
}

// OpeningLine is an Opening with its computed area and cost.
type OpeningLine struct {
	Opening
	AreaM2Each float64 `json:"area_m2_each"`
	RatePerM2  float64 `json:"rate_per_m2"`
	Amount     float64 `json:"amount"`
}

// OpeningsSchedule is the input schedule of doors and windows.
type OpeningsSchedule struct {
	Doors   []Opening `json:"doors"`
	Windows []Opening `json:"windows"`
}

// DefaultOpeningsSchedule returns the common residential starter
// schedule with zero counts, meant for the client to fill in.
func DefaultOpeningsSchedule() OpeningsSchedule {
	return OpeningsSchedule{
		Doors: []Opening{
			{Type: "D1", WidthMm: 900, HeightMm: 2100},
			{Type: "D2", WidthMm: 750, HeightMm: 2100},
		},
		Windows: []Opening{
			{Type: "W1", WidthMm: 1200, HeightMm: 1200},
			{Type: "W2", WidthMm: 900, HeightMm: 900},
		},
	}
}

// Openings is the doors-and-windows takeoff result.
type Openings struct {
	Doors   []OpeningLine `json:"doors"`
	Windows []OpeningLine `json:"windows"`
	Totals  struct {
		DoorsAmount   float64 `json:"doors_amount"`
		WindowsAmount float64 `json:"windows_amount"`
		TotalAmount   float64 `json:"total_amount"`
	} `json:"totals"`
}

// TotalAreaM2 sums area times count over every line.
func (o *Openings) TotalAreaM2() float64 {
	var total float64
	for _, it := range o.Doors {
		total += it.AreaM2Each * float64(it.Count)
	}
	for _, it := range o.Windows {
		total += it.AreaM2Each * float64(it.Count)
	}
	return round2(total)
}

// ComputeOpenings prices a doors-and-windows schedule against the book.
// Line rates win over book rates, keyed by opening type.
func ComputeOpenings(sched OpeningsSchedule, book *pricing.Book) *Openings {
	out := &Openings{}
	var doorRates, windowRates map[string]float64
	if book != nil {
		doorRates = book.Doors
		windowRates = book.Windows
	}
	out.Doors, out.Totals.DoorsAmount = priceOpenings(sched.Doors, doorRates)
	out.Windows, out.Totals.WindowsAmount = priceOpenings(sched.Windows, windowRates)
	out.Totals.TotalAmount = round2(out.Totals.DoorsAmount + out.Totals.WindowsAmount)
	return out
}

func priceOpenings(items []Opening, rates map[string]float64) ([]OpeningLine, float64) {
	lines := make([]OpeningLine, 0, len(items))
	var total float64
	for _, it := range items {
		areaEach := units.MmToMeters(it.WidthMm) * units.MmToMeters(it.HeightMm)
		rate := it.RatePerM2
		if rate <= 0 {
			rate = pricing.Rate(rates, it.Type, 0)
		}
		amount := round2(areaEach * float64(it.Count) * rate)
		total += amount
		lines = append(lines, OpeningLine{
			Opening:    it,
			AreaM2Each: round3(areaEach),
			RatePerM2:  round2(rate),
			Amount:     amount,
		})
	}
	return lines, round2(total)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
