package qty

import "github.com/vamshi737/smartestimator/pricing"

// FlooringOptions are the flooring takeoff knobs. A zero RatePerM2 falls
// back to the price book's flooring rate.
type FlooringOptions struct {
	Material   string  `json:"material"`
	WastagePct float64 `json:"wastage_pct"`
	RatePerM2  float64 `json:"rate_per_m2"`
}

// DefaultFlooringOptions returns tiles at 7.5% cutting waste.
func DefaultFlooringOptions() FlooringOptions {
	return FlooringOptions{Material: "tiles", WastagePct: 7.5}
}

// Flooring is the flooring takeoff result.
type Flooring struct {
	Material    string  `json:"material"`
	AreaM2      float64 `json:"area_m2"`
	WastagePct  float64 `json:"wastage_pct"`
	RatePerM2   float64 `json:"rate_per_m2"`
	TotalAreaM2 float64 `json:"total_area_m2_with_wastage"`
	Amount      float64 `json:"amount"`
}

// ComputeFlooring prices the floor area with cutting waste applied to
// the area, not the rate.
func ComputeFlooring(areaM2 float64, opts FlooringOptions, book *pricing.Book) *Flooring {
	rate := opts.RatePerM2
	if rate <= 0 && book != nil {
		rate = book.Flooring
	}
	totalArea := areaM2 * (1 + opts.WastagePct/100)
	return &Flooring{
		Material:    opts.Material,
		AreaM2:      round2(areaM2),
		WastagePct:  opts.WastagePct,
		RatePerM2:   round2(rate),
		TotalAreaM2: round2(totalArea),
		Amount:      round2(totalArea * rate),
	}
}
