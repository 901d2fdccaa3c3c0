package qty

import (
	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/units"
)

// ExtrasOptions extends the masonry takeoff with paint, basic steel and
// labor. All cost factors default to zero and fall back to the IN price
// table when left unset.
type ExtrasOptions struct {
	IntCoats          int     `json:"int_coats"`
	ExtCoats          int     `json:"ext_coats"`
	CoverageM2PerL    float64 `json:"coverage_m2_per_liter"`
	IntOpeningsM2     float64 `json:"int_openings_m2"`
	ExtOpeningsM2     float64 `json:"ext_openings_m2"`
	LintelLengthM     float64 `json:"lintel_length_m"`
	LintelKgPerM      float64 `json:"lintel_kg_per_m"`
	SunshadeAreaM2    float64 `json:"sunshade_area_m2"`
	SunshadeKgPerM2   float64 `json:"sunshade_kg_per_m2"`
	StairAreaM2       float64 `json:"stair_area_m2"`
	StairKgPerM2      float64 `json:"stair_kg_per_m2"`
	LaborBrickPerM3   float64 `json:"labor_brickwork_per_m3"`
	LaborPlasterPerM2 float64 `json:"labor_plaster_per_m2"`
	LaborPaintPerM2C  float64 `json:"labor_paint_per_m2_per_coat"`
}

// DefaultExtrasOptions returns the standard assumptions: two coats inside
// and out, 10 m2/liter coverage, thumb-rule steel factors.
func DefaultExtrasOptions() ExtrasOptions {
	return ExtrasOptions{
		IntCoats:        2,
		ExtCoats:        2,
		CoverageM2PerL:  10,
		LintelKgPerM:    4,
		SunshadeKgPerM2: 12,
		StairKgPerM2:    25,
	}
}

// Paint is the paint takeoff section.
type Paint struct {
	InteriorAreaM2 float64 `json:"interior_area_m2"`
	ExteriorAreaM2 float64 `json:"exterior_area_m2"`
	InteriorCoats  int     `json:"interior_coats"`
	ExteriorCoats  int     `json:"exterior_coats"`
	CoverageM2PerL float64 `json:"coverage_m2_per_liter"`
	InteriorLiters float64 `json:"interior_liters"`
	ExteriorLiters float64 `json:"exterior_liters"`
	TotalLiters    float64 `json:"total_liters"`
}

// Steel is the thumb-rule steel section.
type Steel struct {
	LintelKg   float64 `json:"lintel_kg"`
	SunshadeKg float64 `json:"sunshade_kg"`
	StairKg    float64 `json:"stair_kg"`
	TotalKg    float64 `json:"total_steel_kg"`
}

// Labor is the masonry labor section.
type Labor struct {
	BrickworkM3       float64 `json:"brickwork_m3"`
	PlasterM2         float64 `json:"plaster_m2"`
	PaintM2TotalCoats float64 `json:"paint_m2_total_coats"`
	BrickworkCost     float64 `json:"brickwork_cost"`
	PlasterCost       float64 `json:"plaster_cost"`
	PaintCost         float64 `json:"paint_cost"`
	Total             float64 `json:"total_labor"`
}

// Totals is the per-mode cost roll-up shared by the India and USA results.
type Totals struct {
	Materials  float64 `json:"materials_cost_subtotal"`
	LaborCost  float64 `json:"labor_cost_subtotal"`
	GrandTotal float64 `json:"grand_total"`
}

// IndiaTotal merges the base masonry takeoff with the extras.
type IndiaTotal struct {
	Base   *IndiaQuantities   `json:"base"`
	Paint  Paint              `json:"paint"`
	Steel  Steel              `json:"steel_basic"`
	Labor  Labor              `json:"labor"`
	Cost   map[string]float64 `json:"cost_optional,omitempty"`
	Totals Totals             `json:"totals"`
}

// ComputeIndiaExtras extends base with paint, steel and labor, then rolls
// the mode totals up. The rates table may be nil.
func ComputeIndiaExtras(base *IndiaQuantities, opts ExtrasOptions, rates map[string]float64) *IndiaTotal {
	opts = fillExtrasDefaults(opts)
	out := &IndiaTotal{Base: base}

	heightM := base.Derived.HeightM
	intArea := units.ClampNonNeg(base.Derived.SumInteriorM*heightM - opts.IntOpeningsM2)
	extArea := units.ClampNonNeg(base.Derived.SumExteriorM*heightM - opts.ExtOpeningsM2)

	cov := opts.CoverageM2PerL
	if cov <= 0 {
		cov = 0.0001
	}
	out.Paint = Paint{
		InteriorAreaM2: intArea,
		ExteriorAreaM2: extArea,
		InteriorCoats:  opts.IntCoats,
		ExteriorCoats:  opts.ExtCoats,
		CoverageM2PerL: cov,
		InteriorLiters: intArea * float64(opts.IntCoats) / cov,
		ExteriorLiters: extArea * float64(opts.ExtCoats) / cov,
	}
	out.Paint.TotalLiters = out.Paint.InteriorLiters + out.Paint.ExteriorLiters

	out.Steel = Steel{
		LintelKg:   units.ClampNonNeg(opts.LintelLengthM * opts.LintelKgPerM),
		SunshadeKg: units.ClampNonNeg(opts.SunshadeAreaM2 * opts.SunshadeKgPerM2),
		StairKg:    units.ClampNonNeg(opts.StairAreaM2 * opts.StairKgPerM2),
	}
	out.Steel.TotalKg = out.Steel.LintelKg + out.Steel.SunshadeKg + out.Steel.StairKg

	paintCoatArea := intArea*float64(opts.IntCoats) + extArea*float64(opts.ExtCoats)
	out.Labor = Labor{
		BrickworkM3:       base.Derived.VolBrickworkM3,
		PlasterM2:         base.Plaster.AreaM2,
		PaintM2TotalCoats: paintCoatArea,
	}
	// Explicit factors win; the price table fills whatever is left unset.
	out.Labor.BrickworkCost = laborCost(out.Labor.BrickworkM3, opts.LaborBrickPerM3, rates, "labor_brickwork_per_m3")
	out.Labor.PlasterCost = laborCost(out.Labor.PlasterM2, opts.LaborPlasterPerM2, rates, "labor_plaster_per_m2")
	out.Labor.PaintCost = laborCost(paintCoatArea, opts.LaborPaintPerM2C, rates, "labor_paint_per_m2_per_coat")
	out.Labor.Total = out.Labor.BrickworkCost + out.Labor.PlasterCost + out.Labor.PaintCost

	cost := map[string]float64{}
	for k, v := range base.Cost {
		cost[k] = v
	}
	if r, ok := rates["paint_per_liter"]; ok {
		cost["paint_material"] = out.Paint.TotalLiters * r
	}
	if r, ok := rates["steel_per_kg"]; ok {
		cost["steel_material"] = out.Steel.TotalKg * r
	}
	if len(cost) > 0 {
		out.Cost = cost
	}

	for _, v := range cost {
		out.Totals.Materials += v
	}
	out.Totals.LaborCost = out.Labor.Total
	out.Totals.GrandTotal = out.Totals.Materials + out.Totals.LaborCost
	return out
}

func laborCost(quantity, factor float64, rates map[string]float64, key string) float64 {
	if factor <= 0 {
		factor = pricing.Rate(rates, key, 0)
	}
	return quantity * factor
}

func fillExtrasDefaults(opts ExtrasOptions) ExtrasOptions {
	def := DefaultExtrasOptions()
	if opts.IntCoats == 0 {
		opts.IntCoats = def.IntCoats
	}
	if opts.ExtCoats == 0 {
		opts.ExtCoats = def.ExtCoats
	}
	if opts.CoverageM2PerL == 0 {
		opts.CoverageM2PerL = def.CoverageM2PerL
	}
	if opts.LintelKgPerM == 0 {
		opts.LintelKgPerM = def.LintelKgPerM
	}
	if opts.SunshadeKgPerM2 == 0 {
		opts.SunshadeKgPerM2 = def.SunshadeKgPerM2
	}
	if opts.StairKgPerM2 == 0 {
		opts.StairKgPerM2 = def.StairKgPerM2
	}
	return opts
}
