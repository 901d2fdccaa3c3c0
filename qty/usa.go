package qty

import (
	"fmt"
	"math"

	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/units"
)

// USAOptions are the timber-framing takeoff knobs.
type USAOptions struct {
	HeightFt             float64 `json:"height_ft"`
	SpacingIn            int     `json:"spacing_in"`
	StudSize             string  `json:"stud_size"`
	StudWastagePct       float64 `json:"stud_wastage_pct"`
	PlateStockFt         int     `json:"plate_stock_ft"`
	PlateWastagePct      float64 `json:"plate_wastage_pct"`
	SheathSheet          string  `json:"sheath_sheet"`
	DrywallSheet         string  `json:"drywall_sheet"`
	SheathWastagePct     float64 `json:"sheath_wastage_pct"`
	DrywallWastagePct    float64 `json:"drywall_wastage_pct"`
	OpeningsExtSqft      float64 `json:"openings_ext_sqft"`
	OpeningsIntSqft      float64 `json:"openings_int_sqft"`
	InsulCoverageSqft    float64 `json:"insul_coverage_sqft_per_pack"`
	InsulWastagePct      float64 `json:"insul_wastage_pct"`
	StudNailsPerStud     int     `json:"stud_nails_per_stud"`
	SheathFastPerSheet   int     `json:"sheath_fasteners_per_sheet"`
	DrywallScrewPerSheet int     `json:"drywall_screws_per_sheet"`
	LaborFramePerStud    float64 `json:"labor_frame_per_stud"`
	LaborSheathPerSheet  float64 `json:"labor_sheath_per_sheet"`
	LaborDrywallPerSheet float64 `json:"labor_drywall_per_sheet"`
	LaborInsulPerPack    float64 `json:"labor_insul_per_pack"`
}

// DefaultUSAOptions returns a 2x4 wall at 16" on center with 4x8
// sheathing, 4x12 drywall and 10% waste on lumber and sheets.
func DefaultUSAOptions(heightFt float64) USAOptions {
	return USAOptions{
		HeightFt:             heightFt,
		SpacingIn:            16,
		StudSize:             "2x4",
		StudWastagePct:       10,
		PlateStockFt:         12,
		PlateWastagePct:      10,
		SheathSheet:          "4x8",
		DrywallSheet:         "4x12",
		SheathWastagePct:     10,
		DrywallWastagePct:    10,
		InsulCoverageSqft:    40,
		InsulWastagePct:      5,
		StudNailsPerStud:     8,
		SheathFastPerSheet:   40,
		DrywallScrewPerSheet: 32,
	}
}

// USAQuantities is the framing takeoff result.
type USAQuantities struct {
	Inputs  USAOptions `json:"inputs"`
	Framing struct {
		StudsTotal int `json:"studs_total"`
	} `json:"framing"`
	Plates struct {
		LfBase      float64 `json:"lf_base"`
		LfWithWaste float64 `json:"lf_with_waste"`
		StockFt     float64 `json:"stock_length_ft"`
		Pieces      int     `json:"pieces"`
	} `json:"plates"`
	Sheathing struct {
		AreaSqft float64 `json:"area_sqft"`
		Sheet    string  `json:"sheet"`
		Sheets   int     `json:"sheets"`
	} `json:"sheathing"`
	Drywall struct {
		AreaSqft float64 `json:"area_sqft"`
		Sheet    string  `json:"sheet"`
		Sheets   int     `json:"sheets"`
	} `json:"drywall"`
	Insulation struct {
		AreaSqft     float64 `json:"area_sqft"`
		Packs        int     `json:"packs"`
		CoverageSqft float64 `json:"coverage_sqft_per_pack"`
	} `json:"insulation"`
	Fasteners struct {
		StudNails       int `json:"stud_nails"`
		SheathFasteners int `json:"sheath_fasteners"`
		DrywallScrews   int `json:"drywall_screws"`
	} `json:"fasteners"`
	LaborCost map[string]float64 `json:"labor"`
	Cost      map[string]float64 `json:"cost_optional"`
	Totals    Totals             `json:"totals"`
}

func sheetAreaSqft(sheet string) (float64, error) {
	switch sheet {
	case "4x8":
		return 32, nil
	case "4x12":
		return 48, nil
	default:
		return 0, fmt.Errorf("qty: unknown sheet size %q", sheet)
	}
}

// ComputeUSA runs the framing takeoff. The rates table may be nil.
func ComputeUSA(walls WallLengths, opts USAOptions, rates map[string]float64) (*USAQuantities, error) {
	opts = fillUSADefaults(opts)
	if opts.HeightFt <= 0 {
		return nil, fmt.Errorf("qty: usa wall height must be positive, got %v", opts.HeightFt)
	}
	if opts.SpacingIn != 16 && opts.SpacingIn != 24 {
		return nil, fmt.Errorf("qty: stud spacing must be 16 or 24 in, got %d", opts.SpacingIn)
	}
	if opts.StudSize != "2x4" && opts.StudSize != "2x6" {
		return nil, fmt.Errorf("qty: stud size must be 2x4 or 2x6, got %q", opts.StudSize)
	}
	sheathArea, err := sheetAreaSqft(opts.SheathSheet)
	if err != nil {
		return nil, err
	}
	dwArea, err := sheetAreaSqft(opts.DrywallSheet)
	if err != nil {
		return nil, err
	}

	q := &USAQuantities{Inputs: opts}
	totalLenFt := walls.ExteriorFt + walls.InteriorFt
	height := opts.HeightFt

	// Line studs: one per spacing interval plus the end stud; the wastage
	// percentage stands in for corners, tees and culls.
	baseStuds := math.Floor(totalLenFt*12/float64(opts.SpacingIn)) + 1
	q.Framing.StudsTotal = int(math.Ceil(baseStuds * (1 + opts.StudWastagePct/100)))

	// Bottom plate plus a doubled top plate.
	q.Plates.LfBase = totalLenFt * 3
	q.Plates.LfWithWaste = q.Plates.LfBase * (1 + opts.PlateWastagePct/100)
	q.Plates.StockFt = float64(opts.PlateStockFt)
	q.Plates.Pieces = int(math.Ceil(q.Plates.LfWithWaste / q.Plates.StockFt))

	// Sheathing covers exterior walls only.
	q.Sheathing.AreaSqft = units.ClampNonNeg(walls.ExteriorFt*height - opts.OpeningsExtSqft)
	q.Sheathing.Sheet = opts.SheathSheet
	q.Sheathing.Sheets = int(math.Ceil(q.Sheathing.AreaSqft * (1 + opts.SheathWastagePct/100) / sheathArea))

	// Drywall covers both faces of interior walls.
	q.Drywall.AreaSqft = units.ClampNonNeg(walls.InteriorFt*height*2 - opts.OpeningsIntSqft)
	q.Drywall.Sheet = opts.DrywallSheet
	q.Drywall.Sheets = int(math.Ceil(q.Drywall.AreaSqft * (1 + opts.DrywallWastagePct/100) / dwArea))

	// Insulation fills exterior walls; openings ignored.
	q.Insulation.AreaSqft = units.ClampNonNeg(walls.ExteriorFt * height)
	q.Insulation.CoverageSqft = opts.InsulCoverageSqft
	q.Insulation.Packs = int(math.Ceil(q.Insulation.AreaSqft * (1 + opts.InsulWastagePct/100) / opts.InsulCoverageSqft))

	q.Fasteners.StudNails = q.Framing.StudsTotal * opts.StudNailsPerStud
	q.Fasteners.SheathFasteners = q.Sheathing.Sheets * opts.SheathFastPerSheet
	q.Fasteners.DrywallScrews = q.Drywall.Sheets * opts.DrywallScrewPerSheet

	// Material costs: size-specific rates win; generic rates are the
	// fallback so older price books keep working.
	studRate := pricing.Rate(rates, opts.StudSize+"_stud_per_piece", pricing.Rate(rates, "stud_per_piece", 0))
	plateRate := pricing.Rate(rates, opts.StudSize+"_plate_per_piece", pricing.Rate(rates, "plate_per_piece", 0))
	q.Cost = map[string]float64{
		"studs_material":      float64(q.Framing.StudsTotal) * studRate,
		"plates_material":     float64(q.Plates.Pieces) * plateRate,
		"sheathing_material":  float64(q.Sheathing.Sheets) * pricing.Rate(rates, "sheathing_"+opts.SheathSheet+"_per_sheet", pricing.Rate(rates, "sheathing_per_sheet", 0)),
		"drywall_material":    float64(q.Drywall.Sheets) * pricing.Rate(rates, "drywall_"+opts.DrywallSheet+"_per_sheet", pricing.Rate(rates, "drywall_per_sheet", 0)),
		"insulation_material": float64(q.Insulation.Packs) * pricing.Rate(rates, "insulation_pack", 0),
		"nails_material": float64(q.Fasteners.StudNails)*pricing.Rate(rates, "nail_each", 0) +
			float64(q.Fasteners.SheathFasteners)*pricing.Rate(rates, "sheath_fastener_each", 0),
		"screws_material": float64(q.Fasteners.DrywallScrews) * pricing.Rate(rates, "drywall_screw_each", 0),
	}

	q.LaborCost = map[string]float64{
		"frame":      float64(q.Framing.StudsTotal) * usaLaborRate(opts.LaborFramePerStud, rates, "labor_frame_per_stud"),
		"sheathing":  float64(q.Sheathing.Sheets) * usaLaborRate(opts.LaborSheathPerSheet, rates, "labor_sheath_per_sheet"),
		"drywall":    float64(q.Drywall.Sheets) * usaLaborRate(opts.LaborDrywallPerSheet, rates, "labor_drywall_per_sheet"),
		"insulation": float64(q.Insulation.Packs) * usaLaborRate(opts.LaborInsulPerPack, rates, "labor_insul_per_pack"),
	}

	for _, v := range q.Cost {
		q.Totals.Materials += v
	}
	for _, v := range q.LaborCost {
		q.Totals.LaborCost += v
	}
	q.Totals.GrandTotal = q.Totals.Materials + q.Totals.LaborCost
	return q, nil
}

func usaLaborRate(override float64, rates map[string]float64, key string) float64 {
	if override > 0 {
		return override
	}
	return pricing.Rate(rates, key, 0)
}

func fillUSADefaults(opts USAOptions) USAOptions {
	def := DefaultUSAOptions(opts.HeightFt)
	if opts.SpacingIn == 0 {
		opts.SpacingIn = def.SpacingIn
	}
	if opts.StudSize == "" {
		opts.StudSize = def.StudSize
	}
	if opts.StudWastagePct == 0 {
		opts.StudWastagePct = def.StudWastagePct
	}
	if opts.PlateStockFt == 0 {
		opts.PlateStockFt = def.PlateStockFt
	}
	if opts.PlateWastagePct == 0 {
		opts.PlateWastagePct = def.PlateWastagePct
	}
	if opts.SheathSheet == "" {
		opts.SheathSheet = def.SheathSheet
	}
	if opts.DrywallSheet == "" {
		opts.DrywallSheet = def.DrywallSheet
	}
	if opts.SheathWastagePct == 0 {
		opts.SheathWastagePct = def.SheathWastagePct
	}
	if opts.DrywallWastagePct == 0 {
		opts.DrywallWastagePct = def.DrywallWastagePct
	}
	if opts.InsulCoverageSqft == 0 {
		opts.InsulCoverageSqft = def.InsulCoverageSqft
	}
	if opts.InsulWastagePct == 0 {
		opts.InsulWastagePct = def.InsulWastagePct
	}
	if opts.StudNailsPerStud == 0 {
		opts.StudNailsPerStud = def.StudNailsPerStud
	}
	if opts.SheathFastPerSheet == 0 {
		opts.SheathFastPerSheet = def.SheathFastPerSheet
	}
	if opts.DrywallScrewPerSheet == 0 {
		opts.DrywallScrewPerSheet = def.DrywallScrewPerSheet
	}
	return opts
}
