// Package qty computes material quantity takeoffs from wall metrics: the
// India mode prices a masonry build (bricks, mortar, plaster, paint,
// steel), the USA mode a timber-framed one (studs, plates, sheathing,
// drywall, insulation).
package qty

import (
	"fmt"

	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/units"
)

// Cement bag volume in m3 (a 50 kg bag).
const cementBagM3 = 0.035

// WallLengths are the classified wall totals, in feet, as produced by the
// vision package.
type WallLengths struct {
	ExteriorFt float64 `json:"exterior_ft"`
	InteriorFt float64 `json:"interior_ft"`
}

// IndiaOptions are the masonry takeoff knobs. Zero values are filled from
// DefaultIndiaOptions by ComputeIndia, so callers only set what they
// change.
type IndiaOptions struct {
	HeightFt        float64 `json:"height_ft"`
	ExtThicknessMm  float64 `json:"ext_thickness_mm"`
	IntThicknessMm  float64 `json:"int_thickness_mm"`
	BrickSizeMm     string  `json:"brick_size_mm"`
	MortarRatio     string  `json:"mortar_ratio"`
	MortarDryFactor float64 `json:"mortar_dry_factor"`
	PlasterThkMm    float64 `json:"plaster_thk_mm"`
	PlasterRatio    string  `json:"plaster_ratio"`
	PlasterIntSides int     `json:"plaster_int_sides"`
	PlasterExtSides int     `json:"plaster_ext_sides"`
	// Wastage is a fraction (0.07 = 7%). The IN price table's "wastage"
	// key overrides it when present.
	Wastage float64 `json:"wastage"`
}

// DefaultIndiaOptions returns the standard assumptions: 230/115 mm walls,
// modular 190x90x90 bricks, 1:6 brickwork mortar, 12 mm 1:4 plaster on two
// interior faces and one exterior face, 7% brick wastage.
func DefaultIndiaOptions(heightFt float64) IndiaOptions {
	return IndiaOptions{
		HeightFt:        heightFt,
		ExtThicknessMm:  230,
		IntThicknessMm:  115,
		BrickSizeMm:     "190x90x90",
		MortarRatio:     "1:6",
		MortarDryFactor: 1.33,
		PlasterThkMm:    12,
		PlasterRatio:    "1:4",
		PlasterIntSides: 2,
		PlasterExtSides: 1,
		Wastage:         0.07,
	}
}

// IndiaQuantities is the masonry takeoff result.
type IndiaQuantities struct {
	Inputs  IndiaOptions `json:"inputs"`
	Derived struct {
		SumExteriorM   float64 `json:"sum_exterior_m"`
		SumInteriorM   float64 `json:"sum_interior_m"`
		HeightM        float64 `json:"height_m"`
		VolBrickworkM3 float64 `json:"vol_brickwork_m3"`
	} `json:"derived"`
	Brickwork struct {
		BrickNominalVolM3 float64 `json:"brick_nominal_vol_m3"`
		CountWithoutWaste float64 `json:"bricks_count_without_wastage"`
		CountWithWaste    float64 `json:"bricks_count_with_wastage"`
	} `json:"brickwork"`
	MortarBrickwork struct {
		WetMortarM3 float64 `json:"wet_mortar_m3"`
		DryMortarM3 float64 `json:"dry_mortar_m3"`
		CementBags  float64 `json:"cement_bags"`
		SandM3      float64 `json:"sand_m3"`
	} `json:"mortar_brickwork"`
	Plaster struct {
		AreaM2      float64 `json:"area_m2"`
		WetMortarM3 float64 `json:"wet_mortar_m3"`
		DryMortarM3 float64 `json:"dry_mortar_m3"`
		CementBags  float64 `json:"cement_bags"`
		SandM3      float64 `json:"sand_m3"`
	} `json:"plaster"`
	Cost map[string]float64 `json:"cost_optional,omitempty"`
}

// ComputeIndia runs the masonry takeoff. The rates table may be nil, in
// which case no cost section is produced.
func ComputeIndia(walls WallLengths, opts IndiaOptions, rates map[string]float64) (*IndiaQuantities, error) {
	opts = fillIndiaDefaults(opts)
	if opts.HeightFt <= 0 {
		return nil, fmt.Errorf("qty: india wall height must be positive, got %v", opts.HeightFt)
	}
	if w, ok := rates["wastage"]; ok {
		opts.Wastage = w
	}

	cPart, sPart, err := units.ParseRatio(opts.MortarRatio)
	if err != nil {
		return nil, err
	}
	pcPart, psPart, err := units.ParseRatio(opts.PlasterRatio)
	if err != nil {
		return nil, err
	}
	bL, bW, bH, err := units.ParseBrickSize(opts.BrickSizeMm)
	if err != nil {
		return nil, err
	}

	q := &IndiaQuantities{Inputs: opts}

	heightM := units.FeetToMeters(opts.HeightFt)
	sumExtM := units.FeetToMeters(walls.ExteriorFt)
	sumIntM := units.FeetToMeters(walls.InteriorFt)
	extTM := units.MmToMeters(opts.ExtThicknessMm)
	intTM := units.MmToMeters(opts.IntThicknessMm)

	// Nominal brick includes a 10 mm mortar joint on every dimension.
	brickVolM3 := units.MmToMeters(bL+10) * units.MmToMeters(bW+10) * units.MmToMeters(bH+10)

	volBrickwork := sumExtM*heightM*extTM + sumIntM*heightM*intTM

	q.Derived.SumExteriorM = sumExtM
	q.Derived.SumInteriorM = sumIntM
	q.Derived.HeightM = heightM
	q.Derived.VolBrickworkM3 = volBrickwork

	q.Brickwork.BrickNominalVolM3 = brickVolM3
	q.Brickwork.CountWithoutWaste = volBrickwork / brickVolM3
	q.Brickwork.CountWithWaste = q.Brickwork.CountWithoutWaste * (1 + opts.Wastage)

	// Mortar fills roughly 30% of brickwork volume when wet.
	wetMortar := 0.30 * volBrickwork
	dryMortar := wetMortar * opts.MortarDryFactor
	q.MortarBrickwork.WetMortarM3 = wetMortar
	q.MortarBrickwork.DryMortarM3 = dryMortar
	q.MortarBrickwork.CementBags = dryMortar * (cPart / (cPart + sPart)) / cementBagM3
	q.MortarBrickwork.SandM3 = dryMortar * (sPart / (cPart + sPart))

	plasterArea := sumIntM*float64(opts.PlasterIntSides)*heightM +
		sumExtM*float64(opts.PlasterExtSides)*heightM
	wetPlaster := plasterArea * units.MmToMeters(opts.PlasterThkMm)
	dryPlaster := wetPlaster * 1.27
	q.Plaster.AreaM2 = plasterArea
	q.Plaster.WetMortarM3 = wetPlaster
	q.Plaster.DryMortarM3 = dryPlaster
	q.Plaster.CementBags = dryPlaster * (pcPart / (pcPart + psPart)) / cementBagM3
	q.Plaster.SandM3 = dryPlaster * (psPart / (pcPart + psPart))

	if len(rates) > 0 {
		cost := map[string]float64{
			"bricks":      q.Brickwork.CountWithWaste * pricing.Rate(rates, "brick_per_piece", 0),
			"cement_bags": (q.MortarBrickwork.CementBags + q.Plaster.CementBags) * pricing.Rate(rates, "cement_bag_50kg", 0),
			"sand_m3":     (q.MortarBrickwork.SandM3 + q.Plaster.SandM3) * pricing.Rate(rates, "sand_per_cum", 0),
		}
		if r, ok := rates["plaster_per_sqm"]; ok {
			cost["plaster_per_sqm"] = plasterArea * r
		}
		q.Cost = cost
	}
	return q, nil
}

func fillIndiaDefaults(opts IndiaOptions) IndiaOptions {
	def := DefaultIndiaOptions(opts.HeightFt)
	if opts.ExtThicknessMm == 0 {
		opts.ExtThicknessMm = def.ExtThicknessMm
	}
	if opts.IntThicknessMm == 0 {
		opts.IntThicknessMm = def.IntThicknessMm
	}
	if opts.BrickSizeMm == "" {
		opts.BrickSizeMm = def.BrickSizeMm
	}
	if opts.MortarRatio == "" {
		opts.MortarRatio = def.MortarRatio
	}
	if opts.MortarDryFactor == 0 {
		opts.MortarDryFactor = def.MortarDryFactor
	}
	if opts.PlasterThkMm == 0 {
		opts.PlasterThkMm = def.PlasterThkMm
	}
	if opts.PlasterRatio == "" {
		opts.PlasterRatio = def.PlasterRatio
	}
	if opts.PlasterIntSides == 0 {
		opts.PlasterIntSides = def.PlasterIntSides
	}
	if opts.PlasterExtSides == 0 {
		opts.PlasterExtSides = def.PlasterExtSides
	}
	if opts.Wastage == 0 {
		opts.Wastage = def.Wastage
	}
	return opts
}
