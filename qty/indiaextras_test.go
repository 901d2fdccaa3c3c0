package qty

import "testing"

func TestComputeIndiaExtras(t *testing.T) {
	base, err := ComputeIndia(WallLengths{ExteriorFt: 40, InteriorFt: 20}, IndiaOptions{HeightFt: 10}, nil)
	if err != nil {
		t.Fatalf("ComputeIndia() error = %v", err)
	}
	rates := map[string]float64{
		"paint_per_liter":             250,
		"steel_per_kg":                60,
		"labor_brickwork_per_m3":      500,
		"labor_plaster_per_m2":        40,
		"labor_paint_per_m2_per_coat": 8,
	}
	opts := ExtrasOptions{LintelLengthM: 10, SunshadeAreaM2: 2, StairAreaM2: 4}
	out := ComputeIndiaExtras(base, opts, rates)

	intArea := base.Derived.SumInteriorM * base.Derived.HeightM
	extArea := base.Derived.SumExteriorM * base.Derived.HeightM
	approx(t, "Paint.InteriorLiters", out.Paint.InteriorLiters, intArea*2/10)
	approx(t, "Paint.ExteriorLiters", out.Paint.ExteriorLiters, extArea*2/10)
	approx(t, "Paint.TotalLiters", out.Paint.TotalLiters, (intArea+extArea)*2/10)

	approx(t, "Steel.LintelKg", out.Steel.LintelKg, 40)
	approx(t, "Steel.SunshadeKg", out.Steel.SunshadeKg, 24)
	approx(t, "Steel.StairKg", out.Steel.StairKg, 100)
	approx(t, "Steel.TotalKg", out.Steel.TotalKg, 164)

	approx(t, "Labor.BrickworkCost", out.Labor.BrickworkCost, base.Derived.VolBrickworkM3*500)
	approx(t, "Labor.PlasterCost", out.Labor.PlasterCost, base.Plaster.AreaM2*40)
	approx(t, "Labor.PaintCost", out.Labor.PaintCost, (intArea+extArea)*2*8)

	approx(t, `Cost["paint_material"]`, out.Cost["paint_material"], out.Paint.TotalLiters*250)
	approx(t, `Cost["steel_material"]`, out.Cost["steel_material"], 164*60)

	wantMaterials := out.Cost["paint_material"] + out.Cost["steel_material"]
	approx(t, "Totals.Materials", out.Totals.Materials, wantMaterials)
	approx(t, "Totals.LaborCost", out.Totals.LaborCost, out.Labor.Total)
	approx(t, "Totals.GrandTotal", out.Totals.GrandTotal, wantMaterials+out.Labor.Total)
}

func TestComputeIndiaExtrasOpenings(t *testing.T) {
	base, err := ComputeIndia(WallLengths{ExteriorFt: 10, InteriorFt: 10}, IndiaOptions{HeightFt: 10}, nil)
	if err != nil {
		t.Fatalf("ComputeIndia() error = %v", err)
	}
	opts := ExtrasOptions{IntOpeningsM2: 1000, ExtOpeningsM2: 1000}
	out := ComputeIndiaExtras(base, opts, nil)
	// Openings larger than the wall clamp to zero paintable area.
	approx(t, "Paint.InteriorAreaM2", out.Paint.InteriorAreaM2, 0)
	approx(t, "Paint.ExteriorAreaM2", out.Paint.ExteriorAreaM2, 0)
	approx(t, "Paint.TotalLiters", out.Paint.TotalLiters, 0)
}
