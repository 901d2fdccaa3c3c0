package qty

import (
	"math"
	"testing"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestComputeIndia(t *testing.T) {
	walls := WallLengths{ExteriorFt: 40, InteriorFt: 20}
	q, err := ComputeIndia(walls, IndiaOptions{HeightFt: 10}, nil)
	if err != nil {
		t.Fatalf("ComputeIndia() error = %v", err)
	}

	approx(t, "Derived.HeightM", q.Derived.HeightM, 3.048)
	approx(t, "Derived.SumExteriorM", q.Derived.SumExteriorM, 12.192)
	approx(t, "Derived.SumInteriorM", q.Derived.SumInteriorM, 6.096)
	// 12.192*3.048*0.230 + 6.096*3.048*0.115
	approx(t, "Derived.VolBrickworkM3", q.Derived.VolBrickworkM3, 10.6838496)

	// 190x90x90 brick with a 10 mm joint is 0.2*0.1*0.1 m3.
	approx(t, "Brickwork.BrickNominalVolM3", q.Brickwork.BrickNominalVolM3, 0.002)
	approx(t, "Brickwork.CountWithoutWaste", q.Brickwork.CountWithoutWaste, 5341.9248)
	approx(t, "Brickwork.CountWithWaste", q.Brickwork.CountWithWaste, 5715.859536)

	wet := 0.30 * 10.6838496
	dry := wet * 1.33
	approx(t, "MortarBrickwork.WetMortarM3", q.MortarBrickwork.WetMortarM3, wet)
	approx(t, "MortarBrickwork.DryMortarM3", q.MortarBrickwork.DryMortarM3, dry)
	approx(t, "MortarBrickwork.CementBags", q.MortarBrickwork.CementBags, dry/7/0.035)
	approx(t, "MortarBrickwork.SandM3", q.MortarBrickwork.SandM3, dry*6/7)

	// Two interior faces plus one exterior face.
	plasterArea := 6.096*2*3.048 + 12.192*1*3.048
	approx(t, "Plaster.AreaM2", q.Plaster.AreaM2, plasterArea)
	approx(t, "Plaster.WetMortarM3", q.Plaster.WetMortarM3, plasterArea*0.012)
	approx(t, "Plaster.DryMortarM3", q.Plaster.DryMortarM3, plasterArea*0.012*1.27)

	if q.Cost != nil {
		t.Errorf("Cost = %v, want nil without rates", q.Cost)
	}
}

func TestComputeIndiaCost(t *testing.T) {
	walls := WallLengths{ExteriorFt: 40, InteriorFt: 20}
	rates := map[string]float64{
		"brick_per_piece": 10,
		"cement_bag_50kg": 400,
		"sand_per_cum":    1500,
		"plaster_per_sqm": 30,
	}
	q, err := ComputeIndia(walls, IndiaOptions{HeightFt: 10}, rates)
	if err != nil {
		t.Fatalf("ComputeIndia() error = %v", err)
	}
	approx(t, `Cost["bricks"]`, q.Cost["bricks"], q.Brickwork.CountWithWaste*10)
	approx(t, `Cost["cement_bags"]`, q.Cost["cement_bags"], (q.MortarBrickwork.CementBags+q.Plaster.CementBags)*400)
	approx(t, `Cost["sand_m3"]`, q.Cost["sand_m3"], (q.MortarBrickwork.SandM3+q.Plaster.SandM3)*1500)
	approx(t, `Cost["plaster_per_sqm"]`, q.Cost["plaster_per_sqm"], q.Plaster.AreaM2*30)
}

func TestComputeIndiaWastageOverride(t *testing.T) {
	walls := WallLengths{ExteriorFt: 10, InteriorFt: 0}
	q, err := ComputeIndia(walls, IndiaOptions{HeightFt: 10}, map[string]float64{"wastage": 0.10})
	if err != nil {
		t.Fatalf("ComputeIndia() error = %v", err)
	}
	approx(t, "CountWithWaste", q.Brickwork.CountWithWaste, q.Brickwork.CountWithoutWaste*1.10)
}

func TestComputeIndiaErrors(t *testing.T) {
	tests := []struct {
		name string
		opts IndiaOptions
	}{
		{"zero height", IndiaOptions{}},
		{"negative height", IndiaOptions{HeightFt: -9}},
		{"bad mortar ratio", IndiaOptions{HeightFt: 10, MortarRatio: "one:six"}},
		{"bad brick size", IndiaOptions{HeightFt: 10, BrickSizeMm: "190x90"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ComputeIndia(WallLengths{ExteriorFt: 10}, tt.opts, nil); err == nil {
				t.Error("ComputeIndia() error = nil, want error")
			}
		})
	}
}
