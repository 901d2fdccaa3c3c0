package qty

import (
	"testing"

	"github.com/vamshi737/smartestimator/pricing"
)

func TestComputeOpenings(t *testing.T) {
	book := pricing.NewBook()
	book.Doors["D1"] = 100
	sched := OpeningsSchedule{
		Doors: []Opening{
			{Type: "D1", WidthMm: 900, HeightMm: 2100, Count: 2},
		},
		Windows: []Opening{
			{Type: "W1", WidthMm: 1200, HeightMm: 1200, Count: 3, RatePerM2: 50},
		},
	}
	out := ComputeOpenings(sched, book)

	approx(t, "Doors[0].AreaM2Each", out.Doors[0].AreaM2Each, 1.89)
	approx(t, "Doors[0].Amount", out.Doors[0].Amount, 378)
	// The line rate wins over the book.
	approx(t, "Windows[0].RatePerM2", out.Windows[0].RatePerM2, 50)
	approx(t, "Windows[0].Amount", out.Windows[0].Amount, 216)
	approx(t, "Totals.DoorsAmount", out.Totals.DoorsAmount, 378)
	approx(t, "Totals.WindowsAmount", out.Totals.WindowsAmount, 216)
	approx(t, "Totals.TotalAmount", out.Totals.TotalAmount, 594)
	approx(t, "TotalAreaM2", out.TotalAreaM2(), 8.1)
}

func TestComputeOpeningsNoBook(t *testing.T) {
	sched := OpeningsSchedule{
		Doors: []Opening{{Type: "D9", WidthMm: 900, HeightMm: 2100, Count: 4}},
	}
	out := ComputeOpenings(sched, nil)
	// No rate anywhere, areas still count.
	approx(t, "Doors[0].Amount", out.Doors[0].Amount, 0)
	approx(t, "TotalAreaM2", out.TotalAreaM2(), 7.56)
}

func TestComputeFlooring(t *testing.T) {
	book := pricing.NewBook()
	book.Flooring = 40
	f := ComputeFlooring(50, DefaultFlooringOptions(), book)
	approx(t, "TotalAreaM2", f.TotalAreaM2, 53.75)
	approx(t, "Amount", f.Amount, 2150)

	// Explicit rate wins over the book.
	f = ComputeFlooring(50, FlooringOptions{Material: "granite", WastagePct: 10, RatePerM2: 80}, book)
	approx(t, "TotalAreaM2", f.TotalAreaM2, 55)
	approx(t, "Amount", f.Amount, 4400)
}

func TestSummarizeAreas(t *testing.T) {
	sched := OpeningsSchedule{
		Doors: []Opening{{Type: "D1", WidthMm: 900, HeightMm: 2100, Count: 2}},
	}
	openings := ComputeOpenings(sched, nil)
	floor := ComputeFlooring(50, DefaultFlooringOptions(), nil)

	s := SummarizeAreas(100, openings, floor)
	approx(t, "WallAreaM2", s.WallAreaM2, 100)
	approx(t, "OpeningsAreaM2", s.OpeningsAreaM2, 3.78)
	approx(t, "NetWallAreaM2", s.NetWallAreaM2, 96.22)
	approx(t, "FloorAreaM2", s.FloorAreaM2, 53.75)
	approx(t, "GrossAreaM2", s.GrossAreaM2, 153.75)

	s = SummarizeAreas(2, openings, nil)
	approx(t, "OpeningsAreaM2", s.OpeningsAreaM2, 3.78)
	approx(t, "NetWallAreaM2", s.NetWallAreaM2, 0)
}
