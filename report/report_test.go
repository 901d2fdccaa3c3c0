package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/qty"
)

func fixture(t *testing.T) (*pricing.Book, *qty.IndiaTotal, *qty.USAQuantities, *pricing.Breakdown) {
	t.Helper()
	book := pricing.NewBook()
	book.Global = pricing.Global{
		Currency:       "INR",
		OverheadPct:    10,
		ContingencyPct: 5,
		ProfitPct:      10,
		TaxPct:         18,
	}
	book.IN = map[string]float64{
		"brick_per_piece":        8,
		"cement_bag_50kg":        380,
		"sand_per_cum":           1600,
		"paint_per_liter":        250,
		"steel_per_kg":           62,
		"labor_brickwork_per_m3": 550,
		"labor_plaster_per_m2":   45,
	}
	book.US = map[string]float64{
		"2x4_stud_per_piece":      4,
		"plate_per_piece":         6,
		"sheathing_4x8_per_sheet": 22,
		"drywall_4x12_per_sheet":  16,
		"insulation_pack":         35,
		"labor_frame_per_stud":    2,
	}

	walls := qty.WallLengths{ExteriorFt: 40, InteriorFt: 20}
	base, err := qty.ComputeIndia(walls, qty.IndiaOptions{HeightFt: 10}, book.IN)
	if err != nil {
		t.Fatalf("ComputeIndia() error = %v", err)
	}
	india := qty.ComputeIndiaExtras(base, qty.ExtrasOptions{}, book.IN)

	usa, err := qty.ComputeUSA(walls, qty.USAOptions{HeightFt: 8}, book.US)
	if err != nil {
		t.Fatalf("ComputeUSA() error = %v", err)
	}

	bd := pricing.BuildBreakdown(book.Global, map[string]pricing.RegionSubtotal{
		"india": {Materials: india.Totals.Materials, Labor: india.Totals.LaborCost},
		"usa":   {Materials: usa.Totals.Materials, Labor: usa.Totals.LaborCost},
	})
	return book, india, usa, bd
}

func TestWriteWorkbookAndValidate(t *testing.T) {
	book, india, usa, bd := fixture(t)
	path := filepath.Join(t.TempDir(), "final_estimate.xlsx")

	if err := WriteWorkbook(path, bd, book, india, usa); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}
	if err := ValidateWorkbook(path, bd); err != nil {
		t.Errorf("ValidateWorkbook() error = %v", err)
	}

	tampered := *bd
	s := tampered.Summary
	s.GrandTotal += 100
	tampered.Summary = s
	if err := ValidateWorkbook(path, &tampered); err == nil {
		t.Error("ValidateWorkbook() error = nil for tampered breakdown, want mismatch")
	}
}

func TestIndiaBOQ(t *testing.T) {
	book, india, _, _ := fixture(t)
	rows := IndiaBOQ(india, book.IN)
	if len(rows) == 0 {
		t.Fatal("IndiaBOQ() returned no rows")
	}
	if rows[0].Item != "Bricks" {
		t.Errorf("rows[0].Item = %q, want Bricks", rows[0].Item)
	}
	wantBricks := india.Base.Brickwork.CountWithWaste * 8
	if diff := rows[0].Amount - wantBricks; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("bricks amount = %v, want %v", rows[0].Amount, wantBricks)
	}
	var total float64
	for _, r := range rows {
		total += r.Amount
	}
	want := india.Totals.Materials + india.Totals.LaborCost
	if diff := total - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("BOQ total = %v, want %v", total, want)
	}
}

func TestIndiaBaseBOQ(t *testing.T) {
	book, india, _, _ := fixture(t)
	rows := IndiaBaseBOQ(india.Base, book.IN)
	// Bricks, brickwork cement and sand, plaster cement and sand.
	if len(rows) != 5 {
		t.Fatalf("IndiaBaseBOQ() returned %d rows, want 5", len(rows))
	}
	for _, r := range rows {
		if strings.HasPrefix(r.Item, "Labor") {
			t.Errorf("base BOQ contains labor row %q", r.Item)
		}
	}
	full := IndiaBOQ(india, book.IN)
	for i, r := range rows {
		if full[i] != r {
			t.Errorf("full BOQ row %d = %+v, want base row %+v", i, full[i], r)
		}
	}
}

func TestUSABOQ(t *testing.T) {
	book, _, usa, _ := fixture(t)
	rows := USABOQ(usa, book.US)
	if len(rows) != 9 {
		t.Fatalf("USABOQ() returned %d rows, want 9", len(rows))
	}
	var total float64
	for _, r := range rows {
		if r.Region != "US" {
			t.Errorf("row %q region = %q, want US", r.Item, r.Region)
		}
		total += r.Amount
	}
	want := usa.Totals.GrandTotal
	if diff := total - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("BOQ total = %v, want %v", total, want)
	}
}

func TestWritePDFs(t *testing.T) {
	_, _, _, bd := fixture(t)
	dir := t.TempDir()

	summary := filepath.Join(dir, "final_estimate.pdf")
	if err := WriteSummaryPDF(summary, bd); err != nil {
		t.Fatalf("WriteSummaryPDF() error = %v", err)
	}
	detailed := filepath.Join(dir, "final_estimate_detailed.pdf")
	if err := WriteDetailedPDF(detailed, bd, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("WriteDetailedPDF() error = %v", err)
	}
	for _, p := range []string{summary, detailed} {
		fi, err := os.Stat(p)
		if err != nil {
			t.Fatalf("Stat(%s) error = %v", p, err)
		}
		if fi.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
}

func TestWriteBOQCSV(t *testing.T) {
	book, india, usa, _ := fixture(t)
	rows := append(IndiaBOQ(india, book.IN), USABOQ(usa, book.US)...)
	path := filepath.Join(t.TempDir(), "boq.csv")

	if err := WriteBOQCSV(path, rows); err != nil {
		t.Fatalf("WriteBOQCSV() error = %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != len(rows)+1 {
		t.Errorf("csv has %d lines, want %d", len(lines), len(rows)+1)
	}
	if !strings.HasPrefix(lines[0], "region,item,unit") {
		t.Errorf("csv header = %q", lines[0])
	}
}
