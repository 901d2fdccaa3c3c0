package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/vision"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func writePrices(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "prices.json")
	raw := `{
		"GLOBAL": {"currency": "INR", "overhead_pct": 10, "contingency_pct": 5, "profit_pct": 10, "tax_pct": 18},
		"IN": {"brick_per_piece": 8, "cement_bag_50kg": 380, "sand_per_cum": 1600},
		"US": {"2x4_stud_per_piece": 4, "plate_per_piece": 6, "sheathing_4x8_per_sheet": 22,
		       "drywall_4x12_per_sheet": 16, "insulation_pack": 35}
	}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("cannot write prices file: %v", err)
	}
	return path
}

func TestStageCommands(t *testing.T) {
	dir := t.TempDir()
	prices := writePrices(t, dir)
	wallsPath := filepath.Join(dir, "metrics_walls.json")
	areaPath := filepath.Join(dir, "metrics_area.json")

	if err := execute(t, "geometry", "--out_area", areaPath, "--out_walls", wallsPath); err != nil {
		t.Fatalf("geometry: %v", err)
	}
	inJSON := filepath.Join(dir, "qty_india_total.json")
	if err := execute(t, "india", "--walls", wallsPath, "--prices", prices, "--out_json", inJSON); err != nil {
		t.Fatalf("india: %v", err)
	}
	usJSON := filepath.Join(dir, "qty_usa.json")
	if err := execute(t, "usa", "--walls", wallsPath, "--prices", prices, "--out_json", usJSON); err != nil {
		t.Fatalf("usa: %v", err)
	}

	outXLSX := filepath.Join(dir, "final_estimate.xlsx")
	outJSON := filepath.Join(dir, "final_breakdown.json")
	err := execute(t, "export",
		"--prices", prices,
		"--in_json", inJSON,
		"--us_json", usJSON,
		"--out_xlsx", outXLSX,
		"--out_pdf", filepath.Join(dir, "final_estimate.pdf"),
		"--out_detailed_pdf", filepath.Join(dir, "final_estimate_detailed.pdf"),
		"--out_json", outJSON,
		"--out_boq_csv", filepath.Join(dir, "boq.csv"))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	raw, err := os.ReadFile(outJSON)
	if err != nil {
		t.Fatalf("cannot read breakdown: %v", err)
	}
	var bd pricing.Breakdown
	if err := json.Unmarshal(raw, &bd); err != nil {
		t.Fatalf("cannot parse breakdown: %v", err)
	}
	if bd.Summary.GrandTotal <= 0 {
		t.Errorf("grand total = %v, want > 0", bd.Summary.GrandTotal)
	}
	if bd.Summary.Currency != "INR" {
		t.Errorf("currency = %q, want INR", bd.Summary.Currency)
	}
	if _, err := os.Stat(outXLSX); err != nil {
		t.Errorf("workbook missing: %v", err)
	}
}

func TestWallsCommand(t *testing.T) {
	dir := t.TempDir()
	linesPath := filepath.Join(dir, "lines.json")
	lines := `{"unit": "m", "per_pixel": 0.01, "lines": [
		{"p1": [0, 0], "p2": [0, 500]},
		{"p1": [300, 300], "p2": [300, 420]}
	]}`
	if err := os.WriteFile(linesPath, []byte(lines), 0644); err != nil {
		t.Fatalf("cannot write lines file: %v", err)
	}

	outPath := filepath.Join(dir, "metrics_walls.json")
	err := execute(t, "walls",
		"--lines", linesPath,
		"--image_w", "800", "--image_h", "600",
		"--out", outPath,
		"--out_csv", filepath.Join(dir, "lines.csv"))
	if err != nil {
		t.Fatalf("walls: %v", err)
	}

	walls := &vision.WallMetrics{}
	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("cannot read wall metrics: %v", err)
	}
	if err := json.Unmarshal(raw, walls); err != nil {
		t.Fatalf("cannot parse wall metrics: %v", err)
	}
	if walls.SumExteriorFt <= 0 {
		t.Errorf("exterior total = %v, want > 0", walls.SumExteriorFt)
	}
	if walls.SumInteriorFt <= 0 {
		t.Errorf("interior total = %v, want > 0", walls.SumInteriorFt)
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	prices := writePrices(t, dir)

	if err := execute(t, "run", "--mode", "india", "--prices", prices, "--outdir", dir); err != nil {
		t.Fatalf("run: %v", err)
	}

	runs, err := os.ReadDir(filepath.Join(dir, "runs"))
	if err != nil || len(runs) != 1 {
		t.Fatalf("runs dir = %v, %v; want one run", runs, err)
	}
	breakdown := filepath.Join(dir, "runs", runs[0].Name(), "final_breakdown.json")
	if _, err := os.Stat(breakdown); err != nil {
		t.Errorf("final_breakdown.json missing: %v", err)
	}
}
