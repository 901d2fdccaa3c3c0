package pricing

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmptyBook(t *testing.T) {
	b, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.IN) != 0 || b.Global.Currency != "" {
		t.Errorf("expected empty book, got %+v", b)
	}
}

func TestLoadAndMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prices.json")
	base := `{
		"IN": {"brick_per_piece": 8, "cement_bag_50kg": 400},
		"US": {"stud_per_piece": 4.5},
		"GLOBAL": {"currency": "INR", "overhead_pct": 10, "tax_pct": 18},
		"doors": {"D1": 120},
		"flooring": 55
	}`
	if err := os.WriteFile(path, []byte(base), 0644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if b.IN["brick_per_piece"] != 8 || b.Global.Currency != "INR" || b.Flooring != 55 {
		t.Fatalf("base load wrong: %+v", b)
	}

	if err := b.MergeJSON([]byte(`{"IN": {"brick_per_piece": 9.5}, "doors": {"D2": 90}}`)); err != nil {
		t.Fatal(err)
	}
	if b.IN["brick_per_piece"] != 9.5 {
		t.Errorf("override did not apply: %v", b.IN["brick_per_piece"])
	}
	if b.IN["cement_bag_50kg"] != 400 {
		t.Error("untouched base rate lost")
	}
	if b.Doors["D1"] != 120 || b.Doors["D2"] != 90 {
		t.Errorf("doors merge wrong: %v", b.Doors)
	}

	if err := b.MergeJSON([]byte(`{not json`)); err == nil {
		t.Error("expected error for invalid override JSON")
	}
	if err := b.MergeJSON(nil); err != nil {
		t.Errorf("nil override should be a no-op, got %v", err)
	}
}

func TestRate(t *testing.T) {
	tbl := map[string]float64{"a": 2}
	if Rate(tbl, "a", 9) != 2 {
		t.Error("present key should win")
	}
	if Rate(tbl, "b", 9) != 9 {
		t.Error("absent key should fall back")
	}
	if Rate(nil, "a", 9) != 9 {
		t.Error("nil table should fall back")
	}
}

func TestBuildBreakdownCascade(t *testing.T) {
	g := Global{Currency: "INR", OverheadPct: 10, ContingencyPct: 5, ProfitPct: 10, TaxPct: 18}
	bd := BuildBreakdown(g, map[string]RegionSubtotal{
		"india": {Materials: 800, Labor: 200},
	})
	s := bd.Summary
	if s.Materials != 800 || s.Labor != 200 {
		t.Fatalf("subtotals wrong: %+v", s)
	}
	// 1000 -> +100 overhead -> +55 contingency -> +115.5 profit -> +228.69 tax
	wantOverheads := 100.0
	wantContingency := 55.0
	wantProfit := 115.5
	wantTax := 228.69
	wantGrand := 1000 + wantOverheads + wantContingency + wantProfit + wantTax
	for _, c := range []struct {
		name string
		got  float64
		want float64
	}{
		{"overheads", s.Overheads, wantOverheads},
		{"contingency", s.Contingency, wantContingency},
		{"profit", s.Profit, wantProfit},
		{"tax", s.Tax, wantTax},
		{"grand_total", s.GrandTotal, wantGrand},
	} {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestBuildBreakdownZeroKnobs(t *testing.T) {
	bd := BuildBreakdown(Global{}, map[string]RegionSubtotal{
		"india": {Materials: 1, Labor: 2},
		"usa":   {Materials: 3, Labor: 4},
	})
	if bd.Summary.GrandTotal != 10 {
		t.Errorf("grand total = %v, want 10", bd.Summary.GrandTotal)
	}
}
