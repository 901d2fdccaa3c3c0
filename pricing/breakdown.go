package pricing

// RegionSubtotal is the materials/labor subtotal contributed by one
// takeoff mode.
type RegionSubtotal struct {
	Materials float64 `json:"materials"`
	Labor     float64 `json:"labor"`
}

// Summary is the final rolled-up estimate. Each percentage in the cascade
// is applied to the running total, not the base subtotal: contingency
// covers overheads too, profit covers both, and tax covers everything.
type Summary struct {
	Materials      float64 `json:"materials"`
	Labor          float64 `json:"labor"`
	Overheads      float64 `json:"overheads"`
	Contingency    float64 `json:"contingency"`
	Profit         float64 `json:"profit"`
	Tax            float64 `json:"tax"`
	GrandTotal     float64 `json:"grand_total"`
	OverheadPct    float64 `json:"overhead_pct"`
	ContingencyPct float64 `json:"contingency_pct"`
	ProfitPct      float64 `json:"profit_pct"`
	TaxPct         float64 `json:"tax_pct"`
	Currency       string  `json:"currency"`
}

// Breakdown is the archival cost record: per-region subtotals plus the
// global summary.
type Breakdown struct {
	Subtotals map[string]RegionSubtotal `json:"subtotals"`
	Summary   Summary                   `json:"summary"`
}

// BuildBreakdown combines per-region subtotals with the book's global
// knobs into the final summary.
func BuildBreakdown(g Global, regions map[string]RegionSubtotal) *Breakdown {
	var materials, labor float64
	for _, r := range regions {
		materials += r.Materials
		labor += r.Labor
	}
	subtotal := materials + labor

	overheads := subtotal * (g.OverheadPct / 100)
	contingency := (subtotal + overheads) * (g.ContingencyPct / 100)
	profit := (subtotal + overheads + contingency) * (g.ProfitPct / 100)
	tax := (subtotal + overheads + contingency + profit) * (g.TaxPct / 100)

	return &Breakdown{
		Subtotals: regions,
		Summary: Summary{
			Materials:      materials,
			Labor:          labor,
			Overheads:      overheads,
			Contingency:    contingency,
			Profit:         profit,
			Tax:            tax,
			GrandTotal:     subtotal + overheads + contingency + profit + tax,
			OverheadPct:    g.OverheadPct,
			ContingencyPct: g.ContingencyPct,
			ProfitPct:      g.ProfitPct,
			TaxPct:         g.TaxPct,
			Currency:       g.Currency,
		},
	}
}
