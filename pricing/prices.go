// Package pricing holds the price book and the cost breakdown rules.
package pricing

import (
	"encoding/json"
	"fmt"
	"os"
)

// Global holds the book-wide pricing knobs applied on top of the
// materials and labor subtotals.
type Global struct {
	Currency       string  `json:"currency"`
	OverheadPct    float64 `json:"overhead_pct"`
	ContingencyPct float64 `json:"contingency_pct"`
	ProfitPct      float64 `json:"profit_pct"`
	TaxPct         float64 `json:"tax_pct"`
}

// Book is the price book. IN and US are flat rate tables keyed by item
// name (e.g. "brick_per_piece", "2x4_stud_per_piece"); Doors and Windows
// are keyed by opening type ("D1", "W2"); Flooring is a per-m2 rate.
type Book struct {
	IN       map[string]float64 `json:"IN"`
	US       map[string]float64 `json:"US"`
	Global   Global             `json:"GLOBAL"`
	Doors    map[string]float64 `json:"doors"`
	Windows  map[string]float64 `json:"windows"`
	Flooring float64            `json:"flooring"`
}

// NewBook returns an empty book with allocated rate tables.
func NewBook() *Book {
	return &Book{
		IN:      map[string]float64{},
		US:      map[string]float64{},
		Doors:   map[string]float64{},
		Windows: map[string]float64{},
	}
}

// Load reads a price book from a JSON file. A missing file is not an
// error: quantities are still useful without costs, so an empty book is
// returned instead.
func Load(path string) (*Book, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("pricing: cannot read %s: %w", path, err)
	}
	b := NewBook()
	if err := json.Unmarshal(raw, b); err != nil {
		return nil, fmt.Errorf("pricing: bad price book %s: %w", path, err)
	}
	b.ensureMaps()
	return b, nil
}

// MergeJSON overlays a client-supplied override onto the book. Only keys
// present in the override change; absent sections keep the base rates.
// The override is validated before any run work starts, so an error here
// must map to a client error, not a server one.
func (b *Book) MergeJSON(raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	var over struct {
		IN       map[string]float64 `json:"IN"`
		US       map[string]float64 `json:"US"`
		Global   *Global            `json:"GLOBAL"`
		Doors    map[string]float64 `json:"doors"`
		Windows  map[string]float64 `json:"windows"`
		Flooring *float64           `json:"flooring"`
	}
	if err := json.Unmarshal(raw, &over); err != nil {
		return fmt.Errorf("pricing: invalid override: %w", err)
	}
	b.ensureMaps()
	for k, v := range over.IN {
		b.IN[k] = v
	}
	for k, v := range over.US {
		b.US[k] = v
	}
	for k, v := range over.Doors {
		b.Doors[k] = v
	}
	for k, v := range over.Windows {
		b.Windows[k] = v
	}
	if over.Global != nil {
		b.Global = *over.Global
	}
	if over.Flooring != nil {
		b.Flooring = *over.Flooring
	}
	return nil
}

// Clone returns a deep copy, so per-run overrides never leak into the
// shared base book.
func (b *Book) Clone() *Book {
	c := &Book{
		IN:       copyTable(b.IN),
		US:       copyTable(b.US),
		Global:   b.Global,
		Doors:    copyTable(b.Doors),
		Windows:  copyTable(b.Windows),
		Flooring: b.Flooring,
	}
	return c
}

func copyTable(t map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Rate returns the named rate from a table, or fallback when absent.
func Rate(table map[string]float64, key string, fallback float64) float64 {
	if table == nil {
		return fallback
	}
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}

func (b *Book) ensureMaps() {
	if b.IN == nil {
		b.IN = map[string]float64{}
	}
	if b.US == nil {
		b.US = map[string]float64{}
	}
	if b.Doors == nil {
		b.Doors = map[string]float64{}
	}
	if b.Windows == nil {
		b.Windows = map[string]float64{}
	}
}
