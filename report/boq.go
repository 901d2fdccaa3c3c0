package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/qty"
)

// BOQRow is one bill-of-quantities line item.
type BOQRow struct {
	Region   string  `csv:"region"`
	Item     string  `csv:"item"`
	Unit     string  `csv:"unit"`
	Quantity float64 `csv:"quantity"`
	Rate     float64 `csv:"rate"`
	Amount   float64 `csv:"amount"`
}

func boqRow(region, item, unit string, qty, rate float64) BOQRow {
	return BOQRow{Region: region, Item: item, Unit: unit, Quantity: qty, Rate: rate, Amount: qty * rate}
}

// IndiaBaseBOQ flattens the base masonry takeoff, brickwork mortar and
// plaster, into priced BOQ lines.
func IndiaBaseBOQ(b *qty.IndiaQuantities, rates map[string]float64) []BOQRow {
	if b == nil {
		return nil
	}
	rows := []BOQRow{
		boqRow("IN", "Bricks", "Nos", b.Brickwork.CountWithWaste, pricing.Rate(rates, "brick_per_piece", 0)),
		boqRow("IN", "Cement (Brickwork)", "Bag", b.MortarBrickwork.CementBags, pricing.Rate(rates, "cement_bag_50kg", 0)),
		boqRow("IN", "Sand (Brickwork)", "m3", b.MortarBrickwork.SandM3, pricing.Rate(rates, "sand_per_cum", 0)),
	}
	// A per-sqm plaster rate subsumes its cement and sand components.
	if r := pricing.Rate(rates, "plaster_per_sqm", 0); r > 0 && b.Plaster.AreaM2 > 0 {
		rows = append(rows, boqRow("IN", "Plaster (Surface)", "m2", b.Plaster.AreaM2, r))
	} else {
		rows = append(rows,
			boqRow("IN", "Plaster Cement", "Bag", b.Plaster.CementBags, pricing.Rate(rates, "cement_bag_50kg", 0)),
			boqRow("IN", "Plaster Sand", "m3", b.Plaster.SandM3, pricing.Rate(rates, "sand_per_cum", 0)),
		)
	}
	return rows
}

// IndiaBOQ flattens the full masonry takeoff, base plus extras and
// labor, into priced BOQ lines.
func IndiaBOQ(q *qty.IndiaTotal, rates map[string]float64) []BOQRow {
	if q == nil || q.Base == nil {
		return nil
	}
	rows := IndiaBaseBOQ(q.Base, rates)
	if q.Paint.TotalLiters > 0 {
		rows = append(rows, boqRow("IN", "Paint (material)", "Liter", q.Paint.TotalLiters, pricing.Rate(rates, "paint_per_liter", 0)))
	}
	rows = append(rows, boqRow("IN", "Steel (rough)", "kg", q.Steel.TotalKg, pricing.Rate(rates, "steel_per_kg", 0)))

	labor := q.Labor
	rows = append(rows, withAmount(boqRow("IN", "Labor - Brickwork", "m3", labor.BrickworkM3, 0), labor.BrickworkCost))
	if labor.PlasterM2 > 0 {
		rows = append(rows, withAmount(boqRow("IN", "Labor - Plaster", "m2", labor.PlasterM2, 0), labor.PlasterCost))
	}
	if labor.PaintM2TotalCoats > 0 {
		rows = append(rows, withAmount(boqRow("IN", "Labor - Paint (per coat)", "m2", labor.PaintM2TotalCoats, 0), labor.PaintCost))
	}
	return rows
}

// USABOQ flattens the framing takeoff into priced BOQ lines.
func USABOQ(q *qty.USAQuantities, rates map[string]float64) []BOQRow {
	if q == nil {
		return nil
	}
	studRate := pricing.Rate(rates, q.Inputs.StudSize+"_stud_per_piece", pricing.Rate(rates, "stud_per_piece", 0))
	plateRate := pricing.Rate(rates, q.Inputs.StudSize+"_plate_per_piece", pricing.Rate(rates, "plate_per_piece", 0))
	rows := []BOQRow{
		boqRow("US", q.Inputs.StudSize+" Studs", "pcs", float64(q.Framing.StudsTotal), studRate),
		boqRow("US", "Plates ("+q.Inputs.StudSize+")", "pcs", float64(q.Plates.Pieces), plateRate),
		boqRow("US", "Sheathing "+q.Sheathing.Sheet, "sheet", float64(q.Sheathing.Sheets),
			pricing.Rate(rates, "sheathing_"+q.Sheathing.Sheet+"_per_sheet", pricing.Rate(rates, "sheathing_per_sheet", 0))),
		boqRow("US", "Drywall "+q.Drywall.Sheet, "sheet", float64(q.Drywall.Sheets),
			pricing.Rate(rates, "drywall_"+q.Drywall.Sheet+"_per_sheet", pricing.Rate(rates, "drywall_per_sheet", 0))),
		boqRow("US", "Insulation Packs", "pack", float64(q.Insulation.Packs), pricing.Rate(rates, "insulation_pack", 0)),
	}
	rows = append(rows,
		withAmount(boqRow("US", "Labor - Framing (per stud)", "pcs", float64(q.Framing.StudsTotal), 0), q.LaborCost["frame"]),
		withAmount(boqRow("US", "Labor - Sheathing (per sheet)", "sheet", float64(q.Sheathing.Sheets), 0), q.LaborCost["sheathing"]),
		withAmount(boqRow("US", "Labor - Drywall (per sheet)", "sheet", float64(q.Drywall.Sheets), 0), q.LaborCost["drywall"]),
		withAmount(boqRow("US", "Labor - Insulation (per pack)", "pack", float64(q.Insulation.Packs), 0), q.LaborCost["insulation"]),
	)
	return rows
}

func withAmount(r BOQRow, amount float64) BOQRow {
	if r.Quantity > 0 {
		r.Rate = amount / r.Quantity
	}
	r.Amount = amount
	return r
}

func writeBOQSheet(f *excelize.File, book *pricing.Book, india *qty.IndiaTotal, usa *qty.USAQuantities) error {
	if _, err := f.NewSheet(sheetBOQ); err != nil {
		return err
	}
	title, bold, money, err := styles(f)
	if err != nil {
		return err
	}
	f.SetCellValue(sheetBOQ, "A1", "Bill of Quantities (BOQ)")
	f.SetCellStyle(sheetBOQ, "A1", "A1", title)

	r := 3
	if india != nil {
		r = addBOQTable(f, r, "BOQ - INDIA", IndiaBOQ(india, book.IN), bold, money)
	}
	if usa != nil {
		addBOQTable(f, r, "BOQ - USA", USABOQ(usa, book.US), bold, money)
	}
	f.SetColWidth(sheetBOQ, "A", "A", 30)
	f.SetColWidth(sheetBOQ, "B", "E", 14)
	return nil
}

// addBOQTable writes one titled table and returns the row after it.
func addBOQTable(f *excelize.File, start int, heading string, rows []BOQRow, bold, money int) int {
	r := start
	f.SetCellValue(sheetBOQ, fmt.Sprintf("A%d", r), heading)
	f.SetCellStyle(sheetBOQ, fmt.Sprintf("A%d", r), fmt.Sprintf("A%d", r), bold)
	r++

	f.SetSheetRow(sheetBOQ, fmt.Sprintf("A%d", r), &[]interface{}{"Item", "Unit", "Quantity", "Rate", "Amount"})
	f.SetCellStyle(sheetBOQ, fmt.Sprintf("A%d", r), fmt.Sprintf("E%d", r), bold)
	r++

	first := r
	var total float64
	for _, row := range rows {
		f.SetSheetRow(sheetBOQ, fmt.Sprintf("A%d", r), &[]interface{}{
			row.Item, row.Unit, row.Quantity, row.Rate, row.Amount,
		})
		total += row.Amount
		r++
	}
	f.SetCellStyle(sheetBOQ, fmt.Sprintf("C%d", first), fmt.Sprintf("E%d", r-1), money)

	f.SetCellValue(sheetBOQ, fmt.Sprintf("D%d", r), "Total")
	f.SetCellValue(sheetBOQ, fmt.Sprintf("E%d", r), total)
	f.SetCellStyle(sheetBOQ, fmt.Sprintf("D%d", r), fmt.Sprintf("D%d", r), bold)
	f.SetCellStyle(sheetBOQ, fmt.Sprintf("E%d", r), fmt.Sprintf("E%d", r), money)
	return r + 2
}
