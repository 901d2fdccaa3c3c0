package report

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/vamshi737/smartestimator/vision"
)

// WriteBOQCSV exports the combined BOQ lines as a flat CSV file.
func WriteBOQCSV(path string, rows []BOQRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: cannot create csv %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("report: cannot write csv %s: %w", path, err)
	}
	return nil
}

type lineRow struct {
	Index    int     `csv:"index"`
	Class    string  `csv:"class"`
	X1       float64 `csv:"x1"`
	Y1       float64 `csv:"y1"`
	X2       float64 `csv:"x2"`
	Y2       float64 `csv:"y2"`
	AngleDeg float64 `csv:"angle_deg"`
	LengthPx float64 `csv:"length_px"`
	Length   float64 `csv:"length"`
}

// WriteLinesCSV exports the classified wall segments as one flat table,
// exterior lines first.
func WriteLinesCSV(path string, m *vision.LineMetrics) error {
	rows := make([]lineRow, 0, len(m.Exterior)+len(m.Interior))
	for _, l := range m.Exterior {
		rows = append(rows, toLineRow(l))
	}
	for _, l := range m.Interior {
		rows = append(rows, toLineRow(l))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: cannot create csv %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("report: cannot write csv %s: %w", path, err)
	}
	return nil
}

func toLineRow(l vision.ClassifiedLine) lineRow {
	return lineRow{
		Index:    l.Index,
		Class:    l.Class,
		X1:       l.P1[0],
		Y1:       l.P1[1],
		X2:       l.P2[0],
		Y2:       l.P2[1],
		AngleDeg: l.AngleDeg,
		LengthPx: l.LengthPx,
		Length:   l.Length,
	}
}
