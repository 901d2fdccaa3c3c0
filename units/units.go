// Package units holds unit conversions and the feet-inch dimension grammar
// used by plan annotations.
package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Conversion constants between the units used by the two takeoff modes.
const (
	FtToM     = 0.3048
	FtPerM    = 3.280839895
	MmPerM    = 1000.0
	SqftPerM2 = FtPerM * FtPerM
)

// FeetToMeters converts a length in feet to meters.
func FeetToMeters(ft float64) float64 { return ft * FtToM }

// MetersToFeet converts a length in meters to feet.
func MetersToFeet(m float64) float64 { return m * FtPerM }

// MmToMeters converts a length in millimeters to meters.
func MmToMeters(mm float64) float64 { return mm / MmPerM }

// Dimension is one parsed plan annotation. Either Feet is set (a single
// length) or Pair is set (a "WxH" room callout).
type Dimension struct {
	Text string      `json:"text"`
	Feet float64     `json:"feet,omitempty"`
	Pair *[2]float64 `json:"pair,omitempty"`
}

// Scalar reports whether the dimension is a single length.
func (d Dimension) Scalar() bool { return d.Pair == nil }

var (
	// 12'-6", 10' 4", 12'6" — feet with a trailing inch component.
	ftInRe = regexp.MustCompile(`^(\d+)\s*['’]\s*-?\s*(\d+)\s*(?:"|”)?$`)
	// 8' or 8’ — bare feet.
	ftRe = regexp.MustCompile(`^(\d+)\s*['’]$`)
	// 12x16 or 12x16' — a room callout.
	pairRe = regexp.MustCompile(`^(\d+)\s*[xX]\s*(\d+)\s*['’]?$`)
)

// ParseDimension parses one annotation string. It accepts the feet-inch
// forms 12'-6", 10' 4", 12'6" and 8', plus WxH pairs like 12x16'. Curly
// quotes, common in OCR output, are treated like straight ones. A string
// that matches no form returns an error.
func ParseDimension(s string) (Dimension, error) {
	text := strings.TrimSpace(s)
	norm := strings.NewReplacer("″", `"`, "′", "'").Replace(text)

	if m := ftInRe.FindStringSubmatch(norm); m != nil {
		ft, _ := strconv.ParseFloat(m[1], 64)
		in, _ := strconv.ParseFloat(m[2], 64)
		return Dimension{Text: text, Feet: ft + in/12.0}, nil
	}
	if m := ftRe.FindStringSubmatch(norm); m != nil {
		ft, _ := strconv.ParseFloat(m[1], 64)
		return Dimension{Text: text, Feet: ft}, nil
	}
	if m := pairRe.FindStringSubmatch(norm); m != nil {
		w, _ := strconv.ParseFloat(m[1], 64)
		h, _ := strconv.ParseFloat(m[2], 64)
		return Dimension{Text: text, Pair: &[2]float64{w, h}}, nil
	}
	return Dimension{}, fmt.Errorf("units: %q is not a dimension", text)
}

// ParseRatio parses a "cement:sand" style mix ratio like "1:6".
func ParseRatio(s string) (a, b float64, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("units: bad ratio %q", s)
	}
	a, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("units: bad ratio %q", s)
	}
	b, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || a <= 0 || b <= 0 {
		return 0, 0, fmt.Errorf("units: bad ratio %q", s)
	}
	return a, b, nil
}

// ParseBrickSize parses a "LxWxH" modular brick size in mm, e.g. "190x90x90".
func ParseBrickSize(s string) (l, w, h float64, err error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("units: bad brick size %q", s)
	}
	dims := make([]float64, 3)
	for i, p := range parts {
		dims[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || dims[i] <= 0 {
			return 0, 0, 0, fmt.Errorf("units: bad brick size %q", s)
		}
	}
	return dims[0], dims[1], dims[2], nil
}

// ClampNonNeg returns x, or zero when x is negative. Quantity math deducts
// openings from areas and must never go below zero.
func ClampNonNeg(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}
